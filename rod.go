package url2pdf

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-url2pdf/internal/process"
)

// Compile-time interface checks
var (
	_ Launcher = (*RodLauncher)(nil)
	_ Session  = (*rodSession)(nil)
	_ Page     = (*rodPage)(nil)
)

// Page scripts. rod's Eval expects a function expression.
const (
	scrollHeightJS = `() => document.body ? document.body.scrollHeight : 0`
	scrollByJS     = `(dy) => window.scrollBy(0, dy)`
)

// RodLauncher implements Launcher using go-rod.
// Rod automatically downloads Chromium on first run if not found.
type RodLauncher struct{}

// NewRodLauncher creates a RodLauncher.
func NewRodLauncher() *RodLauncher {
	return &RodLauncher{}
}

// Launch starts a browser process and connects to it.
func (RodLauncher) Launch(ctx context.Context, opts LaunchOptions) (Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l := launcher.New().Context(ctx).Headless(opts.Headless)

	// Use pre-installed browser if specified (Docker/containerized environments)
	bin := opts.Bin
	if bin == "" {
		bin = os.Getenv("ROD_BROWSER_BIN")
	}
	if bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if opts.NoSandbox || os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		l.Cleanup()
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	return &rodSession{browser: browser, launcher: l, pid: l.PID()}, nil
}

// rodSession owns one Chrome process.
type rodSession struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	pid      int
	once     sync.Once
}

// NewPage opens a blank tab. The page is not bound to ctx so it can still be
// closed after ctx is canceled.
func (s *rodSession) NewPage(ctx context.Context) (Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	page, err := s.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	return &rodPage{page: page}, nil
}

// Close shuts the browser down. If the CDP close fails, the process group is
// killed so no Chrome children outlive the run.
func (s *rodSession) Close() error {
	var err error
	s.once.Do(func() {
		if cerr := s.browser.Close(); cerr != nil {
			err = fmt.Errorf("closing browser: %w", cerr)
			process.KillProcessGroup(s.pid)
			s.launcher.Kill()
		}
		s.launcher.Cleanup()
	})
	return err
}

// rodPage adapts *rod.Page to Page. Every call is scoped to the caller's context.
type rodPage struct {
	page *rod.Page
}

func (p *rodPage) SetViewport(ctx context.Context, vp Viewport) error {
	return p.page.Context(ctx).SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             vp.Width,
		Height:            vp.Height,
		DeviceScaleFactor: vp.DeviceScaleFactor,
	})
}

func (p *rodPage) Navigate(ctx context.Context, url string) error {
	pg := p.page.Context(ctx)
	if err := pg.Navigate(url); err != nil {
		return err
	}
	return pg.WaitLoad()
}

func (p *rodPage) ScrollHeight(ctx context.Context) (int, error) {
	res, err := p.page.Context(ctx).Eval(scrollHeightJS)
	if err != nil {
		return 0, err
	}
	return res.Value.Int(), nil
}

func (p *rodPage) ScrollBy(ctx context.Context, dy int) error {
	_, err := p.page.Context(ctx).Eval(scrollByJS, dy)
	return err
}

func (p *rodPage) HTML(ctx context.Context) (string, error) {
	return p.page.Context(ctx).HTML()
}

func (p *rodPage) AddStyle(ctx context.Context, css string) error {
	return p.page.Context(ctx).AddStyleTag("", css)
}

// PDF prints the page with Chrome's printToPDF. Chrome paginates the whole
// document; output is never clipped to the viewport.
func (p *rodPage) PDF(ctx context.Context, opts PDFOptions) ([]byte, error) {
	reader, err := p.page.Context(ctx).PDF(buildPrintParams(opts))
	if err != nil {
		return nil, err
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading PDF stream: %w", err)
	}
	return pdfBuf, nil
}

func (p *rodPage) Close() error {
	return p.page.Close()
}

// buildPrintParams maps PDFOptions onto proto.PagePrintToPDF.
func buildPrintParams(opts PDFOptions) *proto.PagePrintToPDF {
	params := &proto.PagePrintToPDF{
		PrintBackground:     opts.PrintBackground,
		PreferCSSPageSize:   opts.PreferCSSPageSize,
		DisplayHeaderFooter: opts.DisplayHeaderFooter,
		Landscape:           opts.Landscape,
	}
	if opts.Scale > 0 {
		params.Scale = floatPtr(opts.Scale)
	}
	if opts.PaperWidthInches > 0 {
		params.PaperWidth = floatPtr(opts.PaperWidthInches)
	}
	return params
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
