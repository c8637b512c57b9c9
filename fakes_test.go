package url2pdf

import (
	"context"
	"errors"
	"sync"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Browser fakes
// ---------------------------------------------------------------------------

// fakeSite describes what the fake browser serves for one URL.
type fakeSite struct {
	html    string
	heights []int // successive scrollHeight readings; last value repeats
	loadErr error
}

// fakePage records every call so tests can assert the pipeline order.
type fakePage struct {
	mu    sync.Mutex
	sites map[string]*fakeSite
	calls []string

	current  *fakeSite
	reads    int
	scrolled int
	styles   []string
	viewport Viewport
	pdfOpts  []PDFOptions

	viewportErr error
	heightErr   error
	htmlErr     error
	styleErr    error
	pdfErr      error
	closed      bool
}

func newFakePage(sites map[string]*fakeSite) *fakePage {
	return &fakePage{sites: sites}
}

func (p *fakePage) record(call string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, call)
}

func (p *fakePage) Calls() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.calls...)
}

func (p *fakePage) SetViewport(_ context.Context, vp Viewport) error {
	p.record("viewport")
	p.viewport = vp
	return p.viewportErr
}

func (p *fakePage) Navigate(ctx context.Context, url string) error {
	p.record("navigate " + url)
	if err := ctx.Err(); err != nil {
		return err
	}
	site, ok := p.sites[url]
	if !ok {
		return errors.New("net::ERR_NAME_NOT_RESOLVED")
	}
	if site.loadErr != nil {
		return site.loadErr
	}
	p.current = site
	p.reads = 0
	p.scrolled = 0
	p.styles = nil
	return nil
}

func (p *fakePage) ScrollHeight(context.Context) (int, error) {
	p.record("height")
	if p.heightErr != nil {
		return 0, p.heightErr
	}
	if p.current == nil || len(p.current.heights) == 0 {
		return 0, nil
	}
	i := p.reads
	if i >= len(p.current.heights) {
		i = len(p.current.heights) - 1
	}
	p.reads++
	return p.current.heights[i], nil
}

func (p *fakePage) ScrollBy(_ context.Context, dy int) error {
	p.record("scroll")
	p.scrolled += dy
	return nil
}

func (p *fakePage) HTML(context.Context) (string, error) {
	p.record("html")
	if p.htmlErr != nil {
		return "", p.htmlErr
	}
	if p.current == nil {
		return "", nil
	}
	return p.current.html, nil
}

func (p *fakePage) AddStyle(_ context.Context, css string) error {
	p.record("style")
	if p.styleErr != nil {
		return p.styleErr
	}
	p.styles = append(p.styles, css)
	return nil
}

func (p *fakePage) PDF(_ context.Context, opts PDFOptions) ([]byte, error) {
	p.record("pdf")
	if p.pdfErr != nil {
		return nil, p.pdfErr
	}
	p.pdfOpts = append(p.pdfOpts, opts)
	return []byte("%PDF-1.4 " + p.current.html), nil
}

func (p *fakePage) Close() error {
	p.record("close page")
	p.closed = true
	return nil
}

// fakeSession hands out a single page.
type fakeSession struct {
	page    *fakePage
	pageErr error
	closed  int
}

func (s *fakeSession) NewPage(ctx context.Context) (Page, error) {
	if s.pageErr != nil {
		return nil, s.pageErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.page, nil
}

func (s *fakeSession) Close() error {
	s.closed++
	return nil
}

// fakeLauncher returns a prepared session.
type fakeLauncher struct {
	session  *fakeSession
	err      error
	launches int
	opts     LaunchOptions
}

func (l *fakeLauncher) Launch(_ context.Context, opts LaunchOptions) (Session, error) {
	l.launches++
	l.opts = opts
	if l.err != nil {
		return nil, l.err
	}
	return l.session, nil
}

// instantSettle disables the grace periods so tests do not sleep.
func instantSettle() SettleOptions {
	return SettleOptions{Step: 100, Interval: 1, MaxSteps: 1000, MaxDuration: DefaultSettleMaxRuntime}
}

func articlePage(title string) *fakeSite {
	return &fakeSite{
		html:    "<html><body><header id=\"header\">nav</header><h1>" + title + "</h1><p>body</p></body></html>",
		heights: []int{250},
	}
}
