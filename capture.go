package url2pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// filePermissions for written PDFs: rw-r--r--.
const filePermissions = 0o644

// Stage is a step of the capture pipeline for one URL.
type Stage int

// Pipeline stages in execution order. StageFailed is terminal and reachable
// from any other stage.
const (
	StageNavigating Stage = iota
	StageSettling
	StageStyleApplied
	StageCapturing
	StageDone
	StageFailed
)

var stageNames = [...]string{
	StageNavigating:   "navigating",
	StageSettling:     "settling",
	StageStyleApplied: "applying styles",
	StageCapturing:    "capturing",
	StageDone:         "done",
	StageFailed:       "failed",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return fmt.Sprintf("stage(%d)", int(s))
	}
	return stageNames[s]
}

// StageError records which stage of which URL failed.
type StageError struct {
	Stage Stage
	URL   string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.URL, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Result is the outcome of capturing one URL. Err is nil and Stage is
// StageDone on success; otherwise Err is a *StageError and Path is only a
// name that was (or would have been) used.
type Result struct {
	URL      string
	Name     string
	Path     string
	Stage    Stage
	Settle   SettleReport
	Err      error
	Duration time.Duration
}

// OK reports whether the capture produced a file.
func (r Result) OK() bool {
	return r.Err == nil && r.Stage == StageDone
}

// Capturer runs the per-URL pipeline: navigate, settle, name, style, print.
// It holds no per-URL state and may be reused for every URL of a batch.
type Capturer struct {
	outputDir  string
	navTimeout time.Duration
	viewport   Viewport
	settler    *Settler
	logger     *zap.Logger
}

// NewCapturer creates a Capturer writing to "pdf" in the working directory
// unless WithOutputDir is given.
func NewCapturer(opts ...Option) *Capturer {
	c := &Capturer{
		outputDir:  defaultOutputDir,
		navTimeout: defaultNavigationTimeout,
		viewport:   DefaultViewport,
		settler:    NewSettler(DefaultSettleOptions()),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OutputDir returns the directory PDFs are written to.
func (c *Capturer) OutputDir() string {
	return c.outputDir
}

// Viewport returns the viewport the batch should apply to its page.
func (c *Capturer) Viewport() Viewport {
	return c.viewport
}

// Capture processes one URL on page. It never retries: the first failing
// stage ends the capture.
func (c *Capturer) Capture(ctx context.Context, page Page, rawURL string) Result {
	start := time.Now()
	res := Result{URL: rawURL, Stage: StageNavigating}
	log := c.logger.With(zap.String("url", rawURL))

	fail := func(err error) Result {
		res.Err = &StageError{Stage: res.Stage, URL: rawURL, Err: err}
		res.Stage = StageFailed
		res.Duration = time.Since(start)
		log.Warn("capture failed", zap.Error(res.Err))
		return res
	}

	log.Debug("navigating")
	if err := c.navigate(ctx, page, rawURL); err != nil {
		return fail(err)
	}

	res.Stage = StageSettling
	log.Debug("settling")
	report, err := c.settler.Settle(ctx, page)
	res.Settle = report
	if err != nil {
		return fail(err)
	}
	if report.Capped {
		log.Warn("page kept growing; capturing what has loaded",
			zap.Int("steps", report.Steps), zap.Int("height", report.Height))
	}

	// The name is read before the overrides can hide anything.
	res.Stage = StageStyleApplied
	name, err := c.deriveName(ctx, page)
	if err != nil {
		return fail(err)
	}
	res.Name = name
	res.Path = filepath.Join(c.outputDir, name+".pdf")
	if err := injectStyles(ctx, page); err != nil {
		return fail(err)
	}

	res.Stage = StageCapturing
	log.Debug("capturing", zap.String("path", res.Path))
	if err := c.export(ctx, page, res.Path); err != nil {
		return fail(err)
	}

	res.Stage = StageDone
	res.Duration = time.Since(start)
	log.Info("PDF saved", zap.String("path", res.Path), zap.Duration("duration", res.Duration))
	return res
}

// navigate loads the URL under the navigation timeout.
func (c *Capturer) navigate(ctx context.Context, page Page, rawURL string) error {
	navCtx, cancel := context.WithTimeout(ctx, c.navTimeout)
	defer cancel()

	if err := page.Navigate(navCtx, rawURL); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	return nil
}

// deriveName reads the first heading from the rendered DOM. A page without a
// usable heading gets the fallback name; a DOM the engine cannot serialize
// fails the capture instead of overwriting the fallback file.
func (c *Capturer) deriveName(ctx context.Context, page Page) (string, error) {
	html, err := page.HTML(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("%w: %v", ErrTitle, err)
	}
	return DeriveFilename(ExtractTitle(html)), nil
}

// export prints the page and writes the PDF, replacing any existing file.
func (c *Capturer) export(ctx context.Context, page Page, path string) error {
	pdf, err := page.PDF(ctx, pdfOptionsFor(c.viewport))
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	// #nosec G306 -- PDFs are meant to be readable
	if err := os.WriteFile(path, pdf, filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWritePDF, err)
	}
	return nil
}
