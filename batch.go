package url2pdf

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// ErrBatchAborted is returned by Batch.Run when FailFast stops the batch.
var ErrBatchAborted = errors.New("batch aborted after a failed capture")

// BatchOptions configures a Batch.
type BatchOptions struct {
	Launch LaunchOptions
	// FailFast stops at the first failed URL. By default failures are logged
	// and the batch moves on to the next URL.
	FailFast bool
	// OnResult is called after every URL, in order, on the caller's goroutine.
	OnResult func(Result)
	Logger   *zap.Logger
}

// Report aggregates the results of a batch.
type Report struct {
	Results   []Result
	Succeeded int
	Failed    int
	Duration  time.Duration
}

// Paths returns the files written, in capture order. A path appears once per
// successful capture even when a later capture overwrote it.
func (r *Report) Paths() []string {
	paths := make([]string, 0, r.Succeeded)
	for _, res := range r.Results {
		if res.OK() {
			paths = append(paths, res.Path)
		}
	}
	return paths
}

func (r *Report) add(res Result) {
	r.Results = append(r.Results, res)
	if res.OK() {
		r.Succeeded++
	} else {
		r.Failed++
	}
}

// Batch drives a Capturer over a list of URLs on one browser session and one
// page, strictly in order.
type Batch struct {
	launcher Launcher
	capturer *Capturer
	opts     BatchOptions
	logger   *zap.Logger
}

// NewBatch creates a Batch. launcher and capturer must not be nil.
func NewBatch(launcher Launcher, capturer *Capturer, opts BatchOptions) *Batch {
	if launcher == nil || capturer == nil {
		panic("url2pdf: NewBatch requires a launcher and a capturer")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Batch{launcher: launcher, capturer: capturer, opts: opts, logger: logger}
}

// Run captures every URL and returns one Result per URL attempted. The browser
// session is closed on every return path.
//
// The returned error is non-nil only when the session could not be prepared,
// when FailFast stopped the batch, or when ctx was canceled; per-URL failures
// are otherwise reported in the Report.
func (b *Batch) Run(ctx context.Context, urls []string) (report *Report, err error) {
	start := time.Now()
	report = &Report{Results: make([]Result, 0, len(urls))}
	defer func() { report.Duration = time.Since(start) }()

	if len(urls) == 0 {
		return report, ErrNoURLs
	}

	session, err := b.launcher.Launch(ctx, b.opts.Launch)
	if err != nil {
		return report, err
	}
	defer func() {
		if cerr := session.Close(); cerr != nil {
			b.logger.Warn("closing browser session", zap.Error(cerr))
		}
	}()

	page, err := session.NewPage(ctx)
	if err != nil {
		return report, err
	}
	defer func() {
		if cerr := page.Close(); cerr != nil {
			b.logger.Debug("closing page", zap.Error(cerr))
		}
	}()

	if err := page.SetViewport(ctx, b.capturer.Viewport()); err != nil {
		return report, fmt.Errorf("%w: %v", ErrViewport, err)
	}

	for i, u := range urls {
		if err := ctx.Err(); err != nil {
			b.logger.Warn("batch interrupted", zap.Int("remaining", len(urls)-i))
			for _, rest := range urls[i:] {
				report.add(Result{URL: rest, Stage: StageFailed, Err: &StageError{Stage: StageNavigating, URL: rest, Err: err}})
			}
			return report, err
		}

		res := b.capturer.Capture(ctx, page, u)
		report.add(res)
		if b.opts.OnResult != nil {
			b.opts.OnResult(res)
		}

		if !res.OK() && b.opts.FailFast {
			return report, fmt.Errorf("%w: %v", ErrBatchAborted, res.Err)
		}
	}

	b.logger.Info("batch complete",
		zap.Int("succeeded", report.Succeeded),
		zap.Int("failed", report.Failed))
	return report, nil
}
