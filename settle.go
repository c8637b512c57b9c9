package url2pdf

import (
	"context"
	"fmt"
	"time"
)

// Settle defaults. The loop cap is not about correctness: it bounds runtime on
// infinite-scroll pages that never stop growing.
const (
	DefaultInitialGrace     = 5 * time.Second
	DefaultFinalGrace       = 2 * time.Second
	DefaultScrollStep       = 100
	DefaultScrollInterval   = 50 * time.Millisecond
	DefaultSettleMaxSteps   = 5000
	DefaultSettleMaxRuntime = 2 * time.Minute
)

// SettleOptions tunes the settle detector. Zero values take the defaults,
// except the grace periods, where zero means no wait.
type SettleOptions struct {
	InitialGrace time.Duration
	FinalGrace   time.Duration
	Step         int
	Interval     time.Duration
	MaxSteps     int
	MaxDuration  time.Duration
}

// DefaultSettleOptions returns the timings used when nothing is configured.
func DefaultSettleOptions() SettleOptions {
	return SettleOptions{
		InitialGrace: DefaultInitialGrace,
		FinalGrace:   DefaultFinalGrace,
		Step:         DefaultScrollStep,
		Interval:     DefaultScrollInterval,
		MaxSteps:     DefaultSettleMaxSteps,
		MaxDuration:  DefaultSettleMaxRuntime,
	}
}

// SettleReport describes how a page settled.
type SettleReport struct {
	Steps    int // scroll increments performed
	Scrolled int // accumulated scroll distance in CSS pixels
	Height   int // last scrollHeight observed
	Capped   bool
}

// Settler decides when a loaded page is stable enough to print. There is no
// page-provided ready signal: it scrolls to the bottom in fixed increments
// until the scrolled distance catches up with the document height, which may
// keep growing while lazy content loads.
type Settler struct {
	opts SettleOptions
	now  func() time.Time
	wait func(ctx context.Context, d time.Duration) error
}

// NewSettler creates a Settler, filling unset loop parameters with defaults.
func NewSettler(opts SettleOptions) *Settler {
	if opts.Step <= 0 {
		opts.Step = DefaultScrollStep
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultScrollInterval
	}
	if opts.MaxSteps <= 0 {
		opts.MaxSteps = DefaultSettleMaxSteps
	}
	if opts.MaxDuration <= 0 {
		opts.MaxDuration = DefaultSettleMaxRuntime
	}
	return &Settler{opts: opts, now: time.Now, wait: sleepContext}
}

// Options returns the effective settings.
func (s *Settler) Options() SettleOptions {
	return s.opts
}

// Settle waits the initial grace period, scrolls to the bottom, then waits the
// final grace period. When the loop hits MaxSteps or MaxDuration the report is
// marked Capped and no error is returned: the caller captures what is there.
func (s *Settler) Settle(ctx context.Context, page Page) (SettleReport, error) {
	var report SettleReport

	if err := s.wait(ctx, s.opts.InitialGrace); err != nil {
		return report, err
	}

	start := s.now()
	for {
		height, err := page.ScrollHeight(ctx)
		if err != nil {
			return report, fmt.Errorf("%w: reading scroll height: %v", ErrSettle, err)
		}
		if err := page.ScrollBy(ctx, s.opts.Step); err != nil {
			return report, fmt.Errorf("%w: scrolling: %v", ErrSettle, err)
		}
		report.Steps++
		report.Scrolled += s.opts.Step
		report.Height = height

		if report.Scrolled >= height {
			break
		}
		if report.Steps >= s.opts.MaxSteps || s.now().Sub(start) >= s.opts.MaxDuration {
			report.Capped = true
			break
		}
		if err := s.wait(ctx, s.opts.Interval); err != nil {
			return report, err
		}
	}

	if err := s.wait(ctx, s.opts.FinalGrace); err != nil {
		return report, err
	}
	return report, nil
}

// sleepContext blocks for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
