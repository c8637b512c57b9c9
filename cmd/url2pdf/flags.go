package main

import (
	"time"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-url2pdf/internal/config"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// browserFlags holds browser session flags.
type browserFlags struct {
	headless   bool
	bin        string
	noSandbox  bool
	timeout    time.Duration
	width      int
	height     int
	scale      float64
	grace      time.Duration
	finalGrace time.Duration
}

// outputFlags holds output and reporting flags.
type outputFlags struct {
	dir         string
	metricsFile string
	logLevel    string
	logFormat   string
}

// notifyFlags holds desktop notification flags.
type notifyFlags struct {
	enabled bool
	linger  time.Duration
}

// captureFlags holds all flags of the capture command.
type captureFlags struct {
	common   commonFlags
	browser  browserFlags
	output   outputFlags
	notify   notifyFlags
	failFast bool
}

// addCommonFlags registers flags shared by every command.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only print errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "print progress details")
}

// addCaptureFlags registers the capture command flags. Defaults shown in help
// are the built-in ones; only flags the user sets override the config.
func addCaptureFlags(fs *flag.FlagSet, f *captureFlags) {
	def := config.DefaultConfig()

	fs.StringVarP(&f.output.dir, "output-dir", "o", "", `directory for PDFs (default "pdf" beside the executable)`)
	fs.StringVar(&f.output.metricsFile, "metrics-file", "", "write Prometheus metrics to this file after the batch")
	fs.StringVar(&f.output.logLevel, "log-level", def.Log.Level, "diagnostic log level: debug, info, warn, error")
	fs.StringVar(&f.output.logFormat, "log-format", def.Log.Format, "diagnostic log format: console, json")

	fs.BoolVar(&f.browser.headless, "headless", def.Browser.Headless, "run the browser without a window")
	fs.StringVar(&f.browser.bin, "browser-bin", "", "Chrome/Chromium binary (default: ROD_BROWSER_BIN or auto-download)")
	fs.BoolVar(&f.browser.noSandbox, "no-sandbox", false, "disable the Chrome sandbox (containers, CI)")
	fs.DurationVarP(&f.browser.timeout, "timeout", "t", def.Browser.Timeout, "navigation timeout per URL")
	fs.IntVar(&f.browser.width, "width", def.Browser.Viewport.Width, "viewport width in CSS pixels (also the PDF paper width)")
	fs.IntVar(&f.browser.height, "height", def.Browser.Viewport.Height, "viewport height in CSS pixels")
	fs.Float64Var(&f.browser.scale, "scale", def.Browser.Viewport.Scale, "device scale factor")
	fs.DurationVar(&f.browser.grace, "grace", def.Settle.InitialGrace, "wait after load before scrolling")
	fs.DurationVar(&f.browser.finalGrace, "final-grace", def.Settle.FinalGrace, "wait after scrolling before printing")

	fs.BoolVar(&f.notify.enabled, "notify", def.Notify.Enabled, "show a desktop notification for each PDF")
	fs.DurationVar(&f.notify.linger, "notify-linger", def.Notify.Linger, "how long to wait for notification clicks after the batch")

	fs.BoolVar(&f.failFast, "fail-fast", false, "stop at the first URL that fails")
}

// mergeFlags applies explicitly set flags onto cfg (highest priority).
func mergeFlags(fs *flag.FlagSet, f *captureFlags, cfg *config.Config) {
	set := func(name string) bool { return fs.Changed(name) }

	if set("output-dir") {
		cfg.Output.Dir = f.output.dir
	}
	if set("metrics-file") {
		cfg.Metrics.File = f.output.metricsFile
	}
	if set("log-level") {
		cfg.Log.Level = f.output.logLevel
	}
	if set("log-format") {
		cfg.Log.Format = f.output.logFormat
	}

	if set("headless") {
		cfg.Browser.Headless = f.browser.headless
	}
	if set("browser-bin") {
		cfg.Browser.Bin = f.browser.bin
	}
	if set("no-sandbox") {
		cfg.Browser.NoSandbox = f.browser.noSandbox
	}
	if set("timeout") {
		cfg.Browser.Timeout = f.browser.timeout
	}
	if set("width") {
		cfg.Browser.Viewport.Width = f.browser.width
	}
	if set("height") {
		cfg.Browser.Viewport.Height = f.browser.height
	}
	if set("scale") {
		cfg.Browser.Viewport.Scale = f.browser.scale
	}
	if set("grace") {
		cfg.Settle.InitialGrace = f.browser.grace
	}
	if set("final-grace") {
		cfg.Settle.FinalGrace = f.browser.finalGrace
	}

	if set("notify") {
		cfg.Notify.Enabled = f.notify.enabled
	}
	if set("notify-linger") {
		cfg.Notify.Linger = f.notify.linger
	}

	if set("fail-fast") {
		cfg.Batch.FailFast = f.failFast
	}

	// --verbose and --quiet win over any configured level.
	switch {
	case f.common.verbose:
		cfg.Log.Level = "debug"
	case f.common.quiet:
		cfg.Log.Level = "error"
	}
}
