package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	url2pdf "github.com/alnah/go-url2pdf"
	"github.com/alnah/go-url2pdf/internal/config"
	"github.com/alnah/go-url2pdf/internal/fileutil"
	"github.com/alnah/go-url2pdf/internal/hints"
	"github.com/alnah/go-url2pdf/internal/logging"
	"github.com/alnah/go-url2pdf/internal/metrics"
	"github.com/alnah/go-url2pdf/internal/notify"
)

// ErrPartialFailure is returned when the batch ran but some URLs failed.
var ErrPartialFailure = errors.New("some URLs could not be captured")

// defaultOutputDirName is created by the user beside the executable.
const defaultOutputDirName = "pdf"

// runCapture is the root command: resolve settings, filter URLs, run the
// batch, then report.
func runCapture(ctx context.Context, cmd *cobra.Command, args []string, flags *captureFlags, env *Environment) error {
	cfg, err := loadLayeredConfig(&flags.common, env)
	if err != nil {
		return err
	}
	mergeFlags(cmd.Flags(), flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: env.Stderr})
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	ctx = logging.WithLogger(ctx, logger)

	urls := url2pdf.FilterURLs(args)
	if dropped := len(args) - len(urls); dropped > 0 {
		logger.Debug("ignoring arguments that are not URLs", zap.Int("count", dropped))
	}
	if len(urls) == 0 {
		return url2pdf.ErrNoURLs
	}

	outputDir, err := resolveOutputDir(cfg, env)
	if err != nil {
		return err
	}

	notifier := openNotifier(cfg, env, logger)
	if notifier != nil {
		defer func() {
			if err := notifier.Close(); err != nil {
				logger.Debug("closing notifier", zap.Error(err))
			}
		}()
	}

	var recorder *metrics.Recorder
	if cfg.Metrics.File != "" {
		recorder = metrics.NewRecorder()
	}

	capturer := url2pdf.NewCapturer(
		url2pdf.WithOutputDir(outputDir),
		url2pdf.WithNavigationTimeout(cfg.Browser.Timeout),
		url2pdf.WithViewport(url2pdf.Viewport{
			Width:             cfg.Browser.Viewport.Width,
			Height:            cfg.Browser.Viewport.Height,
			DeviceScaleFactor: cfg.Browser.Viewport.Scale,
		}),
		url2pdf.WithSettleOptions(url2pdf.SettleOptions{
			InitialGrace: cfg.Settle.InitialGrace,
			FinalGrace:   cfg.Settle.FinalGrace,
			Step:         cfg.Settle.Step,
			Interval:     cfg.Settle.Interval,
			MaxSteps:     cfg.Settle.MaxSteps,
			MaxDuration:  cfg.Settle.MaxDuration,
		}),
		url2pdf.WithLogger(logger),
	)

	onResult := func(r url2pdf.Result) {
		if recorder != nil {
			recorder.Observe(r.OK(), r.Duration, r.Settle.Steps, r.Settle.Capped)
		}
		if !r.OK() {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.URL, r.Err)
			return
		}
		if !flags.common.quiet {
			if flags.common.verbose {
				fmt.Fprintf(env.Stdout, "PDF saved as: %s (%v)\n", r.Path, r.Duration.Round(time.Millisecond))
			} else {
				fmt.Fprintf(env.Stdout, "PDF saved as: %s\n", r.Path)
			}
		}
		if notifier != nil {
			n := notify.ForFile(r.Path, cfg.Notify.Timeout)
			if cfg.Notify.Sound != "" {
				n.Sound = cfg.Notify.Sound
			}
			if err := notifier.Notify(ctx, n); err != nil {
				logger.Warn("notification failed", zap.String("path", r.Path), zap.Error(err))
			}
		}
	}

	batch := url2pdf.NewBatch(env.Launcher, capturer, url2pdf.BatchOptions{
		Launch: url2pdf.LaunchOptions{
			Headless:  cfg.Browser.Headless,
			Bin:       cfg.Browser.Bin,
			NoSandbox: cfg.Browser.NoSandbox,
		},
		FailFast: cfg.Batch.FailFast,
		OnResult: onResult,
		Logger:   logger,
	})

	report, runErr := batch.Run(ctx, urls)

	if !flags.common.quiet && len(urls) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", report.Succeeded, report.Failed)
	}

	if recorder != nil {
		recorder.Finish(env.Now())
		if err := recorder.WriteFile(cfg.Metrics.File); err != nil {
			logger.Warn("writing metrics", zap.String("file", cfg.Metrics.File), zap.Error(err))
		}
	}

	if notifier != nil && report.Succeeded > 0 && cfg.Notify.Linger > 0 {
		lingerNotifications(ctx, notifier, cfg.Notify.Linger, logger)
	}

	if runErr != nil {
		return runErr
	}
	if report.Failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrPartialFailure, report.Failed, len(urls))
	}
	return nil
}

// loadLayeredConfig layers defaults < config file < URL2PDF_* env.
// Command flags are merged on top by the caller.
func loadLayeredConfig(common *commonFlags, env *Environment) (*config.Config, error) {
	warnUnknownEnvVars(env.Stderr)

	cfg, err := loadConfigFile(common.config)
	if err != nil {
		return nil, err
	}
	if err := applyEnvConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadConfigFile loads the named config, falling back to URL2PDF_CONFIG and
// then to the defaults when neither is given.
func loadConfigFile(name string) (*config.Config, error) {
	if name == "" {
		var err error
		if name, err = configPathFromEnv(); err != nil {
			return nil, err
		}
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
			return nil, fmt.Errorf("%w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
		}
		return nil, err
	}
	return cfg, nil
}

// resolveOutputDir returns the configured directory, or "pdf" beside the
// executable. The directory must already exist and be writable; it is
// checked here so no browser is started for nothing.
func resolveOutputDir(cfg *config.Config, env *Environment) (string, error) {
	dir := cfg.Output.Dir
	if dir == "" {
		exeDir, err := env.ExecutableDir()
		if err != nil {
			return "", fmt.Errorf("%w: %v", url2pdf.ErrOutputDir, err)
		}
		dir = filepath.Join(exeDir, defaultOutputDirName)
	}

	if err := fileutil.CheckWritableDir(dir); err != nil {
		return "", fmt.Errorf("%w: %v%s", url2pdf.ErrOutputDir, err, hints.ForOutputDir(dir))
	}
	return dir, nil
}

// openNotifier returns nil when notifications are off. When the desktop
// service is unreachable, notifications degrade to log lines.
func openNotifier(cfg *config.Config, env *Environment, logger *zap.Logger) notify.Notifier {
	if !cfg.Notify.Enabled {
		return nil
	}
	n, err := env.NewNotifier(logger)
	if err != nil {
		logger.Warn("desktop notifications unavailable"+hints.ForNotifications(), zap.Error(err))
		return notify.NewLog(logger)
	}
	return n
}

// lingerNotifications keeps the process alive so notification clicks can
// still open files, until every notification is resolved or linger passes.
func lingerNotifications(ctx context.Context, n notify.Notifier, linger time.Duration, logger *zap.Logger) {
	waitCtx, cancel := context.WithTimeout(ctx, linger)
	defer cancel()

	logger.Debug("waiting for notification clicks", zap.Duration("linger", linger))
	if err := n.Wait(waitCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		logger.Debug("notification wait ended", zap.Error(err))
	}
}
