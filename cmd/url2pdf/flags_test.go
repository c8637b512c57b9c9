package main

import (
	"testing"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-url2pdf/internal/config"
)

// parseCaptureFlags registers and parses the capture flags like the root command.
func parseCaptureFlags(t *testing.T, args ...string) (*flag.FlagSet, *captureFlags) {
	t.Helper()

	var f captureFlags
	fs := flag.NewFlagSet("url2pdf", flag.ContinueOnError)
	addCommonFlags(fs, &f.common)
	addCaptureFlags(fs, &f)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse %v: %v", args, err)
	}
	return fs, &f
}

// ---------------------------------------------------------------------------
// TestMergeFlags - Only explicitly set flags override the config
// ---------------------------------------------------------------------------

func TestMergeFlags_UnsetFlagsKeepConfig(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Output.Dir = "/from/config"
	cfg.Browser.Headless = false
	cfg.Browser.Timeout = time.Minute
	cfg.Batch.FailFast = true

	fs, f := parseCaptureFlags(t)
	mergeFlags(fs, f, cfg)

	if cfg.Output.Dir != "/from/config" {
		t.Errorf("Output.Dir = %q, want config value", cfg.Output.Dir)
	}
	if cfg.Browser.Headless {
		t.Error("Headless = true, want config value false")
	}
	if cfg.Browser.Timeout != time.Minute {
		t.Errorf("Timeout = %v, want config value", cfg.Browser.Timeout)
	}
	if !cfg.Batch.FailFast {
		t.Error("FailFast = false, want config value true")
	}
}

func TestMergeFlags_SetFlagsOverride(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Output.Dir = "/from/config"

	fs, f := parseCaptureFlags(t,
		"-o", "/from/flag",
		"--metrics-file", "/tmp/m.prom",
		"--headless=false",
		"--browser-bin", "/usr/bin/chromium",
		"--no-sandbox",
		"-t", "45s",
		"--width", "1280",
		"--height", "720",
		"--scale", "2",
		"--grace", "1s",
		"--final-grace", "500ms",
		"--notify",
		"--notify-linger", "3s",
		"--fail-fast",
		"--log-format", "json",
	)
	mergeFlags(fs, f, cfg)

	checks := []struct {
		name string
		got  any
		want any
	}{
		{"Output.Dir", cfg.Output.Dir, "/from/flag"},
		{"Metrics.File", cfg.Metrics.File, "/tmp/m.prom"},
		{"Browser.Headless", cfg.Browser.Headless, false},
		{"Browser.Bin", cfg.Browser.Bin, "/usr/bin/chromium"},
		{"Browser.NoSandbox", cfg.Browser.NoSandbox, true},
		{"Browser.Timeout", cfg.Browser.Timeout, 45 * time.Second},
		{"Viewport.Width", cfg.Browser.Viewport.Width, 1280},
		{"Viewport.Height", cfg.Browser.Viewport.Height, 720},
		{"Viewport.Scale", cfg.Browser.Viewport.Scale, 2.0},
		{"Settle.InitialGrace", cfg.Settle.InitialGrace, time.Second},
		{"Settle.FinalGrace", cfg.Settle.FinalGrace, 500 * time.Millisecond},
		{"Notify.Enabled", cfg.Notify.Enabled, true},
		{"Notify.Linger", cfg.Notify.Linger, 3 * time.Second},
		{"Batch.FailFast", cfg.Batch.FailFast, true},
		{"Log.Format", cfg.Log.Format, "json"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestMergeFlags_VerbosityOverridesLogLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"default keeps config", nil, "info"},
		{"explicit level", []string{"--log-level", "error"}, "error"},
		{"verbose", []string{"-v"}, "debug"},
		{"quiet", []string{"-q"}, "error"},
		{"verbose beats level", []string{"-v", "--log-level", "warn"}, "debug"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.DefaultConfig()
			cfg.Log.Level = "info"

			fs, f := parseCaptureFlags(t, tt.args...)
			mergeFlags(fs, f, cfg)

			if cfg.Log.Level != tt.want {
				t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestHasVerboseFlag
// ---------------------------------------------------------------------------

func TestHasVerboseFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want bool
	}{
		{"none", []string{"https://example.com"}, false},
		{"short", []string{"-v", "https://example.com"}, true},
		{"long", []string{"https://example.com", "--verbose"}, true},
		{"after terminator", []string{"--", "-v"}, false},
		{"empty", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := hasVerboseFlag(tt.args); got != tt.want {
				t.Errorf("hasVerboseFlag(%v) = %v, want %v", tt.args, got, tt.want)
			}
		})
	}
}
