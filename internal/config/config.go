// Package config loads url2pdf settings from YAML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-url2pdf/internal/fileutil"
	"github.com/alnah/go-url2pdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Limits for user-provided values.
const (
	MaxPathLength     = 4096
	MaxViewportPixels = 16384 // Chrome's maximum texture size
	MaxScaleFactor    = 4
)

// Config holds all configuration for a url2pdf run. The env tags name the
// URL2PDF_* variables that override the file; variables that are unset leave
// the loaded value alone.
type Config struct {
	Output  OutputConfig  `yaml:"output"`
	Browser BrowserConfig `yaml:"browser"`
	Settle  SettleConfig  `yaml:"settle"`
	Batch   BatchConfig   `yaml:"batch"`
	Notify  NotifyConfig  `yaml:"notify"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// OutputConfig defines where PDFs are written.
type OutputConfig struct {
	Dir string `yaml:"dir" env:"URL2PDF_OUTPUT_DIR"` // Empty = "pdf" beside the executable
}

// BrowserConfig defines the headless Chrome session.
type BrowserConfig struct {
	Headless  bool           `yaml:"headless" env:"URL2PDF_HEADLESS"`
	Bin       string         `yaml:"bin" env:"URL2PDF_BROWSER_BIN"` // Empty = ROD_BROWSER_BIN or rod's managed Chromium
	NoSandbox bool           `yaml:"noSandbox" env:"URL2PDF_NO_SANDBOX"`
	Timeout   time.Duration  `yaml:"timeout" env:"URL2PDF_TIMEOUT"` // Navigation timeout per URL
	Viewport  ViewportConfig `yaml:"viewport"`
}

// ViewportConfig defines the window size; the PDF paper width follows Width.
type ViewportConfig struct {
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Scale  float64 `yaml:"scale"`
}

// SettleConfig tunes how long a page is given to finish loading.
type SettleConfig struct {
	InitialGrace time.Duration `yaml:"initialGrace" env:"URL2PDF_INITIAL_GRACE"`
	FinalGrace   time.Duration `yaml:"finalGrace" env:"URL2PDF_FINAL_GRACE"`
	Step         int           `yaml:"step"`     // CSS pixels per scroll
	Interval     time.Duration `yaml:"interval"` // Pause between scrolls
	MaxSteps     int           `yaml:"maxSteps"`
	MaxDuration  time.Duration `yaml:"maxDuration"`
}

// BatchConfig defines the failure policy.
type BatchConfig struct {
	FailFast bool `yaml:"failFast" env:"URL2PDF_FAIL_FAST"`
}

// NotifyConfig defines desktop notifications.
type NotifyConfig struct {
	Enabled bool          `yaml:"enabled" env:"URL2PDF_NOTIFY"`
	Timeout time.Duration `yaml:"timeout"`                            // How long the notification stays visible
	Linger  time.Duration `yaml:"linger" env:"URL2PDF_NOTIFY_LINGER"` // How long to wait for clicks after the batch
	Sound   string        `yaml:"sound"`
}

// LogConfig defines diagnostic logging.
type LogConfig struct {
	Level  string `yaml:"level" env:"URL2PDF_LOG_LEVEL"`   // debug, info, warn, error
	Format string `yaml:"format" env:"URL2PDF_LOG_FORMAT"` // console, json
}

// MetricsConfig defines the optional Prometheus textfile output.
type MetricsConfig struct {
	File string `yaml:"file" env:"URL2PDF_METRICS_FILE"` // Empty = no metrics written
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() *Config {
	return &Config{
		Browser: BrowserConfig{
			Headless: true,
			Timeout:  30 * time.Second,
			Viewport: ViewportConfig{Width: 1920, Height: 1080, Scale: 1},
		},
		Settle: SettleConfig{
			InitialGrace: 5 * time.Second,
			FinalGrace:   2 * time.Second,
			Step:         100,
			Interval:     50 * time.Millisecond,
			MaxSteps:     5000,
			MaxDuration:  2 * time.Minute,
		},
		Notify: NotifyConfig{
			Enabled: false,
			Timeout: 10 * time.Second,
			Linger:  10 * time.Second,
			Sound:   "message-new-instant",
		},
		Log: LogConfig{Level: "warn", Format: "console"},
	}
}

// Validate checks ranges and lengths. Called automatically by LoadConfig, but
// available for callers that build or override a Config themselves.
func (c *Config) Validate() error {
	if err := validateFieldLength("output.dir", c.Output.Dir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("browser.bin", c.Browser.Bin, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("metrics.file", c.Metrics.File, MaxPathLength); err != nil {
		return err
	}

	if c.Browser.Timeout <= 0 {
		return invalid("browser.timeout", "must be positive, got %s", c.Browser.Timeout)
	}
	vp := c.Browser.Viewport
	if vp.Width <= 0 || vp.Width > MaxViewportPixels {
		return invalid("browser.viewport.width", "must be between 1 and %d, got %d", MaxViewportPixels, vp.Width)
	}
	if vp.Height <= 0 || vp.Height > MaxViewportPixels {
		return invalid("browser.viewport.height", "must be between 1 and %d, got %d", MaxViewportPixels, vp.Height)
	}
	if vp.Scale <= 0 || vp.Scale > MaxScaleFactor {
		return invalid("browser.viewport.scale", "must be in (0, %d], got %.2f", MaxScaleFactor, vp.Scale)
	}

	s := c.Settle
	if s.InitialGrace < 0 || s.FinalGrace < 0 {
		return invalid("settle", "grace periods cannot be negative")
	}
	if s.Step <= 0 {
		return invalid("settle.step", "must be positive, got %d", s.Step)
	}
	if s.Interval <= 0 {
		return invalid("settle.interval", "must be positive, got %s", s.Interval)
	}
	if s.MaxSteps <= 0 {
		return invalid("settle.maxSteps", "must be positive, got %d", s.MaxSteps)
	}
	if s.MaxDuration <= 0 {
		return invalid("settle.maxDuration", "must be positive, got %s", s.MaxDuration)
	}

	if c.Notify.Timeout < 0 {
		return invalid("notify.timeout", "cannot be negative, got %s", c.Notify.Timeout)
	}
	if c.Notify.Linger < 0 {
		return invalid("notify.linger", "cannot be negative, got %s", c.Notify.Linger)
	}

	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return invalid("log.level", "%q (must be debug, info, warn, or error)", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "console", "json":
	default:
		return invalid("log.format", "%q (must be console or json)", c.Log.Format)
	}

	return nil
}

func invalid(field, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidValue, field, fmt.Sprintf(format, args...))
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name on top of
// DefaultConfig. If nameOrPath contains a path separator, it's treated as a
// file path. Otherwise, it's searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	cfg := DefaultConfig()
	if err := yamlutil.ReadFileStrict(configPath, cfg); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths lists where a config name is looked up, in order:
// current directory, then ~/.config/go-url2pdf/, each with .yaml then .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "go-url2pdf", name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file among SearchPaths(name).
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
