package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/alnah/go-url2pdf/internal/config"
)

// ErrEnvConfig is returned when a URL2PDF_* variable cannot be parsed.
var ErrEnvConfig = errors.New("invalid environment variable")

// envPrefix marks the variables this program reads.
const envPrefix = "URL2PDF_"

// envConfigPath names the config file without a --config flag.
type envConfigPath struct {
	Path string `env:"URL2PDF_CONFIG"`
}

// knownEnvVars lists valid URL2PDF_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"URL2PDF_CONFIG":        true,
	"URL2PDF_CONTAINER":     true,
	"URL2PDF_OUTPUT_DIR":    true,
	"URL2PDF_HEADLESS":      true,
	"URL2PDF_BROWSER_BIN":   true,
	"URL2PDF_NO_SANDBOX":    true,
	"URL2PDF_TIMEOUT":       true,
	"URL2PDF_INITIAL_GRACE": true,
	"URL2PDF_FINAL_GRACE":   true,
	"URL2PDF_FAIL_FAST":     true,
	"URL2PDF_NOTIFY":        true,
	"URL2PDF_NOTIFY_LINGER": true,
	"URL2PDF_LOG_LEVEL":     true,
	"URL2PDF_LOG_FORMAT":    true,
	"URL2PDF_METRICS_FILE":  true,
}

// configPathFromEnv returns URL2PDF_CONFIG, or "" when unset.
func configPathFromEnv() (string, error) {
	var p envConfigPath
	if err := cleanenv.ReadEnv(&p); err != nil {
		return "", fmt.Errorf("%w: %v", ErrEnvConfig, err)
	}
	return p.Path, nil
}

// applyEnvConfig overlays URL2PDF_* variables onto cfg. Only variables that
// are set change cfg, so the order is: defaults < config file < env vars
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(cfg *config.Config) error {
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return fmt.Errorf("%w: %v", ErrEnvConfig, err)
	}
	return nil
}

// warnUnknownEnvVars logs warnings for unrecognized URL2PDF_* variables.
// Helps catch typos like URL2PDF_OUTPUTDIR instead of URL2PDF_OUTPUT_DIR.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}
