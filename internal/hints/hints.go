// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-url2pdf/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect returns hints for browser launch and connection errors.
// Detects CI/Docker environment and suggests relevant environment variables.
func ForBrowserConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}

	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN (or --browser-bin) to use an installed Chrome")
	}

	return formatHints(hints)
}

// ForTimeout returns a hint about raising the navigation timeout.
func ForTimeout() string {
	return format("slow sites may need a longer --timeout")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-url2pdf/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-url2pdf") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDir returns hints for an output directory that is missing or not
// writable. The directory is never created automatically.
func ForOutputDir(dir string) string {
	if dir == "" {
		return ""
	}
	if !fileutil.DirExists(dir) {
		return formatHints([]string{"create it first: mkdir -p " + dir, "or choose another with --output-dir"})
	}
	return format("check write permission on " + dir + " or choose another with --output-dir")
}

// ForNotifications returns hints when the desktop notification service is unavailable.
func ForNotifications() string {
	if os.Getenv("DBUS_SESSION_BUS_ADDRESS") == "" {
		return format("no D-Bus session found; run inside a desktop session or pass --notify=false")
	}
	return format("no notification daemon answered; pass --notify=false to silence this")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
