package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alnah/go-url2pdf/internal/config"
	"github.com/alnah/go-url2pdf/internal/fileutil"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status        string     `json:"status"` // "ready", "warnings", "errors"
	Chrome        chromeInfo `json:"chrome"`
	Env           envInfo    `json:"environment"`
	Output        outputInfo `json:"output"`
	Notifications notifyInfo `json:"notifications"`
	Warnings      []string   `json:"warnings,omitempty"`
	Errors        []string   `json:"errors,omitempty"`

	cfg config.Config // settings the checks run against
}

// chromeInfo holds Chrome/Chromium detection results.
type chromeInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
}

// outputInfo holds the output directory check.
type outputInfo struct {
	Dir      string `json:"dir"`
	Exists   bool   `json:"exists"`
	Writable bool   `json:"writable"`
}

// notifyInfo holds the desktop notification check.
type notifyInfo struct {
	Enabled   bool   `json:"enabled"`
	Available bool   `json:"available"`
	Server    string `json:"server,omitempty"`
	Actions   bool   `json:"actions"`
}

func newDoctorCmd(env *Environment, common *commonFlags) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check that Chrome, the output directory and notifications are ready",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			cfg, err := loadLayeredConfig(common, env)
			if err != nil {
				return err
			}

			result := runDoctor(cfg, env)
			if jsonOutput {
				enc := json.NewEncoder(env.Stdout)
				enc.SetIndent("", "  ")
				_ = enc.Encode(result)
			} else {
				printDoctorResult(env.Stdout, result)
			}

			if result.Status == "errors" {
				return errDoctorFailed
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print results as JSON")
	return cmd
}

// errDoctorFailed reports that at least one check failed; the details were
// already printed.
var errDoctorFailed = fmt.Errorf("%w: doctor found errors", ErrPartialFailure)

// runDoctor performs all diagnostic checks.
func runDoctor(cfg *config.Config, env *Environment) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  os.Getenv("ROD_NO_SANDBOX"),
			BrowserBin: os.Getenv("ROD_BROWSER_BIN"),
		},
		cfg: *cfg,
	}

	checkChrome(result, env)
	checkEnvironment(result)
	checkOutputDir(result, env)
	checkNotifications(result, env)

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkChrome detects the browser binary the capture would use.
func checkChrome(result *doctorResult, env *Environment) {
	chromePath := result.cfg.Browser.Bin
	if chromePath == "" {
		chromePath = result.Env.BrowserBin
	}

	if chromePath == "" {
		var found bool
		chromePath, found = env.LookPath()
		if !found {
			// rod downloads Chromium on first launch, so this is not fatal.
			result.Warnings = append(result.Warnings,
				"Chrome/Chromium not found; a Chromium build will be downloaded on first run. Set ROD_BROWSER_BIN to use an installed browser")
			return
		}
	}

	if _, err := os.Stat(chromePath); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Chrome not found at %s", chromePath))
		return
	}

	result.Chrome.Found = true
	result.Chrome.Path = chromePath

	out, err := exec.Command(chromePath, "--version").Output() // #nosec G204 -- path comes from the user's own config
	if err == nil {
		result.Chrome.Version = strings.TrimSpace(string(out))
	} else {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get Chrome version: %v", err))
	}

	result.Chrome.Sandbox = result.Env.NoSandbox != "1" && !result.cfg.Browser.NoSandbox
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult) {
	result.Env.Container, result.Env.ContainerHint = isContainer()

	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	sandboxOff := result.Env.NoSandbox == "1" || result.cfg.Browser.NoSandbox
	if (result.Env.Container || result.Env.CI) && !sandboxOff {
		result.Warnings = append(result.Warnings,
			"Container/CI detected but the sandbox is on. Set ROD_NO_SANDBOX=1 or pass --no-sandbox")
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer() (bool, string) {
	if os.Getenv("URL2PDF_CONTAINER") == "1" {
		return true, "URL2PDF_CONTAINER=1"
	}
	if fileutil.FileExists("/.dockerenv") {
		return true, "/.dockerenv"
	}
	if v := os.Getenv("container"); v != "" {
		return true, "container=" + v
	}
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkOutputDir verifies the directory PDFs would be written to.
func checkOutputDir(result *doctorResult, env *Environment) {
	dir := result.cfg.Output.Dir
	if dir == "" {
		exeDir, err := env.ExecutableDir()
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Cannot locate executable: %v", err))
			return
		}
		dir = filepath.Join(exeDir, defaultOutputDirName)
	}
	result.Output.Dir = dir
	result.Output.Exists = fileutil.DirExists(dir)

	if err := fileutil.CheckWritableDir(dir); err != nil {
		if !result.Output.Exists {
			result.Errors = append(result.Errors, fmt.Sprintf("Output directory %s does not exist. Create it with: mkdir -p %s", dir, dir))
		} else {
			result.Errors = append(result.Errors, fmt.Sprintf("Output directory %s is not writable", dir))
		}
		return
	}
	result.Output.Writable = true
}

// checkNotifications asks the session bus for a notification daemon.
func checkNotifications(result *doctorResult, env *Environment) {
	result.Notifications.Enabled = result.cfg.Notify.Enabled

	info, err := env.ProbeNotifier()
	if err != nil {
		if result.Notifications.Enabled {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Notifications enabled but unavailable (%v); PDFs will only be logged", err))
		}
		return
	}

	result.Notifications.Available = true
	result.Notifications.Server = strings.TrimSpace(info.Name + " " + info.Version)
	result.Notifications.Actions = info.Actions
	if result.Notifications.Enabled && !info.Actions {
		result.Warnings = append(result.Warnings,
			"Notification server does not support actions; clicking will not open the PDF")
	}
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "url2pdf doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Chrome/Chromium")
	if r.Chrome.Found {
		fmt.Fprintf(w, "  [OK] Found at %s\n", r.Chrome.Path)
		if r.Chrome.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.Chrome.Version)
		}
		if r.Chrome.Sandbox {
			fmt.Fprintln(w, "  [OK] Sandbox: enabled")
		} else {
			fmt.Fprintln(w, "  [OK] Sandbox: disabled")
		}
	} else {
		fmt.Fprintln(w, "  [WARN] Not found")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Output")
	if r.Output.Writable {
		fmt.Fprintf(w, "  [OK] %s: writable\n", r.Output.Dir)
	} else {
		fmt.Fprintf(w, "  [ERROR] %s: not usable\n", r.Output.Dir)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Notifications")
	switch {
	case r.Notifications.Available:
		fmt.Fprintf(w, "  [OK] Server: %s\n", r.Notifications.Server)
	case r.Notifications.Enabled:
		fmt.Fprintln(w, "  [WARN] Unavailable")
	default:
		fmt.Fprintln(w, "  [OK] Disabled")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to capture")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
