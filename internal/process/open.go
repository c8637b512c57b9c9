package process

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
)

// ErrUnsupportedPlatform is returned when no open command is known for GOOS.
var ErrUnsupportedPlatform = errors.New("no file opener for this platform")

// OpenCommand returns the program and arguments that open path with the
// desktop's default application on goos. The path is passed as a single
// argument, never through a shell string.
func OpenCommand(goos, path string) (name string, args []string, err error) {
	switch goos {
	case "windows":
		// start is a cmd builtin; the empty string is the window title.
		return "cmd", []string{"/c", "start", "", path}, nil
	case "darwin":
		return "open", []string{path}, nil
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly":
		return "xdg-open", []string{path}, nil
	default:
		return "", nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, goos)
	}
}

// Opener starts the platform open command for a file.
type Opener struct {
	goos  string
	start func(cmd *exec.Cmd) error
}

// NewOpener returns an Opener for the running platform.
func NewOpener() *Opener {
	return &Opener{goos: runtime.GOOS, start: startDetached}
}

// Open launches the viewer for path and returns once it has started.
// The viewer is not waited for and outlives ctx.
func (o *Opener) Open(ctx context.Context, path string) error {
	name, args, err := OpenCommand(o.goos, path)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	// #nosec G204 -- command is chosen from a fixed table, path is one argument
	cmd := exec.Command(name, args...)
	if err := o.start(cmd); err != nil {
		return fmt.Errorf("starting %s: %w", name, err)
	}
	return nil
}

// startDetached starts cmd and reaps it in the background.
func startDetached(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
