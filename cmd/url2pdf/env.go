package main

import (
	"io"
	"os"
	"time"

	"github.com/go-rod/rod/lib/launcher"
	"go.uber.org/zap"

	url2pdf "github.com/alnah/go-url2pdf"
	"github.com/alnah/go-url2pdf/internal/fileutil"
	"github.com/alnah/go-url2pdf/internal/notify"
	"github.com/alnah/go-url2pdf/internal/process"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, the browser, and desktop integration.
type Environment struct {
	Now           func() time.Time
	Stdout        io.Writer
	Stderr        io.Writer
	Launcher      url2pdf.Launcher
	NewNotifier   func(logger *zap.Logger) (notify.Notifier, error)
	ProbeNotifier func() (notify.ServerInfo, error)
	ExecutableDir func() (string, error)
	LookPath      func() (string, bool) // Locates Chrome when no binary is configured
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:      time.Now,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Launcher: url2pdf.NewRodLauncher(),
		NewNotifier: func(logger *zap.Logger) (notify.Notifier, error) {
			return notify.NewDesktop(process.NewOpener(), logger)
		},
		ProbeNotifier: notify.Probe,
		ExecutableDir: fileutil.ExecutableDir,
		LookPath:      launcher.LookPath,
	}
}
