// Package notify announces finished PDFs on the desktop and opens a file when
// the user activates its notification. Delivery goes through the freedesktop
// D-Bus service; where no session bus exists (macOS, Windows) callers fall
// back to Log.
package notify

import (
	"context"
	"errors"
	"time"
)

// Defaults for capture notifications.
const (
	DefaultTitle       = "PDF Generation Complete"
	DefaultActionLabel = "Open PDF"
	DefaultSound       = "message-new-instant"
	DefaultTimeout     = 10 * time.Second
)

// ErrUnavailable is returned when no notification service can be reached.
var ErrUnavailable = errors.New("desktop notifications unavailable")

// Notification is one announcement. FilePath is the file opened on activation;
// it travels with the notification instead of living in shared state.
type Notification struct {
	Title       string
	Message     string
	ActionLabel string
	Sound       string
	Timeout     time.Duration
	FilePath    string
}

// ForFile builds the standard notification for a written PDF.
func ForFile(path string, timeout time.Duration) Notification {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return Notification{
		Title:       DefaultTitle,
		Message:     path,
		ActionLabel: DefaultActionLabel,
		Sound:       DefaultSound,
		Timeout:     timeout,
		FilePath:    path,
	}
}

// Notifier delivers notifications.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
	// Wait blocks until no notification awaits activation or ctx is done.
	Wait(ctx context.Context) error
	Close() error
}

// FileOpener opens a file with the desktop's default application.
type FileOpener interface {
	Open(ctx context.Context, path string) error
}
