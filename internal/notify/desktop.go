package notify

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/esiqveland/notify"
	"github.com/godbus/dbus/v5"
	"go.uber.org/zap"

	"github.com/alnah/go-url2pdf/internal/process"
)

// Action keys. "default" is sent by most servers when the body is clicked.
const (
	actionOpen    = "open"
	actionDefault = "default"
)

const appName = "url2pdf"

// sender is the subset of notify.Notifier used here.
type sender interface {
	SendNotification(n notify.Notification) (uint32, error)
	Close() error
}

// Compile-time interface checks
var (
	_ Notifier = (*Desktop)(nil)
	_ sender   = (notify.Notifier)(nil)
)

// Desktop sends freedesktop notifications over the session D-Bus. Each sent
// notification ID maps to its file so an activation opens the right PDF.
type Desktop struct {
	sender sender
	conn   *dbus.Conn
	opener FileOpener
	logger *zap.Logger

	mu      sync.Mutex
	pending map[uint32]string
	changed chan struct{}
}

// NewDesktop connects to the session bus. It returns ErrUnavailable when
// there is no bus (headless servers, CI, macOS and Windows without a bridge).
func NewDesktop(opener FileOpener, logger *zap.Logger) (*Desktop, error) {
	conn, err := connectSessionBus()
	if err != nil {
		return nil, err
	}

	d := newDesktop(nil, opener, logger)
	d.conn = conn

	n, err := notify.New(conn,
		notify.WithOnAction(d.handleAction),
		notify.WithOnClosed(d.handleClosed),
	)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	d.sender = n
	return d, nil
}

// connectSessionBus opens a private, authenticated session bus connection.
func connectSessionBus() (*dbus.Conn, error) {
	conn, err := dbus.SessionBusPrivate()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err := conn.Auth(nil); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err := conn.Hello(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return conn, nil
}

func newDesktop(s sender, opener FileOpener, logger *zap.Logger) *Desktop {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Desktop{
		sender:  s,
		opener:  opener,
		logger:  logger,
		pending: make(map[uint32]string),
		changed: make(chan struct{}),
	}
}

// Notify shows n. A notification with a FilePath carries an open action.
func (d *Desktop) Notify(ctx context.Context, n Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := notify.Notification{
		AppName:       appName,
		Summary:       n.Title,
		Body:          n.Message,
		Hints:         map[string]dbus.Variant{},
		ExpireTimeout: n.Timeout,
	}
	if n.Sound != "" {
		msg.Hints["sound-name"] = dbus.MakeVariant(n.Sound)
	}
	if n.FilePath != "" {
		msg.Actions = []notify.Action{
			{Key: actionDefault, Label: n.ActionLabel},
			{Key: actionOpen, Label: n.ActionLabel},
		}
	}

	id, err := d.sender.SendNotification(msg)
	if err != nil {
		return fmt.Errorf("sending notification: %w", err)
	}

	if n.FilePath != "" {
		d.mu.Lock()
		d.pending[id] = n.FilePath
		d.signalLocked()
		d.mu.Unlock()
	}
	return nil
}

// handleAction runs on the D-Bus signal goroutine.
func (d *Desktop) handleAction(sig *notify.ActionInvokedSignal) {
	if sig.ActionKey != actionOpen && sig.ActionKey != actionDefault {
		return
	}
	path, ok := d.take(sig.ID)
	if !ok {
		return
	}

	err := d.opener.Open(context.Background(), path)
	switch {
	case err == nil:
		d.logger.Debug("opened file", zap.String("path", path))
	case errors.Is(err, process.ErrUnsupportedPlatform):
		d.logger.Info("unsupported OS, open the file manually", zap.String("path", path))
	default:
		d.logger.Error("failed to open file", zap.String("path", path), zap.Error(err))
	}
}

// handleClosed forgets notifications that expired or were dismissed.
func (d *Desktop) handleClosed(sig *notify.NotificationClosedSignal) {
	d.take(sig.ID)
}

// take removes and returns the file for a notification ID.
func (d *Desktop) take(id uint32) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	path, ok := d.pending[id]
	if ok {
		delete(d.pending, id)
		d.signalLocked()
	}
	return path, ok
}

// signalLocked wakes Wait callers. d.mu must be held.
func (d *Desktop) signalLocked() {
	close(d.changed)
	d.changed = make(chan struct{})
}

// Pending returns how many notifications can still be activated.
func (d *Desktop) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

// Wait blocks until every notification was activated, dismissed or expired,
// or until ctx is done. Callers bound it with a linger timeout.
func (d *Desktop) Wait(ctx context.Context) error {
	for {
		d.mu.Lock()
		if len(d.pending) == 0 {
			d.mu.Unlock()
			return nil
		}
		ch := d.changed
		d.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ch:
		}
	}
}

// Close stops signal handling and releases the bus connection.
func (d *Desktop) Close() error {
	var err error
	if d.sender != nil {
		err = d.sender.Close()
	}
	if d.conn != nil {
		// The notifier may already have torn the connection down.
		_ = d.conn.Close()
	}
	return err
}
