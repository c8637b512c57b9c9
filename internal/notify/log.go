package notify

import (
	"context"

	"go.uber.org/zap"
)

// Compile-time interface check
var _ Notifier = (*Log)(nil)

// Log is the fallback Notifier when no desktop service is reachable: it
// records each announcement and offers no activation.
type Log struct {
	logger *zap.Logger
}

// NewLog creates a Log notifier.
func NewLog(logger *zap.Logger) *Log {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Log{logger: logger}
}

func (l *Log) Notify(ctx context.Context, n Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.logger.Info(n.Title, zap.String("file", n.Message))
	return nil
}

func (l *Log) Wait(context.Context) error { return nil }

func (l *Log) Close() error { return nil }
