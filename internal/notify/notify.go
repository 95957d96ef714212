// Package notify delivers operator-facing toast notifications through
// the realtime hub.
package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/gramshield/dashboard/internal/realtime"
)

// Level is the toast style rendered by the dashboard.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Toast is the payload of a toast event.
type Toast struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Notifier pushes toasts to connected clients. A nil hub turns the
// notifier into a log-only sink, which the tests rely on.
type Notifier struct {
	hub *realtime.Hub
	log *zap.Logger
}

// New creates a notifier.
func New(hub *realtime.Hub, log *zap.Logger) *Notifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &Notifier{hub: hub, log: log}
}

// Success pushes a success toast.
func (n *Notifier) Success(ctx context.Context, msg string) {
	n.push(ctx, LevelSuccess, msg)
}

// Error pushes an error toast.
func (n *Notifier) Error(ctx context.Context, msg string) {
	n.push(ctx, LevelError, msg)
}

// Info pushes an informational toast.
func (n *Notifier) Info(ctx context.Context, msg string) {
	n.push(ctx, LevelInfo, msg)
}

func (n *Notifier) push(ctx context.Context, level Level, msg string) {
	n.log.Debug("toast", zap.String("level", string(level)), zap.String("message", msg))
	if n.hub == nil {
		return
	}
	ev := realtime.Event{
		Kind:    realtime.EventToast,
		Payload: Toast{Level: level, Message: msg},
	}
	if err := n.hub.Publish(ctx, ev); err != nil {
		n.log.Warn("failed to publish toast", zap.Error(err))
	}
}
