// Package logging provides the minimal Logger interface used by rcforest, an
// slog adapter, and a subscriber that writes forest events to a Logger.
package logging

import (
	"context"
	"io"
	"log/slog"

	eventbus "github.com/hanpama/rcforest/internal/eventbus"
	events "github.com/hanpama/rcforest/internal/events"
)

// Logger is the structured logging surface rcforest depends on. Arguments
// are slog-style alternating keys and values.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// SlogAdapter wraps *slog.Logger to implement Logger.
type SlogAdapter struct {
	*slog.Logger
}

func (s *SlogAdapter) Debug(msg string, args ...any) { s.Logger.Debug(msg, args...) }
func (s *SlogAdapter) Info(msg string, args ...any)  { s.Logger.Info(msg, args...) }
func (s *SlogAdapter) Warn(msg string, args ...any)  { s.Logger.Warn(msg, args...) }
func (s *SlogAdapter) Error(msg string, args ...any) { s.Logger.Error(msg, args...) }

// NewSlogAdapter creates a Logger from l.
func NewSlogAdapter(l *slog.Logger) Logger { return &SlogAdapter{Logger: l} }

// NewJSONLogger writes JSON records at level and above to w.
func NewJSONLogger(w io.Writer, level slog.Level) Logger {
	return NewSlogAdapter(slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})))
}

// NoOpLogger discards everything.
type NoOpLogger struct{}

func (NoOpLogger) Debug(string, ...any) {}
func (NoOpLogger) Info(string, ...any)  {}
func (NoOpLogger) Warn(string, ...any)  {}
func (NoOpLogger) Error(string, ...any) {}

// Subscribe logs finished forest updates and traversals to l through the
// process-wide event bus: successes at debug level, failures at error level.
func Subscribe(l Logger) (unsubscribe func()) {
	if l == nil {
		l = NoOpLogger{}
	}
	u1 := eventbus.Subscribe(func(_ context.Context, e events.UpdateFinish) {
		if e.Err != nil {
			l.Error("forest update failed", "trees", e.Trees, "total_updates", e.TotalUpdates, "error", e.Err)
			return
		}
		l.Debug("forest update", "trees", e.Trees, "total_updates", e.TotalUpdates, "duration", e.Duration)
	})
	u2 := eventbus.Subscribe(func(_ context.Context, e events.TraversalFinish) {
		if e.Err != nil {
			l.Error("forest traversal failed", "variant", e.Variant, "trees", e.Trees, "visited", e.Visited, "error", e.Err)
			return
		}
		l.Debug("forest traversal", "variant", e.Variant, "trees", e.Trees, "visited", e.Visited, "duration", e.Duration)
	})
	return func() {
		u1()
		u2()
	}
}
