// Package audit is a fire-and-forget audit trail collaborator. Record
// never returns an error and never blocks the business operation that
// produced the event.
package audit

import (
	"context"
	"log/slog"
)

type Event struct {
	Action    string
	ActorID   string
	SubjectID string
	Detail    map[string]any
}

type Logger interface {
	Record(ctx context.Context, ev Event)
}

type slogLogger struct {
	log *slog.Logger
}

func NewSlogLogger(log *slog.Logger) Logger {
	return &slogLogger{log: log}
}

func (l *slogLogger) Record(ctx context.Context, ev Event) {
	attrs := []any{
		slog.String("action", ev.Action),
		slog.String("actor_id", ev.ActorID),
		slog.String("subject_id", ev.SubjectID),
	}
	for k, v := range ev.Detail {
		attrs = append(attrs, slog.Any(k, v))
	}
	l.log.InfoContext(ctx, "audit", attrs...)
}

// Discard drops every event. Used in tests.
type Discard struct{}

func (Discard) Record(context.Context, Event) {}
