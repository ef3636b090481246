// Package audit defines the security audit trail: event shapes, the sink
// interface the authenticator emits into, and a logging fallback sink.
// Audit writes are best-effort; a failing sink never fails the operation
// that produced the event.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/visitdesk/authcore/internal/logging"
)

// Event types recorded by the authentication core.
const (
	EventAuthSuccess     = "AUTH_SUCCESS"
	EventAuthFailed      = "AUTH_FAILED"
	EventAuthLocked      = "AUTH_LOCKED"
	EventLogout          = "LOGOUT"
	EventUserCreated     = "USER_CREATED"
	EventPasswordChanged = "PASSWORD_CHANGED"
	EventSystemInit      = "SYSTEM_INIT"
)

// Event is one entry of the security audit trail. Actor is a username or
// account ID; Origin is the caller-supplied origin string from login.
type Event struct {
	ID      string
	Type    string
	Actor   string
	Origin  string
	Details string
	At      time.Time
}

// Sink receives audit events. Implementations must not block indefinitely
// and must treat their own failures as non-fatal.
type Sink interface {
	Record(ctx context.Context, ev Event)
}

// NewEvent stamps an event with a fresh ID and timestamp.
func NewEvent(eventType, actor, origin, details string) Event {
	return Event{
		ID:      uuid.NewString(),
		Type:    eventType,
		Actor:   actor,
		Origin:  origin,
		Details: details,
		At:      time.Now(),
	}
}

// LogSink writes events to the structured log only. Used in tests and as a
// fallback when no persistent sink is wired.
type LogSink struct {
	logger logging.Logger
}

func NewLogSink(logger logging.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Record(ctx context.Context, ev Event) {
	s.logger.Info(ctx, "audit event",
		"event_id", ev.ID,
		"type", ev.Type,
		"actor", ev.Actor,
		"origin", ev.Origin,
		"details", ev.Details,
	)
}
