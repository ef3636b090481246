package store

import (
	"context"
	"fmt"

	"github.com/visitdesk/authcore/internal/audit"
	"github.com/visitdesk/authcore/internal/common"
	"github.com/visitdesk/authcore/internal/dbx"
	"github.com/visitdesk/authcore/internal/logging"
)

// EventLog appends audit events to the security_events table. It implements
// audit.Sink: write failures are logged and swallowed, never propagated to
// the operation that produced the event.
type EventLog struct {
	db     dbx.DBTX
	driver Driver
	logger logging.Logger
}

func NewEventLog(db dbx.DBTX, driver Driver, logger logging.Logger) *EventLog {
	return &EventLog{db: db, driver: driver, logger: logger}
}

func (l *EventLog) Record(ctx context.Context, ev audit.Event) {
	if err := l.Insert(ctx, ev); err != nil {
		l.logger.Warn(ctx, "audit write failed", "type", ev.Type, "actor", ev.Actor, "error", err)
	}
}

// Insert appends one event, returning the store error for callers that need
// it (tests, batch import).
func (l *EventLog) Insert(ctx context.Context, ev audit.Event) error {
	query := l.driver.Rebind(
		`INSERT INTO security_events (id, event_type, actor, origin, details, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`)

	_, err := l.db.ExecContext(ctx, query, ev.ID, ev.Type, ev.Actor, ev.Origin, ev.Details, ev.At)
	if err != nil {
		return fmt.Errorf("%w: insert event: %v", common.ErrStore, err)
	}
	return nil
}
