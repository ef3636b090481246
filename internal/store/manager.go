package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/visitdesk/authcore/internal/logging"
	"github.com/visitdesk/authcore/internal/store/migrations"
)

// Manager owns the database handle and hands out the repositories built on
// it. Accounts are served through the in-process read cache.
type Manager struct {
	db       *sql.DB
	driver   Driver
	accounts AccountRepository
	events   *EventLog
}

// Open connects to the database named by databaseURL, runs pending
// migrations, and builds the repositories.
func Open(ctx context.Context, databaseURL string, logger logging.Logger) (*Manager, error) {
	driver, dsn := ParseDSN(databaseURL)

	db, err := sql.Open(string(driver), dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	m := &Manager{
		db:       db,
		driver:   driver,
		accounts: NewCachedAccounts(NewTxAccounts(db, driver)),
		events:   NewEventLog(db, driver, logger),
	}

	if err := m.runMigrations(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}

func (m *Manager) runMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(m.driver.Dialect()); err != nil {
		return err
	}
	return goose.UpContext(ctx, m.db, ".")
}

func (m *Manager) Accounts() AccountRepository { return m.accounts }

func (m *Manager) Events() *EventLog { return m.events }

func (m *Manager) Conn() *sql.DB { return m.db }

func (m *Manager) Close() error { return m.db.Close() }
