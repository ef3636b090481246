package store

import (
	"fmt"
	"strings"
)

// Driver identifies the SQL driver backing the store. The visitor desk
// installs run on a local SQLite file; a shared Postgres instance is
// supported for multi-desk sites.
type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "pgx"
)

// Dialect returns the goose migration dialect for the driver.
func (d Driver) Dialect() string {
	if d == DriverPostgres {
		return "postgres"
	}
	return "sqlite3"
}

// Rebind rewrites '?' placeholders into the driver-specific form: $1, $2, ...
// for Postgres, unchanged for SQLite.
func (d Driver) Rebind(query string) string {
	if d != DriverPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// ParseDSN interprets a database URL and returns the driver plus the DSN in
// the form database/sql expects. Supported schemes: sqlite://path/to.db and
// postgres://... A bare path is treated as a SQLite file.
func ParseDSN(databaseURL string) (Driver, string) {
	switch {
	case databaseURL == "":
		return DriverSQLite, sqliteFileDSN("authcore.db")
	case strings.HasPrefix(databaseURL, "sqlite://"):
		path := strings.TrimPrefix(databaseURL, "sqlite://")
		path = strings.TrimPrefix(path, "/")
		return DriverSQLite, sqliteFileDSN(path)
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		return DriverPostgres, databaseURL
	case strings.HasPrefix(databaseURL, "file:"):
		return DriverSQLite, databaseURL
	}
	return DriverSQLite, sqliteFileDSN(databaseURL)
}

func sqliteFileDSN(path string) string {
	return fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout(5000)", path)
}
