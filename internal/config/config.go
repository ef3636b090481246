// Package config handles configuration for the authentication core,
// including defaults, JSON overlay, and command-line flags.
package config

import (
	"time"

	"github.com/visitdesk/authcore/internal/auth"
	"github.com/visitdesk/authcore/internal/cryptox"
)

// Config holds runtime settings for the authentication core.
//
// Fields:
//   - DatabaseDSN: database URL. "sqlite://path" or a bare file path selects
//     the embedded SQLite store; "postgres://..." selects PostgreSQL (pgx).
//   - KDFIterations: PBKDF2 iteration count for password hashing.
//   - MaxLoginAttempts: consecutive failures before an account locks.
//   - LockoutDuration: how long a locked account stays locked.
//   - SessionTimeout: inactivity window after which a session expires.
//   - SweepInterval: how often expired sessions are reaped.
//   - MinPasswordLength: strength policy minimum length.
type Config struct {
	DatabaseDSN       string
	KDFIterations     int
	MaxLoginAttempts  int
	LockoutDuration   time.Duration
	SessionTimeout    time.Duration
	SweepInterval     time.Duration
	MinPasswordLength int
}

// LoadDefaults populates Config with the stock development defaults.
func (c *Config) LoadDefaults() {
	c.DatabaseDSN = "sqlite://authcore.db"
	c.KDFIterations = cryptox.DefaultIterations
	c.MaxLoginAttempts = auth.DefaultMaxLoginAttempts
	c.LockoutDuration = auth.DefaultLockoutDuration
	c.SessionTimeout = auth.DefaultSessionTimeout
	c.SweepInterval = auth.DefaultSweepInterval
	c.MinPasswordLength = auth.DefaultMinPasswordLength
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

// AuthOptions converts the tuning fields into auth.Options.
func (c *Config) AuthOptions() auth.Options {
	return auth.Options{
		KDFIterations:     c.KDFIterations,
		MaxLoginAttempts:  c.MaxLoginAttempts,
		LockoutDuration:   c.LockoutDuration,
		SessionTimeout:    c.SessionTimeout,
		SweepInterval:     c.SweepInterval,
		MinPasswordLength: c.MinPasswordLength,
	}
}
