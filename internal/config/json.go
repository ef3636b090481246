package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/visitdesk/authcore/internal/flagx"
	"github.com/visitdesk/authcore/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It uses timex.Duration for interval fields, which allows
// parsing both string values such as "30m" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON
// configuration files. After unmarshalling, its fields are copied into the
// runtime Config struct which uses time.Duration.
type JsonConfig struct {
	DatabaseDSN       string         `json:"database_dsn"`
	KDFIterations     int            `json:"kdf_iterations"`
	MaxLoginAttempts  int            `json:"max_login_attempts"`
	LockoutDuration   timex.Duration `json:"lockout_duration"`
	SessionTimeout    timex.Duration `json:"session_timeout"`
	SweepInterval     timex.Duration `json:"sweep_interval"`
	MinPasswordLength int            `json:"min_password_length"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The file path comes from the -c or -config command-line flags; when
// neither is set, no JSON file is loaded. If the file cannot be read or
// contains invalid JSON, the function panics.
//
// Fields left at their JSON zero value keep the values already present in
// the target Config, so a partial file overrides only what it names.
func parseJson(config *Config) {

	// try flags
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.KDFIterations > 0 {
		config.KDFIterations = c.KDFIterations
	}
	if c.MaxLoginAttempts > 0 {
		config.MaxLoginAttempts = c.MaxLoginAttempts
	}
	if c.LockoutDuration.Duration > 0 {
		config.LockoutDuration = time.Duration(c.LockoutDuration.Duration)
	}
	if c.SessionTimeout.Duration > 0 {
		config.SessionTimeout = time.Duration(c.SessionTimeout.Duration)
	}
	if c.SweepInterval.Duration > 0 {
		config.SweepInterval = time.Duration(c.SweepInterval.Duration)
	}
	if c.MinPasswordLength > 0 {
		config.MinPasswordLength = c.MinPasswordLength
	}
}
