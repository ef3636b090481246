package config

import (
	"flag"
	"os"
	"time"

	"github.com/visitdesk/authcore/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   database DSN ("sqlite://file.db" or "postgres://...")
//	-k int      PBKDF2 iteration count
//	-m int      max consecutive failed logins before lockout
//	-l int      lockout duration, minutes
//	-t int      session inactivity timeout, minutes
//	-w int      expired session sweep interval, seconds
//	-p int      minimum password length
//
// Notes:
//   - The function first filters os.Args to only the flags it recognizes
//     using flagx.FilterArgs, avoiding collisions with other components.
//   - Duration flags are accepted as integers and converted to
//     time.Duration values.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-k", "-m", "-l", "-t", "-w", "-p"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.IntVar(&config.KDFIterations, "k", config.KDFIterations, "PBKDF2 iterations")
	fs.IntVar(&config.MaxLoginAttempts, "m", config.MaxLoginAttempts, "max failed logins before lockout")

	lockoutDuration := fs.Int("l", int(config.LockoutDuration.Minutes()), "lockout duration (in minutes)")
	sessionTimeout := fs.Int("t", int(config.SessionTimeout.Minutes()), "session timeout (in minutes)")
	sweepInterval := fs.Int("w", int(config.SweepInterval.Seconds()), "session sweep interval (in seconds)")

	fs.IntVar(&config.MinPasswordLength, "p", config.MinPasswordLength, "minimum password length")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.LockoutDuration = time.Duration(*lockoutDuration) * time.Minute
	config.SessionTimeout = time.Duration(*sessionTimeout) * time.Minute
	config.SweepInterval = time.Duration(*sweepInterval) * time.Second
}
