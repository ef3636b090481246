package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "Test1 OK", args: []string{"cmd",
			"-d", "sqlite://visitors.db", "-k", "150000", "-m", "3",
			"-l", "10", "-t", "45", "-w", "30", "-p", "16",
		}, expectPanic: false,
			expected: &Config{
				DatabaseDSN:       "sqlite://visitors.db",
				KDFIterations:     150000,
				MaxLoginAttempts:  3,
				LockoutDuration:   10 * time.Minute,
				SessionTimeout:    45 * time.Minute,
				SweepInterval:     30 * time.Second,
				MinPasswordLength: 16,
			}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)

			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
