// Package cli implements the authadmin command-line tool: account
// provisioning, password maintenance, and credential checks against the
// local account store.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/visitdesk/authcore/internal/auth"
	"github.com/visitdesk/authcore/internal/config"
	"github.com/visitdesk/authcore/internal/logging"
	"github.com/visitdesk/authcore/internal/store"
)

type App struct {
	config *config.Config
	logger logging.Logger
	store  *store.Manager
	auth   *auth.Authenticator
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()

	sl := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	logger := logging.NewSlogLogger(sl)

	m, err := store.Open(ctx, c.DatabaseDSN, logger)
	if err != nil {
		return nil, fmt.Errorf("store init error: %w", err)
	}

	a := auth.New(m.Accounts(), m.Events(), logger, c.AuthOptions())

	return &App{
		config: c,
		logger: logger,
		store:  m,
		auth:   a,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}, nil
}

// Run dispatches the subcommand named by the first positional argument.
func (a *App) Run(ctx context.Context) error {
	defer a.store.Close()

	args := positionalArgs(os.Args[1:])
	if len(args) == 0 {
		a.usage()
		return nil
	}

	switch args[0] {
	case "init":
		return a.Init(ctx)
	case "create-user":
		return a.CreateUser(ctx, args[1:])
	case "passwd":
		return a.Passwd(ctx, args[1:])
	case "check":
		return a.Check(ctx, args[1:])
	default:
		a.usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func (a *App) usage() {
	fmt.Fprintln(a.out, `Usage: authadmin [flags] <command>

Commands:
  init                         create the default admin account if none exists
  create-user [<name> <role>]  create an account, prompting for anything
                               omitted (roles: super_admin, administrator,
                               receptionist, security_guard)
  passwd <name>                change an account's password
  check <name>                 verify credentials without keeping a session`)
}

// positionalArgs strips flags and their values, leaving subcommand words.
// The complement of flagx.FilterArgs.
func positionalArgs(args []string) []string {
	var out []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if strings.HasPrefix(arg, "-") {
			if !strings.Contains(arg, "=") && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				i++
			}
			continue
		}
		out = append(out, arg)
	}
	return out
}
