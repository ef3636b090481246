package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/visitdesk/authcore/internal/common"
	"github.com/visitdesk/authcore/internal/models"
)

// Init creates the default admin account when no admin exists yet and prints
// its temporary password.
func (a *App) Init(ctx context.Context) error {
	temp, err := a.auth.Bootstrap(ctx)
	if err != nil {
		return fmt.Errorf("bootstrap failed: %w", err)
	}
	if temp == "" {
		fmt.Fprintln(a.out, "admin account already exists, nothing to do")
		return nil
	}
	fmt.Fprintf(a.out, "created default admin account\n")
	fmt.Fprintf(a.out, "temporary password: %s\n", temp)
	fmt.Fprintln(a.out, "change it on first login")
	return nil
}

// CreateUser provisions an account with the given username and role,
// prompting for the password twice. Without arguments it prompts for the
// username and role as well.
func (a *App) CreateUser(ctx context.Context, args []string) error {
	var username, roleName string
	switch len(args) {
	case 2:
		username, roleName = args[0], args[1]
	case 0:
		var err error
		if username, err = GetSimpleText(a.reader, "Enter username", a.out); err != nil {
			return err
		}
		roleName, err = GetSimpleText(a.reader,
			"Enter role (super_admin, administrator, receptionist, security_guard)", a.out)
		if err != nil {
			return err
		}
	default:
		return errors.New("usage: create-user [<name> <role>]")
	}

	role, err := models.ParseRole(roleName)
	if err != nil {
		return err
	}

	password, err := GetPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := GetPassword("Repeat password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if string(password) != string(confirm) {
		return errors.New("passwords do not match")
	}

	account, err := a.auth.CreateAccount(ctx, username, string(password), role)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrUsernameTaken):
			return fmt.Errorf("username %q is already taken", username)
		case errors.Is(err, common.ErrWeakPassword):
			return fmt.Errorf("password rejected: %w", err)
		}
		return err
	}

	fmt.Fprintf(a.out, "created account %s (%s)\n", account.Username, account.Role)
	return nil
}

// Passwd changes an account's password after re-verifying the current one.
func (a *App) Passwd(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: passwd <name>")
	}

	account, err := a.store.Accounts().GetByUsername(ctx, args[0])
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return fmt.Errorf("no such account %q", args[0])
		}
		return err
	}

	current, err := GetPassword("Current password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(current)

	next, err := GetPassword("New password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(next)

	if err := a.auth.ChangePassword(ctx, account.ID, string(current), string(next)); err != nil {
		switch {
		case errors.Is(err, common.ErrInvalidCredentials):
			return errors.New("current password is incorrect")
		case errors.Is(err, common.ErrWeakPassword):
			return fmt.Errorf("new password rejected: %w", err)
		}
		return err
	}

	fmt.Fprintln(a.out, "password changed")
	return nil
}

// Check verifies credentials end to end and immediately discards the session.
func (a *App) Check(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: check <name>")
	}
	username := args[0]

	password, err := GetPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	token, err := a.auth.Login(ctx, username, string(password), "authadmin")
	if err != nil {
		var locked *common.LockedError
		switch {
		case errors.As(err, &locked):
			return fmt.Errorf("account is locked, retry in %s", locked.RetryAfter.Round(time.Second))
		case errors.Is(err, common.ErrInvalidCredentials):
			return errors.New("invalid credentials")
		}
		return err
	}
	a.auth.Logout(ctx, token)

	fmt.Fprintln(a.out, "credentials OK")
	return nil
}
