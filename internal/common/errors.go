// Package common defines shared constants and sentinel errors used across
// the authcore packages. Callers should use errors.Is to match these values.
package common

import (
	"errors"
	"fmt"
	"time"
)

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Authentication errors. Unknown username, wrong password, and inactive
	// accounts all surface as ErrInvalidCredentials so callers cannot
	// enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountLocked      = errors.New("account locked")
	ErrSessionInvalid     = errors.New("session invalid")

	// Infrastructure errors. Distinguishable in logs, never shown to end
	// users beyond a generic failure.
	ErrCrypto = errors.New("crypto engine failure")
	ErrStore  = errors.New("store failure")

	// Account management errors.
	ErrWeakPassword    = errors.New("password does not meet strength requirements")
	ErrUsernameTaken   = errors.New("username already taken")
	ErrInvalidUsername = errors.New("invalid username")
)

// LockedError reports that an account is temporarily locked. RetryAfter is
// informational, for UI display only.
type LockedError struct {
	RetryAfter time.Duration
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("account locked, retry in %d seconds", int(e.RetryAfter.Seconds()))
}

// Unwrap lets errors.Is(err, ErrAccountLocked) match a *LockedError.
func (e *LockedError) Unwrap() error { return ErrAccountLocked }
