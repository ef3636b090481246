// Package models holds the data shapes shared by the authentication core:
// accounts, sessions, and roles.
package models

import "time"

// Account is one principal of the visitor-management application.
// PasswordHash and Salt are opaque byte strings; the plaintext password is
// never stored. Lockout counters are mutated only by the authenticator.
type Account struct {
	ID           string
	Username     string
	PasswordHash []byte
	Salt         []byte
	Role         Role
	Active       bool

	FailedAttempts int
	LockoutUntil   *time.Time
	LastLogin      *time.Time
	CreatedAt      time.Time
}

// Clone returns a deep copy so cached records cannot be mutated by callers.
func (a *Account) Clone() *Account {
	if a == nil {
		return nil
	}
	c := *a
	c.PasswordHash = append([]byte(nil), a.PasswordHash...)
	c.Salt = append([]byte(nil), a.Salt...)
	if a.LockoutUntil != nil {
		t := *a.LockoutUntil
		c.LockoutUntil = &t
	}
	if a.LastLogin != nil {
		t := *a.LastLogin
		c.LastLogin = &t
	}
	return &c
}

// Locked reports whether the account's persisted lockout deadline is still in
// the future at the given instant.
func (a *Account) Locked(now time.Time) bool {
	return a.LockoutUntil != nil && now.Before(*a.LockoutUntil)
}
