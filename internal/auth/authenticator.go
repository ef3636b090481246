// Package auth implements the authentication and session-security core:
// credential verification, account lockout, session lifecycle, and
// role-based authorization. The Authenticator is the single entry point;
// GUI and CLI front ends consume it and nothing else.
package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/visitdesk/authcore/internal/audit"
	"github.com/visitdesk/authcore/internal/common"
	"github.com/visitdesk/authcore/internal/cryptox"
	"github.com/visitdesk/authcore/internal/logging"
	"github.com/visitdesk/authcore/internal/models"
	"github.com/visitdesk/authcore/internal/store"
)

// Contract defaults, used when the injected Options leave a field zero.
const (
	DefaultMaxLoginAttempts  = 5
	DefaultLockoutDuration   = 15 * time.Minute
	DefaultSessionTimeout    = 30 * time.Minute
	DefaultSweepInterval     = time.Minute
	DefaultMinPasswordLength = 12
	DefaultKDFIterations     = cryptox.DefaultIterations
)

const maxUsernameLength = 50

// Options are the injectable tuning knobs. Zero values fall back to the
// defaults above.
type Options struct {
	KDFIterations     int
	MaxLoginAttempts  int
	LockoutDuration   time.Duration
	SessionTimeout    time.Duration
	SweepInterval     time.Duration
	MinPasswordLength int
}

func (o Options) withDefaults() Options {
	if o.KDFIterations <= 0 {
		o.KDFIterations = DefaultKDFIterations
	}
	if o.MaxLoginAttempts <= 0 {
		o.MaxLoginAttempts = DefaultMaxLoginAttempts
	}
	if o.LockoutDuration <= 0 {
		o.LockoutDuration = DefaultLockoutDuration
	}
	if o.SessionTimeout <= 0 {
		o.SessionTimeout = DefaultSessionTimeout
	}
	if o.SweepInterval <= 0 {
		o.SweepInterval = DefaultSweepInterval
	}
	if o.MinPasswordLength <= 0 {
		o.MinPasswordLength = DefaultMinPasswordLength
	}
	return o
}

// Authenticator orchestrates credential verification, lockout enforcement,
// session management, and audit emission. Construct one instance at process
// start and inject it into every consumer.
type Authenticator struct {
	accounts store.AccountRepository
	sink     audit.Sink
	logger   logging.Logger
	opts     Options

	sessions *SessionRegistry
	lockouts *LockoutTracker

	// userLocks serializes all lockout/account mutation per username so two
	// concurrent failed attempts cannot lose a counter update. Entries are
	// reference-counted and removed once the last holder releases, keeping
	// the map from growing with every username ever attempted.
	mu        sync.Mutex
	userLocks map[string]*userLock

	now func() time.Time
}

func New(accounts store.AccountRepository, sink audit.Sink, logger logging.Logger, opts Options) *Authenticator {
	opts = opts.withDefaults()
	return &Authenticator{
		accounts:  accounts,
		sink:      sink,
		logger:    logger,
		opts:      opts,
		sessions:  NewSessionRegistry(opts.SessionTimeout, opts.SweepInterval, logger),
		lockouts:  NewLockoutTracker(opts.MaxLoginAttempts, opts.LockoutDuration),
		userLocks: make(map[string]*userLock),
		now:       time.Now,
	}
}

// Run owns the background session sweeper. Call it once from the process
// entry point; it blocks until ctx is cancelled.
func (a *Authenticator) Run(ctx context.Context) {
	a.sessions.Run(ctx)
}

// Login verifies the credentials and returns an opaque session token.
// Unknown usernames, wrong passwords, and inactive accounts are deliberately
// indistinguishable to the caller; the audit trail records the precise cause.
func (a *Authenticator) Login(ctx context.Context, username, password, origin string) (string, error) {
	unlock := a.lockUser(username)
	defer unlock()

	if a.lockouts.IsLocked(username) {
		a.sink.Record(ctx, audit.NewEvent(audit.EventAuthLocked, username, origin, "login attempt while locked"))
		return "", &common.LockedError{RetryAfter: a.lockouts.Remaining(username)}
	}

	account, err := a.accounts.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			a.equalizeTiming(password)
			a.sink.Record(ctx, audit.NewEvent(audit.EventAuthFailed, username, origin, "unknown username"))
			return "", common.ErrInvalidCredentials
		}
		a.logger.Error(ctx, "account lookup failed", "username", username, "error", err)
		return "", err
	}

	// A lock written before a restart outlives the in-memory tracker.
	if account.Locked(a.now()) {
		a.lockouts.Seed(username, account.FailedAttempts, *account.LockoutUntil)
		a.sink.Record(ctx, audit.NewEvent(audit.EventAuthLocked, username, origin, "login attempt while locked"))
		return "", &common.LockedError{RetryAfter: account.LockoutUntil.Sub(a.now())}
	}

	if !account.Active {
		a.equalizeTiming(password)
		a.sink.Record(ctx, audit.NewEvent(audit.EventAuthFailed, username, origin, "inactive account"))
		return "", common.ErrInvalidCredentials
	}

	derived := cryptox.DeriveKey([]byte(password), account.Salt, a.opts.KDFIterations, cryptox.KeyLength)
	defer common.WipeByteArray(derived)

	if !cryptox.HashEquals(derived, account.PasswordHash) {
		failures, until := a.lockouts.RecordFailure(username)
		account.FailedAttempts = failures
		if !until.IsZero() {
			account.LockoutUntil = &until
		}
		a.persistBestEffort(ctx, account)
		a.sink.Record(ctx, audit.NewEvent(audit.EventAuthFailed, username, origin, "invalid password"))
		return "", common.ErrInvalidCredentials
	}

	a.lockouts.RecordSuccess(username)
	now := a.now()
	account.FailedAttempts = 0
	account.LockoutUntil = nil
	account.LastLogin = &now

	// The in-memory decision stands even when the write fails; lockout state
	// is retried on the next mutation.
	a.persistBestEffort(ctx, account)

	token, err := a.sessions.Create(account.ID, account.Role, origin)
	if err != nil {
		a.logger.Error(ctx, "session token generation failed", "username", username, "error", err)
		return "", err
	}

	a.sink.Record(ctx, audit.NewEvent(audit.EventAuthSuccess, username, origin, "login"))
	return token, nil
}

// Logout destroys the session. It always succeeds from the caller's
// perspective, whether or not the token was live.
func (a *Authenticator) Logout(ctx context.Context, token string) {
	if sess, ok := a.sessions.Destroy(token); ok {
		a.sink.Record(ctx, audit.NewEvent(audit.EventLogout, sess.AccountID, sess.Origin, "logout"))
	}
}

// ValidateSession returns the session for a live token, advancing its
// activity timestamp. Expired and unknown tokens both yield
// common.ErrSessionInvalid.
func (a *Authenticator) ValidateSession(ctx context.Context, token string) (*models.Session, error) {
	sess, ok := a.sessions.Validate(token)
	if !ok {
		return nil, common.ErrSessionInvalid
	}
	return sess, nil
}

// Authorize reports whether the session's role may perform action on
// resource. Invalid sessions and unknown resource/action pairs deny.
// The role was captured at login; role changes apply from the next login.
func (a *Authenticator) Authorize(ctx context.Context, token, resource, action string) bool {
	sess, ok := a.sessions.Validate(token)
	if !ok {
		return false
	}
	return Allowed(sess.Role, resource, action)
}

// IsLocked reports whether the username is currently locked out.
func (a *Authenticator) IsLocked(username string) bool {
	return a.lockouts.IsLocked(username)
}

// RemainingLockout returns the time left on a lock, for UI display.
func (a *Authenticator) RemainingLockout(username string) time.Duration {
	return a.lockouts.Remaining(username)
}

// ChangePassword re-verifies the old password, checks the new one against the
// strength policy, and persists a fresh salt and hash. A mismatched old
// password counts toward the lockout like any failed login. A store failure
// here is fatal to the operation.
func (a *Authenticator) ChangePassword(ctx context.Context, accountID, oldPassword, newPassword string) error {
	account, err := a.accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrInvalidCredentials
		}
		return err
	}

	unlock := a.lockUser(account.Username)
	defer unlock()

	// The first read only resolved the username for the lock. Re-read under
	// it so the snapshot we save cannot overwrite a mutation that committed
	// in between.
	account, err = a.accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrInvalidCredentials
		}
		return err
	}

	derived := cryptox.DeriveKey([]byte(oldPassword), account.Salt, a.opts.KDFIterations, cryptox.KeyLength)
	defer common.WipeByteArray(derived)
	if !cryptox.HashEquals(derived, account.PasswordHash) {
		failures, until := a.lockouts.RecordFailure(account.Username)
		account.FailedAttempts = failures
		if !until.IsZero() {
			account.LockoutUntil = &until
		}
		a.persistBestEffort(ctx, account)
		a.sink.Record(ctx, audit.NewEvent(audit.EventAuthFailed, account.Username, "", "password change with wrong password"))
		return common.ErrInvalidCredentials
	}

	if err := ValidatePasswordStrength(newPassword, a.opts.MinPasswordLength); err != nil {
		return err
	}

	salt, err := cryptox.GenerateSalt()
	if err != nil {
		return err
	}
	account.Salt = salt
	account.PasswordHash = cryptox.DeriveKey([]byte(newPassword), salt, a.opts.KDFIterations, cryptox.KeyLength)

	if err := a.accounts.Save(ctx, account); err != nil {
		a.logger.Error(ctx, "password change not persisted", "username", account.Username, "error", err)
		return err
	}

	a.sink.Record(ctx, audit.NewEvent(audit.EventPasswordChanged, account.Username, "", "password changed"))
	return nil
}

// CreateAccount provisions a new account. Administrative operation; the
// caller is responsible for authorizing it.
func (a *Authenticator) CreateAccount(ctx context.Context, username, password string, role models.Role) (*models.Account, error) {
	if len(username) == 0 || len(username) > maxUsernameLength {
		return nil, common.ErrInvalidUsername
	}
	if !role.Valid() {
		return nil, fmt.Errorf("invalid role %d", int(role))
	}
	if err := ValidatePasswordStrength(password, a.opts.MinPasswordLength); err != nil {
		return nil, err
	}

	unlock := a.lockUser(username)
	defer unlock()

	switch _, err := a.accounts.GetByUsername(ctx, username); {
	case err == nil:
		return nil, common.ErrUsernameTaken
	case !errors.Is(err, common.ErrNotFound):
		return nil, err
	}

	salt, err := cryptox.GenerateSalt()
	if err != nil {
		return nil, err
	}

	account := &models.Account{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: cryptox.DeriveKey([]byte(password), salt, a.opts.KDFIterations, cryptox.KeyLength),
		Salt:         salt,
		Role:         role,
		Active:       true,
		CreatedAt:    a.now(),
	}

	if err := a.accounts.Save(ctx, account); err != nil {
		return nil, err
	}

	a.sink.Record(ctx, audit.NewEvent(audit.EventUserCreated, username, "",
		fmt.Sprintf("account created with role %s", role)))
	return account, nil
}

// Bootstrap creates the default admin account when no admin exists yet and
// returns its temporary password. The password is meant to be changed on
// first login.
func (a *Authenticator) Bootstrap(ctx context.Context) (string, error) {
	switch _, err := a.accounts.GetByUsername(ctx, "admin"); {
	case err == nil:
		return "", nil
	case !errors.Is(err, common.ErrNotFound):
		return "", err
	}

	temp, err := generateTempPassword()
	if err != nil {
		return "", err
	}
	if _, err := a.CreateAccount(ctx, "admin", temp, models.RoleSuperAdmin); err != nil {
		return "", err
	}

	a.logger.Warn(ctx, "default admin account created; change this password immediately")
	a.sink.Record(ctx, audit.NewEvent(audit.EventSystemInit, "admin", "", "default admin bootstrapped"))
	return temp, nil
}

// equalizeTiming burns one KDF derivation so failures that skip the real
// comparison take comparable time, hindering username enumeration by timing.
func (a *Authenticator) equalizeTiming(password string) {
	derived := cryptox.DeriveKey([]byte(password), dummySalt, a.opts.KDFIterations, cryptox.KeyLength)
	common.WipeByteArray(derived)
}

var dummySalt = []byte("authcore-dummy-s")

func (a *Authenticator) persistBestEffort(ctx context.Context, account *models.Account) {
	if err := a.accounts.Save(ctx, account); err != nil {
		a.logger.Warn(ctx, "account state not persisted", "username", account.Username, "error", err)
	}
}

type userLock struct {
	mu   sync.Mutex
	refs int
}

func (a *Authenticator) lockUser(username string) func() {
	a.mu.Lock()
	l := a.userLocks[username]
	if l == nil {
		l = &userLock{}
		a.userLocks[username] = l
	}
	l.refs++
	a.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		a.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(a.userLocks, username)
		}
		a.mu.Unlock()
	}
}
