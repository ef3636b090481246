package auth

import (
	"context"
	"sync"
	"time"

	"github.com/visitdesk/authcore/internal/cryptox"
	"github.com/visitdesk/authcore/internal/logging"
	"github.com/visitdesk/authcore/internal/models"
)

// SessionRegistry is the in-memory table of active sessions. Sessions never
// survive a process restart. All operations are total functions over the map;
// there are no recoverable errors here apart from token generation.
type SessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*models.Session

	timeout       time.Duration
	sweepInterval time.Duration
	logger        logging.Logger
	now           func() time.Time
}

func NewSessionRegistry(timeout, sweepInterval time.Duration, logger logging.Logger) *SessionRegistry {
	if timeout <= 0 {
		timeout = DefaultSessionTimeout
	}
	if sweepInterval <= 0 {
		sweepInterval = DefaultSweepInterval
	}
	return &SessionRegistry{
		sessions:      make(map[string]*models.Session),
		timeout:       timeout,
		sweepInterval: sweepInterval,
		logger:        logger,
		now:           time.Now,
	}
}

// Create registers a session for the account and returns the fresh token.
// Uniqueness follows from 256-bit randomness; no collision check is made.
func (r *SessionRegistry) Create(accountID string, role models.Role, origin string) (string, error) {
	token, err := cryptox.GenerateToken()
	if err != nil {
		return "", err
	}

	now := r.now()
	r.mu.Lock()
	r.sessions[token] = &models.Session{
		Token:        token,
		AccountID:    accountID,
		Role:         role,
		Origin:       origin,
		CreatedAt:    now,
		LastActivity: now,
	}
	r.mu.Unlock()

	return token, nil
}

// Validate atomically checks the session and advances its last activity.
// A session past its inactivity timeout is removed on the spot. The returned
// session is a copy; mutating it does not affect the registry.
func (r *SessionRegistry) Validate(token string) (*models.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[token]
	if !ok {
		return nil, false
	}

	now := r.now()
	if now.Sub(s.LastActivity) >= r.timeout {
		delete(r.sessions, token)
		return nil, false
	}

	s.LastActivity = now
	copied := *s
	return &copied, true
}

// Destroy removes the session. Destroying an unknown token is not an error.
// The removed session is returned when one existed, for audit purposes.
func (r *SessionRegistry) Destroy(token string) (*models.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[token]
	if !ok {
		return nil, false
	}
	delete(r.sessions, token)
	copied := *s
	return &copied, true
}

// SweepExpired removes every session past the inactivity timeout and returns
// how many were removed.
func (r *SessionRegistry) SweepExpired() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	removed := 0
	for token, s := range r.sessions {
		if now.Sub(s.LastActivity) >= r.timeout {
			delete(r.sessions, token)
			removed++
		}
	}
	return removed
}

// Count returns the number of live entries, including not-yet-swept expired
// ones.
func (r *SessionRegistry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Run sweeps expired sessions on a fixed interval until ctx is cancelled.
// The process owns exactly one sweeper; callers never invoke it directly.
func (r *SessionRegistry) Run(ctx context.Context) {
	ticker := time.NewTicker(r.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.SweepExpired(); n > 0 {
				r.logger.Debug(ctx, "swept expired sessions", "count", n)
			}
		}
	}
}
