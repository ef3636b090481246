package auth

import (
	"sync"
	"time"
)

type lockoutState struct {
	failures int
	until    time.Time
}

// LockoutTracker counts failed login attempts per username and drives the
// Normal/Locked state machine. Expiry is lazy: a lock that has run out is
// cleared, counter included, the first time it is observed.
//
// The tracker itself is mutex-guarded, but the authenticator additionally
// serializes all mutations per username so a failure and the resulting
// account persistence form one critical section.
type LockoutTracker struct {
	mu          sync.Mutex
	maxAttempts int
	duration    time.Duration
	states      map[string]*lockoutState
	now         func() time.Time
}

func NewLockoutTracker(maxAttempts int, duration time.Duration) *LockoutTracker {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxLoginAttempts
	}
	if duration <= 0 {
		duration = DefaultLockoutDuration
	}
	return &LockoutTracker{
		maxAttempts: maxAttempts,
		duration:    duration,
		states:      make(map[string]*lockoutState),
		now:         time.Now,
	}
}

// RecordFailure increments the failure counter. Reaching the attempt
// threshold transitions to Locked; the returned until is non-zero only then.
func (t *LockoutTracker) RecordFailure(username string) (failures int, until time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	st := t.states[username]
	if st == nil {
		st = &lockoutState{}
		t.states[username] = st
	}

	st.failures++
	if st.failures >= t.maxAttempts && st.until.IsZero() {
		st.until = t.now().Add(t.duration)
	}
	return st.failures, st.until
}

// RecordSuccess resets the counter and clears any lock.
func (t *LockoutTracker) RecordSuccess(username string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.states, username)
}

// IsLocked reports whether the username is currently locked. Observing an
// expired lock resets the state as a side effect.
func (t *LockoutTracker) IsLocked(username string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.locked(username)
}

// Remaining returns how long the lock has left, zero when not locked.
func (t *LockoutTracker) Remaining(username string) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.locked(username) {
		return 0
	}
	return t.states[username].until.Sub(t.now())
}

// Seed installs lockout state recovered from a persisted account record,
// so a lock survives a process restart even though the tracker does not.
func (t *LockoutTracker) Seed(username string, failures int, until time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.states[username] = &lockoutState{failures: failures, until: until}
}

func (t *LockoutTracker) locked(username string) bool {
	st := t.states[username]
	if st == nil || st.until.IsZero() {
		return false
	}
	if !t.now().Before(st.until) {
		// lazy expiry: counter resets along with the lock
		delete(t.states, username)
		return false
	}
	return true
}
