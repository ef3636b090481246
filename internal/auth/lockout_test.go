package auth

import (
	"sync"
	"testing"
	"time"
)

func newTrackerAt(t *testing.T, maxAttempts int, duration time.Duration) (*LockoutTracker, *time.Time) {
	t.Helper()
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	tr := NewLockoutTracker(maxAttempts, duration)
	tr.now = func() time.Time { return now }
	return tr, &now
}

func TestLockout_ThresholdLocks(t *testing.T) {
	tr, _ := newTrackerAt(t, 3, 15*time.Minute)

	for i := 0; i < 2; i++ {
		if _, until := tr.RecordFailure("alice"); !until.IsZero() {
			t.Fatalf("locked after %d failures", i+1)
		}
	}
	if tr.IsLocked("alice") {
		t.Fatalf("locked before reaching threshold")
	}

	failures, until := tr.RecordFailure("alice")
	if failures != 3 || until.IsZero() {
		t.Fatalf("expected lock at third failure, got failures=%d until=%v", failures, until)
	}
	if !tr.IsLocked("alice") {
		t.Fatalf("expected locked state")
	}
}

func TestLockout_RemainingDuration(t *testing.T) {
	tr, _ := newTrackerAt(t, 1, 15*time.Minute)

	tr.RecordFailure("alice")
	if got := tr.Remaining("alice"); got != 15*time.Minute {
		t.Fatalf("remaining = %v, want 15m", got)
	}
	if got := tr.Remaining("bob"); got != 0 {
		t.Fatalf("remaining for unlocked user = %v, want 0", got)
	}
}

func TestLockout_LazyExpiryResetsCounter(t *testing.T) {
	tr, now := newTrackerAt(t, 3, 15*time.Minute)

	for i := 0; i < 3; i++ {
		tr.RecordFailure("alice")
	}
	if !tr.IsLocked("alice") {
		t.Fatalf("expected locked state")
	}

	*now = now.Add(15*time.Minute + time.Second)
	if tr.IsLocked("alice") {
		t.Fatalf("lock should have expired")
	}

	// counter was reset together with the lock
	if failures, until := tr.RecordFailure("alice"); failures != 1 || !until.IsZero() {
		t.Fatalf("expected fresh counter after expiry, got failures=%d until=%v", failures, until)
	}
}

func TestLockout_SuccessResets(t *testing.T) {
	tr, _ := newTrackerAt(t, 3, 15*time.Minute)

	tr.RecordFailure("alice")
	tr.RecordFailure("alice")
	tr.RecordSuccess("alice")

	if failures, _ := tr.RecordFailure("alice"); failures != 1 {
		t.Fatalf("expected counter reset by success, got %d", failures)
	}
}

func TestLockout_Seed(t *testing.T) {
	tr, now := newTrackerAt(t, 5, 15*time.Minute)

	tr.Seed("alice", 5, now.Add(10*time.Minute))
	if !tr.IsLocked("alice") {
		t.Fatalf("seeded lock not active")
	}
	if got := tr.Remaining("alice"); got != 10*time.Minute {
		t.Fatalf("remaining = %v, want 10m", got)
	}
}

func TestLockout_UsersIndependent(t *testing.T) {
	tr, _ := newTrackerAt(t, 1, 15*time.Minute)

	tr.RecordFailure("alice")
	if tr.IsLocked("bob") {
		t.Fatalf("lock leaked across usernames")
	}
}

func TestLockout_ConcurrentFailuresNotLost(t *testing.T) {
	tr := NewLockoutTracker(1000, 15*time.Minute)

	const workers = 50
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			tr.RecordFailure("alice")
		}()
	}
	wg.Wait()

	if failures, _ := tr.RecordFailure("alice"); failures != workers+1 {
		t.Fatalf("lost updates: counter = %d, want %d", failures, workers+1)
	}
}
