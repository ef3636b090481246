package store

import (
	"context"
	"sync"

	"github.com/visitdesk/authcore/internal/models"
)

// CachedAccounts wraps an AccountRepository with a process-lifetime read
// cache keyed by username. Every Save overwrites the cached entry, so reads
// within the process never observe a record older than the last write.
type CachedAccounts struct {
	inner AccountRepository

	mu         sync.RWMutex
	byUsername map[string]*models.Account
}

func NewCachedAccounts(inner AccountRepository) *CachedAccounts {
	return &CachedAccounts{
		inner:      inner,
		byUsername: make(map[string]*models.Account),
	}
}

func (c *CachedAccounts) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	c.mu.RLock()
	cached, ok := c.byUsername[username]
	c.mu.RUnlock()
	if ok {
		return cached.Clone(), nil
	}

	account, err := c.inner.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.byUsername[account.Username] = account.Clone()
	c.mu.Unlock()

	return account, nil
}

// GetByID is not cached; ID lookups are rare (password changes only).
func (c *CachedAccounts) GetByID(ctx context.Context, id string) (*models.Account, error) {
	return c.inner.GetByID(ctx, id)
}

func (c *CachedAccounts) Save(ctx context.Context, account *models.Account) error {
	if err := c.inner.Save(ctx, account); err != nil {
		// Drop the stale entry so the next read goes to the store.
		c.mu.Lock()
		delete(c.byUsername, account.Username)
		c.mu.Unlock()
		return err
	}

	c.mu.Lock()
	c.byUsername[account.Username] = account.Clone()
	c.mu.Unlock()
	return nil
}
