// Package store persists the authentication core's account records and audit
// trail against the application's local SQL database. It exposes repository
// interfaces; business rules live in the auth package.
package store

import (
	"context"

	"github.com/visitdesk/authcore/internal/models"
)

// AccountRepository loads and saves account records. Absence is reported as
// common.ErrNotFound; I/O failures are wrapped in common.ErrStore.
type AccountRepository interface {
	// GetByUsername returns the account with the exact, case-sensitive
	// username.
	GetByUsername(ctx context.Context, username string) (*models.Account, error)

	// GetByID returns the account with the given identifier.
	GetByID(ctx context.Context, id string) (*models.Account, error)

	// Save upserts the account by ID.
	Save(ctx context.Context, account *models.Account) error
}
