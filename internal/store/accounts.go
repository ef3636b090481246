package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/visitdesk/authcore/internal/common"
	"github.com/visitdesk/authcore/internal/cryptox"
	"github.com/visitdesk/authcore/internal/dbx"
	"github.com/visitdesk/authcore/internal/models"
)

const accountColumns = `id, username, password_hash, salt, role, is_active, failed_attempts, lockout_until, last_login, created_at`

// AccountSQL is the SQL-backed AccountRepository. Hashes and salts are stored
// as base64 text, matching the rest of the application's schema.
type AccountSQL struct {
	db     dbx.DBTX
	driver Driver
}

func NewAccountSQL(db dbx.DBTX, driver Driver) *AccountSQL {
	return &AccountSQL{db: db, driver: driver}
}

func (r *AccountSQL) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	query := r.driver.Rebind(`SELECT ` + accountColumns + ` FROM users WHERE username = ?`)
	return r.scanOne(r.db.QueryRowContext(ctx, query, username))
}

func (r *AccountSQL) GetByID(ctx context.Context, id string) (*models.Account, error) {
	query := r.driver.Rebind(`SELECT ` + accountColumns + ` FROM users WHERE id = ?`)
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// Save updates the row for the account's ID, inserting it when absent.
func (r *AccountSQL) Save(ctx context.Context, account *models.Account) error {
	update := r.driver.Rebind(
		`UPDATE users SET username = ?, password_hash = ?, salt = ?, role = ?, is_active = ?,
		 failed_attempts = ?, lockout_until = ?, last_login = ? WHERE id = ?`)

	res, err := r.db.ExecContext(ctx, update,
		account.Username,
		cryptox.EncodeText(account.PasswordHash),
		cryptox.EncodeText(account.Salt),
		int(account.Role),
		account.Active,
		account.FailedAttempts,
		nullTime(account.LockoutUntil),
		nullTime(account.LastLogin),
		account.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: update account: %v", common.ErrStore, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: update account: %v", common.ErrStore, err)
	}
	if n > 0 {
		return nil
	}

	insert := r.driver.Rebind(
		`INSERT INTO users (` + accountColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err = r.db.ExecContext(ctx, insert,
		account.ID,
		account.Username,
		cryptox.EncodeText(account.PasswordHash),
		cryptox.EncodeText(account.Salt),
		int(account.Role),
		account.Active,
		account.FailedAttempts,
		nullTime(account.LockoutUntil),
		nullTime(account.LastLogin),
		account.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: insert account: %v", common.ErrStore, err)
	}
	return nil
}

// TxAccounts wraps AccountSQL so each Save runs in its own transaction,
// making the update-then-insert upsert atomic. Reads go straight to the
// handle.
type TxAccounts struct {
	db     *sql.DB
	driver Driver
	*AccountSQL
}

func NewTxAccounts(db *sql.DB, driver Driver) *TxAccounts {
	return &TxAccounts{db: db, driver: driver, AccountSQL: NewAccountSQL(db, driver)}
}

func (r *TxAccounts) Save(ctx context.Context, account *models.Account) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return NewAccountSQL(tx, r.driver).Save(ctx, account)
	})
}

func (r *AccountSQL) scanOne(row *sql.Row) (*models.Account, error) {
	var (
		account        models.Account
		hash, salt     string
		role           int
		lockout, login sql.NullTime
	)

	err := row.Scan(&account.ID, &account.Username, &hash, &salt, &role,
		&account.Active, &account.FailedAttempts, &lockout, &login, &account.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("%w: query account: %v", common.ErrStore, err)
	}

	if account.PasswordHash, err = cryptox.DecodeText(hash); err != nil {
		return nil, fmt.Errorf("%w: corrupt password hash: %v", common.ErrStore, err)
	}
	if account.Salt, err = cryptox.DecodeText(salt); err != nil {
		return nil, fmt.Errorf("%w: corrupt salt: %v", common.ErrStore, err)
	}
	account.Role = models.Role(role)
	account.LockoutUntil = timePtr(lockout)
	account.LastLogin = timePtr(login)

	return &account, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
