package store

import (
	"context"
	"errors"
	"time"

	"github.com/propcheck/inspections/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. Sub-repositories are exposed as methods to keep concerns
// tidy and to stop callers from accidentally nesting transactions.
type Store interface {
	Accounts() Accounts
	Settings() Settings

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, rolling back on error and
	// committing on nil. Preferred over Tx for multi-step mutations.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Accounts interface {
	// GetAccountByID returns an account by id.
	GetAccountByID(ctx context.Context, id string) (domain.Account, error)

	// GetAccountByEmail looks up an account by its lowercased email.
	// Callers normalize the email first; the query is exact-match.
	GetAccountByEmail(ctx context.Context, email string) (domain.Account, error)

	// CreateAccount inserts a new account (id is provided by app via ULID).
	CreateAccount(ctx context.Context, a domain.Account) error

	// UpdatePasswordHash sets the password_hash (argon2) and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, accountID string, newHash string) error

	// IncrementFailedLoginAttempts bumps the counter atomically and returns
	// the new value. Concurrent failed attempts must not lose updates.
	IncrementFailedLoginAttempts(ctx context.Context, accountID string) (int, error)

	// ResetFailedLoginAttempts zeroes the counter after a full successful
	// authentication. The lockout date is left alone; it ages out.
	ResetFailedLoginAttempts(ctx context.Context, accountID string) error

	// SetLoginLockoutDate stamps the lockout clock. Only called when the
	// failure threshold is crossed; never moves an already-set clock.
	SetLoginLockoutDate(ctx context.Context, accountID string, at time.Time) error

	// SetTwoFactorCode stores an emailed one-time code with its expiry,
	// replacing any previous code.
	SetTwoFactorCode(ctx context.Context, accountID string, code string, expiry time.Time) error

	// ClearTwoFactorCode nulls the stored code and expiry after use.
	ClearTwoFactorCode(ctx context.Context, accountID string) error

	// SetTwoFactorEnabled toggles whether login requires a second factor.
	SetTwoFactorEnabled(ctx context.Context, accountID string, enabled bool) error

	// SetTOTPSecret stores an authenticator-app secret for the account.
	SetTOTPSecret(ctx context.Context, accountID string, secret string) error

	// ClearTOTPSecret removes the authenticator-app enrollment.
	ClearTOTPSecret(ctx context.Context, accountID string) error

	// DeleteExpiredTwoFactorCodes clears codes whose expiry has passed
	// (housekeeping).
	DeleteExpiredTwoFactorCodes(ctx context.Context) error

	// ClearAgedLockouts nulls lockout dates older than the cutoff
	// (housekeeping; the policy already treats them as expired).
	ClearAgedLockouts(ctx context.Context, before time.Time) error

	// IsEmpty returns true if there are no accounts.
	IsEmpty(ctx context.Context) (bool, error)
}

// Settings is a process-wide key/value table for operational flags such as
// the forced session refresh marker.
type Settings interface {
	// Get returns the value for key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set upserts a value.
	Set(ctx context.Context, key, value string) error

	// ClearIfValue clears key only when it currently holds expected, and
	// reports whether this call did the clearing. Two concurrent refresh
	// cycles can both observe the flag set, but only one wins the clear.
	ClearIfValue(ctx context.Context, key, expected string) (bool, error)
}
