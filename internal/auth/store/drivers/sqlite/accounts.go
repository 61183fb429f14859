package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/propcheck/inspections/internal/auth/domain"
	"github.com/propcheck/inspections/internal/auth/store"
)

const accountColumns = `id, email, password_hash, failed_login_attempts,
	login_lockout_date, two_factor_enabled, two_factor_code,
	two_factor_code_expiry, totp_secret, employee_of_account_id,
	created_at, updated_at`

type accountsRepo struct {
	q querier
}

func (r *accountsRepo) GetAccountByID(ctx context.Context, id string) (domain.Account, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id)

	a, err := scanAccount(row)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return a, nil
}

func (r *accountsRepo) GetAccountByEmail(ctx context.Context, email string) (domain.Account, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE email = ?`, domain.NormalizeEmail(email))

	a, err := scanAccount(row)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return a, nil
}

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO accounts (
			id, email, password_hash, failed_login_attempts,
			login_lockout_date, two_factor_enabled, two_factor_code,
			two_factor_code_expiry, totp_secret, employee_of_account_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID,
		domain.NormalizeEmail(a.Email),
		a.PasswordHash,
		a.FailedLoginAttempts,
		mapOptionalTime(a.LoginLockoutDate),
		a.TwoFactorEnabled,
		mapOptionalString(a.TwoFactorCode),
		mapOptionalTime(a.TwoFactorCodeExpiry),
		mapOptionalString(a.TOTPSecret),
		mapOptionalString(a.EmployeeOfAccountID),
	)
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return store.ErrAlreadyExists
	}
	return err
}

func (r *accountsRepo) UpdatePasswordHash(ctx context.Context, accountID string, newHash string) error {
	return r.exec(ctx,
		`UPDATE accounts SET password_hash = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		newHash, accountID)
}

// IncrementFailedLoginAttempts uses a single UPDATE ... RETURNING so two
// concurrent failed attempts never lose an increment.
func (r *accountsRepo) IncrementFailedLoginAttempts(ctx context.Context, accountID string) (int, error) {
	row := r.q.QueryRowContext(ctx,
		`UPDATE accounts
		 SET failed_login_attempts = failed_login_attempts + 1,
		     updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?
		 RETURNING failed_login_attempts`, accountID)

	var attempts int
	if err := row.Scan(&attempts); err != nil {
		return 0, mapNotFound(err)
	}
	return attempts, nil
}

func (r *accountsRepo) ResetFailedLoginAttempts(ctx context.Context, accountID string) error {
	return r.exec(ctx,
		`UPDATE accounts SET failed_login_attempts = 0, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		accountID)
}

func (r *accountsRepo) SetLoginLockoutDate(ctx context.Context, accountID string, at time.Time) error {
	return r.exec(ctx,
		`UPDATE accounts SET login_lockout_date = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		at.UTC(), accountID)
}

func (r *accountsRepo) SetTwoFactorCode(ctx context.Context, accountID string, code string, expiry time.Time) error {
	return r.exec(ctx,
		`UPDATE accounts
		 SET two_factor_code = ?, two_factor_code_expiry = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		code, expiry.UTC(), accountID)
}

func (r *accountsRepo) ClearTwoFactorCode(ctx context.Context, accountID string) error {
	return r.exec(ctx,
		`UPDATE accounts
		 SET two_factor_code = NULL, two_factor_code_expiry = NULL, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		accountID)
}

func (r *accountsRepo) SetTwoFactorEnabled(ctx context.Context, accountID string, enabled bool) error {
	return r.exec(ctx,
		`UPDATE accounts SET two_factor_enabled = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		enabled, accountID)
}

func (r *accountsRepo) SetTOTPSecret(ctx context.Context, accountID string, secret string) error {
	return r.exec(ctx,
		`UPDATE accounts SET totp_secret = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		secret, accountID)
}

func (r *accountsRepo) ClearTOTPSecret(ctx context.Context, accountID string) error {
	return r.exec(ctx,
		`UPDATE accounts SET totp_secret = NULL, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		accountID)
}

func (r *accountsRepo) DeleteExpiredTwoFactorCodes(ctx context.Context) error {
	_, err := r.q.ExecContext(ctx,
		`UPDATE accounts
		 SET two_factor_code = NULL, two_factor_code_expiry = NULL
		 WHERE two_factor_code_expiry IS NOT NULL AND two_factor_code_expiry < ?`,
		time.Now().UTC())
	return err
}

func (r *accountsRepo) ClearAgedLockouts(ctx context.Context, before time.Time) error {
	_, err := r.q.ExecContext(ctx,
		`UPDATE accounts
		 SET login_lockout_date = NULL
		 WHERE login_lockout_date IS NOT NULL AND login_lockout_date < ?`,
		before.UTC())
	return err
}

func (r *accountsRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int64
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}

// exec runs a single-row UPDATE and maps a zero rows-affected result to
// store.ErrNotFound so services can tell a missing account from a no-op.
func (r *accountsRepo) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
