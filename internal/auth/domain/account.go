package domain

import (
	"strings"
	"time"
)

// Account is an inspector or back-office login for the inspection platform.
// Keyed by lowercased email; lockout and two-factor state live directly on
// the record because every login attempt mutates them.
type Account struct {
	ID           string
	Email        string // stored lowercased, unique
	PasswordHash string // argon2id PHC string

	// Lockout state
	FailedLoginAttempts int
	LoginLockoutDate    *time.Time // set when the failure threshold is crossed

	// Two-factor state. TwoFactorCode is the short-lived emailed code;
	// TOTPSecret is set when an authenticator app has been enrolled.
	TwoFactorEnabled    bool
	TwoFactorCode       *string
	TwoFactorCodeExpiry *time.Time
	TOTPSecret          *string

	// EmployeeOfAccountID links staff accounts to their employer account.
	// Nil means the account is a principal (admin) account.
	EmployeeOfAccountID *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAdmin reports whether the account is a principal account rather than an
// employee of one. Downstream authorization keys off this.
func (a Account) IsAdmin() bool {
	return a.EmployeeOfAccountID == nil
}

// NormalizeEmail lowercases and trims an email so lookups are
// case-insensitive everywhere.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
