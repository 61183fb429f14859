package domain

import "time"

// SessionSnapshot is the account projection carried inside a session token.
// The password hash must never appear here; the session issuer owns the
// stripping.
type SessionSnapshot struct {
	AccountID           string  `json:"account_id"`
	Email               string  `json:"email"`
	Admin               bool    `json:"admin"`
	EmployeeOfAccountID *string `json:"employee_of_account_id,omitempty"`
	TwoFactorEnabled    bool    `json:"two_factor_enabled"`
}

// SnapshotAccount strips an account down to the fields a session may carry.
func SnapshotAccount(a Account) SessionSnapshot {
	return SessionSnapshot{
		AccountID:           a.ID,
		Email:               a.Email,
		Admin:               a.IsAdmin(),
		EmployeeOfAccountID: a.EmployeeOfAccountID,
		TwoFactorEnabled:    a.TwoFactorEnabled,
	}
}

// PublicSession is the view of a session handed to browser clients. It is a
// deliberate subset of the token contents: issue/expiry times are included so
// the form UI can prompt re-login, internal linkage IDs are not.
type PublicSession struct {
	AccountID string    `json:"account_id"`
	Email     string    `json:"email"`
	Admin     bool      `json:"admin"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
