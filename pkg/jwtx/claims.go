// Package jwtx signs and verifies the EdDSA session tokens the service
// issues into browser cookies.
package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is the absolute lifetime of a session token. The cookie
// max-age is derived from the same value.
const DefaultSessionTTL = 30 * 24 * time.Hour

// SessionClaims are the session-token claims. The account snapshot travels in
// custom fields so the UI can render without a round trip; the password hash
// is never part of this structure.
type SessionClaims struct {
	jwt.RegisteredClaims

	// Email of the account, lowercased.
	Email string `json:"email,omitempty"`

	// Admin is true for principal accounts (no employer link).
	Admin bool `json:"admin,omitempty"`

	// EmployerID is the owning account for staff logins.
	EmployerID *string `json:"employer_id,omitempty"`

	// TwoFactor is true when the login completed a second factor.
	TwoFactor bool `json:"two_factor,omitempty"`

	// RefreshedAt records when the embedded snapshot was last re-read from
	// the credential store.
	RefreshedAt *jwt.NumericDate `json:"refreshed_at,omitempty"`
}

// NewSessionClaims builds minimally-correct claims for a fresh login.
func NewSessionClaims(
	accountID, email string,
	admin bool,
	employerID *string,
	twoFactor bool,
	issuer string,
	ttl time.Duration,
	now time.Time,
) SessionClaims {
	return SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Email:       email,
		Admin:       admin,
		EmployerID:  employerID,
		TwoFactor:   twoFactor,
		RefreshedAt: jwt.NewNumericDate(now),
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// ValidateIssuer checks the issuer claim against the expected value.
func (c *SessionClaims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateExpiry ensures the token hasn't expired (exp) and isn't used
// before it is valid (nbf).
func (c *SessionClaims) ValidateExpiry() error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Time) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}
	return nil
}
