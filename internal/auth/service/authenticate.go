package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/propcheck/inspections/internal/auth/domain"
	"github.com/propcheck/inspections/internal/auth/store"
	"github.com/propcheck/inspections/pkg/cryptox"
	"github.com/propcheck/inspections/pkg/slogx"
)

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password. Merging the two is deliberate policy (see
	// MergedCredentialFailures); callers must not split them apart.
	ErrInvalidCredentials = errors.New("invalid_credentials")

	// ErrLockedOut means the lockout window is still active. No remaining
	// time is disclosed.
	ErrLockedOut = errors.New("user_locked_out")

	// ErrTwoFactorRequired is a recoverable rejection: the password was
	// correct and the caller should resubmit with a code.
	ErrTwoFactorRequired = errors.New("two_factor_required")

	// ErrInvalidTwoFactorCode covers both a wrong and an expired code;
	// the two are indistinguishable by design.
	ErrInvalidTwoFactorCode = errors.New("invalid_2fa_code")
)

// MergedCredentialFailures names the policy that an unknown account and a
// wrong password surface the same external error. Tests assert both paths
// yield this exact value.
const MergedCredentialFailures = "invalid_credentials"

// AuthService runs the login decision: lookup, lockout check, password
// check, two-factor gate, success bookkeeping. Every attempt runs the
// sequence to completion in order and short-circuits on the first failure.
type AuthService struct {
	Store     store.Store
	Lockout   LockoutPolicy
	TwoFactor *TwoFactorService

	// Now is swappable for tests; defaults to time.Now.
	Now func() time.Time
}

// LoginAttempt is the ephemeral input to a single authentication decision.
type LoginAttempt struct {
	Email         string
	Password      string
	TwoFactorCode string // optional
}

// Authenticate resolves a login attempt to either the full account record or
// one of the four typed rejections. Counter increments and code clears are
// side effects that are not rolled back when the overall request fails
// downstream.
//
// Any error other than the four sentinels is an infrastructure failure and
// must be treated as fatal by the caller, never shown to the end user.
func (s *AuthService) Authenticate(ctx context.Context, attempt LoginAttempt) (domain.Account, error) {
	log := slogx.FromContext(ctx)
	now := s.now()

	email := domain.NormalizeEmail(attempt.Email)

	// 1. Lookup
	account, err := s.Store.Accounts().GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Info("login rejected: unknown account", "email", email)
			return domain.Account{}, ErrInvalidCredentials
		}
		return domain.Account{}, fmt.Errorf("authenticate: account lookup: %w", err)
	}

	// 2. Lockout check, before the password is even looked at.
	if s.Lockout.IsLockedOut(account, now) {
		log.Info("login rejected: account locked out", "account_id", account.ID)
		return domain.Account{}, ErrLockedOut
	}

	// 3. Password check
	if err := cryptox.VerifyPassword(attempt.Password, account.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrPasswordMismatch) {
			// Malformed stored hash: fatal, not a failed login.
			return domain.Account{}, fmt.Errorf("authenticate: verify password: %w", err)
		}

		lockedNow, recErr := s.Lockout.RecordFailedAttempt(ctx, s.Store.Accounts(), account, now)
		if recErr != nil {
			return domain.Account{}, fmt.Errorf("authenticate: record failed attempt: %w", recErr)
		}
		if lockedNow {
			log.Warn("login rejected: lockout triggered", "account_id", account.ID)
			return domain.Account{}, ErrLockedOut
		}

		log.Info("login rejected: wrong password", "account_id", account.ID)
		return domain.Account{}, ErrInvalidCredentials
	}

	// 4. Two-factor gate. A missing or wrong code never touches the
	// lockout counter; only password failures do.
	if account.TwoFactorEnabled {
		if attempt.TwoFactorCode == "" {
			return domain.Account{}, ErrTwoFactorRequired
		}

		ok, usedEmailCode := s.TwoFactor.ValidateCode(account, attempt.TwoFactorCode, now)
		if !ok {
			log.Info("login rejected: bad two-factor code", "account_id", account.ID)
			return domain.Account{}, ErrInvalidTwoFactorCode
		}

		if usedEmailCode {
			if err := s.TwoFactor.ClearCode(ctx, account.ID); err != nil {
				return domain.Account{}, fmt.Errorf("authenticate: clear two-factor code: %w", err)
			}
			account.TwoFactorCode = nil
			account.TwoFactorCodeExpiry = nil
		}
	}

	// 5. Success bookkeeping. The lockout date is left alone; it ages out.
	if account.FailedLoginAttempts > 0 {
		if err := s.Store.Accounts().ResetFailedLoginAttempts(ctx, account.ID); err != nil {
			return domain.Account{}, fmt.Errorf("authenticate: reset failed attempts: %w", err)
		}
		account.FailedLoginAttempts = 0
	}

	log.Info("login accepted", "account_id", account.ID, "two_factor", account.TwoFactorEnabled)

	// 6. The full record goes back to the caller; stripping the password
	// hash is the session issuer's job.
	return account, nil
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}
