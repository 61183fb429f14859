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
	"github.com/pquerna/otp/totp"
)

const (
	// TwoFactorCodeDigits is the length of emailed one-time codes.
	TwoFactorCodeDigits = 6

	// DefaultTwoFactorCodeTTL is how long an emailed code stays valid.
	DefaultTwoFactorCodeTTL = 10 * time.Minute
)

// ErrCodeDeliveryFailed means the code was generated but could not be sent.
// Reported distinctly from a wrong code so the user retries sending, not
// entering a code that never arrived.
var ErrCodeDeliveryFailed = errors.New("2fa_delivery_failed")

// TwoFactorService issues, checks and clears the emailed one-time codes, and
// accepts authenticator-app codes for accounts that enrolled one.
type TwoFactorService struct {
	Store   store.Store
	Mailer  Mailer
	CodeTTL time.Duration // zero means DefaultTwoFactorCodeTTL
}

func (s *TwoFactorService) ttl() time.Duration {
	if s.CodeTTL > 0 {
		return s.CodeTTL
	}
	return DefaultTwoFactorCodeTTL
}

// GenerateCode mints a fresh 6-digit code for the account, stores it with an
// expiry, and hands it to the mailer. A previous unexpired code is replaced.
func (s *TwoFactorService) GenerateCode(ctx context.Context, email string) error {
	log := slogx.FromContext(ctx)

	account, err := s.Store.Accounts().GetAccountByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Same external string as a failed login so account
			// existence can't be probed through this endpoint.
			return ErrInvalidCredentials
		}
		return fmt.Errorf("two-factor: account lookup: %w", err)
	}

	code, err := cryptox.GenerateNumericCode(TwoFactorCodeDigits)
	if err != nil {
		return fmt.Errorf("two-factor: generate code: %w", err)
	}

	expiry := time.Now().UTC().Add(s.ttl())
	if err := s.Store.Accounts().SetTwoFactorCode(ctx, account.ID, code, expiry); err != nil {
		return fmt.Errorf("two-factor: store code: %w", err)
	}

	if err := s.Mailer.SendTwoFactorCode(ctx, account.Email, code); err != nil {
		log.Error("two-factor code delivery failed", "account_id", account.ID, "err", err)
		return ErrCodeDeliveryFailed
	}

	log.Info("two-factor code issued", "account_id", account.ID, "expires_at", expiry)
	return nil
}

// ValidateCode checks a submitted code against the stored emailed code and,
// when the account has an authenticator app enrolled, against TOTP. The
// second return value reports whether the emailed code was the one that
// matched, so the caller knows to clear it.
//
// An expired code and a wrong code are indistinguishable: both are false.
func (s *TwoFactorService) ValidateCode(account domain.Account, submitted string, now time.Time) (valid, usedEmailCode bool) {
	if account.TwoFactorCode != nil && account.TwoFactorCodeExpiry != nil &&
		now.Before(*account.TwoFactorCodeExpiry) &&
		cryptox.ConstantTimeEquals(*account.TwoFactorCode, submitted) {
		return true, true
	}

	if account.TOTPSecret != nil && *account.TOTPSecret != "" &&
		totp.Validate(submitted, *account.TOTPSecret) {
		return true, false
	}

	return false, false
}

// ClearCode nulls the stored code and expiry after successful use. Called
// exactly once per accepted emailed code to prevent reuse.
func (s *TwoFactorService) ClearCode(ctx context.Context, accountID string) error {
	return s.Store.Accounts().ClearTwoFactorCode(ctx, accountID)
}
