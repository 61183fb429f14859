package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/propcheck/inspections/internal/auth/domain"
	"github.com/propcheck/inspections/internal/auth/store"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

var (
	ErrInvalidTOTPCode     = errors.New("invalid TOTP code")
	ErrTOTPNotEnrolled     = errors.New("no authenticator app enrolled")
	ErrTOTPAlreadyEnrolled = errors.New("authenticator app already enrolled")
)

// TOTPService manages authenticator-app enrollment as an additional second
// factor next to the emailed codes. Enrollment is two-step: generate a
// secret, then verify one code before the method counts.
type TOTPService struct {
	Store  store.Store
	Issuer string // name shown in the authenticator app
}

// Enroll generates a TOTP secret for the account and returns it with a QR
// code URL. Two-factor login is not affected until Verify succeeds.
func (s *TOTPService) Enroll(ctx context.Context, accountID string) (domain.TOTPEnrollment, error) {
	account, err := s.Store.Accounts().GetAccountByID(ctx, accountID)
	if err != nil {
		return domain.TOTPEnrollment{}, fmt.Errorf("totp enroll: %w", err)
	}
	if account.TOTPSecret != nil && *account.TOTPSecret != "" && account.TwoFactorEnabled {
		return domain.TOTPEnrollment{}, ErrTOTPAlreadyEnrolled
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.Issuer,
		AccountName: account.Email,
		Period:      30,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return domain.TOTPEnrollment{}, fmt.Errorf("totp enroll: generate key: %w", err)
	}

	if err := s.Store.Accounts().SetTOTPSecret(ctx, accountID, key.Secret()); err != nil {
		return domain.TOTPEnrollment{}, fmt.Errorf("totp enroll: store secret: %w", err)
	}

	return domain.TOTPEnrollment{
		Secret:  key.Secret(),
		QRCode:  key.URL(),
		Issuer:  s.Issuer,
		Account: account.Email,
	}, nil
}

// Verify checks a code against the pending secret and, if valid, switches
// the account to require a second factor at login.
func (s *TOTPService) Verify(ctx context.Context, accountID string, code string) error {
	account, err := s.Store.Accounts().GetAccountByID(ctx, accountID)
	if err != nil {
		return fmt.Errorf("totp verify: %w", err)
	}
	if account.TOTPSecret == nil || *account.TOTPSecret == "" {
		return ErrTOTPNotEnrolled
	}

	if !totp.Validate(code, *account.TOTPSecret) {
		return ErrInvalidTOTPCode
	}

	return s.Store.Accounts().SetTwoFactorEnabled(ctx, accountID, true)
}

// Remove drops the authenticator enrollment after verifying a current code.
// Accounts keep two-factor enabled through the emailed codes; disabling the
// requirement entirely is an admin provisioning action, not self-service.
func (s *TOTPService) Remove(ctx context.Context, accountID string, code string) error {
	account, err := s.Store.Accounts().GetAccountByID(ctx, accountID)
	if err != nil {
		return fmt.Errorf("totp remove: %w", err)
	}
	if account.TOTPSecret == nil || *account.TOTPSecret == "" {
		return ErrTOTPNotEnrolled
	}

	if !totp.Validate(code, *account.TOTPSecret) {
		return ErrInvalidTOTPCode
	}

	return s.Store.Accounts().ClearTOTPSecret(ctx, accountID)
}
