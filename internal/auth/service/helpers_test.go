package service_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/propcheck/inspections/internal/auth/domain"
	"github.com/propcheck/inspections/internal/auth/service"
	"github.com/propcheck/inspections/internal/auth/store"
	"github.com/propcheck/inspections/internal/auth/store/drivers/sqlite"
	"github.com/propcheck/inspections/pkg/cryptox"
	"github.com/propcheck/inspections/pkg/idx"
)

const (
	testEmail    = "inspector@example.com"
	testPassword = "Inspect123!"
)

// newTestStore opens a throwaway SQLite database with migrations applied.
func newTestStore(t *testing.T) store.Store {
	t.Helper()

	cryptox.SetPepperPath(filepath.Join(t.TempDir(), "pepper"))

	st, err := sqlite.NewStore("file:" + filepath.Join(t.TempDir(), "auth_test.db"))
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	return st
}

// seedAccount creates an account with a real argon2 hash and returns the
// stored record.
func seedAccount(t *testing.T, st store.Store, email, password string) domain.Account {
	t.Helper()

	hash, err := cryptox.HashPassword(password)
	require.NoError(t, err)

	account := domain.Account{
		ID:           idx.New().String(),
		Email:        domain.NormalizeEmail(email),
		PasswordHash: hash,
	}
	require.NoError(t, st.Accounts().CreateAccount(context.Background(), account))

	stored, err := st.Accounts().GetAccountByEmail(context.Background(), account.Email)
	require.NoError(t, err)
	return stored
}

// captureMailer records the last code handed to it and can simulate failure.
type captureMailer struct {
	lastEmail string
	lastCode  string
	fail      bool
	sent      int
}

func (m *captureMailer) SendTwoFactorCode(_ context.Context, email, code string) error {
	if m.fail {
		return errors.New("relay unreachable")
	}
	m.lastEmail = email
	m.lastCode = code
	m.sent++
	return nil
}

// newAuthService wires an AuthService over the store with a capture mailer
// and a controllable clock.
func newAuthService(st store.Store, now time.Time) (*service.AuthService, *captureMailer) {
	mailer := &captureMailer{}
	twoFactor := &service.TwoFactorService{Store: st, Mailer: mailer}
	auth := &service.AuthService{
		Store:     st,
		Lockout:   service.LockoutPolicy{},
		TwoFactor: twoFactor,
		Now:       func() time.Time { return now },
	}
	return auth, mailer
}
