package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/propcheck/inspections/internal/auth/service"
)

func TestAuthenticateUnknownEmail(t *testing.T) {
	st := newTestStore(t)
	auth, _ := newAuthService(st, time.Now().UTC())

	_, err := auth.Authenticate(t.Context(), service.LoginAttempt{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	require.ErrorIs(t, err, service.ErrInvalidCredentials)
}

// An unknown account and a wrong password must be indistinguishable from the
// caller's side: the same sentinel with the same string.
func TestAuthenticateMergedCredentialFailures(t *testing.T) {
	st := newTestStore(t)
	seedAccount(t, st, testEmail, testPassword)
	auth, _ := newAuthService(st, time.Now().UTC())

	_, unknownErr := auth.Authenticate(t.Context(), service.LoginAttempt{
		Email:    "nobody@example.com",
		Password: testPassword,
	})
	_, wrongPassErr := auth.Authenticate(t.Context(), service.LoginAttempt{
		Email:    testEmail,
		Password: "not-the-password",
	})

	require.ErrorIs(t, unknownErr, service.ErrInvalidCredentials)
	require.ErrorIs(t, wrongPassErr, service.ErrInvalidCredentials)
	require.Equal(t, unknownErr.Error(), wrongPassErr.Error())
	require.Equal(t, service.MergedCredentialFailures, wrongPassErr.Error())
}

func TestAuthenticateWrongPasswordIncrementsCounter(t *testing.T) {
	st := newTestStore(t)
	account := seedAccount(t, st, testEmail, testPassword)
	auth, _ := newAuthService(st, time.Now().UTC())

	_, err := auth.Authenticate(t.Context(), service.LoginAttempt{
		Email:    testEmail,
		Password: "not-the-password",
	})
	require.ErrorIs(t, err, service.ErrInvalidCredentials)

	stored, err := st.Accounts().GetAccountByID(t.Context(), account.ID)
	require.NoError(t, err)
	require.Equal(t, 1, stored.FailedLoginAttempts)
	require.Nil(t, stored.LoginLockoutDate)
}

func TestAuthenticateLockoutTriggersAtThreshold(t *testing.T) {
	st := newTestStore(t)
	account := seedAccount(t, st, testEmail, testPassword)
	now := time.Now().UTC()
	auth, _ := newAuthService(st, now)

	for i := 1; i < service.DefaultLockoutThreshold; i++ {
		_, err := auth.Authenticate(t.Context(), service.LoginAttempt{
			Email:    testEmail,
			Password: "not-the-password",
		})
		require.ErrorIs(t, err, service.ErrInvalidCredentials, "attempt %d", i)
	}

	// The attempt that reaches the threshold reports the lockout itself.
	_, err := auth.Authenticate(t.Context(), service.LoginAttempt{
		Email:    testEmail,
		Password: "not-the-password",
	})
	require.ErrorIs(t, err, service.ErrLockedOut)

	stored, err := st.Accounts().GetAccountByID(t.Context(), account.ID)
	require.NoError(t, err)
	require.Equal(t, service.DefaultLockoutThreshold, stored.FailedLoginAttempts)
	require.NotNil(t, stored.LoginLockoutDate)

	// Correct credentials are rejected for the rest of the window.
	_, err = auth.Authenticate(t.Context(), service.LoginAttempt{
		Email:    testEmail,
		Password: testPassword,
	})
	require.ErrorIs(t, err, service.ErrLockedOut)
}

func TestAuthenticateLockoutExpires(t *testing.T) {
	st := newTestStore(t)
	account := seedAccount(t, st, testEmail, testPassword)
	now := time.Now().UTC()

	lockedAt := now.Add(-31 * time.Minute)
	require.NoError(t, st.Accounts().SetLoginLockoutDate(t.Context(), account.ID, lockedAt))
	for i := 0; i < service.DefaultLockoutThreshold; i++ {
		_, err := st.Accounts().IncrementFailedLoginAttempts(t.Context(), account.ID)
		require.NoError(t, err)
	}

	auth, _ := newAuthService(st, now)
	got, err := auth.Authenticate(t.Context(), service.LoginAttempt{
		Email:    testEmail,
		Password: testPassword,
	})
	require.NoError(t, err)
	require.Equal(t, account.ID, got.ID)

	// Success resets the counter but leaves the aged lockout date alone.
	stored, err := st.Accounts().GetAccountByID(t.Context(), account.ID)
	require.NoError(t, err)
	require.Equal(t, 0, stored.FailedLoginAttempts)
	require.NotNil(t, stored.LoginLockoutDate)
}

func TestAuthenticateCustomThreshold(t *testing.T) {
	st := newTestStore(t)
	seedAccount(t, st, testEmail, testPassword)
	auth, _ := newAuthService(st, time.Now().UTC())
	auth.Lockout = service.LockoutPolicy{Threshold: 2}

	_, err := auth.Authenticate(t.Context(), service.LoginAttempt{
		Email:    testEmail,
		Password: "not-the-password",
	})
	require.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = auth.Authenticate(t.Context(), service.LoginAttempt{
		Email:    testEmail,
		Password: "not-the-password",
	})
	require.ErrorIs(t, err, service.ErrLockedOut)
}

func TestAuthenticateTwoFactorRequired(t *testing.T) {
	st := newTestStore(t)
	account := seedAccount(t, st, testEmail, testPassword)
	require.NoError(t, st.Accounts().SetTwoFactorEnabled(t.Context(), account.ID, true))

	auth, _ := newAuthService(st, time.Now().UTC())
	_, err := auth.Authenticate(t.Context(), service.LoginAttempt{
		Email:    testEmail,
		Password: testPassword,
	})
	require.ErrorIs(t, err, service.ErrTwoFactorRequired)

	// The two-factor gate never touches the lockout counter.
	stored, err := st.Accounts().GetAccountByID(t.Context(), account.ID)
	require.NoError(t, err)
	require.Equal(t, 0, stored.FailedLoginAttempts)
}

func TestAuthenticateTwoFactorWrongCode(t *testing.T) {
	st := newTestStore(t)
	account := seedAccount(t, st, testEmail, testPassword)
	now := time.Now().UTC()
	require.NoError(t, st.Accounts().SetTwoFactorEnabled(t.Context(), account.ID, true))
	require.NoError(t, st.Accounts().SetTwoFactorCode(t.Context(), account.ID, "123456", now.Add(10*time.Minute)))

	auth, _ := newAuthService(st, now)
	_, err := auth.Authenticate(t.Context(), service.LoginAttempt{
		Email:         testEmail,
		Password:      testPassword,
		TwoFactorCode: "654321",
	})
	require.ErrorIs(t, err, service.ErrInvalidTwoFactorCode)

	stored, err := st.Accounts().GetAccountByID(t.Context(), account.ID)
	require.NoError(t, err)
	require.Equal(t, 0, stored.FailedLoginAttempts)
}

func TestAuthenticateTwoFactorExpiredCode(t *testing.T) {
	st := newTestStore(t)
	account := seedAccount(t, st, testEmail, testPassword)
	now := time.Now().UTC()
	require.NoError(t, st.Accounts().SetTwoFactorEnabled(t.Context(), account.ID, true))
	require.NoError(t, st.Accounts().SetTwoFactorCode(t.Context(), account.ID, "123456", now.Add(-time.Minute)))

	auth, _ := newAuthService(st, now)
	_, err := auth.Authenticate(t.Context(), service.LoginAttempt{
		Email:         testEmail,
		Password:      testPassword,
		TwoFactorCode: "123456",
	})
	require.ErrorIs(t, err, service.ErrInvalidTwoFactorCode)
}

func TestAuthenticateTwoFactorSuccessClearsCode(t *testing.T) {
	st := newTestStore(t)
	account := seedAccount(t, st, testEmail, testPassword)
	now := time.Now().UTC()
	require.NoError(t, st.Accounts().SetTwoFactorEnabled(t.Context(), account.ID, true))
	require.NoError(t, st.Accounts().SetTwoFactorCode(t.Context(), account.ID, "123456", now.Add(10*time.Minute)))

	auth, _ := newAuthService(st, now)
	got, err := auth.Authenticate(t.Context(), service.LoginAttempt{
		Email:         testEmail,
		Password:      testPassword,
		TwoFactorCode: "123456",
	})
	require.NoError(t, err)
	require.Nil(t, got.TwoFactorCode)

	stored, err := st.Accounts().GetAccountByID(t.Context(), account.ID)
	require.NoError(t, err)
	require.Nil(t, stored.TwoFactorCode)
	require.Nil(t, stored.TwoFactorCodeExpiry)

	// A cleared code cannot be replayed.
	_, err = auth.Authenticate(context.Background(), service.LoginAttempt{
		Email:         testEmail,
		Password:      testPassword,
		TwoFactorCode: "123456",
	})
	require.ErrorIs(t, err, service.ErrInvalidTwoFactorCode)
}

func TestAuthenticateSuccessResetsCounter(t *testing.T) {
	st := newTestStore(t)
	account := seedAccount(t, st, testEmail, testPassword)
	auth, _ := newAuthService(st, time.Now().UTC())

	for i := 0; i < 3; i++ {
		_, err := auth.Authenticate(t.Context(), service.LoginAttempt{
			Email:    testEmail,
			Password: "not-the-password",
		})
		require.ErrorIs(t, err, service.ErrInvalidCredentials)
	}

	got, err := auth.Authenticate(t.Context(), service.LoginAttempt{
		Email:    testEmail,
		Password: testPassword,
	})
	require.NoError(t, err)
	require.Equal(t, 0, got.FailedLoginAttempts)

	stored, err := st.Accounts().GetAccountByID(t.Context(), account.ID)
	require.NoError(t, err)
	require.Equal(t, 0, stored.FailedLoginAttempts)
}

func TestAuthenticateEmailNormalized(t *testing.T) {
	st := newTestStore(t)
	seedAccount(t, st, testEmail, testPassword)
	auth, _ := newAuthService(st, time.Now().UTC())

	got, err := auth.Authenticate(t.Context(), service.LoginAttempt{
		Email:    "  Inspector@Example.COM ",
		Password: testPassword,
	})
	require.NoError(t, err)
	require.Equal(t, testEmail, got.Email)
}
