package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/propcheck/inspections/internal/auth/domain"
	"github.com/propcheck/inspections/internal/auth/service"
)

func TestIsLockedOutMinuteGranularity(t *testing.T) {
	policy := service.LockoutPolicy{}
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		lockout time.Time
		locked  bool
	}{
		{"just locked", now, true},
		{"29 minutes in", now.Add(-29 * time.Minute), true},
		{"29m59s in still counts as 29 whole minutes", now.Add(-29*time.Minute - 59*time.Second), true},
		{"exactly 30 minutes", now.Add(-30 * time.Minute), false},
		{"an hour ago", now.Add(-time.Hour), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lockout := tc.lockout
			account := domain.Account{LoginLockoutDate: &lockout}
			require.Equal(t, tc.locked, policy.IsLockedOut(account, now))
		})
	}
}

func TestIsLockedOutNoDate(t *testing.T) {
	policy := service.LockoutPolicy{}
	require.False(t, policy.IsLockedOut(domain.Account{}, time.Now().UTC()))
}

func TestRecordFailedAttemptBelowThreshold(t *testing.T) {
	st := newTestStore(t)
	account := seedAccount(t, st, testEmail, testPassword)
	policy := service.LockoutPolicy{}
	now := time.Now().UTC()

	locked, err := policy.RecordFailedAttempt(t.Context(), st.Accounts(), account, now)
	require.NoError(t, err)
	require.False(t, locked)

	stored, err := st.Accounts().GetAccountByID(t.Context(), account.ID)
	require.NoError(t, err)
	require.Equal(t, 1, stored.FailedLoginAttempts)
	require.Nil(t, stored.LoginLockoutDate)
}

// A failed attempt during an active window must not move the lockout clock,
// or an attacker could hold the account locked forever.
func TestRecordFailedAttemptKeepsActiveClock(t *testing.T) {
	st := newTestStore(t)
	account := seedAccount(t, st, testEmail, testPassword)
	policy := service.LockoutPolicy{}
	now := time.Now().UTC()

	lockedAt := now.Add(-10 * time.Minute)
	require.NoError(t, st.Accounts().SetLoginLockoutDate(t.Context(), account.ID, lockedAt))
	for i := 0; i < service.DefaultLockoutThreshold; i++ {
		_, err := st.Accounts().IncrementFailedLoginAttempts(t.Context(), account.ID)
		require.NoError(t, err)
	}

	current, err := st.Accounts().GetAccountByID(t.Context(), account.ID)
	require.NoError(t, err)

	locked, err := policy.RecordFailedAttempt(t.Context(), st.Accounts(), current, now)
	require.NoError(t, err)
	require.True(t, locked)

	stored, err := st.Accounts().GetAccountByID(t.Context(), account.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.LoginLockoutDate)
	require.WithinDuration(t, lockedAt, *stored.LoginLockoutDate, time.Second)
}

// Once the window has aged out a new threshold crossing restamps the clock.
func TestRecordFailedAttemptRestampsAgedClock(t *testing.T) {
	st := newTestStore(t)
	account := seedAccount(t, st, testEmail, testPassword)
	policy := service.LockoutPolicy{}
	now := time.Now().UTC()

	lockedAt := now.Add(-45 * time.Minute)
	require.NoError(t, st.Accounts().SetLoginLockoutDate(t.Context(), account.ID, lockedAt))
	for i := 0; i < service.DefaultLockoutThreshold; i++ {
		_, err := st.Accounts().IncrementFailedLoginAttempts(t.Context(), account.ID)
		require.NoError(t, err)
	}

	current, err := st.Accounts().GetAccountByID(t.Context(), account.ID)
	require.NoError(t, err)

	locked, err := policy.RecordFailedAttempt(t.Context(), st.Accounts(), current, now)
	require.NoError(t, err)
	require.True(t, locked)

	stored, err := st.Accounts().GetAccountByID(t.Context(), account.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.LoginLockoutDate)
	require.WithinDuration(t, now, *stored.LoginLockoutDate, time.Second)
}
