package sqlite_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/propcheck/inspections/internal/auth/domain"
	"github.com/propcheck/inspections/internal/auth/store"
	"github.com/propcheck/inspections/internal/auth/store/drivers/sqlite"
	"github.com/propcheck/inspections/pkg/idx"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore("file:" + filepath.Join(t.TempDir(), "store_test.db"))
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	return st
}

func createAccount(t *testing.T, st store.Store, email string) domain.Account {
	t.Helper()

	account := domain.Account{
		ID:           idx.New().String(),
		Email:        email,
		PasswordHash: "$argon2id$v=19$m=19456,t=2,p=1$c2FsdHNhbHRzYWx0c2FsdA$aGFzaGhhc2hoYXNoaGFzaGhhc2hoYXNoaGFzaGhhc2g",
	}
	require.NoError(t, st.Accounts().CreateAccount(context.Background(), account))
	return account
}

func TestAccountRoundTrip(t *testing.T) {
	st := newTestStore(t)
	account := createAccount(t, st, "owner@example.com")

	byID, err := st.Accounts().GetAccountByID(t.Context(), account.ID)
	require.NoError(t, err)
	require.Equal(t, account.Email, byID.Email)
	require.Equal(t, account.PasswordHash, byID.PasswordHash)
	require.Zero(t, byID.FailedLoginAttempts)
	require.Nil(t, byID.LoginLockoutDate)
	require.False(t, byID.TwoFactorEnabled)
	require.True(t, byID.IsAdmin())
	require.False(t, byID.CreatedAt.IsZero())

	byEmail, err := st.Accounts().GetAccountByEmail(t.Context(), "Owner@Example.com")
	require.NoError(t, err)
	require.Equal(t, account.ID, byEmail.ID)
}

func TestAccountNotFound(t *testing.T) {
	st := newTestStore(t)

	_, err := st.Accounts().GetAccountByID(t.Context(), "missing")
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = st.Accounts().GetAccountByEmail(t.Context(), "missing@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestCreateAccountDuplicateEmail(t *testing.T) {
	st := newTestStore(t)
	createAccount(t, st, "dup@example.com")

	err := st.Accounts().CreateAccount(t.Context(), domain.Account{
		ID:           idx.New().String(),
		Email:        "dup@example.com",
		PasswordHash: "x",
	})
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestEmployeeAccount(t *testing.T) {
	st := newTestStore(t)
	owner := createAccount(t, st, "boss@example.com")

	employee := domain.Account{
		ID:                  idx.New().String(),
		Email:               "worker@example.com",
		PasswordHash:        "x",
		EmployeeOfAccountID: &owner.ID,
	}
	require.NoError(t, st.Accounts().CreateAccount(t.Context(), employee))

	stored, err := st.Accounts().GetAccountByID(t.Context(), employee.ID)
	require.NoError(t, err)
	require.False(t, stored.IsAdmin())
	require.NotNil(t, stored.EmployeeOfAccountID)
	require.Equal(t, owner.ID, *stored.EmployeeOfAccountID)
}

// Concurrent failed attempts must each land; the atomic UPDATE..RETURNING
// guarantees no increment is lost to a read-modify-write race.
func TestIncrementFailedLoginAttemptsConcurrent(t *testing.T) {
	st := newTestStore(t)
	account := createAccount(t, st, "racer@example.com")

	const workers = 8
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, err := st.Accounts().IncrementFailedLoginAttempts(context.Background(), account.ID)
			require.NoError(t, err)
		}()
	}
	wg.Wait()

	stored, err := st.Accounts().GetAccountByID(t.Context(), account.ID)
	require.NoError(t, err)
	require.Equal(t, workers, stored.FailedLoginAttempts)
}

func TestIncrementReturnsNewValue(t *testing.T) {
	st := newTestStore(t)
	account := createAccount(t, st, "counter@example.com")

	for want := 1; want <= 3; want++ {
		got, err := st.Accounts().IncrementFailedLoginAttempts(t.Context(), account.ID)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	require.NoError(t, st.Accounts().ResetFailedLoginAttempts(t.Context(), account.ID))
	got, err := st.Accounts().IncrementFailedLoginAttempts(t.Context(), account.ID)
	require.NoError(t, err)
	require.Equal(t, 1, got)
}

func TestUpdatesOnMissingAccount(t *testing.T) {
	st := newTestStore(t)

	require.ErrorIs(t, st.Accounts().ResetFailedLoginAttempts(t.Context(), "missing"), store.ErrNotFound)
	require.ErrorIs(t, st.Accounts().SetLoginLockoutDate(t.Context(), "missing", time.Now()), store.ErrNotFound)
	require.ErrorIs(t, st.Accounts().SetTwoFactorEnabled(t.Context(), "missing", true), store.ErrNotFound)

	_, err := st.Accounts().IncrementFailedLoginAttempts(t.Context(), "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestLockoutDatePersists(t *testing.T) {
	st := newTestStore(t)
	account := createAccount(t, st, "locked@example.com")
	at := time.Now().UTC().Truncate(time.Second)

	require.NoError(t, st.Accounts().SetLoginLockoutDate(t.Context(), account.ID, at))

	stored, err := st.Accounts().GetAccountByID(t.Context(), account.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.LoginLockoutDate)
	require.WithinDuration(t, at, *stored.LoginLockoutDate, time.Second)
}

func TestTwoFactorCodeLifecycle(t *testing.T) {
	st := newTestStore(t)
	account := createAccount(t, st, "codes@example.com")
	expiry := time.Now().UTC().Add(10 * time.Minute)

	require.NoError(t, st.Accounts().SetTwoFactorCode(t.Context(), account.ID, "123456", expiry))

	stored, err := st.Accounts().GetAccountByID(t.Context(), account.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.TwoFactorCode)
	require.Equal(t, "123456", *stored.TwoFactorCode)
	require.NotNil(t, stored.TwoFactorCodeExpiry)
	require.WithinDuration(t, expiry, *stored.TwoFactorCodeExpiry, time.Second)

	require.NoError(t, st.Accounts().ClearTwoFactorCode(t.Context(), account.ID))
	stored, err = st.Accounts().GetAccountByID(t.Context(), account.ID)
	require.NoError(t, err)
	require.Nil(t, stored.TwoFactorCode)
	require.Nil(t, stored.TwoFactorCodeExpiry)
}

func TestDeleteExpiredTwoFactorCodes(t *testing.T) {
	st := newTestStore(t)
	now := time.Now().UTC()

	expired := createAccount(t, st, "stale@example.com")
	require.NoError(t, st.Accounts().SetTwoFactorCode(t.Context(), expired.ID, "111111", now.Add(-time.Minute)))
	fresh := createAccount(t, st, "fresh@example.com")
	require.NoError(t, st.Accounts().SetTwoFactorCode(t.Context(), fresh.ID, "222222", now.Add(10*time.Minute)))

	require.NoError(t, st.Accounts().DeleteExpiredTwoFactorCodes(t.Context()))

	stored, err := st.Accounts().GetAccountByID(t.Context(), expired.ID)
	require.NoError(t, err)
	require.Nil(t, stored.TwoFactorCode)

	stored, err = st.Accounts().GetAccountByID(t.Context(), fresh.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.TwoFactorCode)
}

func TestClearAgedLockouts(t *testing.T) {
	st := newTestStore(t)
	now := time.Now().UTC()

	aged := createAccount(t, st, "aged@example.com")
	require.NoError(t, st.Accounts().SetLoginLockoutDate(t.Context(), aged.ID, now.Add(-time.Hour)))
	active := createAccount(t, st, "active@example.com")
	require.NoError(t, st.Accounts().SetLoginLockoutDate(t.Context(), active.ID, now.Add(-5*time.Minute)))

	require.NoError(t, st.Accounts().ClearAgedLockouts(t.Context(), now.Add(-30*time.Minute)))

	stored, err := st.Accounts().GetAccountByID(t.Context(), aged.ID)
	require.NoError(t, err)
	require.Nil(t, stored.LoginLockoutDate)

	stored, err = st.Accounts().GetAccountByID(t.Context(), active.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.LoginLockoutDate)
}

func TestIsEmpty(t *testing.T) {
	st := newTestStore(t)

	empty, err := st.Accounts().IsEmpty(t.Context())
	require.NoError(t, err)
	require.True(t, empty)

	createAccount(t, st, "first@example.com")
	empty, err = st.Accounts().IsEmpty(t.Context())
	require.NoError(t, err)
	require.False(t, empty)
}

func TestSettings(t *testing.T) {
	st := newTestStore(t)

	_, err := st.Settings().Get(t.Context(), "missing")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, st.Settings().Set(t.Context(), "flag", "1"))
	value, err := st.Settings().Get(t.Context(), "flag")
	require.NoError(t, err)
	require.Equal(t, "1", value)

	// Upsert overwrites.
	require.NoError(t, st.Settings().Set(t.Context(), "flag", "2"))
	value, err = st.Settings().Get(t.Context(), "flag")
	require.NoError(t, err)
	require.Equal(t, "2", value)
}

func TestSettingsClearIfValue(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.Settings().Set(t.Context(), "flag", "1"))

	cleared, err := st.Settings().ClearIfValue(t.Context(), "flag", "other")
	require.NoError(t, err)
	require.False(t, cleared)

	cleared, err = st.Settings().ClearIfValue(t.Context(), "flag", "1")
	require.NoError(t, err)
	require.True(t, cleared)

	value, err := st.Settings().Get(t.Context(), "flag")
	require.NoError(t, err)
	require.Empty(t, value)

	// Second clear finds nothing to do.
	cleared, err = st.Settings().ClearIfValue(t.Context(), "flag", "1")
	require.NoError(t, err)
	require.False(t, cleared)
}

func TestWithTxCommitAndRollback(t *testing.T) {
	st := newTestStore(t)
	account := createAccount(t, st, "tx@example.com")

	err := st.WithTx(t.Context(), func(tx store.Tx) error {
		return tx.Accounts().SetTwoFactorEnabled(context.Background(), account.ID, true)
	})
	require.NoError(t, err)

	stored, err := st.Accounts().GetAccountByID(t.Context(), account.ID)
	require.NoError(t, err)
	require.True(t, stored.TwoFactorEnabled)

	wantErr := store.ErrNotFound
	err = st.WithTx(t.Context(), func(tx store.Tx) error {
		if err := tx.Accounts().SetTwoFactorEnabled(context.Background(), account.ID, false); err != nil {
			return err
		}
		return wantErr
	})
	require.ErrorIs(t, err, wantErr)

	stored, err = st.Accounts().GetAccountByID(t.Context(), account.ID)
	require.NoError(t, err)
	require.True(t, stored.TwoFactorEnabled, "rolled-back write must not stick")
}
