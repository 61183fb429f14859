package service

import (
	"context"
	"time"

	"github.com/propcheck/inspections/internal/auth/domain"
	"github.com/propcheck/inspections/internal/auth/store"
)

const (
	// DefaultLockoutThreshold is the failed-attempt count that triggers a
	// lockout. Configurable; the window semantics are fixed.
	DefaultLockoutThreshold = 5

	// LockoutWindowMinutes is how long a triggered lockout holds. The
	// check runs at minute granularity: locked while the elapsed whole
	// minutes are under the window.
	LockoutWindowMinutes = 30
)

// LockoutPolicy enforces the timed account lockout. At most one lockout
// clock is active per account; a failed attempt during an active window
// never moves it.
type LockoutPolicy struct {
	Threshold int // zero means DefaultLockoutThreshold
}

func (p LockoutPolicy) threshold() int {
	if p.Threshold > 0 {
		return p.Threshold
	}
	return DefaultLockoutThreshold
}

// IsLockedOut reports whether the account's lockout window is still active
// at now. Minute granularity: 29 whole minutes elapsed is locked, 30 is not.
func (p LockoutPolicy) IsLockedOut(account domain.Account, now time.Time) bool {
	if account.LoginLockoutDate == nil {
		return false
	}

	elapsed := int(now.Sub(*account.LoginLockoutDate).Minutes())
	return elapsed < LockoutWindowMinutes
}

// RecordFailedAttempt increments the counter atomically and stamps the
// lockout clock when the new count reaches the threshold, unless a window is
// already active at now (the clock never moves mid-window). Returns whether
// this attempt locked the account.
func (p LockoutPolicy) RecordFailedAttempt(
	ctx context.Context,
	accounts store.Accounts,
	account domain.Account,
	now time.Time,
) (bool, error) {
	attempts, err := accounts.IncrementFailedLoginAttempts(ctx, account.ID)
	if err != nil {
		return false, err
	}

	if attempts < p.threshold() {
		return false, nil
	}
	if p.IsLockedOut(account, now) {
		// Already locked; leave the clock where it is.
		return true, nil
	}

	if err := accounts.SetLoginLockoutDate(ctx, account.ID, now); err != nil {
		return false, err
	}
	return true, nil
}
