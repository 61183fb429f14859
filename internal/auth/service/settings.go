package service

import (
	"context"
	"errors"

	"github.com/propcheck/inspections/internal/auth/store"
)

// ForceRefreshAuthTokenKey is the settings key an administrator sets to "1"
// to make every session refresh cycle re-read its account from the store.
const ForceRefreshAuthTokenKey = "ForceRefreshAuthToken"

// SettingsService exposes the process-wide key/value settings. Injected into
// the session refresh routine so nothing reads ambient global state.
type SettingsService struct {
	Store store.Store
}

// Get returns the value for key, or "" when unset.
func (s *SettingsService) Get(ctx context.Context, key string) (string, error) {
	value, err := s.Store.Settings().Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return "", nil
	}
	return value, err
}

// Set upserts a value.
func (s *SettingsService) Set(ctx context.Context, key, value string) error {
	return s.Store.Settings().Set(ctx, key, value)
}

// ForceSessionRefresh raises the flag that makes the next refresh cycle of
// every session re-read its account snapshot.
func (s *SettingsService) ForceSessionRefresh(ctx context.Context) error {
	return s.Store.Settings().Set(ctx, ForceRefreshAuthTokenKey, "1")
}

// consumeForceRefresh reports whether the flag was set, clearing it if this
// caller won the clear. Concurrent refreshes may both see the flag and
// double-fetch; that is wasteful but harmless.
func (s *SettingsService) consumeForceRefresh(ctx context.Context) (bool, error) {
	value, err := s.Store.Settings().Get(ctx, ForceRefreshAuthTokenKey)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if value != "1" {
		return false, nil
	}

	if _, err := s.Store.Settings().ClearIfValue(ctx, ForceRefreshAuthTokenKey, "1"); err != nil {
		return false, err
	}
	return true, nil
}
