package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/propcheck/inspections/internal/auth/store"
)

// HousekeepingService periodically clears expired two-factor codes and
// lockout dates that have aged past the window, keeping the accounts table
// from carrying stale secrets.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a housekeeping worker; a non-positive
// interval defaults to one hour.
func NewHousekeepingService(st store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}

	return &HousekeepingService{
		Store:    st,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background worker. Non-blocking; call Stop to shut down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop shuts the worker down, blocking until any in-progress sweep finishes.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Sweep immediately on startup.
	s.sweep()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopCh:
			return
		}
	}
}

// sweep runs the cleanups independently; one failing doesn't stop the other.
func (s *HousekeepingService) sweep() {
	ctx := context.Background()

	if err := s.Store.Accounts().DeleteExpiredTwoFactorCodes(ctx); err != nil {
		s.Logger.Error("failed to clear expired two-factor codes", "error", err)
	}

	cutoff := time.Now().UTC().Add(-LockoutWindowMinutes * time.Minute)
	if err := s.Store.Accounts().ClearAgedLockouts(ctx, cutoff); err != nil {
		s.Logger.Error("failed to clear aged lockouts", "error", err)
	}

	s.Logger.Debug("housekeeping sweep completed")
}
