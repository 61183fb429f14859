package service

import (
	"context"
	"fmt"
	"time"

	"github.com/propcheck/inspections/internal/auth/domain"
	"github.com/propcheck/inspections/internal/auth/store"
	"github.com/propcheck/inspections/pkg/jwtx"
	"github.com/propcheck/inspections/pkg/slogx"

	"github.com/golang-jwt/jwt/v5"
)

// SessionService turns an authenticated account into a signed session token
// and runs the refresh contract: on every refresh cycle the embedded
// snapshot is re-read from the store when a login just occurred or the
// force-refresh flag is raised.
type SessionService struct {
	Store    store.Store
	Settings *SettingsService
	Signer   *jwtx.Signer
	Verifier *jwtx.Verifier
	Issuer   string
	TTL      time.Duration // zero means jwtx.DefaultSessionTTL
}

func (s *SessionService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return jwtx.DefaultSessionTTL
}

// Issue signs a fresh session token for an account that just authenticated.
// Only the snapshot fields travel; the password hash is stripped here.
func (s *SessionService) Issue(ctx context.Context, account domain.Account) (string, jwtx.SessionClaims, error) {
	snap := domain.SnapshotAccount(account)
	claims := jwtx.NewSessionClaims(
		snap.AccountID,
		snap.Email,
		snap.Admin,
		snap.EmployeeOfAccountID,
		snap.TwoFactorEnabled,
		s.Issuer,
		s.ttl(),
		time.Now().UTC(),
	)

	token, err := s.Signer.Sign(claims)
	if err != nil {
		return "", jwtx.SessionClaims{}, fmt.Errorf("session: sign: %w", err)
	}
	return token, claims, nil
}

// RefreshSnapshot verifies a session token and re-signs it, re-reading the
// account snapshot when justLoggedIn is set or the force-refresh flag was
// raised. A failed re-read falls back to the snapshot already in the token
// rather than failing the session. Issue and expiry times are preserved;
// only the snapshot and refreshed_at move.
func (s *SessionService) RefreshSnapshot(ctx context.Context, token string, justLoggedIn bool) (string, jwtx.SessionClaims, error) {
	log := slogx.FromContext(ctx)

	claims, err := s.Verifier.Verify(token)
	if err != nil {
		return "", jwtx.SessionClaims{}, err
	}

	forced := false
	if !justLoggedIn {
		forced, err = s.Settings.consumeForceRefresh(ctx)
		if err != nil {
			// The flag is an optimization; a broken settings read
			// must not kill the session.
			log.Warn("session refresh: force-refresh flag unreadable", "err", err)
		}
	}

	if justLoggedIn || forced {
		account, fetchErr := s.Store.Accounts().GetAccountByID(ctx, claims.Subject)
		if fetchErr != nil {
			log.Warn("session refresh: account re-read failed, keeping cached snapshot",
				"account_id", claims.Subject, "err", fetchErr)
		} else {
			snap := domain.SnapshotAccount(account)
			claims.Email = snap.Email
			claims.Admin = snap.Admin
			claims.EmployerID = snap.EmployeeOfAccountID
			claims.TwoFactor = snap.TwoFactorEnabled
			claims.RefreshedAt = jwt.NewNumericDate(time.Now().UTC())
		}
	}

	refreshed, err := s.Signer.Sign(claims)
	if err != nil {
		return "", jwtx.SessionClaims{}, fmt.Errorf("session: re-sign: %w", err)
	}
	return refreshed, claims, nil
}

// ProjectForClient reduces verified claims to the public session view served
// to browsers.
func (s *SessionService) ProjectForClient(claims jwtx.SessionClaims) domain.PublicSession {
	view := domain.PublicSession{
		AccountID: claims.Subject,
		Email:     claims.Email,
		Admin:     claims.Admin,
	}
	if claims.IssuedAt != nil {
		view.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		view.ExpiresAt = claims.ExpiresAt.Time
	}
	return view
}
