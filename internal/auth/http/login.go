package http

import (
	"errors"
	"net/http"

	"github.com/propcheck/inspections/internal/auth/domain"
	"github.com/propcheck/inspections/internal/auth/service"
	"github.com/propcheck/inspections/pkg/authsdk"
	"github.com/propcheck/inspections/pkg/httpx"
	"github.com/propcheck/inspections/pkg/slogx"
)

// LoginHandler handles credential logins.
type LoginHandler struct {
	AuthService    *service.AuthService
	SessionService *service.SessionService
	Cookies        CookieConfig
}

// Handle handles POST /v1/auth/login
//
//	@Summary		Log in with email and password
//	@Description	Verifies the credentials, enforces the lockout policy and, when the
//	@Description	account has two-factor enabled, requires a one-time code. On success a
//	@Description	signed session cookie is set and the session projection is returned.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.LoginRequest	true	"login credentials"
//	@Success		200		{object}	authsdk.SessionResponse	"session established"
//	@Failure		400		{object}	authsdk.ErrorResponse	"malformed request"
//	@Failure		401		{object}	authsdk.ErrorResponse	"invalid credentials or two-factor code"
//	@Failure		403		{object}	authsdk.ErrorResponse	"account locked out"
//	@Failure		409		{object}	authsdk.ErrorResponse	"two-factor code required"
//	@Failure		500		{object}	authsdk.ErrorResponse	"internal server error"
//	@Router			/v1/auth/login [post].
func (h *LoginHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.LoginRequest
	if apiErr := decodeAndValidate(r, &req); apiErr != nil {
		apiErr.WriteError(w)
		return
	}

	account, err := h.AuthService.Authenticate(ctx, service.LoginAttempt{
		Email:         req.Email,
		Password:      req.Password,
		TwoFactorCode: req.TwoFactorCode,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			log.Warn("login rejected", "reason", "invalid_credentials")
			authsdk.ErrInvalidCredentials.WriteError(w)
		case errors.Is(err, service.ErrLockedOut):
			log.Warn("login rejected", "reason", "user_locked_out")
			authsdk.ErrUserLockedOut.WriteError(w)
		case errors.Is(err, service.ErrTwoFactorRequired):
			authsdk.ErrTwoFactorRequired.WriteError(w)
		case errors.Is(err, service.ErrInvalidTwoFactorCode):
			log.Warn("login rejected", "reason", "invalid_2fa_code")
			authsdk.ErrInvalid2FACode.WriteError(w)
		default:
			log.Error("login failed", "err", err)
			authsdk.ErrServerError.WriteError(w)
		}
		return
	}

	token, claims, err := h.SessionService.Issue(ctx, account)
	if err != nil {
		log.Error("failed to issue session", "account_id", account.ID, "err", err)
		authsdk.ErrServerError.WriteError(w)
		return
	}

	log.Info("login succeeded", "account_id", account.ID)

	setSessionCookie(w, h.Cookies, token)
	writeSession(w, h.SessionService.ProjectForClient(claims))
}

// writeSession serialises the public session view as a SessionResponse.
func writeSession(w http.ResponseWriter, s domain.PublicSession) {
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, authsdk.SessionResponse{
		AccountID: s.AccountID,
		Email:     s.Email,
		Admin:     s.Admin,
		IssuedAt:  s.IssuedAt.Unix(),
		ExpiresAt: s.ExpiresAt.Unix(),
	})
}
