package http

import (
	"net/http"

	"github.com/propcheck/inspections/internal/auth/service"
	"github.com/propcheck/inspections/pkg/authsdk"
	"github.com/propcheck/inspections/pkg/httpx"
	"github.com/propcheck/inspections/pkg/jwtx"
	"github.com/propcheck/inspections/pkg/slogx"
)

// SessionHandler serves the current session and its refresh cycle.
type SessionHandler struct {
	SessionService *service.SessionService
	Verifier       *jwtx.Verifier
	Cookies        CookieConfig
}

// HandleRefresh handles POST /v1/auth/refresh
//
//	@Summary		Refresh the session token
//	@Description	Re-signs the session with a fresh account snapshot when a refresh
//	@Description	has been forced service-wide, otherwise re-signs the cached snapshot.
//	@Description	Token lifetime is unchanged; a refresh never extends the session.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	authsdk.SessionResponse	"refreshed session"
//	@Failure		401	{object}	authsdk.ErrorResponse	"missing, invalid or expired session"
//	@Router			/v1/auth/refresh [post].
func (h *SessionHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	token, ok := sessionToken(r)
	if !ok {
		authsdk.ErrInvalidSession.WriteError(w)
		return
	}

	refreshed, claims, err := h.SessionService.RefreshSnapshot(ctx, token, false)
	if err != nil {
		log.Warn("session refresh rejected", "err", err)
		clearSessionCookie(w, h.Cookies)
		authsdk.ErrInvalidSession.WriteError(w)
		return
	}

	setSessionCookie(w, h.Cookies, refreshed)
	writeSession(w, h.SessionService.ProjectForClient(claims))
}

// HandleGet handles GET /v1/auth/session
//
//	@Summary		Get the current session
//	@Description	Returns the public projection of the session cookie. The projection
//	@Description	never includes stored credentials or internal account linkage.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	authsdk.SessionResponse	"current session"
//	@Failure		401	{object}	authsdk.ErrorResponse	"missing, invalid or expired session"
//	@Router			/v1/auth/session [get].
func (h *SessionHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	token, ok := sessionToken(r)
	if !ok {
		authsdk.ErrInvalidSession.WriteError(w)
		return
	}

	claims, err := h.Verifier.Verify(token)
	if err != nil {
		authsdk.ErrInvalidSession.WriteError(w)
		return
	}

	writeSession(w, h.SessionService.ProjectForClient(claims))
}

// HandleLogout handles POST /v1/auth/logout
//
//	@Summary		Log out
//	@Description	Expires the session cookie. The token itself simply ages out.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	authsdk.StatusResponse	"session cleared"
//	@Router			/v1/auth/logout [post].
func (h *SessionHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w, h.Cookies)
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, authsdk.StatusResponse{Status: "ok"})
}
