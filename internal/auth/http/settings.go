package http

import (
	"net/http"

	"github.com/propcheck/inspections/internal/auth/service"
	"github.com/propcheck/inspections/pkg/authsdk"
	"github.com/propcheck/inspections/pkg/httpx"
	"github.com/propcheck/inspections/pkg/jwtx"
	"github.com/propcheck/inspections/pkg/slogx"
)

// SettingsHandler exposes the admin-only service settings.
type SettingsHandler struct {
	SettingsService *service.SettingsService
	Verifier        *jwtx.Verifier
}

// HandleForceRefresh handles POST /v1/auth/force-refresh
//
//	@Summary		Force a session refresh
//	@Description	Raises the service-wide flag that makes the next session refresh
//	@Description	re-read its account from the database. Used after bulk account
//	@Description	changes so active sessions pick them up without re-login.
//	@Tags			Admin
//	@Produce		json
//	@Success		200	{object}	authsdk.StatusResponse	"flag raised"
//	@Failure		401	{object}	authsdk.ErrorResponse	"missing or invalid session"
//	@Failure		403	{object}	authsdk.ErrorResponse	"not an admin account"
//	@Failure		500	{object}	authsdk.ErrorResponse	"internal server error"
//	@Router			/v1/auth/force-refresh [post].
func (h *SettingsHandler) HandleForceRefresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

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
	if !claims.Admin {
		httpx.WriteJSON(w, http.StatusForbidden, map[string]string{
			"error":             "forbidden",
			"error_description": "this operation requires an admin account",
		})
		return
	}

	if err := h.SettingsService.ForceSessionRefresh(ctx); err != nil {
		log.Error("failed to raise force-refresh flag", "err", err)
		authsdk.ErrServerError.WriteError(w)
		return
	}

	log.Info("force-refresh flag raised", "account_id", claims.Subject)

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, authsdk.StatusResponse{Status: "ok"})
}
