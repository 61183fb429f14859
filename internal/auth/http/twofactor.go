package http

import (
	"errors"
	"net/http"

	"github.com/propcheck/inspections/internal/auth/service"
	"github.com/propcheck/inspections/pkg/authsdk"
	"github.com/propcheck/inspections/pkg/httpx"
	"github.com/propcheck/inspections/pkg/slogx"
)

// TwoFactorHandler issues emailed one-time codes.
type TwoFactorHandler struct {
	TwoFactorService *service.TwoFactorService
}

// HandleSend handles POST /v1/auth/2fa/send
//
//	@Summary		Send a two-factor code
//	@Description	Generates a fresh 6-digit code for the account and emails it.
//	@Description	The response is identical whether or not the email is registered,
//	@Description	so the endpoint cannot be used to enumerate accounts.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.SendTwoFactorCodeRequest	true	"account email"
//	@Success		200		{object}	authsdk.StatusResponse				"code sent if the account exists"
//	@Failure		400		{object}	authsdk.ErrorResponse				"malformed request"
//	@Failure		503		{object}	authsdk.ErrorResponse				"code could not be delivered"
//	@Router			/v1/auth/2fa/send [post].
func (h *TwoFactorHandler) HandleSend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.SendTwoFactorCodeRequest
	if apiErr := decodeAndValidate(r, &req); apiErr != nil {
		apiErr.WriteError(w)
		return
	}

	err := h.TwoFactorService.GenerateCode(ctx, req.Email)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrInvalidCredentials):
		// Unknown email gets the same acknowledgement as a known one.
		log.Warn("2fa code requested for unknown email")
	case errors.Is(err, service.ErrCodeDeliveryFailed):
		log.Error("2fa code delivery failed", "err", err)
		authsdk.Err2FADeliveryFailed.WriteError(w)
		return
	default:
		log.Error("failed to generate 2fa code", "err", err)
		authsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, authsdk.StatusResponse{Status: "ok"})
}
