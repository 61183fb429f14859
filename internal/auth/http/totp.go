package http

import (
	"errors"
	"net/http"

	"github.com/propcheck/inspections/internal/auth/service"
	"github.com/propcheck/inspections/pkg/authsdk"
	"github.com/propcheck/inspections/pkg/httpx"
	"github.com/propcheck/inspections/pkg/jwtx"
	"github.com/propcheck/inspections/pkg/slogx"
)

// TOTPHandler manages authenticator-app enrollment for the logged-in account.
type TOTPHandler struct {
	TOTPService *service.TOTPService
	Verifier    *jwtx.Verifier
}

// accountID authenticates the request via the session cookie and returns
// the account ID, or writes an error response and returns false.
func (h *TOTPHandler) accountID(w http.ResponseWriter, r *http.Request) (string, bool) {
	token, ok := sessionToken(r)
	if !ok {
		authsdk.ErrInvalidSession.WriteError(w)
		return "", false
	}
	claims, err := h.Verifier.Verify(token)
	if err != nil {
		authsdk.ErrInvalidSession.WriteError(w)
		return "", false
	}
	return claims.Subject, true
}

// HandleEnroll handles POST /v1/auth/totp/enroll
//
//	@Summary		Enroll an authenticator app
//	@Description	Generates a TOTP secret for the account and returns it with a QR
//	@Description	code. Codes from the app only count once enrollment is verified.
//	@Tags			TOTP
//	@Produce		json
//	@Success		200	{object}	authsdk.TOTPEnrollResponse	"TOTP secret and QR code"
//	@Failure		401	{object}	authsdk.ErrorResponse		"missing or invalid session"
//	@Failure		409	{object}	authsdk.ErrorResponse		"already enrolled"
//	@Failure		500	{object}	authsdk.ErrorResponse		"internal server error"
//	@Router			/v1/auth/totp/enroll [post].
func (h *TOTPHandler) HandleEnroll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	accountID, ok := h.accountID(w, r)
	if !ok {
		return
	}

	enrollment, err := h.TOTPService.Enroll(ctx, accountID)
	if err != nil {
		if errors.Is(err, service.ErrTOTPAlreadyEnrolled) {
			httpx.WriteJSON(w, http.StatusConflict, map[string]string{
				"error":             "totp_already_enrolled",
				"error_description": "an authenticator app is already enrolled for this account",
			})
			return
		}
		log.Error("failed to enroll TOTP", "account_id", accountID, "err", err)
		authsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, authsdk.TOTPEnrollResponse{
		Secret:  enrollment.Secret,
		QRCode:  enrollment.QRCode,
		Issuer:  enrollment.Issuer,
		Account: enrollment.Account,
	})
}

// HandleVerify handles POST /v1/auth/totp/verify
//
//	@Summary		Verify authenticator enrollment
//	@Description	Confirms a code from the authenticator app and turns two-factor on
//	@Description	for the account.
//	@Tags			TOTP
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.VerifyTOTPRequest	true	"authenticator code"
//	@Success		200		{object}	authsdk.StatusResponse		"two-factor enabled"
//	@Failure		400		{object}	authsdk.ErrorResponse		"invalid code or request"
//	@Failure		401		{object}	authsdk.ErrorResponse		"missing or invalid session"
//	@Failure		500		{object}	authsdk.ErrorResponse		"internal server error"
//	@Router			/v1/auth/totp/verify [post].
func (h *TOTPHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	accountID, ok := h.accountID(w, r)
	if !ok {
		return
	}

	var req authsdk.VerifyTOTPRequest
	if apiErr := decodeAndValidate(r, &req); apiErr != nil {
		apiErr.WriteError(w)
		return
	}

	if err := h.TOTPService.Verify(ctx, accountID, req.Code); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidTOTPCode):
			authsdk.ErrInvalid2FACode.WriteError(w)
		case errors.Is(err, service.ErrTOTPNotEnrolled):
			httpx.WriteJSON(w, http.StatusBadRequest, map[string]string{
				"error":             "totp_not_enrolled",
				"error_description": "no authenticator app enrollment is pending",
			})
		default:
			log.Error("failed to verify TOTP", "account_id", accountID, "err", err)
			authsdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, authsdk.StatusResponse{Status: "ok"})
}

// HandleRemove handles POST /v1/auth/totp/remove
//
//	@Summary		Remove authenticator enrollment
//	@Description	Removes the authenticator app secret after confirming a current
//	@Description	code. Emailed one-time codes keep working if two-factor stays on.
//	@Tags			TOTP
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.VerifyTOTPRequest	true	"authenticator code"
//	@Success		200		{object}	authsdk.StatusResponse		"enrollment removed"
//	@Failure		400		{object}	authsdk.ErrorResponse		"invalid code or request"
//	@Failure		401		{object}	authsdk.ErrorResponse		"missing or invalid session"
//	@Failure		500		{object}	authsdk.ErrorResponse		"internal server error"
//	@Router			/v1/auth/totp/remove [post].
func (h *TOTPHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	accountID, ok := h.accountID(w, r)
	if !ok {
		return
	}

	var req authsdk.VerifyTOTPRequest
	if apiErr := decodeAndValidate(r, &req); apiErr != nil {
		apiErr.WriteError(w)
		return
	}

	if err := h.TOTPService.Remove(ctx, accountID, req.Code); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidTOTPCode):
			authsdk.ErrInvalid2FACode.WriteError(w)
		case errors.Is(err, service.ErrTOTPNotEnrolled):
			httpx.WriteJSON(w, http.StatusBadRequest, map[string]string{
				"error":             "totp_not_enrolled",
				"error_description": "no authenticator app is enrolled for this account",
			})
		default:
			log.Error("failed to remove TOTP", "account_id", accountID, "err", err)
			authsdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, authsdk.StatusResponse{Status: "ok"})
}
