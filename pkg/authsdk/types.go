package authsdk

// LoginRequest is the body of POST /v1/auth/login.
type LoginRequest struct {
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=1"`
	TwoFactorCode string `json:"two_factor_code,omitempty" validate:"omitempty,numeric,len=6"`
}

// SendTwoFactorCodeRequest is the body of POST /v1/auth/2fa/send.
type SendTwoFactorCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// VerifyTOTPRequest is the body of POST /v1/auth/totp/verify.
type VerifyTOTPRequest struct {
	Code string `json:"code" validate:"required,numeric,len=6"`
}

// SessionResponse is the client-facing projection of a session. It never
// carries the password hash or any other stored secret.
type SessionResponse struct {
	AccountID string `json:"account_id"`
	Email     string `json:"email"`
	Admin     bool   `json:"admin"`
	IssuedAt  int64  `json:"issued_at"`
	ExpiresAt int64  `json:"expires_at"`
}

// TOTPEnrollResponse carries the material a client needs to register the
// account with an authenticator app.
type TOTPEnrollResponse struct {
	Secret  string `json:"secret"`
	QRCode  string `json:"qr_code"`
	Issuer  string `json:"issuer"`
	Account string `json:"account"`
}

// StatusResponse is the generic acknowledgement body.
type StatusResponse struct {
	Status string `json:"status"`
}

// ErrorResponse mirrors the error envelope for SDK-side decoding.
type ErrorResponse struct {
	Code        string `json:"error"`
	Description string `json:"error_description"`
}
