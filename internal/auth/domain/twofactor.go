package domain

// TOTPEnrollment is returned when an account starts authenticator-app
// enrollment. The secret is only shown once; verification enables the method.
type TOTPEnrollment struct {
	Secret  string // base32 encoded TOTP secret
	QRCode  string // otpauth:// URL for QR code generation
	Issuer  string // service name shown in the authenticator app
	Account string // account email shown in the authenticator app
}
