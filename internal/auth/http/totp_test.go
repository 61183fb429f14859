package http_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"

	"github.com/propcheck/inspections/pkg/authsdk"
)

func TestTOTPEnrollVerifyLoginRemove(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount(t, testEmail, nil)
	client := authsdk.NewSDKClient(env.server.URL)

	_, err := client.Login(t.Context(), authsdk.LoginRequest{
		Email:    testEmail,
		Password: testPassword,
	})
	require.NoError(t, err)

	enrollment, err := client.EnrollTOTP(t.Context())
	require.NoError(t, err)
	require.NotEmpty(t, enrollment.Secret)
	require.Contains(t, enrollment.QRCode, "otpauth://")

	code, err := totp.GenerateCode(enrollment.Secret, time.Now())
	require.NoError(t, err)
	require.NoError(t, client.VerifyTOTP(t.Context(), code))

	// Two-factor is on now: a bare password login gets challenged, and an
	// authenticator code satisfies the challenge.
	fresh := authsdk.NewSDKClient(env.server.URL)
	_, err = fresh.Login(t.Context(), authsdk.LoginRequest{
		Email:    testEmail,
		Password: testPassword,
	})
	apiErr := asAPIError(t, err)
	require.Equal(t, authsdk.ErrorCodeTwoFactorRequired, apiErr.Code)

	code, err = totp.GenerateCode(enrollment.Secret, time.Now())
	require.NoError(t, err)
	_, err = fresh.Login(t.Context(), authsdk.LoginRequest{
		Email:         testEmail,
		Password:      testPassword,
		TwoFactorCode: code,
	})
	require.NoError(t, err)

	code, err = totp.GenerateCode(enrollment.Secret, time.Now())
	require.NoError(t, err)
	require.NoError(t, fresh.RemoveTOTP(t.Context(), code))
}

func TestTOTPEndpointsRequireSession(t *testing.T) {
	env := newTestEnv(t)
	client := authsdk.NewSDKClient(env.server.URL)

	_, err := client.EnrollTOTP(t.Context())
	apiErr := asAPIError(t, err)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Equal(t, authsdk.ErrorCodeInvalidSession, apiErr.Code)
}

func TestTOTPVerifyWrongCode(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount(t, testEmail, nil)
	client := authsdk.NewSDKClient(env.server.URL)

	_, err := client.Login(t.Context(), authsdk.LoginRequest{
		Email:    testEmail,
		Password: testPassword,
	})
	require.NoError(t, err)

	_, err = client.EnrollTOTP(t.Context())
	require.NoError(t, err)

	err = client.VerifyTOTP(t.Context(), "000000")
	apiErr := asAPIError(t, err)
	require.Equal(t, authsdk.ErrorCodeInvalid2FACode, apiErr.Code)
}
