package authsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
)

// SDKClient is a client for the inspections authentication service. It keeps
// the session cookie in its jar, so a Login followed by GetSession or
// RefreshSession behaves like a browser would.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a new auth service client with a cookie jar.
func NewSDKClient(baseURL string) *SDKClient {
	jar, _ := cookiejar.New(nil)
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
			Jar:     jar,
		},
	}
}

// Login attempts a credential login. When the account has two-factor
// enabled and no code was supplied, the typed *APIError carries
// ErrorCodeTwoFactorRequired so callers can prompt for a code and retry.
func (c *SDKClient) Login(ctx context.Context, req LoginRequest) (*SessionResponse, error) {
	var out SessionResponse
	if err := c.postJSON(ctx, "/v1/auth/login", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// SendTwoFactorCode asks the service to email a fresh one-time code.
func (c *SDKClient) SendTwoFactorCode(ctx context.Context, email string) error {
	var out StatusResponse
	return c.postJSON(ctx, "/v1/auth/2fa/send", SendTwoFactorCodeRequest{Email: email}, &out, http.StatusOK)
}

// RefreshSession exchanges the current session cookie for a fresh one.
func (c *SDKClient) RefreshSession(ctx context.Context) (*SessionResponse, error) {
	var out SessionResponse
	if err := c.postJSON(ctx, "/v1/auth/refresh", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetSession returns the client projection of the current session.
func (c *SDKClient) GetSession(ctx context.Context) (*SessionResponse, error) {
	var out SessionResponse
	if err := c.getJSON(ctx, "/v1/auth/session", &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout clears the session cookie server-side.
func (c *SDKClient) Logout(ctx context.Context) error {
	var out StatusResponse
	return c.postJSON(ctx, "/v1/auth/logout", nil, &out, http.StatusOK)
}

// ForceRefresh raises the service-wide flag that makes the next session
// refresh re-read account state. Requires an admin session.
func (c *SDKClient) ForceRefresh(ctx context.Context) error {
	var out StatusResponse
	return c.postJSON(ctx, "/v1/auth/force-refresh", nil, &out, http.StatusOK)
}

// EnrollTOTP begins authenticator-app enrollment for the logged-in account.
func (c *SDKClient) EnrollTOTP(ctx context.Context) (*TOTPEnrollResponse, error) {
	var out TOTPEnrollResponse
	if err := c.postJSON(ctx, "/v1/auth/totp/enroll", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyTOTP confirms enrollment with a code from the authenticator app.
func (c *SDKClient) VerifyTOTP(ctx context.Context, code string) error {
	var out StatusResponse
	return c.postJSON(ctx, "/v1/auth/totp/verify", VerifyTOTPRequest{Code: code}, &out, http.StatusOK)
}

// RemoveTOTP removes the authenticator-app enrollment after confirming a
// current code.
func (c *SDKClient) RemoveTOTP(ctx context.Context, code string) error {
	var out StatusResponse
	return c.postJSON(ctx, "/v1/auth/totp/remove", VerifyTOTPRequest{Code: code}, &out, http.StatusOK)
}

func (c *SDKClient) postJSON(ctx context.Context, path string, body, target any, expectedStatus int) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	return decodeJSON(resp, target, expectedStatus)
}

func (c *SDKClient) getJSON(ctx context.Context, path string, target any, expectedStatus int) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	return decodeJSON(resp, target, expectedStatus)
}

// decodeJSON decodes a JSON response into target, or returns a typed
// *APIError when the response carries an error envelope.
func decodeJSON(resp *http.Response, target any, expectedStatus int) error {
	defer resp.Body.Close()

	if resp.StatusCode != expectedStatus {
		var apiErr ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil || apiErr.Code == "" {
			return fmt.Errorf("unexpected status %d", resp.StatusCode)
		}
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        apiErr.Code,
			Description: apiErr.Description,
		}
	}

	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
