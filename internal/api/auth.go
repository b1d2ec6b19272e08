package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/getlisted/getlisted-go/internal/apierr"
	"github.com/getlisted/getlisted-go/internal/types"
)

// Me retrieves the user behind the bearer token (session restore).
func Me(ctx context.Context, httpClient HTTPClient, baseURL string) (*types.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/me", baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, apierr.FromTransport("restore session", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError("restore session", resp)
	}

	var ur types.UserResponse
	if err := json.NewDecoder(resp.Body).Decode(&ur); err != nil {
		return nil, err
	}
	return &ur.Data, nil
}

// Register creates a new account. It does not authenticate the caller; the
// server gates login behind email verification.
func Register(ctx context.Context, httpClient HTTPClient, baseURL string, req types.RegisterRequest) (*types.StatusResponse, error) {
	return postStatus(ctx, httpClient, "register", fmt.Sprintf("%s/auth/register", baseURL), req)
}

// Login exchanges credentials for a bearer token and the user record.
func Login(ctx context.Context, httpClient HTTPClient, baseURL, email, password string) (*types.AuthResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	body, err := json.Marshal(types.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/auth/login", baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, apierr.FromTransport("login", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError("login", resp)
	}

	var ar types.AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&ar); err != nil {
		return nil, err
	}
	return &ar, nil
}

// Logout tells the server to invalidate the session. Callers treat failure
// as best-effort; local teardown proceeds regardless.
func Logout(ctx context.Context, httpClient HTTPClient, baseURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	u := fmt.Sprintf("%s/auth/logout", baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return apierr.FromTransport("logout", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return statusError("logout", resp)
	}
	return nil
}

// ForgotPassword asks the server to mail a password-reset link.
func ForgotPassword(ctx context.Context, httpClient HTTPClient, baseURL, email string) (*types.StatusResponse, error) {
	return postStatus(ctx, httpClient, "forgot password", fmt.Sprintf("%s/auth/forgot-password", baseURL), types.ForgotPasswordRequest{Email: email})
}

// ResetPassword sets a new password using the emailed reset token and
// returns a fresh authenticated session.
func ResetPassword(ctx context.Context, httpClient HTTPClient, baseURL, token, password string) (*types.AuthResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if token == "" {
		return nil, apierr.Validation("reset password", "reset token is required")
	}
	body, err := json.Marshal(types.ResetPasswordRequest{Password: password})
	if err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/auth/reset-password/%s", baseURL, url.PathEscape(token))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPut, u, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, apierr.FromTransport("reset password", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError("reset password", resp)
	}

	var ar types.AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&ar); err != nil {
		return nil, err
	}
	return &ar, nil
}

// VerifyEmail confirms an address using the emailed verification token.
// There is no authentication side effect.
func VerifyEmail(ctx context.Context, httpClient HTTPClient, baseURL, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if token == "" {
		return apierr.Validation("verify email", "verification token is required")
	}
	u := fmt.Sprintf("%s/auth/verify/%s", baseURL, url.PathEscape(token))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return apierr.FromTransport("verify email", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return statusError("verify email", resp)
	}
	return nil
}

// UpdateProfile applies a partial update to the current user's details and
// returns the updated record.
func UpdateProfile(ctx context.Context, httpClient HTTPClient, baseURL string, req types.UpdateProfileRequest) (*types.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/auth/update-details", baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPut, u, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, apierr.FromTransport("update profile", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError("update profile", resp)
	}

	var ur types.UserResponse
	if err := json.NewDecoder(resp.Body).Decode(&ur); err != nil {
		return nil, err
	}
	return &ur.Data, nil
}

// UpdatePassword changes the password for the authenticated user.
func UpdatePassword(ctx context.Context, httpClient HTTPClient, baseURL, currentPassword, newPassword string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := json.Marshal(types.UpdatePasswordRequest{CurrentPassword: currentPassword, NewPassword: newPassword})
	if err != nil {
		return err
	}
	u := fmt.Sprintf("%s/auth/update-password", baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPut, u, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return apierr.FromTransport("update password", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return statusError("update password", resp)
	}
	return nil
}

// postStatus POSTs a JSON body and decodes the acknowledgement envelope.
func postStatus(ctx context.Context, httpClient HTTPClient, operation, u string, payload any) (*types.StatusResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, apierr.FromTransport(operation, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, statusError(operation, resp)
	}

	var sr types.StatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, err
	}
	return &sr, nil
}
