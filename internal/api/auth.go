package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"
)

type registerRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginRequest struct {
	Identity string `json:"identity"`
	Password string `json:"password"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// Register creates a new account. The account must verify its email address
// before it can log in.
func (c *Client) Register(ctx context.Context, email, username, password string) (*RegisterResponse, error) {
	var out RegisterResponse
	err := c.do(ctx, http.MethodPost, "/auth/register", nil, "", registerRequest{
		Email:    email,
		Username: username,
		Password: password,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Login exchanges credentials for a bearer token. The identity may be a
// username or an email address. A rejection caused by a pending email
// verification is reported as EmailUnverified.
func (c *Client) Login(ctx context.Context, identity, password string) (*AuthResponse, error) {
	var out AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", nil, "", loginRequest{
		Identity: identity,
		Password: password,
	}, &out)
	if err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusForbidden && isUnverifiedMessage(apiErr.Message) {
			apiErr.Category = EmailUnverified
		}
		return nil, err
	}
	return &out, nil
}

// Logout invalidates the session behind the given token on the server.
// Clearing local state is the caller's responsibility and must happen even
// when this call fails.
func (c *Client) Logout(ctx context.Context, token string) (*MessageResponse, error) {
	var out MessageResponse
	if err := c.do(ctx, http.MethodPost, "/auth/logout", nil, token, struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyEmail redeems an email verification token. The user still has to log
// in afterwards.
func (c *Client) VerifyEmail(ctx context.Context, token string) (*MessageResponse, error) {
	query := url.Values{"token": {token}}
	var out MessageResponse
	if err := c.do(ctx, http.MethodGet, "/auth/verify-email", query, "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ForgotPassword asks the server to send a password reset email.
func (c *Client) ForgotPassword(ctx context.Context, email string) (*MessageResponse, error) {
	var out MessageResponse
	if err := c.do(ctx, http.MethodPost, "/auth/forgot-password", nil, "", forgotPasswordRequest{Email: email}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResetPassword sets a new password using a reset token from the email flow.
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) (*MessageResponse, error) {
	var out MessageResponse
	err := c.do(ctx, http.MethodPost, "/auth/reset-password", nil, "", resetPasswordRequest{
		Token:       token,
		NewPassword: newPassword,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ChangePassword changes the password of the authenticated user. The server
// invalidates the current session on success.
func (c *Client) ChangePassword(ctx context.Context, token, currentPassword, newPassword string) (*MessageResponse, error) {
	if token == "" {
		return nil, ErrNotAuthenticated
	}
	var out MessageResponse
	err := c.do(ctx, http.MethodPost, "/auth/change-password", nil, token, changePasswordRequest{
		CurrentPassword: currentPassword,
		NewPassword:     newPassword,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
