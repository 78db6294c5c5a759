package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/avelichko/petbook/internal/client/models"
	"github.com/avelichko/petbook/internal/common"
)

// Login exchanges credentials for a token pair and user record. The backend
// expects form encoding here, unlike the JSON used everywhere else.
func (c *Client) Login(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", common.ErrValidation)
	}

	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var resp models.LoginResponse
	if err := c.postForm(ctx, "/auth/login", form, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	City        string `json:"city,omitempty"`
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	if req.Email == "" || req.Password == "" {
		return fmt.Errorf("%w: email and password are required", common.ErrValidation)
	}
	return c.sendJSON(ctx, http.MethodPost, "/auth/register", req, nil)
}

func (c *Client) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("%w: verification token is required", common.ErrValidation)
	}
	return c.sendJSON(ctx, http.MethodPost, "/auth/verify-email?token="+url.QueryEscape(token), nil, nil)
}

func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", common.ErrValidation)
	}
	body := map[string]string{"email": email}
	return c.sendJSON(ctx, http.MethodPost, "/auth/password-reset-request", body, nil)
}

func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" || newPassword == "" {
		return fmt.Errorf("%w: token and new password are required", common.ErrValidation)
	}
	body := map[string]string{"token": token, "new_password": newPassword}
	return c.sendJSON(ctx, http.MethodPost, "/auth/reset-password", body, nil)
}

// RefreshToken trades the refresh token for a new access token. Identity
// fields never travel on this call.
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	body := map[string]string{"refresh_token": refreshToken}
	var resp models.RefreshResponse
	if err := c.sendJSON(ctx, http.MethodPost, "/auth/refresh", body, &resp); err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}
