package api

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// LoginRequest exchanges an identity-provider token for a session.
type LoginRequest struct {
	Token string `json:"token"`
}

// User is the account returned on login.
type User struct {
	ID            int64  `json:"id"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	DisplayName   string `json:"display_name,omitempty"`
	Role          string `json:"role"`
	TotalPoints   int    `json:"total_points"`
	CurrentStreak int    `json:"current_streak"`
	LongestStreak int    `json:"longest_streak"`
}

// LoginResponse carries the session token.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

// Login signs in through the configured base URL. When that times out and
// a direct login URL is configured, the request is repeated once against
// it. On success the token is used for later requests.
func (c *Client) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	out, err := c.login(ctx, c.url("/users/login"), req)
	if err != nil && errors.Is(err, ErrTimeout) && c.cfg.DirectLoginURL != "" && c.cfg.DirectLoginURL != c.url("/users/login") {
		c.log.Warn("login timed out, trying direct URL", zap.String("url", c.cfg.DirectLoginURL))
		out, err = c.login(ctx, c.cfg.DirectLoginURL, req)
	}
	if err != nil {
		return LoginResponse{}, err
	}
	c.SetToken(out.AccessToken)
	return out, nil
}

func (c *Client) login(ctx context.Context, url string, req LoginRequest) (LoginResponse, error) {
	data, err := c.send(ctx, http.MethodPost, url, req, c.cfg.LoginTimeout)
	if err != nil {
		return LoginResponse{}, err
	}
	var out LoginResponse
	if err := decodeValidated(data, schemaLogin, &out); err != nil {
		return LoginResponse{}, err
	}
	return out, nil
}
