package authsdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// Client talks to the gatehouse HTTP API. It covers the unauthenticated
// endpoints; wrap it in a Session for protected calls with automatic
// refresh-and-retry.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a new auth service client.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Register creates a new account. No tokens are returned; call Login next.
func (c *Client) Register(ctx context.Context, username, password string) error {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/register",
		CredentialsRequest{Username: username, Password: password})
	if err != nil {
		return err
	}

	var msg MessageResponse
	return decodeJSON(resp, &msg, http.StatusCreated)
}

// Login exchanges credentials for a token pair.
func (c *Client) Login(ctx context.Context, username, password string) (TokenPair, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/login",
		CredentialsRequest{Username: username, Password: password})
	if err != nil {
		return TokenPair{}, err
	}

	var pair TokenPair
	if err := decodeJSON(resp, &pair, http.StatusOK); err != nil {
		return TokenPair{}, err
	}
	return pair, nil
}

// Refresh rotates a refresh token for a new pair. The presented token is
// consumed whether or not the caller stores the replacement.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/refresh-token",
		RefreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return TokenPair{}, err
	}

	var pair TokenPair
	if err := decodeJSON(resp, &pair, http.StatusOK); err != nil {
		return TokenPair{}, err
	}
	return pair, nil
}

// Logout revokes a refresh token server-side. Idempotent.
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/logout",
		RefreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return err
	}

	var msg MessageResponse
	return decodeJSON(resp, &msg, http.StatusOK)
}
