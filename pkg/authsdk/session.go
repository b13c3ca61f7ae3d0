package authsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
)

// TokenStore holds a session's token pair. Implementations must be safe for
// concurrent use; Clear drops both tokens wholesale, the way a browser wipes
// its local storage on forced logout.
type TokenStore interface {
	Tokens() (TokenPair, bool)
	SetTokens(TokenPair)
	Clear()
}

// MemoryTokenStore is an in-process TokenStore.
type MemoryTokenStore struct {
	mu   sync.RWMutex
	pair TokenPair
	set  bool
}

func (m *MemoryTokenStore) Tokens() (TokenPair, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pair, m.set
}

func (m *MemoryTokenStore) SetTokens(pair TokenPair) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pair = pair
	m.set = true
}

func (m *MemoryTokenStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pair = TokenPair{}
	m.set = false
}

// Session wraps a Client with a token store and transparent recovery from
// access token expiry: when a protected call comes back 401 or 403, the
// session silently refreshes and replays the request exactly once. A refresh
// the server rejects clears the store and surfaces ErrSessionExpired — the
// caller must log in again. A refresh that dies in transit leaves the stored
// pair alone; the tokens may still be good once the network recovers.
//
// Concurrent 401s each refresh independently; with single-use rotation one
// of the retries may lose the race and fail. Callers needing coalescing
// should serialize their protected requests.
type Session struct {
	client *Client
	store  TokenStore
}

// NewSession creates a session over the given client and token store.
func NewSession(client *Client, store TokenStore) *Session {
	return &Session{client: client, store: store}
}

// Login authenticates and stores the resulting token pair.
func (s *Session) Login(ctx context.Context, username, password string) error {
	pair, err := s.client.Login(ctx, username, password)
	if err != nil {
		return err
	}
	s.store.SetTokens(pair)
	return nil
}

// Logout revokes the stored refresh token and clears the store. The store is
// cleared even when revocation fails; the tokens are gone locally either way.
func (s *Session) Logout(ctx context.Context) error {
	pair, ok := s.store.Tokens()
	s.store.Clear()
	if !ok {
		return nil
	}
	return s.client.Logout(ctx, pair.RefreshToken)
}

// Do performs a protected request with the stored access token. On a 401 or
// 403 it refreshes once and replays once; any further rejection is returned
// as-is. The body, if any, is marshalled to JSON up front so the replay
// sends identical bytes.
func (s *Session) Do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		payload = b
	}

	pair, ok := s.store.Tokens()
	if !ok {
		return nil, ErrSessionExpired
	}

	resp, err := s.send(ctx, method, path, payload, pair.AccessToken)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized && resp.StatusCode != http.StatusForbidden {
		return resp, nil
	}
	_ = resp.Body.Close()

	// The access token was rejected. Refresh and replay, once.
	refreshed, err := s.client.Refresh(ctx, pair.RefreshToken)
	if err != nil {
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			// Transport failure; the pair may still be good, keep it.
			return nil, fmt.Errorf("failed to refresh session: %w", err)
		}
		s.store.Clear()
		return nil, fmt.Errorf("%w: %v", ErrSessionExpired, err)
	}
	s.store.SetTokens(refreshed)

	return s.send(ctx, method, path, payload, refreshed.AccessToken)
}

func (s *Session) send(ctx context.Context, method, path string, payload []byte, token string) (*http.Response, error) {
	var buf io.Reader
	if payload != nil {
		buf = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.client.url(path), buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}

// Profile fetches the authenticated user's profile.
func (s *Session) Profile(ctx context.Context) (ProfileResponse, error) {
	resp, err := s.Do(ctx, http.MethodGet, "/api/profile", nil)
	if err != nil {
		return ProfileResponse{}, err
	}

	var profile ProfileResponse
	if err := decodeJSON(resp, &profile, http.StatusOK); err != nil {
		return ProfileResponse{}, err
	}
	return profile, nil
}

// DeleteAccount deletes the authenticated user's account and clears the
// stored tokens.
func (s *Session) DeleteAccount(ctx context.Context) error {
	resp, err := s.Do(ctx, http.MethodDelete, "/api/user", nil)
	if err != nil {
		return err
	}

	var msg MessageResponse
	if err := decodeJSON(resp, &msg, http.StatusOK); err != nil {
		return err
	}
	s.store.Clear()
	return nil
}
