// Package client implements the client half of the authentication flow:
// signing the typed message, exchanging it for a credential, and caching
// that credential until it expires.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"golang.org/x/sync/singleflight"

	"github.com/ByteAtATime/firebase-auth-extension/core"
)

var (
	// ErrNotConnected is returned when no signing identity is available
	ErrNotConnected = errors.New("no wallet connected")

	// ErrAuthenticationFailed is returned when signing, the network call,
	// or the server-side verification fails
	ErrAuthenticationFailed = errors.New("authentication failed")
)

// Session is a cached credential with its client-side expiry.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// Valid reports whether the session can still be used.
func (s Session) Valid() bool {
	return s.Token != "" && time.Now().Before(s.ExpiresAt)
}

// SessionStore caches the issued credential so the user is not asked to
// sign on every request. Concurrent callers for the same signer share a
// single in-flight authentication instead of each prompting for a
// signature. It speaks the bearer transport variant of the protocol.
type SessionStore struct {
	signer     Signer
	baseURL    string
	httpClient *http.Client

	mu      sync.Mutex
	session Session

	group singleflight.Group
}

// NewSessionStore creates a session store talking to the server at
// baseURL. httpClient may be nil, in which case a client with a sane
// timeout is used.
func NewSessionStore(baseURL string, signer Signer, httpClient *http.Client) *SessionStore {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &SessionStore{
		signer:     signer,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// GetOrAuthenticate returns the cached session if it is still valid,
// otherwise runs the full sign-and-issue flow and caches the result.
// Without a connected signer it fails with ErrNotConnected before any
// network call; on any other failure the cache stays cleared so the next
// attempt retries from scratch.
func (s *SessionStore) GetOrAuthenticate(ctx context.Context) (Session, error) {
	s.mu.Lock()
	if s.session.Valid() {
		session := s.session
		s.mu.Unlock()
		return session, nil
	}
	// Expired or absent: drop the stale entry before re-authenticating
	s.session = Session{}
	s.mu.Unlock()

	address, err := s.signer.Address()
	if err != nil {
		return Session{}, ErrNotConnected
	}

	v, err, _ := s.group.Do(strings.ToLower(address), func() (interface{}, error) {
		return s.authenticate(ctx, address)
	})
	if err != nil {
		return Session{}, err
	}

	return v.(Session), nil
}

// SignOut clears the cached session and best-effort revokes it on the
// server.
func (s *SessionStore) SignOut(ctx context.Context) error {
	s.mu.Lock()
	session := s.session
	s.session = Session{}
	s.mu.Unlock()

	if !session.Valid() {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/signout", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+session.Token)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sign-out rejected with status %d", resp.StatusCode)
	}

	return nil
}

func (s *SessionStore) authenticate(ctx context.Context, address string) (Session, error) {
	// A coalesced caller may arrive after the winner already cached a
	// fresh session
	s.mu.Lock()
	if s.session.Valid() {
		session := s.session
		s.mu.Unlock()
		return session, nil
	}
	s.mu.Unlock()

	timestamp := time.Now().UnixMilli()
	message := core.AuthMessage(address, timestamp)

	signature, err := s.signer.SignTypedData(ctx, message)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
	}

	body, err := json.Marshal(map[string]interface{}{
		"signer":    address,
		"timestamp": timestamp,
		"signature": hexutil.Encode(signature),
	})
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/auth", bytes.NewReader(body))
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Session{}, fmt.Errorf("%w: server returned status %d", ErrAuthenticationFailed, resp.StatusCode)
	}

	var result struct {
		AccessToken string `json:"accessToken"`
		ExpiresAt   int64  `json:"expiresAt"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
	}

	session := Session{
		Token:     result.AccessToken,
		ExpiresAt: time.UnixMilli(result.ExpiresAt),
	}

	s.mu.Lock()
	s.session = session
	s.mu.Unlock()

	return session, nil
}
