package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ByteAtATime/firebase-auth-extension/core"
	"github.com/ByteAtATime/firebase-auth-extension/ports"
)

const (
	// SessionCookieName is the cookie carrying the credential in the
	// cookie transport variant.
	SessionCookieName = "__session"

	// BearerTTL is the validity window of header-carried credentials.
	BearerTTL = time.Hour

	// CookieTTL is the validity window of cookie-carried credentials.
	CookieTTL = 5 * 24 * time.Hour

	// expiryMargin is subtracted from the expiry reported to the client
	// so it re-authenticates before the server starts rejecting the
	// credential, even with slightly skewed clocks.
	expiryMargin = time.Minute
)

// BearerTransport carries the credential in the Authorization header.
type BearerTransport struct{}

// NewBearerTransport creates the header-based credential transport.
func NewBearerTransport() ports.CredentialTransport {
	return BearerTransport{}
}

func (BearerTransport) TTL() time.Duration { return BearerTTL }

// Extract pulls the bearer token from the Authorization header.
func (BearerTransport) Extract(r *http.Request) (string, error) {
	auth := r.Header.Get("Authorization")
	if len(auth) < 8 || auth[:7] != "Bearer " {
		return "", core.ErrUnauthenticated
	}
	return auth[7:], nil
}

// Respond returns the credential in the response body.
func (BearerTransport) Respond(w http.ResponseWriter, cred core.Credential) {
	writeJSON(w, map[string]any{
		"accessToken": cred.Token,
		"expiresAt":   cred.ExpiresAt.Add(-expiryMargin).UnixMilli(),
	})
}

// Clear is a no-op: the client owns the token and drops it itself.
func (BearerTransport) Clear(w http.ResponseWriter) {}

// CookieTransport carries the credential in an HttpOnly session cookie.
type CookieTransport struct {
	// Secure marks the cookie HTTPS-only; disabled for local development.
	Secure bool
}

// NewCookieTransport creates the cookie-based credential transport.
func NewCookieTransport(secure bool) ports.CredentialTransport {
	return CookieTransport{Secure: secure}
}

func (CookieTransport) TTL() time.Duration { return CookieTTL }

// Extract pulls the credential from the session cookie.
func (CookieTransport) Extract(r *http.Request) (string, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return "", core.ErrUnauthenticated
	}
	return cookie.Value, nil
}

// Respond sets the session cookie and reports the client-side expiry.
func (t CookieTransport) Respond(w http.ResponseWriter, cred core.Credential) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    cred.Token,
		Path:     "/",
		Expires:  cred.ExpiresAt,
		HttpOnly: true,
		Secure:   t.Secure,
		SameSite: http.SameSiteStrictMode,
	})

	writeJSON(w, map[string]any{
		"success":   true,
		"expiresAt": cred.ExpiresAt.Add(-expiryMargin).UnixMilli(),
	})
}

// Clear expires the session cookie.
func (t CookieTransport) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   t.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

func writeJSON(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(body)
}
