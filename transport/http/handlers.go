package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ByteAtATime/firebase-auth-extension/core"
	"github.com/ByteAtATime/firebase-auth-extension/ports"
	"github.com/ByteAtATime/firebase-auth-extension/service"
)

// AuthHandlers contains HTTP handlers for auth endpoints
type AuthHandlers struct {
	authService *service.AuthService
	transport   ports.CredentialTransport
	logger      *slog.Logger
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authService *service.AuthService, transport ports.CredentialTransport, logger *slog.Logger) *AuthHandlers {
	if logger == nil {
		logger = slog.Default()
	}

	return &AuthHandlers{
		authService: authService,
		transport:   transport,
		logger:      logger,
	}
}

// Authenticate handles the authentication request: it verifies the typed
// signature and responds with a credential via the active transport.
func (h *AuthHandlers) Authenticate(c *gin.Context) {
	var req struct {
		Signer    string `json:"signer"`
		Timestamp int64  `json:"timestamp"`
		Signature string `json:"signature"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	cred, err := h.authService.Authenticate(c.Request.Context(), req.Signer, req.Timestamp, req.Signature)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrBadRequest):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		case errors.Is(err, core.ErrInvalidSignature):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid signature"})
		default:
			// Issuance faults are logged with detail in the service;
			// the caller only learns that authentication did not complete
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Authentication failed"})
		}
		return
	}

	h.transport.Respond(c.Writer, cred)
}

// Me returns information about the authenticated user
func (h *AuthHandlers) Me(c *gin.Context) {
	identity, ok := IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User not found in context"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"address": identity.Address,
	})
}

// Authorize reports that the caller holds a valid credential
func (h *AuthHandlers) Authorize(c *gin.Context) {
	// The guard has already validated the credential if we got here
	identity, ok := IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User not found in context"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"authorized": true,
		"address":    identity.Address,
	})
}

// SignOut revokes the presented credential and clears client-side state
func (h *AuthHandlers) SignOut(c *gin.Context) {
	identity, ok := IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User not found in context"})
		return
	}

	if err := h.authService.SignOut(c.Request.Context(), identity); err != nil {
		h.logger.Error("sign-out failed", "address", identity.Address, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign out"})
		return
	}

	h.transport.Clear(c.Writer)

	c.JSON(http.StatusOK, gin.H{"success": true})
}
