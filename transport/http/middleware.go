package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ByteAtATime/firebase-auth-extension/core"
	"github.com/ByteAtATime/firebase-auth-extension/ports"
	"github.com/ByteAtATime/firebase-auth-extension/service"
)

// identityKey is the gin context key holding the verified identity.
const identityKey = "verifiedIdentity"

// Guard creates middleware that only lets authenticated requests through.
// It is fail-closed: the wrapped handler runs only after the credential
// has been extracted and validated, and every rejection is the same opaque
// 401 so callers cannot probe why a credential was refused.
func Guard(authService *service.AuthService, transport ports.CredentialTransport) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := transport.Extract(c.Request)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		identity, err := authService.Validate(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		c.Set(identityKey, identity)

		c.Next()
	}
}

// IdentityFromContext returns the identity the guard verified for this
// request.
func IdentityFromContext(c *gin.Context) (*core.Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return nil, false
	}

	identity, ok := v.(*core.Identity)
	return identity, ok
}
