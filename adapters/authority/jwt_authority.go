package authority

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ByteAtATime/firebase-auth-extension/core"
	"github.com/ByteAtATime/firebase-auth-extension/ports"
)

// AudienceAccess is the audience claim stamped on every issued credential.
const AudienceAccess = "session:access"

// JWTAuthority implements the Authority interface with ES256-signed JWTs.
type JWTAuthority struct {
	projectID string
	signKey   *ecdsa.PrivateKey
}

// NewJWTAuthority creates a new JWT issuing authority.
func NewJWTAuthority(projectID string, signKey *ecdsa.PrivateKey) ports.Authority {
	return &JWTAuthority{projectID: projectID, signKey: signKey}
}

// Issue mints a credential bound to the given address, valid for ttl.
func (a *JWTAuthority) Issue(ctx context.Context, address string, ttl time.Duration) (core.Credential, error) {
	now := time.Now()
	cred := core.Credential{
		ID:        uuid.New().String(),
		Address:   address,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}

	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    a.projectID,
			Subject:   cred.Address,
			ID:        cred.ID,
			Audience:  jwt.ClaimStrings{AudienceAccess},
			IssuedAt:  jwt.NewNumericDate(cred.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(cred.ExpiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodES256, claims)

	signedToken, err := token.SignedString(a.signKey)
	if err != nil {
		return core.Credential{}, fmt.Errorf("failed to sign credential: %w", err)
	}
	cred.Token = signedToken

	return cred, nil
}

// Verify validates a token string and returns the identity it asserts.
func (a *JWTAuthority) Verify(ctx context.Context, tokenStr string) (*core.Identity, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate the signing method
		if _, ok := token.Method.(*jwt.SigningMethodECDSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return &a.signKey.PublicKey, nil
	}, jwt.WithAudience(AudienceAccess), jwt.WithIssuer(a.projectID))

	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrInvalidCredential, err)
	}

	if !token.Valid {
		return nil, core.ErrInvalidCredential
	}

	claims, ok := token.Claims.(*AccessClaims)
	if !ok || claims.ExpiresAt == nil {
		return nil, core.ErrInvalidCredential
	}

	return &core.Identity{
		Address:      claims.Subject,
		CredentialID: claims.ID,
		ExpiresAt:    claims.ExpiresAt.Time,
	}, nil
}
