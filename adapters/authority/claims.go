package authority

import "github.com/golang-jwt/jwt/v5"

// AccessClaims are the claims carried by an issued credential. The
// standard set is enough: sub is the verified address, jti identifies the
// credential for revocation, iss is the project ID.
type AccessClaims struct {
	jwt.RegisteredClaims
}
