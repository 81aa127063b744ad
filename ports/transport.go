package ports

import (
	"net/http"
	"time"

	"github.com/ByteAtATime/firebase-auth-extension/core"
)

// CredentialTransport decides how a credential travels between client and
// server. Two implementations exist (Authorization header, session cookie);
// exactly one is active per deployment, selected by configuration.
type CredentialTransport interface {
	// TTL is the validity window of credentials issued for this transport.
	TTL() time.Duration

	// Extract pulls the raw credential from an inbound request. Returns
	// core.ErrUnauthenticated if none is present.
	Extract(r *http.Request) (string, error)

	// Respond writes a successful authentication response carrying the
	// credential (response body, cookie, or both).
	Respond(w http.ResponseWriter, cred core.Credential)

	// Clear removes any client-side credential state on sign-out.
	Clear(w http.ResponseWriter)
}
