package authority

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ByteAtATime/firebase-auth-extension/core"
)

const testProjectID = "demo-project"

func newTestKey(t *testing.T) *ecdsa.PrivateKey {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	return key
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	a := NewJWTAuthority(testProjectID, newTestKey(t))
	ctx := context.Background()

	cred, err := a.Issue(ctx, "0xABC0000000000000000000000000000000000001", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, cred.ID)
	require.NotEmpty(t, cred.Token)
	require.True(t, cred.ExpiresAt.After(time.Now()))

	identity, err := a.Verify(ctx, cred.Token)
	require.NoError(t, err)
	require.Equal(t, "0xABC0000000000000000000000000000000000001", identity.Address)
	require.Equal(t, cred.ID, identity.CredentialID)
	require.WithinDuration(t, cred.ExpiresAt, identity.ExpiresAt, time.Second)
}

func TestVerifyExpired(t *testing.T) {
	a := NewJWTAuthority(testProjectID, newTestKey(t))
	ctx := context.Background()

	cred, err := a.Issue(ctx, "0xABC0000000000000000000000000000000000001", -time.Minute)
	require.NoError(t, err)

	_, err = a.Verify(ctx, cred.Token)
	require.ErrorIs(t, err, core.ErrInvalidCredential)
}

func TestVerifyTampered(t *testing.T) {
	a := NewJWTAuthority(testProjectID, newTestKey(t))
	ctx := context.Background()

	cred, err := a.Issue(ctx, "0xABC0000000000000000000000000000000000001", time.Hour)
	require.NoError(t, err)

	// Extend the payload; the signature no longer matches
	parts := strings.Split(cred.Token, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "xx" + "." + parts[2]

	_, err = a.Verify(ctx, tampered)
	require.ErrorIs(t, err, core.ErrInvalidCredential)
}

func TestVerifyRejectsForeignAuthority(t *testing.T) {
	ctx := context.Background()

	// Same project, different key
	other := NewJWTAuthority(testProjectID, newTestKey(t))
	cred, err := other.Issue(ctx, "0xABC0000000000000000000000000000000000001", time.Hour)
	require.NoError(t, err)

	a := NewJWTAuthority(testProjectID, newTestKey(t))
	_, err = a.Verify(ctx, cred.Token)
	require.ErrorIs(t, err, core.ErrInvalidCredential)
}

func TestVerifyRejectsOtherProject(t *testing.T) {
	ctx := context.Background()
	key := newTestKey(t)

	other := NewJWTAuthority("other-project", key)
	cred, err := other.Issue(ctx, "0xABC0000000000000000000000000000000000001", time.Hour)
	require.NoError(t, err)

	a := NewJWTAuthority(testProjectID, key)
	_, err = a.Verify(ctx, cred.Token)
	require.ErrorIs(t, err, core.ErrInvalidCredential)
}

func TestVerifyGarbage(t *testing.T) {
	a := NewJWTAuthority(testProjectID, newTestKey(t))
	ctx := context.Background()

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := a.Verify(ctx, token)
		require.ErrorIs(t, err, core.ErrInvalidCredential)
	}
}
