package core

import (
	"testing"

	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/stretchr/testify/require"
)

const testAddress = "0x8ba1f109551bD432803012645Ac136ddd64DBA72"

func digest(t *testing.T, data apitypes.TypedData) []byte {
	t.Helper()
	hash, _, err := apitypes.TypedDataAndHash(data)
	require.NoError(t, err)
	return hash
}

func TestAuthMessageDeterministic(t *testing.T) {
	first := AuthMessage(testAddress, 1700000000000)
	second := AuthMessage(testAddress, 1700000000000)

	require.Equal(t, first, second)
	require.Equal(t, digest(t, first), digest(t, second))
}

func TestAuthMessageDigestChangesWithInputs(t *testing.T) {
	base := digest(t, AuthMessage(testAddress, 1700000000000))

	otherTime := digest(t, AuthMessage(testAddress, 1700000000001))
	require.NotEqual(t, base, otherTime)

	otherSigner := digest(t, AuthMessage("0x0000000000000000000000000000000000000001", 1700000000000))
	require.NotEqual(t, base, otherSigner)
}

func TestAuthMessageDomain(t *testing.T) {
	message := AuthMessage(testAddress, 1700000000000)

	require.Equal(t, SigningDomainName, message.Domain.Name)
	require.Equal(t, SigningDomainVersion, message.Domain.Version)
	require.Nil(t, message.Domain.ChainId)
	require.Empty(t, message.Domain.VerifyingContract)
	require.Equal(t, AuthPrimaryType, message.PrimaryType)

	// The domain schema carries only name and version; adding fields would
	// silently change every digest
	require.Equal(t, []apitypes.Type{
		{Name: "name", Type: "string"},
		{Name: "version", Type: "string"},
	}, message.Types["EIP712Domain"])
}
