package eth

import (
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"github.com/ByteAtATime/firebase-auth-extension/core"
)

func TestSignAndRecoverRoundTrip(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	address := crypto.PubkeyToAddress(key.PublicKey)

	message := core.AuthMessage(address.Hex(), 1700000000000)

	signature, err := SignTypedData(message, key)
	require.NoError(t, err)
	require.Len(t, signature, SignatureLength)

	recovered, err := RecoverAddress(message, signature)
	require.NoError(t, err)
	require.Equal(t, address, recovered)
}

func TestRecoverAddressIsDeterministic(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	message := core.AuthMessage(crypto.PubkeyToAddress(key.PublicKey).Hex(), 42)

	signature, err := SignTypedData(message, key)
	require.NoError(t, err)

	first, err := RecoverAddress(message, signature)
	require.NoError(t, err)
	second, err := RecoverAddress(message, signature)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestRecoverAddressBitFlip(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	address := crypto.PubkeyToAddress(key.PublicKey)

	message := core.AuthMessage(address.Hex(), 1700000000000)

	signature, err := SignTypedData(message, key)
	require.NoError(t, err)

	// Corrupt one bit of R; recovery must yield a different address or fail
	flipped := make([]byte, len(signature))
	copy(flipped, signature)
	flipped[3] ^= 0x01

	recovered, err := RecoverAddress(message, flipped)
	if err == nil {
		require.NotEqual(t, address, recovered)
	}
}

func TestRecoverAddressMalformed(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	message := core.AuthMessage(crypto.PubkeyToAddress(key.PublicKey).Hex(), 1700000000000)

	tests := []struct {
		name      string
		signature []byte
	}{
		{name: "empty", signature: nil},
		{name: "too short", signature: make([]byte, 64)},
		{name: "too long", signature: make([]byte, 66)},
		{
			name: "bad recovery id",
			signature: func() []byte {
				sig, err := SignTypedData(message, key)
				require.NoError(t, err)
				sig[64] = 9
				return sig
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RecoverAddress(message, tt.signature)
			require.Error(t, err)
		})
	}
}

func TestRecoverAddressAcceptsBothRecoveryIDForms(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	address := crypto.PubkeyToAddress(key.PublicKey)
	message := core.AuthMessage(address.Hex(), 1700000000000)

	signature, err := SignTypedData(message, key)
	require.NoError(t, err)

	// Legacy 27/28 form is what SignTypedData produces
	recovered, err := RecoverAddress(message, signature)
	require.NoError(t, err)
	require.Equal(t, address, recovered)

	// Raw 0/1 form
	raw := make([]byte, len(signature))
	copy(raw, signature)
	raw[64] -= 27

	recovered, err = RecoverAddress(message, raw)
	require.NoError(t, err)
	require.Equal(t, address, recovered)
}
