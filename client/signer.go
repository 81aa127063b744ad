package client

import (
	"context"
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"

	"github.com/ByteAtATime/firebase-auth-extension/internal/eth"
)

// Signer is the wallet the session store asks for typed-data signatures.
type Signer interface {
	// Address returns the connected address, or ErrNotConnected when no
	// signing identity is available.
	Address() (string, error)

	// SignTypedData asks the wallet to sign the typed message.
	SignTypedData(ctx context.Context, data apitypes.TypedData) ([]byte, error)
}

// KeySigner signs with an in-memory secp256k1 private key. It serves
// headless clients and tests; interactive wallets implement Signer over
// their own prompting flow.
type KeySigner struct {
	key *ecdsa.PrivateKey
}

// NewKeySigner creates a signer around an existing private key.
func NewKeySigner(key *ecdsa.PrivateKey) *KeySigner {
	return &KeySigner{key: key}
}

// Address returns the address derived from the signing key.
func (s *KeySigner) Address() (string, error) {
	if s.key == nil {
		return "", ErrNotConnected
	}
	return crypto.PubkeyToAddress(s.key.PublicKey).Hex(), nil
}

// SignTypedData signs the typed message with the local key.
func (s *KeySigner) SignTypedData(ctx context.Context, data apitypes.TypedData) ([]byte, error) {
	if s.key == nil {
		return nil, ErrNotConnected
	}
	return eth.SignTypedData(data, s.key)
}
