// Package eth implements EIP-712 typed-data hashing, signing and
// signature recovery on top of go-ethereum.
package eth

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
)

// SignatureLength is the expected length of a secp256k1 signature (R || S || V).
const SignatureLength = 65

// Digest computes the EIP-712 digest of the typed data:
// keccak256("\x19\x01" || domainSeparator || hashStruct(message)).
func Digest(data apitypes.TypedData) ([]byte, error) {
	digest, _, err := apitypes.TypedDataAndHash(data)
	if err != nil {
		return nil, fmt.Errorf("failed to hash typed data: %w", err)
	}
	return digest, nil
}

// RecoverAddress recovers the address that signed the typed data.
// It accepts recovery identifiers of 0/1 as well as the legacy 27/28.
// Same inputs always recover the same address.
func RecoverAddress(data apitypes.TypedData, signature []byte) (common.Address, error) {
	if len(signature) != SignatureLength {
		return common.Address{}, fmt.Errorf("signature must be %d bytes, got %d", SignatureLength, len(signature))
	}

	digest, err := Digest(data)
	if err != nil {
		return common.Address{}, err
	}

	sig := make([]byte, SignatureLength)
	copy(sig, signature)
	if sig[64] >= 27 {
		sig[64] -= 27
	}
	if sig[64] != 0 && sig[64] != 1 {
		return common.Address{}, fmt.Errorf("invalid recovery id: %d", signature[64])
	}

	pubKey, err := crypto.SigToPub(digest, sig)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to recover public key: %w", err)
	}

	return crypto.PubkeyToAddress(*pubKey), nil
}

// SignTypedData signs the typed data with the given key and returns a
// 65-byte signature with the recovery id in legacy 27/28 form, matching
// what wallets produce.
func SignTypedData(data apitypes.TypedData, key *ecdsa.PrivateKey) ([]byte, error) {
	digest, err := Digest(data)
	if err != nil {
		return nil, err
	}

	sig, err := crypto.Sign(digest, key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign typed data: %w", err)
	}
	sig[64] += 27

	return sig, nil
}
