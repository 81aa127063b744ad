package core

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
)

// The EIP-712 domain and type schema are a versioned wire contract shared
// by the client and the server. Changing any of these values changes the
// typed-data digest and invalidates every signature produced against the
// old values.
const (
	SigningDomainName    = "Scaffold-ETH 2 App"
	SigningDomainVersion = "1"

	// AuthPrimaryType is the primary type name of the signed message.
	AuthPrimaryType = "Message"
)

// AuthMessage builds the typed message asserting "address `signer` claims
// its identity at time `timestamp`" (milliseconds since epoch). It is pure:
// identical inputs produce identical typed data.
func AuthMessage(signer string, timestamp int64) apitypes.TypedData {
	return apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": []apitypes.Type{
				{Name: "name", Type: "string"},
				{Name: "version", Type: "string"},
			},
			AuthPrimaryType: []apitypes.Type{
				{Name: "user", Type: "address"},
				{Name: "timestamp", Type: "uint256"},
			},
		},
		PrimaryType: AuthPrimaryType,
		Domain: apitypes.TypedDataDomain{
			Name:    SigningDomainName,
			Version: SigningDomainVersion,
		},
		Message: apitypes.TypedDataMessage{
			"user":      signer,
			"timestamp": (*math.HexOrDecimal256)(big.NewInt(timestamp)),
		},
	}
}
