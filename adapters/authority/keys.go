package authority

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"
	"strings"

	"github.com/ByteAtATime/firebase-auth-extension/internal/config"
)

// LoadSigningKey resolves the authority's signing key from the configured
// credential-supply mode: a PEM file on disk, inline PEM key material, or
// an ephemeral development key when running against an emulator. The mode
// precedence is decided by the config, not here.
func LoadSigningKey(cfg *config.Config) (*ecdsa.PrivateKey, error) {
	switch cfg.KeyMode() {
	case config.KeyModeFile:
		data, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read credentials file: %w", err)
		}
		return parsePEMKey(data)

	case config.KeyModeInline:
		// Env vars commonly carry the key with literal "\n" sequences.
		material := strings.ReplaceAll(cfg.PrivateKey, `\n`, "\n")
		return parsePEMKey([]byte(material))

	default:
		key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
		if err != nil {
			return nil, fmt.Errorf("failed to generate emulator key: %w", err)
		}
		return key, nil
	}
}

func parsePEMKey(data []byte) (*ecdsa.PrivateKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("no PEM block found in key material")
	}

	if key, err := x509.ParseECPrivateKey(block.Bytes); err == nil {
		return key, nil
	}

	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	key, ok := parsed.(*ecdsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("private key is %T, want *ecdsa.PrivateKey", parsed)
	}

	return key, nil
}
