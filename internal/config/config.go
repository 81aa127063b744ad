// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"os"
)

// KeyMode selects how the issuing authority obtains its signing key.
type KeyMode int

const (
	// KeyModeFile reads a PEM private key from AUTH_CREDENTIALS_FILE.
	KeyModeFile KeyMode = iota
	// KeyModeInline parses a PEM private key from AUTH_PRIVATE_KEY.
	KeyModeInline
	// KeyModeEmulator generates an ephemeral key for local development
	// against an emulated authority.
	KeyModeEmulator
)

func (m KeyMode) String() string {
	switch m {
	case KeyModeFile:
		return "credentials-file"
	case KeyModeInline:
		return "inline-key"
	default:
		return "emulator"
	}
}

// Transport names for AUTH_CREDENTIAL_TRANSPORT.
const (
	TransportBearer = "bearer"
	TransportCookie = "cookie"
)

// Config is the full process configuration.
type Config struct {
	// ProjectID namespaces issued credentials (JWT issuer). Required.
	ProjectID string

	// Exactly one of the three key sources should be set; when several
	// are, precedence is CredentialsFile, then PrivateKey, then
	// EmulatorHost.
	CredentialsFile string
	PrivateKey      string
	EmulatorHost    string

	Transport    string
	CookieSecure bool

	ListenAddr string
	RedisURL   string
}

// FromEnv builds a Config from environment variables.
func FromEnv() (*Config, error) {
	cfg := &Config{
		ProjectID:       os.Getenv("AUTH_PROJECT_ID"),
		CredentialsFile: os.Getenv("AUTH_CREDENTIALS_FILE"),
		PrivateKey:      os.Getenv("AUTH_PRIVATE_KEY"),
		EmulatorHost:    os.Getenv("AUTH_EMULATOR_HOST"),
		Transport:       os.Getenv("AUTH_CREDENTIAL_TRANSPORT"),
		CookieSecure:    os.Getenv("AUTH_COOKIE_SECURE") == "true",
		ListenAddr:      os.Getenv("LISTEN_ADDR"),
		RedisURL:        os.Getenv("REDIS_URL"),
	}

	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("AUTH_PROJECT_ID is required")
	}

	if cfg.Transport == "" {
		cfg.Transport = TransportBearer
	}
	if cfg.Transport != TransportBearer && cfg.Transport != TransportCookie {
		return nil, fmt.Errorf("unknown credential transport %q", cfg.Transport)
	}

	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":9000"
	}

	return cfg, nil
}

// KeyMode resolves which key source is active. The precedence is fixed so
// that setting several sources at once stays deterministic.
func (c *Config) KeyMode() KeyMode {
	switch {
	case c.CredentialsFile != "":
		return KeyModeFile
	case c.PrivateKey != "":
		return KeyModeInline
	default:
		return KeyModeEmulator
	}
}
