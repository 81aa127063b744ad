package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"AUTH_PROJECT_ID", "AUTH_CREDENTIALS_FILE", "AUTH_PRIVATE_KEY",
		"AUTH_EMULATOR_HOST", "AUTH_CREDENTIAL_TRANSPORT",
		"AUTH_COOKIE_SECURE", "LISTEN_ADDR", "REDIS_URL",
	} {
		t.Setenv(key, "")
	}
}

func TestFromEnvRequiresProjectID(t *testing.T) {
	clearEnv(t)

	_, err := FromEnv()
	require.Error(t, err)
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("AUTH_PROJECT_ID", "demo-project")

	cfg, err := FromEnv()
	require.NoError(t, err)
	require.Equal(t, "demo-project", cfg.ProjectID)
	require.Equal(t, TransportBearer, cfg.Transport)
	require.Equal(t, ":9000", cfg.ListenAddr)
	require.Equal(t, KeyModeEmulator, cfg.KeyMode())
}

func TestFromEnvRejectsUnknownTransport(t *testing.T) {
	clearEnv(t)
	t.Setenv("AUTH_PROJECT_ID", "demo-project")
	t.Setenv("AUTH_CREDENTIAL_TRANSPORT", "carrier-pigeon")

	_, err := FromEnv()
	require.Error(t, err)
}

func TestFromEnvCookieTransport(t *testing.T) {
	clearEnv(t)
	t.Setenv("AUTH_PROJECT_ID", "demo-project")
	t.Setenv("AUTH_CREDENTIAL_TRANSPORT", "cookie")
	t.Setenv("AUTH_COOKIE_SECURE", "true")

	cfg, err := FromEnv()
	require.NoError(t, err)
	require.Equal(t, TransportCookie, cfg.Transport)
	require.True(t, cfg.CookieSecure)
}

func TestKeyModePrecedence(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want KeyMode
	}{
		{
			name: "file wins over everything",
			cfg:  Config{CredentialsFile: "/k.pem", PrivateKey: "inline", EmulatorHost: "localhost:9099"},
			want: KeyModeFile,
		},
		{
			name: "inline wins over emulator",
			cfg:  Config{PrivateKey: "inline", EmulatorHost: "localhost:9099"},
			want: KeyModeInline,
		},
		{
			name: "emulator when nothing else is set",
			cfg:  Config{EmulatorHost: "localhost:9099"},
			want: KeyModeEmulator,
		},
		{
			name: "emulator is the fallback",
			cfg:  Config{},
			want: KeyModeEmulator,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.cfg.KeyMode())
		})
	}
}
