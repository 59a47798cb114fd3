package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_AllVariables(t *testing.T) {
	isolateEnv(t)
	t.Setenv("EVENTDESK_DB_DRIVER", "postgres")
	t.Setenv("EVENTDESK_DB_DSN", "postgres://u:p@db:5432/eventdesk")
	t.Setenv("EVENTDESK_CONNECT_TIMEOUT", "3s")
	t.Setenv("EVENTDESK_BCRYPT_COST", "12")
	t.Setenv("EVENTDESK_SECRET_KEY", "s3cret")
	t.Setenv("EVENTDESK_SESSION_TTL", "30m")
	t.Setenv("EVENTDESK_LOG_LEVEL", "warn")
	t.Setenv("EVENTDESK_LOG_FORMAT", "console")
	t.Setenv("EVENTDESK_ADMIN_USERNAME", "root")
	t.Setenv("EVENTDESK_ADMIN_PASSWORD", "rootpw")

	c := defaults()
	require.NoError(t, parseEnv(c))

	assert.Equal(t, &Config{
		DatabaseDriver:          "postgres",
		DatabaseDSN:             "postgres://u:p@db:5432/eventdesk",
		ConnectTimeout:          3 * time.Second,
		BcryptCost:              12,
		SecretKey:               "s3cret",
		SessionValidityDuration: 30 * time.Minute,
		LogLevel:                "warn",
		LogFormat:               "console",
		AdminUsername:           "root",
		AdminPassword:           "rootpw",
	}, c)
}

func TestParseEnv_InvalidValues(t *testing.T) {
	isolateEnv(t)

	t.Run("bad duration", func(t *testing.T) {
		t.Setenv("EVENTDESK_CONNECT_TIMEOUT", "soon")
		require.Error(t, parseEnv(defaults()))
	})
	t.Run("bad int", func(t *testing.T) {
		t.Setenv("EVENTDESK_BCRYPT_COST", "ten")
		require.Error(t, parseEnv(defaults()))
	})
}

func TestParseEnv_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("EVENTDESK_TEST_ONLY_SECRET=from-file\n"), 0o600))

	orig := EnvFile
	EnvFile = path
	t.Cleanup(func() {
		EnvFile = orig
		_ = os.Unsetenv("EVENTDESK_TEST_ONLY_SECRET")
	})

	require.NoError(t, parseEnv(defaults()))
	assert.Equal(t, "from-file", os.Getenv("EVENTDESK_TEST_ONLY_SECRET"))
}
