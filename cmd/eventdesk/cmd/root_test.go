package cmd

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/eventdesk/internal/logging"
	"github.com/dmitrijs2005/eventdesk/internal/server"
	"github.com/dmitrijs2005/eventdesk/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate keeps a developer's .env and EVENTDESK_* variables out of the test.
func isolate(t *testing.T) {
	t.Helper()
	old := config.EnvFile
	config.EnvFile = filepath.Join(t.TempDir(), "missing.env")
	t.Cleanup(func() { config.EnvFile = old })

	for _, k := range []string{
		"EVENTDESK_DB_DRIVER", "EVENTDESK_DB_DSN", "EVENTDESK_LOG_FORMAT",
		"EVENTDESK_ADMIN_USERNAME", "EVENTDESK_ADMIN_PASSWORD",
	} {
		t.Setenv(k, "")
	}
	t.Setenv("EVENTDESK_BCRYPT_COST", "4")
	t.Setenv("EVENTDESK_LOG_LEVEL", "error")
}

// run executes one CLI invocation against dsn and returns what it printed
// on stdout.
func run(t *testing.T, dsn, stdin string, args ...string) (string, error) {
	t.Helper()
	rt := newRuntime()
	cmd := rt.command()

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--db-dsn", dsn}, args...))

	err := cmd.ExecuteContext(context.Background())
	require.NoError(t, rt.close())
	return out.String(), err
}

func TestRootCommand_Help(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "root", args: []string{"--help"}, want: "eventdesk"},
		{name: "migrate", args: []string{"migrate", "--help"}, want: "migrations"},
		{name: "admin", args: []string{"admin", "--help"}, want: "admin create root"},
		{name: "users delete", args: []string{"users", "delete", "--help"}, want: "--as"},
		{name: "events search", args: []string{"events", "search", "--help"}, want: "--user"},
		{name: "history", args: []string{"history", "--help"}, want: "--utc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newRuntime().command()
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(buf)
			cmd.SetArgs(tt.args)

			require.NoError(t, cmd.Execute())
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestRootCommand_FlagsOverrideConfig(t *testing.T) {
	isolate(t)
	dsn := filepath.Join(t.TempDir(), "flags.db")

	var got *config.Config
	old := newApp
	newApp = func(ctx context.Context, cfg *config.Config, logger logging.Logger) (*server.App, error) {
		got = cfg
		return nil, errors.New("stop")
	}
	t.Cleanup(func() { newApp = old })

	_, err := run(t, dsn, "", "--db-driver", "sqlite", "--log-format", "text", "migrate")
	require.EqualError(t, err, "stop")
	require.NotNil(t, got)

	assert.Equal(t, dsn, got.DatabaseDSN)
	assert.Equal(t, "sqlite", got.DatabaseDriver)
	assert.Equal(t, "text", got.LogFormat)
	assert.Equal(t, "error", got.LogLevel, "unset flags keep the environment value")
	assert.Equal(t, 4, got.BcryptCost)
}

func TestRootCommand_InvalidDriver(t *testing.T) {
	isolate(t)
	_, err := run(t, filepath.Join(t.TempDir(), "x.db"), "", "--db-driver", "oracle", "migrate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oracle")
}

func TestMigrateCommand(t *testing.T) {
	isolate(t)
	dsn := filepath.Join(t.TempDir(), "data", "eventdesk.db")

	out, err := run(t, dsn, "", "migrate")
	require.NoError(t, err)
	assert.Equal(t, "schema is up to date\n", out)

	// second run is a no-op
	out, err = run(t, dsn, "", "migrate")
	require.NoError(t, err)
	assert.Equal(t, "schema is up to date\n", out)
}
