package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"student-records/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"STUDENT_DB_DRIVER", "STUDENT_DB_DSN", "LOG_LEVEL", "DEBUG"} {
		t.Setenv(k, "")
	}
}

func TestRootCmdFlagsOverrideConfig(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database:\n  driver: mysql\n  dsn: user@tcp(db)/school\nlog:\n  level: warn\n"), 0o644))

	var got *config.Config
	cmd := newRootCmd(func(cfg *config.Config) error {
		got = cfg
		return nil
	})
	cmd.SetArgs([]string{"--config", path, "--driver", "sqlite", "--dsn", ":memory:", "--log-level", "debug"})

	require.NoError(t, cmd.Execute())
	require.NotNil(t, got)
	assert.Equal(t, "sqlite", got.Database.Driver)
	assert.Equal(t, ":memory:", got.Database.DSN)
	assert.Equal(t, "debug", got.Log.Level)
}

func TestRootCmdUsesConfigFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database:\n  driver: postgres\n  dsn: postgres://localhost/school\n"), 0o644))

	var got *config.Config
	cmd := newRootCmd(func(cfg *config.Config) error {
		got = cfg
		return nil
	})
	cmd.SetArgs([]string{"--config", path})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "postgres", got.Database.Driver)
	assert.Equal(t, "postgres://localhost/school", got.Database.DSN)
}

func TestRootCmdRejectsUnknownDriver(t *testing.T) {
	clearEnv(t)

	called := false
	cmd := newRootCmd(func(*config.Config) error {
		called = true
		return nil
	})
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml"), "--driver", "oracle"})

	assert.Error(t, cmd.Execute())
	assert.False(t, called)
}

func TestRootCmdPropagatesRunError(t *testing.T) {
	clearEnv(t)

	boom := errors.New("database connection failed")
	cmd := newRootCmd(func(*config.Config) error { return boom })
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml"), "--dsn", ":memory:"})

	assert.ErrorIs(t, cmd.Execute(), boom)
}

func TestVersionCmd(t *testing.T) {
	cmd := newRootCmd(func(*config.Config) error {
		t.Fatal("root command should not run")
		return nil
	})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "student-records ")
}
