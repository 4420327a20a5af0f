// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package base

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCommand(env map[string]string) (*Command, *FlagSet) {
	c := &Command{
		Log: hclog.NewNullLogger(),
		UI:  cli.NewMockUi(),
		LookupEnv: func(key string) (string, bool) {
			v, ok := env[key]
			return v, ok
		},
	}
	f := NewFlagSet(flag.NewFlagSet("test", flag.ContinueOnError))
	c.ConnectionFlags(f)
	return c, f
}

func TestConfigPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cinpctl.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
host       = "https://file"
auth_id    = "file-user"
auth_token = "file-token"
timeout    = "10s"
`), 0o600))

	env := map[string]string{
		"CINP_HOST":    "https://env",
		"CINP_TIMEOUT": "20s",
	}

	t.Run("file and environment", func(t *testing.T) {
		c, f := newCommand(env)
		require.NoError(t, f.Parse([]string{"-config=" + path}))

		cfg, err := c.Config()
		require.NoError(t, err)
		assert.Equal(t, "https://env", cfg.Host)
		assert.Equal(t, "file-user", cfg.AuthID)
		assert.Equal(t, "20s", cfg.Timeout)
	})

	t.Run("flags win", func(t *testing.T) {
		c, f := newCommand(env)
		require.NoError(t, f.Parse([]string{
			"-config=" + path, "-host=https://flag", "-auth-id=u", "-auth-token=t", "-timeout=1m",
		}))

		cfg, err := c.Config()
		require.NoError(t, err)
		assert.Equal(t, "https://flag", cfg.Host)
		assert.Equal(t, "u", cfg.AuthID)
		assert.Equal(t, "t", cfg.AuthToken)
		assert.Equal(t, "1m0s", cfg.Timeout)
	})

	t.Run("missing config file", func(t *testing.T) {
		c, f := newCommand(nil)
		require.NoError(t, f.Parse([]string{"-config=/nonexistent/cinpctl.hcl"}))

		_, err := c.Config()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "configuration file not found")
	})
}

func TestClient(t *testing.T) {
	c, f := newCommand(nil)
	require.NoError(t, f.Parse([]string{"-host=https://contractor:8888", "-auth-id=root", "-auth-token=tok", "-timeout=5s"}))

	client, err := c.Client()
	require.NoError(t, err)
	defer client.Close()

	assert.Equal(t, "root", client.AuthID())
	assert.True(t, client.HasCredentials())
	assert.Equal(t, "5s", client.OperationTimeout.String())

	c, f = newCommand(nil)
	require.NoError(t, f.Parse([]string{"-host=ftp://contractor"}))
	_, err = c.Client()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error creating client")
}

func TestFlagSetHelp(t *testing.T) {
	_, f := newCommand(nil)
	f.Int("count", 10, "Number of items.")

	help := f.Help()
	assert.Contains(t, help, "Options:")
	assert.Contains(t, help, "-host\n      CInP server base URL.")
	assert.Contains(t, help, "-count=10\n      Number of items.")
	assert.NotContains(t, help, "-timeout=")
}

func TestParseValues(t *testing.T) {
	v, err := ParseValues("")
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = ParseValues(`{"a":1}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": float64(1)}, v)

	_, err = ParseValues(`"text"`)
	require.Error(t, err)
}

func TestOutput(t *testing.T) {
	c, _ := newCommand(nil)
	require.NoError(t, c.Output(map[string]int{"a": 1}))
	assert.Equal(t, "{\n  \"a\": 1\n}\n", c.UI.(*cli.MockUi).OutputWriter.String())
}
