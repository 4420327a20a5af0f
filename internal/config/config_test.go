// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile(t *testing.T) {
	t.Run("valid configuration", func(t *testing.T) {
		tmpfile := createTempFile(t, "cinpctl.hcl", `
# cinpctl configuration
host       = "https://contractor:8888"
auth_id    = "root"
auth_token = "abc123"
timeout    = "45s"
pretty_print_logs = true
`)

		cfg, err := LoadFile(tmpfile)
		require.NoError(t, err)

		assert.Equal(t, "https://contractor:8888", cfg.Host)
		assert.Equal(t, "root", cfg.AuthID)
		assert.Equal(t, "abc123", cfg.AuthToken)
		assert.True(t, cfg.PrettyPrintLogs)

		d, err := cfg.TimeoutDuration()
		require.NoError(t, err)
		assert.Equal(t, 45*time.Second, d)
	})

	t.Run("only host", func(t *testing.T) {
		tmpfile := createTempFile(t, "minimal.hcl", `host = "http://localhost:8888"`)

		cfg, err := LoadFile(tmpfile)
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8888", cfg.Host)
		assert.Empty(t, cfg.AuthID)
		assert.Empty(t, cfg.Timeout)
	})

	t.Run("file not found", func(t *testing.T) {
		_, err := LoadFile("/nonexistent/cinpctl.hcl")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "configuration file not found")
	})

	t.Run("empty filename", func(t *testing.T) {
		_, err := LoadFile("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "configuration file path is required")
	})

	t.Run("invalid HCL syntax", func(t *testing.T) {
		tmpfile := createTempFile(t, "invalid.hcl", `host = `)

		_, err := LoadFile(tmpfile)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse")
	})

	t.Run("unknown attribute", func(t *testing.T) {
		tmpfile := createTempFile(t, "unknown.hcl", `
host = "http://localhost"
password = "nope"
`)

		_, err := LoadFile(tmpfile)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse")
	})

	t.Run("bad timeout", func(t *testing.T) {
		tmpfile := createTempFile(t, "timeout.hcl", `
host    = "http://localhost"
timeout = "soon"
`)

		_, err := LoadFile(tmpfile)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid timeout")
	})
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvHost:      "https://override",
		EnvAuthToken: "tok",
		EnvTimeout:   "",
	}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}

	cfg := &Config{Host: "https://file", AuthID: "root", AuthToken: "old", Timeout: "10s"}
	cfg.ApplyEnv(lookup)

	assert.Equal(t, "https://override", cfg.Host)
	assert.Equal(t, "root", cfg.AuthID)
	assert.Equal(t, "tok", cfg.AuthToken)
	// empty values do not clear the file setting
	assert.Equal(t, "10s", cfg.Timeout)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "ok", cfg: Config{Host: "http://localhost"}},
		{name: "ok with auth", cfg: Config{Host: "http://localhost", AuthID: "a", AuthToken: "b"}},
		{name: "missing host", cfg: Config{}, wantErr: "host is required"},
		{name: "id without token", cfg: Config{Host: "http://localhost", AuthID: "a"}, wantErr: "must be set together"},
		{name: "negative timeout", cfg: Config{Host: "http://localhost", Timeout: "-1s"}, wantErr: "must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func createTempFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}
