// SPDX-FileCopyrightText: 2025 The Splitpick Authors
// SPDX-License-Identifier: EUPL-1.2

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.Equal(t, "auto", cfg.Inventory.Source)
	assert.Equal(t, 200*time.Millisecond, cfg.Picker.SearchDebounce.Std())
	assert.Equal(t, 500*time.Millisecond, cfg.Picker.SaveDebounce.Std())
	require.NoError(t, cfg.Validate())
}

func TestDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		doc     string
		check   func(t *testing.T, cfg *Config)
		wantErr bool
	}{
		{
			name: "partial file keeps defaults",
			doc:  "[picker]\nsave_debounce = \"1s\"\n",
			check: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, time.Second, cfg.Picker.SaveDebounce.Std())
				assert.Equal(t, 200*time.Millisecond, cfg.Picker.SearchDebounce.Std())
				assert.Equal(t, "auto", cfg.Inventory.Source)
			},
		},
		{
			name: "all sections",
			doc: `[inventory]
source = "DPKG"
dirs = ["/opt/apps"]
[store]
path = "/var/lib/splitpick/disallowed.toml"
[mdm]
path = "/etc/policy.yaml"
`,
			check: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "dpkg", cfg.Inventory.Source)
				assert.Equal(t, []string{"/opt/apps"}, cfg.Inventory.Dirs)
				assert.Equal(t, "/var/lib/splitpick/disallowed.toml", cfg.Store.Path)
				assert.Equal(t, "/etc/policy.yaml", cfg.MDM.Path)
			},
		},
		{name: "unknown key", doc: "[picker]\ndebounce = \"1s\"\n", wantErr: true},
		{name: "bad duration", doc: "[picker]\nsearch_debounce = \"soon\"\n", wantErr: true},
		{name: "zero duration", doc: "[picker]\nsearch_debounce = \"0s\"\n", wantErr: true},
		{name: "unknown source", doc: "[inventory]\nsource = \"snap\"\n", wantErr: true},
		{name: "syntax error", doc: "[inventory\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := Default()

			err := Decode([]byte(tt.doc), cfg)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidConfig)

				return
			}

			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	cfg, err := Load(filepath.Join(dir, "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[inventory]\nsource = \"brew\"\n"), 0o600))

	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "brew", cfg.Inventory.Source)

	require.NoError(t, os.WriteFile(path, []byte("[inventory]\nsource = 3\n"), 0o600))

	_, err = Load(path)
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestResolvePath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	t.Setenv(EnvConfigFile, "")

	assert.Equal(t, "/tmp/xdg/splitpick/config.toml", ResolvePath(""))
	assert.Equal(t, "/etc/splitpick.toml", ResolvePath("/etc/splitpick.toml"))
	assert.Equal(t, "/tmp/xdg/custom.toml", ResolvePath("$XDG_CONFIG_HOME/custom.toml"))

	t.Setenv(EnvConfigFile, "/srv/env.toml")
	assert.Equal(t, "/srv/env.toml", ResolvePath(""))
	assert.Equal(t, "/etc/splitpick.toml", ResolvePath("/etc/splitpick.toml"))
}
