// SPDX-FileCopyrightText: 2025 The Splitpick Authors
// SPDX-License-Identifier: EUPL-1.2

package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPathUtils_GetXDGConfigHome(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		envValue string
		want     string
	}{
		{
			name:     "uses XDG_CONFIG_HOME when set",
			envValue: "/custom/config",
			want:     "/custom/config",
		},
		{
			name:     "falls back to ~/.config when not set",
			envValue: "",
			want:     "", // Will be set dynamically
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got := GetXDGConfigHomeWithEnv(testCase.envValue)

			if testCase.want == "" {
				home, err := os.UserHomeDir()
				require.NoError(t, err)

				require.Equal(t, filepath.Join(home, ".config"), got)
			} else {
				require.Equal(t, testCase.want, got)
			}
		})
	}
}

func TestPathUtils_GetXDGDataHome(t *testing.T) {
	t.Parallel()

	require.Equal(t, "/custom/data", GetXDGDataHomeWithEnv("/custom/data"))

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, ".local", "share"), GetXDGDataHomeWithEnv(""))
}

func TestPathUtils_GetXDGDataDirs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		envValue string
		want     []string
	}{
		{name: "default system dirs", envValue: "", want: []string{"/usr/local/share", "/usr/share"}},
		{name: "custom dirs", envValue: "/opt/share:/usr/share", want: []string{"/opt/share", "/usr/share"}},
		{name: "empty segments skipped", envValue: ":/opt/share::", want: []string{"/opt/share"}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, testCase.want, GetXDGDataDirsWithEnv(testCase.envValue))
		})
	}
}

func TestPathUtils_ExpandPath(t *testing.T) {
	t.Parallel()

	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "expands tilde to home", path: "~/test", want: filepath.Join(home, "test")},
		{name: "handles plain tilde", path: "~", want: home},
		{name: "expands XDG_CONFIG_HOME", path: "$XDG_CONFIG_HOME/app/config", want: "/cfg/app/config"},
		{name: "expands XDG_DATA_HOME", path: "$XDG_DATA_HOME/app/data", want: "/data/app/data"},
		{name: "leaves absolute paths unchanged", path: "/absolute/path", want: "/absolute/path"},
		{name: "leaves relative paths unchanged", path: "relative/path", want: "relative/path"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, testCase.want, ExpandPathWithEnv(testCase.path, "/cfg", "/data"))
		})
	}
}

func TestAtomicWriteFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "out.toml")

	require.NoError(t, AtomicWriteFile(path, []byte("first")))
	require.NoError(t, AtomicWriteFile(path, []byte("second")))

	data, err := os.ReadFile(path) //nolint:gosec
	require.NoError(t, err)
	require.Equal(t, "second", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must be cleaned up")
	require.True(t, FileExists(path))
	require.True(t, IsDir(filepath.Dir(path)))
}
