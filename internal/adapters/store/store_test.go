// SPDX-FileCopyrightText: 2025 The Splitpick Authors
// SPDX-License-Identifier: EUPL-1.2

package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofrs/flock"
	"github.com/janderssonse/splitpick/internal/adapters/platform"
	"github.com/janderssonse/splitpick/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTOMLStore_MissingFileLoadsEmpty(t *testing.T) {
	t.Parallel()

	s := New(filepath.Join(t.TempDir(), "disallowed.toml"), platform.NewFileManager(false))

	packages, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, packages)
	assert.Empty(t, packages)
}

func TestTOMLStore_SaveAndLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "disallowed.toml")
	s := New(path, platform.NewFileManager(false))

	require.NoError(t, s.Save(context.Background(), []string{"com.b.mail", "com.a.maps"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "packages")

	packages, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"com.b.mail", "com.a.maps"}, packages, "order is preserved")

	require.NoError(t, s.Save(context.Background(), nil))

	packages, err = s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, packages)
}

func TestTOMLStore_WithMockFileManager(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "disallowed.toml")
	files := platform.NewMockFileManager()
	files.SetMockFile(path, []byte("packages = ['com.a.maps', '', 'com.c.old']\n"))

	s := New(path, files)

	packages, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"com.a.maps", "com.c.old"}, packages)
}

func TestTOMLStore_CorruptFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "disallowed.toml")
	require.NoError(t, os.WriteFile(path, []byte("packages = [unterminated"), 0o600))

	_, err := New(path, platform.NewFileManager(false)).Load(context.Background())
	require.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestTOMLStore_LockTimeout(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "disallowed.toml")

	holder := flock.New(path + ".lock")
	locked, err := holder.TryLock()
	require.NoError(t, err)
	require.True(t, locked)

	t.Cleanup(func() { _ = holder.Unlock() })

	s := New(path, platform.NewFileManager(false), WithLockTimeout(100*time.Millisecond))

	err = s.Save(context.Background(), []string{"com.a.maps"})
	require.ErrorIs(t, err, domain.ErrLockTimeout)
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	assert.Equal(t, "/tmp/xdg/splitpick/disallowed.toml", DefaultPath())
	assert.Equal(t, DefaultPath(), New("", platform.NewMockFileManager()).Path())
}
