// SPDX-FileCopyrightText: 2025 The Splitpick Authors
// SPDX-License-Identifier: EUPL-1.2

// Package store persists the user's disallowed application list as TOML.
package store

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/gofrs/flock"
	"github.com/janderssonse/splitpick/internal/domain"
	"github.com/janderssonse/splitpick/internal/platform"
	"github.com/pelletier/go-toml/v2"
)

// DefaultFileName is the store file name under the splitpick config directory.
const DefaultFileName = "disallowed.toml"

const (
	defaultLockTimeout = 5 * time.Second
	lockRetryDelay     = 50 * time.Millisecond
)

// Document is the on-disk layout of the store file.
type Document struct {
	Packages []string `toml:"packages"`
}

// TOMLStore implements domain.DisallowedStore on a TOML file guarded by a lock file.
type TOMLStore struct {
	path        string
	files       domain.FileManager
	lockTimeout time.Duration
}

// Option configures a TOMLStore.
type Option func(*TOMLStore)

// WithLockTimeout bounds how long Load and Save wait for the lock file.
func WithLockTimeout(timeout time.Duration) Option {
	return func(s *TOMLStore) {
		s.lockTimeout = timeout
	}
}

// DefaultPath returns the store location under the XDG config directory.
func DefaultPath() string {
	return platform.GetConfigPath(DefaultFileName)
}

// New creates a store at path. An empty path selects DefaultPath.
func New(path string, files domain.FileManager, opts ...Option) *TOMLStore {
	if path == "" {
		path = DefaultPath()
	}

	s := &TOMLStore{
		path:        path,
		files:       files,
		lockTimeout: defaultLockTimeout,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Path returns the store file path.
func (s *TOMLStore) Path() string {
	return s.path
}

// Load implements domain.DisallowedStore. A missing file is an empty list.
func (s *TOMLStore) Load(ctx context.Context) ([]string, error) {
	if !s.files.FileExists(s.path) {
		return []string{}, nil
	}

	unlock, err := s.lock(ctx, false)
	if err != nil {
		return nil, err
	}
	defer unlock()

	data, err := s.files.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %w", domain.ErrStoreUnavailable, s.path, err)
	}

	var doc Document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %w", domain.ErrStoreUnavailable, s.path, err)
	}

	return slices.DeleteFunc(doc.Packages, func(pkg string) bool { return pkg == "" }), nil
}

// Save implements domain.DisallowedStore by replacing the whole file.
func (s *TOMLStore) Save(ctx context.Context, packages []string) error {
	doc := Document{Packages: slices.Clone(packages)}
	if doc.Packages == nil {
		doc.Packages = []string{}
	}

	data, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: failed to encode: %w", domain.ErrStoreUnavailable, err)
	}

	if err := s.files.EnsureDir(filepath.Dir(s.path)); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}

	unlock, err := s.lock(ctx, true)
	if err != nil {
		return err
	}
	defer unlock()

	if err := s.files.WriteFile(s.path, data); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}

	return nil
}

func (s *TOMLStore) lock(ctx context.Context, exclusive bool) (func(), error) {
	if err := platform.EnsureDir(filepath.Dir(s.path)); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}

	lockCtx, cancel := context.WithTimeout(ctx, s.lockTimeout)
	defer cancel()

	fileLock := flock.New(s.path + ".lock")

	var (
		locked bool
		err    error
	)

	if exclusive {
		locked, err = fileLock.TryLockContext(lockCtx, lockRetryDelay)
	} else {
		locked, err = fileLock.TryRLockContext(lockCtx, lockRetryDelay)
	}

	if err != nil || !locked {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		return nil, fmt.Errorf("%w: %s", domain.ErrLockTimeout, fileLock.Path())
	}

	return func() { _ = fileLock.Unlock() }, nil
}
