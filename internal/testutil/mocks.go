// SPDX-FileCopyrightText: 2025 The Splitpick Authors
// SPDX-License-Identifier: EUPL-1.2

// Package testutil provides testify mocks and fixtures for the domain ports.
package testutil

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/janderssonse/splitpick/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockAppInventory mocks the AppInventory port for testing.
type MockAppInventory struct {
	mock.Mock
}

// ListInstalled mocks listing installed applications.
func (m *MockAppInventory) ListInstalled(ctx context.Context) ([]domain.InstalledApp, error) {
	args := m.Called(ctx)
	if result := args.Get(0); result != nil {
		apps, ok := result.([]domain.InstalledApp)
		if !ok {
			return nil, args.Error(1)
		}

		return apps, args.Error(1)
	}

	return nil, args.Error(1)
}

// Source mocks the inventory source name.
func (m *MockAppInventory) Source() domain.AppSource {
	args := m.Called()
	if source, ok := args.Get(0).(domain.AppSource); ok {
		return source
	}

	return domain.SourceDesktop
}

// MockDisallowedStore mocks the DisallowedStore port for testing.
type MockDisallowedStore struct {
	mock.Mock
}

// Load mocks loading the saved identifiers.
func (m *MockDisallowedStore) Load(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if result := args.Get(0); result != nil {
		packages, ok := result.([]string)
		if !ok {
			return nil, args.Error(1)
		}

		return packages, args.Error(1)
	}

	return nil, args.Error(1)
}

// Save mocks replacing the saved identifiers.
func (m *MockDisallowedStore) Save(ctx context.Context, packages []string) error {
	args := m.Called(ctx, packages)

	return args.Error(0)
}

// MockManagedSettings mocks the ManagedSettings port for testing.
type MockManagedSettings struct {
	mock.Mock
}

// ExcludedPackages mocks the managed exclusion list.
func (m *MockManagedSettings) ExcludedPackages() domain.SettingState {
	args := m.Called()
	if state, ok := args.Get(0).(domain.SettingState); ok {
		return state
	}

	return domain.SettingState{}
}

// IncludedPackages mocks the managed inclusion list.
func (m *MockManagedSettings) IncludedPackages() domain.SettingState {
	args := m.Called()
	if state, ok := args.Get(0).(domain.SettingState); ok {
		return state
	}

	return domain.SettingState{}
}

// MockCommandRunner mocks the CommandRunner port for testing.
type MockCommandRunner struct {
	mock.Mock
}

// ExecuteWithOutput mocks command execution with output.
func (m *MockCommandRunner) ExecuteWithOutput(ctx context.Context, name string, args ...string) (string, error) {
	callArgs := append([]interface{}{ctx, name}, stringsToInterfaces(args)...)
	result := m.Called(callArgs...)

	return result.String(0), result.Error(1)
}

// CommandExists mocks command existence check.
func (m *MockCommandRunner) CommandExists(name string) bool {
	args := m.Called(name)

	return args.Bool(0)
}

// MemoryStore is an in-memory DisallowedStore that records every save.
type MemoryStore struct {
	mu      sync.Mutex
	current []string
	saves   [][]string
}

// NewMemoryStore creates a MemoryStore pre-loaded with packages.
func NewMemoryStore(packages ...string) *MemoryStore {
	return &MemoryStore{current: packages}
}

// Load implements domain.DisallowedStore.
func (s *MemoryStore) Load(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.current), nil
}

// Save implements domain.DisallowedStore.
func (s *MemoryStore) Save(_ context.Context, packages []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = slices.Clone(packages)
	s.saves = append(s.saves, slices.Clone(packages))

	return nil
}

// Saves returns every list passed to Save, oldest first.
func (s *MemoryStore) Saves() [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.saves)
}

// StaticInventory is an AppInventory returning a fixed list.
type StaticInventory []domain.InstalledApp

// ListInstalled implements domain.AppInventory.
func (s StaticInventory) ListInstalled(_ context.Context) ([]domain.InstalledApp, error) {
	return slices.Clone(s), nil
}

// Source implements domain.AppInventory.
func (s StaticInventory) Source() domain.AppSource {
	return domain.SourceDesktop
}

// MapsAndMail returns the two-app fixture used across picker tests.
func MapsAndMail() StaticInventory {
	return StaticInventory{
		{Name: "Maps", PackageName: "com.a.maps", Source: domain.SourceDesktop},
		{Name: "Mail", PackageName: "com.b.mail", Source: domain.SourceDesktop},
	}
}

// WaitWithTimeout polls fn until it returns true or the timeout elapses.
func WaitWithTimeout(fn func() bool, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if fn() {
			return true
		}

		time.Sleep(5 * time.Millisecond)
	}

	return fn()
}

func stringsToInterfaces(values []string) []interface{} {
	result := make([]interface{}, len(values))
	for i, value := range values {
		result[i] = value
	}

	return result
}
