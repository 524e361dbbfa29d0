// SPDX-FileCopyrightText: 2025 The Splitpick Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

import (
	"context"
	"errors"
)

// Common domain errors.
var (
	ErrNoPackageManager     = errors.New("no supported application inventory found")
	ErrInventoryUnavailable = errors.New("application inventory unavailable")
	ErrStoreUnavailable     = errors.New("disallowed list store unavailable")
	ErrLockTimeout          = errors.New("timed out waiting for lock")
)

// AppInventory lists the applications installed on the host.
// Implemented by adapters for desktop entries, dpkg and Homebrew.
type AppInventory interface {
	// ListInstalled returns every installed application, sorted by name.
	ListInstalled(ctx context.Context) ([]InstalledApp, error)

	// Source identifies the inventory backend.
	Source() AppSource
}

// DisallowedStore persists the package identifiers excluded from the tunnel.
type DisallowedStore interface {
	// Load returns the previously saved identifiers, empty when nothing was saved.
	Load(ctx context.Context) ([]string, error)

	// Save replaces the saved identifiers with packages.
	Save(ctx context.Context, packages []string) error
}

// SettingState is the value of one managed setting. Set is false when the
// device policy does not configure the setting at all.
type SettingState struct {
	Packages []string `json:"packages,omitempty"`
	Set      bool     `json:"set"`
}

// ManagedSettings exposes the read-only overrides pushed by device management.
type ManagedSettings interface {
	// ExcludedPackages returns the managed list of apps forced outside the tunnel.
	ExcludedPackages() SettingState

	// IncludedPackages returns the managed list of the only apps allowed in the tunnel.
	IncludedPackages() SettingState
}

// CommandRunner defines the interface for executing system commands.
type CommandRunner interface {
	// ExecuteWithOutput runs a command and returns the output.
	ExecuteWithOutput(ctx context.Context, name string, args ...string) (string, error)

	// CommandExists checks if a command is available on the system.
	CommandExists(name string) bool
}

// FileManager defines the interface for file operations.
type FileManager interface {
	// FileExists checks if a file exists.
	FileExists(path string) bool

	// EnsureDir creates a directory and all parent directories if they don't exist.
	EnsureDir(path string) error

	// WriteFile atomically replaces the file at path with data.
	WriteFile(path string, data []byte) error

	// ReadFile reads data from a file.
	ReadFile(path string) ([]byte, error)
}
