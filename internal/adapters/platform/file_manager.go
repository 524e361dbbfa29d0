// SPDX-FileCopyrightText: 2025 The Splitpick Authors
// SPDX-License-Identifier: EUPL-1.2

package platform

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/janderssonse/splitpick/internal/console"
	basePlatform "github.com/janderssonse/splitpick/internal/platform"
)

// ErrMockFileNotFound is returned by MockFileManager for paths never written.
var ErrMockFileNotFound = errors.New("mock file not found")

// FileManager implements the FileManager port for real file operations.
type FileManager struct {
	verbose bool
}

// NewFileManager creates a new file manager.
func NewFileManager(verbose bool) *FileManager {
	return &FileManager{
		verbose: verbose,
	}
}

// FileExists checks if a file exists.
func (f *FileManager) FileExists(path string) bool {
	return basePlatform.FileExists(path)
}

// EnsureDir creates a directory and all parent directories if they don't exist.
func (f *FileManager) EnsureDir(path string) error {
	if f.verbose {
		console.DefaultOutput.Progressf("Ensuring directory exists: %s", path)
	}

	return basePlatform.EnsureDir(path)
}

// WriteFile atomically replaces path with data.
func (f *FileManager) WriteFile(path string, data []byte) error {
	if f.verbose {
		console.DefaultOutput.Progressf("Writing file: %s (%d bytes)", path, len(data))
	}

	if err := basePlatform.AtomicWriteFile(path, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

// ReadFile reads data from a file.
func (f *FileManager) ReadFile(path string) ([]byte, error) {
	if f.verbose {
		console.DefaultOutput.Progressf("Reading file: %s", path)
	}

	// #nosec G304 - File path comes from configuration
	return os.ReadFile(path)
}

// MockFileManager implements the FileManager port for testing.
type MockFileManager struct {
	mu    sync.Mutex
	files map[string][]byte // path -> content
}

// NewMockFileManager creates a new mock file manager for testing.
func NewMockFileManager() *MockFileManager {
	return &MockFileManager{
		files: make(map[string][]byte),
	}
}

// SetMockFile sets the content of a mock file.
func (f *MockFileManager) SetMockFile(path string, content []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.files[path] = content
}

// FileExists checks if a mock file exists.
func (f *MockFileManager) FileExists(path string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, exists := f.files[path]

	return exists
}

// EnsureDir does nothing in mock mode.
func (f *MockFileManager) EnsureDir(_ string) error {
	return nil
}

// WriteFile writes to a mock file.
func (f *MockFileManager) WriteFile(path string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.files[path] = data

	return nil
}

// ReadFile reads from a mock file.
func (f *MockFileManager) ReadFile(path string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	content, exists := f.files[path]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrMockFileNotFound, path)
	}

	return content, nil
}
