// SPDX-FileCopyrightText: 2025 The Splitpick Authors
// SPDX-License-Identifier: EUPL-1.2

package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/janderssonse/splitpick/internal/domain"
	"github.com/stretchr/testify/assert"
)

// TestExitErrorFormatting tests that ExitError properly formats messages.
func TestExitErrorFormatting(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		exitError       *domain.ExitError
		expectedCode    int
		expectedMessage string
	}{
		{
			name:            "exit error with underlying error",
			exitError:       domain.NewExitError(1, "Operation failed", errors.New("permission denied")),
			expectedCode:    1,
			expectedMessage: "Operation failed: permission denied",
		},
		{
			name:            "exit error without underlying error",
			exitError:       domain.NewExitError(2, "Invalid configuration", nil),
			expectedCode:    2,
			expectedMessage: "Invalid configuration",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expectedMessage, tc.exitError.Error())
			assert.Equal(t, tc.expectedCode, tc.exitError.Code)
		})
	}
}

func TestExitErrorUnwrap(t *testing.T) {
	t.Parallel()

	exitErr := domain.NewExitError(3, "Save failed", fmt.Errorf("write: %w", domain.ErrStoreUnavailable))

	assert.ErrorIs(t, exitErr, domain.ErrStoreUnavailable)
}

func TestGetErrorInfo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		err         error
		pkg         string
		wantMessage string
	}{
		{
			name:        "wrapped sentinel wins",
			err:         fmt.Errorf("acquire: %w", domain.ErrLockTimeout),
			wantMessage: "Another splitpick process holds the settings lock",
		},
		{
			name:        "pattern match on plain error",
			err:         errors.New("open disallowed.toml: permission denied"),
			wantMessage: "Permission denied",
		},
		{
			name:        "not installed names the package",
			err:         domain.ErrNotInstalled,
			pkg:         "com.a.maps",
			wantMessage: "Application 'com.a.maps' not installed",
		},
		{
			name:        "config parse failure",
			err:         errors.New("config.toml: invalid configuration: picker.search_debounce must be positive"),
			wantMessage: "Settings file is invalid",
		},
		{
			name:        "store failure",
			err:         fmt.Errorf("%w: disk full", domain.ErrStoreUnavailable),
			wantMessage: "Could not read or write the excluded applications list",
		},
		{
			name:        "unknown error",
			err:         errors.New("boom"),
			wantMessage: "Operation failed",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			info := domain.GetErrorInfo(tc.err, tc.pkg, false)
			assert.Equal(t, tc.wantMessage, info.Message)
			assert.NotEmpty(t, info.Suggestions)
		})
	}

	assert.Equal(t, domain.ErrorInfo{}, domain.GetErrorInfo(nil, "", true))
}

// TestFormatErrorMessage tests user-friendly error formatting.
func TestFormatErrorMessage(t *testing.T) {
	t.Parallel()

	brief := domain.FormatErrorMessage(domain.ErrNoPackageManager, "", false)
	assert.Contains(t, brief, "✗ No application inventory available")
	assert.Contains(t, brief, "(Set [inventory] source in config.toml)")
	assert.NotContains(t, brief, "Technical details")

	verbose := domain.FormatErrorMessage(domain.ErrNoPackageManager, "", true)
	assert.Contains(t, verbose, "Technical details: no supported application inventory found")
	assert.Contains(t, verbose, "Suggestions:")
	assert.Contains(t, verbose, "• Supported sources: desktop, dpkg, brew")
}
