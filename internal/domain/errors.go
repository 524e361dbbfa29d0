// SPDX-FileCopyrightText: 2025 The Splitpick Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Common domain errors.
var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotInstalled     = errors.New("not installed")
	ErrManagedByPolicy  = errors.New("managed by device policy")
)

// ExitError carries a process exit code alongside a user-facing message.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

// NewExitError creates an ExitError with the specified code and message.
func NewExitError(code int, message string, err error) *ExitError {
	return &ExitError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

// Unwrap exposes the underlying error to errors.Is and errors.As.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// ErrorInfo provides user-friendly error information.
type ErrorInfo struct {
	Message     string   // User-friendly message
	Suggestions []string // Actionable suggestions
	ShowDetails bool     // Whether to show technical details
}

// getErrorMatchers returns error patterns and their corresponding info.
func getErrorMatchers() []struct {
	sentinel error
	patterns []string
	getInfo  func(string, bool) ErrorInfo
} {
	return []struct {
		sentinel error
		patterns []string
		getInfo  func(string, bool) ErrorInfo
	}{
		{
			sentinel: ErrPermissionDenied,
			patterns: []string{"permission", "denied", "read-only file system"},
			getInfo: func(_ string, verbose bool) ErrorInfo {
				return ErrorInfo{
					Message:     "Permission denied",
					Suggestions: []string{"Check ownership of ~/.config/splitpick", "Do not run splitpick with sudo"},
					ShowDetails: verbose,
				}
			},
		},
		{
			sentinel: ErrLockTimeout,
			patterns: []string{"lock"},
			getInfo: func(_ string, verbose bool) ErrorInfo {
				return ErrorInfo{
					Message:     "Another splitpick process holds the settings lock",
					Suggestions: []string{"Close other splitpick windows and retry"},
					ShowDetails: verbose,
				}
			},
		},
		{
			sentinel: ErrNoPackageManager,
			patterns: []string{"no supported application inventory"},
			getInfo: func(_ string, verbose bool) ErrorInfo {
				return ErrorInfo{
					Message:     "No application inventory available",
					Suggestions: []string{"Set [inventory] source in config.toml", "Supported sources: desktop, dpkg, brew"},
					ShowDetails: verbose,
				}
			},
		},
		{
			sentinel: ErrNotInstalled,
			patterns: []string{"not installed"},
			getInfo: func(pkg string, verbose bool) ErrorInfo {
				message := "Application not installed"
				if pkg != "" {
					message = "Application '" + pkg + "' not installed"
				}

				return ErrorInfo{
					Message:     message,
					Suggestions: []string{"Use 'splitpick list' to see installed applications"},
					ShowDetails: verbose,
				}
			},
		},
		{
			sentinel: ErrInvalidPackageName,
			patterns: []string{"invalid package name"},
			getInfo: func(_ string, verbose bool) ErrorInfo {
				return ErrorInfo{
					Message:     "Invalid package name",
					Suggestions: []string{"Pass the identifier shown by 'splitpick list'"},
					ShowDetails: verbose,
				}
			},
		},
		{
			sentinel: ErrManagedByPolicy,
			patterns: []string{"managed by device policy"},
			getInfo: func(_ string, verbose bool) ErrorInfo {
				return ErrorInfo{
					Message:     "Split tunneling is managed by your organization",
					Suggestions: []string{"Run 'splitpick status' to see the managed lists"},
					ShowDetails: verbose,
				}
			},
		},
		{
			sentinel: ErrStoreUnavailable,
			patterns: []string{"store unavailable"},
			getInfo: func(_ string, verbose bool) ErrorInfo {
				return ErrorInfo{
					Message:     "Could not read or write the excluded applications list",
					Suggestions: []string{"Check [store] path in config.toml"},
					ShowDetails: verbose,
				}
			},
		},
		{
			sentinel: ErrInventoryUnavailable,
			patterns: []string{"inventory unavailable"},
			getInfo: func(_ string, verbose bool) ErrorInfo {
				return ErrorInfo{
					Message:     "Could not list installed applications",
					Suggestions: []string{"Run with --verbose to see the failing command"},
					ShowDetails: verbose,
				}
			},
		},
		{
			patterns: []string{"invalid configuration", "invalid managed settings"},
			getInfo: func(_ string, _ bool) ErrorInfo {
				return ErrorInfo{
					Message:     "Settings file is invalid",
					Suggestions: []string{"Edit the file and retry"},
					ShowDetails: true,
				}
			},
		},
	}
}

// GetErrorInfo analyzes an error and returns user-friendly information.
// Wrapped sentinel errors take precedence over message patterns.
func GetErrorInfo(err error, packageName string, verbose bool) ErrorInfo {
	if err == nil {
		return ErrorInfo{}
	}

	matchers := getErrorMatchers()

	for _, matcher := range matchers {
		if errors.Is(err, matcher.sentinel) {
			return matcher.getInfo(packageName, verbose)
		}
	}

	errStr := strings.ToLower(err.Error())

	for _, matcher := range matchers {
		for _, pattern := range matcher.patterns {
			if strings.Contains(errStr, pattern) {
				return matcher.getInfo(packageName, verbose)
			}
		}
	}

	return ErrorInfo{
		Message:     "Operation failed",
		Suggestions: []string{"Run with --verbose for more details"},
		ShowDetails: verbose,
	}
}

// FormatErrorMessage formats an error for display.
func FormatErrorMessage(err error, packageName string, verbose bool) string {
	info := GetErrorInfo(err, packageName, verbose)

	var result strings.Builder

	result.WriteString("✗ ")
	result.WriteString(info.Message)

	if info.ShowDetails && err != nil {
		result.WriteString("\n  Technical details: ")
		result.WriteString(err.Error())
	}

	switch {
	case len(info.Suggestions) > 0 && !verbose:
		result.WriteString(" (")
		result.WriteString(info.Suggestions[0])
		result.WriteString(")")
	case len(info.Suggestions) > 0:
		result.WriteString("\n  Suggestions:")

		for _, suggestion := range info.Suggestions {
			result.WriteString("\n    • ")
			result.WriteString(suggestion)
		}
	}

	return result.String()
}
