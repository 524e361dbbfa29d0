// SPDX-FileCopyrightText: 2025 The Splitpick Authors
// SPDX-License-Identifier: EUPL-1.2

// Package platform resolves XDG directories and performs small file operations.
package platform

import (
	"os"
	"path/filepath"
	"strings"
)

// AppName is the directory name used under XDG base directories.
const AppName = "splitpick"

// DefaultManagedSettingsPath is where device management drops the policy file.
const DefaultManagedSettingsPath = "/etc/splitpick/managed.yaml"

// GetXDGConfigHome returns XDG config directory.
func GetXDGConfigHome() string {
	return GetXDGConfigHomeWithEnv(os.Getenv("XDG_CONFIG_HOME"))
}

// GetXDGConfigHomeWithEnv returns XDG config directory with custom environment override for testing.
func GetXDGConfigHomeWithEnv(xdgConfigHome string) string {
	if xdgConfigHome != "" {
		return xdgConfigHome
	}

	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config")
	}

	return ""
}

// GetXDGDataHome returns XDG data directory.
func GetXDGDataHome() string {
	return GetXDGDataHomeWithEnv(os.Getenv("XDG_DATA_HOME"))
}

// GetXDGDataHomeWithEnv returns XDG data directory with custom environment override for testing.
func GetXDGDataHomeWithEnv(xdgDataHome string) string {
	if xdgDataHome != "" {
		return xdgDataHome
	}

	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share")
	}

	return ""
}

// GetXDGDataDirs returns the system data directories in priority order.
func GetXDGDataDirs() []string {
	return GetXDGDataDirsWithEnv(os.Getenv("XDG_DATA_DIRS"))
}

// GetXDGDataDirsWithEnv returns the system data directories with custom environment override for testing.
func GetXDGDataDirsWithEnv(xdgDataDirs string) []string {
	if xdgDataDirs == "" {
		xdgDataDirs = "/usr/local/share:/usr/share"
	}

	dirs := make([]string, 0, strings.Count(xdgDataDirs, ":")+1)

	for _, dir := range strings.Split(xdgDataDirs, ":") {
		if dir != "" {
			dirs = append(dirs, dir)
		}
	}

	return dirs
}

// GetApplicationDirs returns the directories holding .desktop entries, user
// directory first so user entries shadow system ones.
func GetApplicationDirs() []string {
	dirs := []string{filepath.Join(GetXDGDataHome(), "applications")}
	for _, dir := range GetXDGDataDirs() {
		dirs = append(dirs, filepath.Join(dir, "applications"))
	}

	return dirs
}

// GetConfigPath returns the path of a file inside the splitpick config directory.
func GetConfigPath(name string) string {
	return filepath.Join(GetXDGConfigHome(), AppName, name)
}

// ExpandPath expands ~ and XDG variables.
func ExpandPath(path string) string {
	return ExpandPathWithEnv(path, "", "")
}

// ExpandPathWithEnv expands paths with custom XDG environment variables for testing.
func ExpandPathWithEnv(path, xdgConfigHome, xdgDataHome string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}

	if after, found := strings.CutPrefix(path, "$XDG_CONFIG_HOME"); found {
		configHome := xdgConfigHome
		if configHome == "" {
			configHome = GetXDGConfigHome()
		}

		return configHome + after
	}

	if after, found := strings.CutPrefix(path, "$XDG_DATA_HOME"); found {
		dataHome := xdgDataHome
		if dataHome == "" {
			dataHome = GetXDGDataHome()
		}

		return dataHome + after
	}

	return path
}
