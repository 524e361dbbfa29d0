// SPDX-FileCopyrightText: 2025 The Splitpick Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

import (
	"errors"
	"slices"
	"strings"
)

var (
	// ErrInvalidPackageName indicates an empty or malformed package identifier.
	ErrInvalidPackageName = errors.New("invalid package name")
)

// AppSource names the inventory that reported an application.
type AppSource string

// Inventory sources supported by the adapters.
const (
	SourceDesktop AppSource = "desktop"
	SourceDpkg    AppSource = "dpkg"
	SourceBrew    AppSource = "brew"
)

// InstalledApp is a snapshot of one application installed on the host.
type InstalledApp struct {
	Name        string    `json:"name"`
	PackageName string    `json:"package_name"`
	Source      AppSource `json:"source,omitempty"`
}

// IsValid reports whether the app carries both a name and an identifier.
func (a InstalledApp) IsValid() bool {
	return strings.TrimSpace(a.Name) != "" && strings.TrimSpace(a.PackageName) != ""
}

// ValidatePackageName rejects identifiers that can never match an installed app.
func ValidatePackageName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || trimmed != name || strings.ContainsAny(name, " \t\n,") {
		return ErrInvalidPackageName
	}

	return nil
}

// PackageNames returns the identifiers of apps in order.
func PackageNames(apps []InstalledApp) []string {
	names := make([]string, 0, len(apps))
	for _, app := range apps {
		names = append(names, app.PackageName)
	}

	return names
}

// ExclusionSet is the ordered list of package identifiers kept out of the tunnel.
// Values are treated as immutable: every mutation returns a new set.
type ExclusionSet []string

// Contains reports whether pkg is excluded.
func (s ExclusionSet) Contains(pkg string) bool {
	return slices.Contains(s, pkg)
}

// With returns the set with pkg appended, or s itself when already present.
func (s ExclusionSet) With(pkg string) ExclusionSet {
	if s.Contains(pkg) {
		return s
	}

	next := make(ExclusionSet, 0, len(s)+1)
	next = append(next, s...)

	return append(next, pkg)
}

// Without returns the set with pkg removed.
func (s ExclusionSet) Without(pkg string) ExclusionSet {
	next := make(ExclusionSet, 0, len(s))
	for _, existing := range s {
		if existing != pkg {
			next = append(next, existing)
		}
	}

	return next
}

// Strings returns a copy of the set as a plain slice.
func (s ExclusionSet) Strings() []string {
	return slices.Clone([]string(s))
}

// IntersectInstalled keeps the entries of persisted that are installed,
// preserving persisted order and dropping duplicates.
func IntersectInstalled(persisted []string, apps []InstalledApp) ExclusionSet {
	installed := make(map[string]struct{}, len(apps))
	for _, app := range apps {
		installed[app.PackageName] = struct{}{}
	}

	result := make(ExclusionSet, 0, len(persisted))
	seen := make(map[string]struct{}, len(persisted))

	for _, pkg := range persisted {
		if _, ok := installed[pkg]; !ok {
			continue
		}

		if _, dup := seen[pkg]; dup {
			continue
		}

		seen[pkg] = struct{}{}
		result = append(result, pkg)
	}

	return result
}
