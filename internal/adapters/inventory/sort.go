// SPDX-FileCopyrightText: 2025 The Splitpick Authors
// SPDX-License-Identifier: EUPL-1.2

// Package inventory provides AppInventory adapters for desktop entries, dpkg and Homebrew.
package inventory

import (
	"slices"
	"strings"

	"github.com/janderssonse/splitpick/internal/domain"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// sortApps orders apps by display name, case-insensitively, then by identifier.
func sortApps(apps []domain.InstalledApp) {
	// Collators keep internal buffers and are not safe for concurrent use.
	collator := collate.New(language.Und, collate.IgnoreCase)

	slices.SortStableFunc(apps, func(a, b domain.InstalledApp) int {
		if c := collator.CompareString(a.Name, b.Name); c != 0 {
			return c
		}

		return strings.Compare(a.PackageName, b.PackageName)
	})
}

// finishList drops rows missing a display name or identifier and sorts the rest.
func finishList(apps []domain.InstalledApp) []domain.InstalledApp {
	apps = slices.DeleteFunc(apps, func(app domain.InstalledApp) bool { return !app.IsValid() })
	sortApps(apps)

	return apps
}
