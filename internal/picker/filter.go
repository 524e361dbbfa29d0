// SPDX-FileCopyrightText: 2025 The Splitpick Authors
// SPDX-License-Identifier: EUPL-1.2

package picker

import (
	"strings"

	"github.com/janderssonse/splitpick/internal/domain"
	"github.com/janderssonse/splitpick/internal/stringutil"
)

// FilterApps returns the apps whose name contains the trimmed term, ignoring
// case and keeping the input order. An empty term returns apps unchanged.
func FilterApps(apps []domain.InstalledApp, term string) []domain.InstalledApp {
	trimmed := strings.TrimSpace(term)
	if trimmed == "" {
		return apps
	}

	filtered := make([]domain.InstalledApp, 0, len(apps))

	for _, app := range apps {
		if stringutil.ContainsFold(app.Name, trimmed) {
			filtered = append(filtered, app)
		}
	}

	return filtered
}
