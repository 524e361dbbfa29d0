// SPDX-FileCopyrightText: 2025 The Splitpick Authors
// SPDX-License-Identifier: EUPL-1.2

package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/janderssonse/splitpick/internal/domain"
	"github.com/janderssonse/splitpick/internal/stringutil"
)

// BrewInventory lists Homebrew formulae and casks.
type BrewInventory struct {
	runner domain.CommandRunner
}

// NewBrewInventory creates a Homebrew-backed inventory.
func NewBrewInventory(runner domain.CommandRunner) *BrewInventory {
	return &BrewInventory{runner: runner}
}

// Source implements domain.AppInventory.
func (b *BrewInventory) Source() domain.AppSource {
	return domain.SourceBrew
}

// ListInstalled implements domain.AppInventory.
func (b *BrewInventory) ListInstalled(ctx context.Context) ([]domain.InstalledApp, error) {
	seen := make(map[string]bool)
	apps := make([]domain.InstalledApp, 0)

	for _, kind := range []string{"--formula", "--cask"} {
		output, err := b.runner.ExecuteWithOutput(ctx, "brew", "list", kind, "-1")
		if err != nil {
			return nil, fmt.Errorf("%w: brew list %s: %w", domain.ErrInventoryUnavailable, kind, err)
		}

		for _, name := range strings.Fields(output) {
			if seen[name] || domain.ValidatePackageName(name) != nil {
				continue
			}

			seen[name] = true

			apps = append(apps, domain.InstalledApp{
				Name:        stringutil.TitleFromIdentifier(name),
				PackageName: name,
				Source:      domain.SourceBrew,
			})
		}
	}

	return finishList(apps), nil
}
