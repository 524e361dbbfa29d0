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

// dpkgFormat prints the abbreviated status ("ii ", "rc ", ...) before each name.
const dpkgFormat = "-f=${db:Status-Abbrev}\t${Package}\n"

// DpkgInventory lists Debian packages through dpkg-query.
type DpkgInventory struct {
	runner domain.CommandRunner
}

// NewDpkgInventory creates a dpkg-backed inventory.
func NewDpkgInventory(runner domain.CommandRunner) *DpkgInventory {
	return &DpkgInventory{runner: runner}
}

// Source implements domain.AppInventory.
func (d *DpkgInventory) Source() domain.AppSource {
	return domain.SourceDpkg
}

// ListInstalled implements domain.AppInventory.
func (d *DpkgInventory) ListInstalled(ctx context.Context) ([]domain.InstalledApp, error) {
	output, err := d.runner.ExecuteWithOutput(ctx, "dpkg-query", "-W", dpkgFormat)
	if err != nil {
		return nil, fmt.Errorf("%w: dpkg-query: %w", domain.ErrInventoryUnavailable, err)
	}

	seen := make(map[string]bool)
	apps := make([]domain.InstalledApp, 0)

	for line := range strings.SplitSeq(output, "\n") {
		status, pkg, found := strings.Cut(line, "\t")
		if !found || !isInstalledStatus(status) {
			continue
		}

		pkg = strings.TrimSpace(pkg)
		if pkg == "" || seen[pkg] || domain.ValidatePackageName(pkg) != nil {
			continue
		}

		seen[pkg] = true

		apps = append(apps, domain.InstalledApp{
			Name:        stringutil.TitleFromIdentifier(pkg),
			PackageName: pkg,
			Source:      domain.SourceDpkg,
		})
	}

	return finishList(apps), nil
}

// isInstalledStatus reports whether the second status letter, the current
// package state, is "i". Removed packages that kept their config files are "rc".
func isInstalledStatus(status string) bool {
	status = strings.TrimSpace(status)

	return len(status) >= 2 && status[1] == 'i'
}
