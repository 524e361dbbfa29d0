// SPDX-FileCopyrightText: 2025 The Splitpick Authors
// SPDX-License-Identifier: EUPL-1.2

package inventory

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/janderssonse/splitpick/internal/domain"
)

// SourceAuto selects the inventory that fits the running platform.
const SourceAuto = "auto"

// Detect returns the inventory for source. Extra desktop dirs take priority
// over the XDG ones.
func Detect(source string, runner domain.CommandRunner, extraDirs ...string) (domain.AppInventory, error) {
	return detectFor(runtime.GOOS, source, runner, extraDirs)
}

func detectFor(goos, source string, runner domain.CommandRunner, extraDirs []string) (domain.AppInventory, error) {
	switch domain.AppSource(strings.ToLower(strings.TrimSpace(source))) {
	case "", SourceAuto:
		switch goos {
		case "linux", "freebsd", "openbsd", "netbsd":
			return newDesktop(extraDirs), nil
		case "darwin":
			if runner.CommandExists("brew") {
				return NewBrewInventory(runner), nil
			}
		}

		return nil, fmt.Errorf("%w on %s", domain.ErrNoPackageManager, goos)
	case domain.SourceDesktop:
		return newDesktop(extraDirs), nil
	case domain.SourceDpkg:
		if !runner.CommandExists("dpkg-query") {
			return nil, fmt.Errorf("%w: dpkg-query not found", domain.ErrNoPackageManager)
		}

		return NewDpkgInventory(runner), nil
	case domain.SourceBrew:
		if !runner.CommandExists("brew") {
			return nil, fmt.Errorf("%w: brew not found", domain.ErrNoPackageManager)
		}

		return NewBrewInventory(runner), nil
	default:
		return nil, fmt.Errorf("%w: unknown source %q", domain.ErrNoPackageManager, source)
	}
}

func newDesktop(extraDirs []string) *DesktopInventory {
	if len(extraDirs) == 0 {
		return NewDesktopInventory()
	}

	dirs := append([]string{}, extraDirs...)

	return NewDesktopInventory(append(dirs, NewDesktopInventory().Dirs()...)...)
}
