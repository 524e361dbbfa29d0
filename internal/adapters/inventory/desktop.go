// SPDX-FileCopyrightText: 2025 The Splitpick Authors
// SPDX-License-Identifier: EUPL-1.2

package inventory

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/janderssonse/splitpick/internal/domain"
	"github.com/janderssonse/splitpick/internal/platform"
	"github.com/janderssonse/splitpick/internal/stringutil"
)

const desktopEntryGroup = "[Desktop Entry]"

// DesktopEntry holds the keys of a .desktop file that matter for listing.
type DesktopEntry struct {
	ID        string
	Name      string
	Type      string
	NoDisplay bool
	Hidden    bool
}

// Listable reports whether the entry should appear in the picker.
func (e DesktopEntry) Listable() bool {
	return e.Type == "Application" && !e.NoDisplay && !e.Hidden
}

// DesktopInventory lists applications from freedesktop application directories.
type DesktopInventory struct {
	dirs []string
}

// NewDesktopInventory creates an inventory scanning dirs in priority order.
// With no dirs, the XDG application directories are used.
func NewDesktopInventory(dirs ...string) *DesktopInventory {
	if len(dirs) == 0 {
		dirs = platform.GetApplicationDirs()
	}

	return &DesktopInventory{dirs: dirs}
}

// Source implements domain.AppInventory.
func (d *DesktopInventory) Source() domain.AppSource {
	return domain.SourceDesktop
}

// Dirs returns the scanned directories in priority order.
func (d *DesktopInventory) Dirs() []string {
	return d.dirs
}

// ListInstalled implements domain.AppInventory.
func (d *DesktopInventory) ListInstalled(ctx context.Context) ([]domain.InstalledApp, error) {
	seen := make(map[string]bool)
	apps := make([]domain.InstalledApp, 0)

	for _, dir := range d.dirs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		entries, err := scanApplicationDir(ctx, dir)
		if err != nil {
			return nil, err
		}

		for _, entry := range entries {
			// Hidden entries still shadow lower-priority directories.
			if seen[entry.ID] {
				continue
			}

			seen[entry.ID] = true

			if !entry.Listable() || domain.ValidatePackageName(entry.ID) != nil {
				continue
			}

			apps = append(apps, domain.InstalledApp{
				Name:        entry.Name,
				PackageName: entry.ID,
				Source:      domain.SourceDesktop,
			})
		}
	}

	return finishList(apps), nil
}

func scanApplicationDir(ctx context.Context, dir string) ([]DesktopEntry, error) {
	if !platform.IsDir(dir) {
		return nil, nil
	}

	var entries []DesktopEntry

	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == dir {
				return walkErr
			}

			// Unreadable subdirectories are skipped.
			return nil
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".desktop") {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return nil //nolint:nilerr
		}

		parsed, err := ParseDesktopFile(path)
		if err != nil {
			return nil //nolint:nilerr
		}

		parsed.ID = DesktopFileID(rel)
		if parsed.Name == "" {
			parsed.Name = stringutil.TitleFromIdentifier(parsed.ID)
		}

		entries = append(entries, parsed)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: scanning %s: %w", domain.ErrInventoryUnavailable, dir, err)
	}

	return entries, nil
}

// DesktopFileID converts a path relative to an applications directory to a desktop file ID.
func DesktopFileID(rel string) string {
	id := strings.TrimSuffix(filepath.ToSlash(rel), ".desktop")

	return strings.ReplaceAll(id, "/", "-")
}

// ParseDesktopFile reads the [Desktop Entry] group of a .desktop file.
func ParseDesktopFile(path string) (DesktopEntry, error) {
	file, err := os.Open(path) //nolint:gosec
	if err != nil {
		return DesktopEntry{}, err
	}
	defer func() { _ = file.Close() }()

	return parseDesktopEntry(bufio.NewScanner(file))
}

var errNoDesktopEntry = errors.New("missing [Desktop Entry] group")

func parseDesktopEntry(scanner *bufio.Scanner) (DesktopEntry, error) {
	var (
		entry    DesktopEntry
		inGroup  bool
		hasGroup bool
	)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, "[") {
			inGroup = line == desktopEntryGroup
			hasGroup = hasGroup || inGroup

			continue
		}

		if !inGroup {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}

		value = strings.TrimSpace(value)

		switch strings.TrimSpace(key) {
		case "Name":
			entry.Name = value
		case "Type":
			entry.Type = value
		case "NoDisplay":
			entry.NoDisplay = value == "true"
		case "Hidden":
			entry.Hidden = value == "true"
		}
	}

	if err := scanner.Err(); err != nil {
		return DesktopEntry{}, err
	}

	if !hasGroup {
		return DesktopEntry{}, errNoDesktopEntry
	}

	return entry, nil
}
