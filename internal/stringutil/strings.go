// SPDX-FileCopyrightText: 2025 The Splitpick Authors
// SPDX-License-Identifier: EUPL-1.2

// Package stringutil provides string utility functions for splitpick.
package stringutil

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ContainsFold checks if text contains substr under full Unicode case folding,
// so "ss" matches "Straße".
func ContainsFold(text, substr string) bool {
	// Casers are stateful; one per call keeps this safe across goroutines.
	folder := cases.Fold()

	return strings.Contains(folder.String(text), folder.String(substr))
}

// TitleFromIdentifier turns a package identifier such as "gnome-text-editor"
// into a display name ("Gnome Text Editor").
func TitleFromIdentifier(identifier string) string {
	words := strings.FieldsFunc(identifier, func(r rune) bool {
		return r == '-' || r == '_' || r == '.'
	})

	return cases.Title(language.Und).String(strings.Join(words, " "))
}

// SplitList splits a comma-separated list, trimming blanks and dropping empty items.
func SplitList(value string) []string {
	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))

	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}

	return items
}
