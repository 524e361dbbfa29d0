// SPDX-FileCopyrightText: 2025 The Splitpick Authors
// SPDX-License-Identifier: EUPL-1.2

// Package styles defines consistent visual styling for TUI components.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the styles used in the TUI.
type Styles struct {
	// Color palette
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
	Muted     lipgloss.Color

	// Component styles
	Title    lipgloss.Style
	Banner   lipgloss.Style
	Search   lipgloss.Style
	Cursor   lipgloss.Style
	Row      lipgloss.Style
	Package  lipgloss.Style
	Footer   lipgloss.Style
	Overlay  lipgloss.Style
	Checked  lipgloss.Style
	Managed  lipgloss.Style
	Empty    lipgloss.Style
	StatusOK lipgloss.Style
}

// New creates a new Styles instance with the default Tokyo Night palette.
func New() *Styles {
	primary := lipgloss.Color("#7aa2f7")    // Blue
	secondary := lipgloss.Color("#bb9af7")  // Purple
	success := lipgloss.Color("#9ece6a")    // Green
	warning := lipgloss.Color("#e0af68")    // Yellow
	errorColor := lipgloss.Color("#f7768e") // Red
	muted := lipgloss.Color("#565f89")      // Gray

	background := lipgloss.Color("#1a1b26")
	foreground := lipgloss.Color("#c0caf5")

	return &Styles{
		Primary:   primary,
		Secondary: secondary,
		Success:   success,
		Warning:   warning,
		Error:     errorColor,
		Muted:     muted,

		Title: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), false, false, true, false).
			BorderForeground(primary),

		Banner: lipgloss.NewStyle().
			Foreground(background).
			Background(warning).
			Bold(true).
			Padding(0, 1),

		Search: lipgloss.NewStyle().
			Padding(0, 1),

		Cursor: lipgloss.NewStyle().
			Background(primary).
			Foreground(background),

		Row: lipgloss.NewStyle().
			Foreground(foreground),

		Package: lipgloss.NewStyle().
			Foreground(muted),

		Footer: lipgloss.NewStyle().
			Foreground(muted).
			Padding(0, 1).
			Border(lipgloss.NormalBorder(), true, false, false, false).
			BorderForeground(muted),

		Overlay: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(secondary).
			Padding(0, 1),

		Checked: lipgloss.NewStyle().
			Foreground(success).
			Bold(true),

		Managed: lipgloss.NewStyle().
			Foreground(warning),

		Empty: lipgloss.NewStyle().
			Foreground(muted).
			Italic(true).
			Padding(1, 2),

		StatusOK: lipgloss.NewStyle().
			Foreground(success),
	}
}

// Keybinding returns styled keybinding text.
func (s *Styles) Keybinding(key, desc string) string {
	keyStyle := lipgloss.NewStyle().
		Foreground(s.Primary).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(s.Muted)

	return keyStyle.Render("["+key+"]") + " " + descStyle.Render(desc)
}

// Checkbox renders the exclusion marker for a row.
func (s *Styles) Checkbox(checked, managed bool) string {
	box := "[ ]"
	if checked {
		box = "[x]"
	}

	switch {
	case managed:
		return s.Managed.Render(box)
	case checked:
		return s.Checked.Render(box)
	default:
		return box
	}
}
