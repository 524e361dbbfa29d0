// SPDX-FileCopyrightText: 2025 The Splitpick Authors
// SPDX-License-Identifier: EUPL-1.2

package cli

import (
	"context"

	"github.com/charmbracelet/huh"
)

// confirmWithForm shows a yes/no prompt on the terminal.
func confirmWithForm(ctx context.Context, title, description string) (bool, error) {
	if !stdinIsTerminal() {
		return false, ErrNotATerminal
	}

	var confirmed bool

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Reset").
				Negative("Cancel").
				Value(&confirmed),
		),
	).WithTheme(huh.ThemeCharm())

	if err := form.RunWithContext(ctx); err != nil {
		return false, err
	}

	return confirmed, nil
}
