// SPDX-FileCopyrightText: 2025 The Splitpick Authors
// SPDX-License-Identifier: EUPL-1.2

// Package tui runs the interactive split tunnel picker.
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/janderssonse/splitpick/internal/console"
	"github.com/janderssonse/splitpick/internal/tui/models"
	"github.com/janderssonse/splitpick/internal/tui/styles"
)

// ErrNoTerminal is returned when the TUI is launched in a non-terminal environment.
var ErrNoTerminal = errors.New("TUI requires a terminal environment")

// State is the picker state driven by the TUI.
type State interface {
	models.ExclusionState
	Flush(ctx context.Context) error
}

// App wraps the picker model in a Bubble Tea program.
type App struct {
	state State
	model *models.PickerModel
}

// NewApp creates a TUI application for state.
func NewApp(ctx context.Context, state State) *App {
	return &App{
		state: state,
		model: models.NewPicker(ctx, state, styles.New()),
	}
}

// Model returns the root model (for testing).
func (a *App) Model() *models.PickerModel {
	return a.model
}

// Run starts the program and flushes pending saves when it exits.
func (a *App) Run(ctx context.Context) error {
	defer a.model.Close()

	// Background warnings would corrupt the alternate screen.
	restore := console.DefaultOutput.Mute()

	program := tea.NewProgram(
		a.model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	_, runErr := program.Run()

	restore()

	// Saves must land even when the program was interrupted.
	if err := a.state.Flush(context.WithoutCancel(ctx)); err != nil {
		return fmt.Errorf("failed to save exclusions: %w", err)
	}

	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return fmt.Errorf("TUI application failed: %w", runErr)
	}

	return nil
}

// LaunchInteractive starts the picker after checking for a terminal.
func LaunchInteractive(ctx context.Context, state State) error {
	if !console.DefaultOutput.IsTTY(os.Stdout.Fd()) {
		return fmt.Errorf("terminal check failed: %w", ErrNoTerminal)
	}

	return NewApp(ctx, state).Run(ctx)
}
