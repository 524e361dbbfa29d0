// SPDX-FileCopyrightText: 2025 The Splitpick Authors
// SPDX-License-Identifier: EUPL-1.2

package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/janderssonse/splitpick/internal/picker"
	"github.com/janderssonse/splitpick/internal/testutil"
)

func newTestState(t *testing.T) *picker.AppExclusionState {
	t.Helper()

	state, err := picker.New(context.Background(), picker.Deps{
		Inventory: testutil.MapsAndMail(),
		Store:     testutil.NewMemoryStore(),
	}, picker.WithExecutor(picker.NewManualExecutor()))
	if err != nil {
		t.Fatalf("picker.New() error = %v", err)
	}

	return state
}

func TestNewApp(t *testing.T) {
	t.Parallel()

	app := NewApp(context.Background(), newTestState(t))
	if app == nil || app.Model() == nil {
		t.Fatal("NewApp() returned no model")
	}

	defer app.Model().Close()

	if app.Model().Managed() {
		t.Error("picker should not be managed without a policy")
	}
}

func TestLaunchInteractive_RequiresTerminal(t *testing.T) {
	t.Parallel()

	// go test connects stdout to a pipe.
	err := LaunchInteractive(context.Background(), newTestState(t))
	if !errors.Is(err, ErrNoTerminal) {
		t.Errorf("LaunchInteractive() error = %v, want ErrNoTerminal", err)
	}
}
