// SPDX-FileCopyrightText: 2025 The Splitpick Authors
// SPDX-License-Identifier: EUPL-1.2

package handlers

import (
	"context"
	"fmt"
	"slices"

	"github.com/janderssonse/splitpick/internal/adapters/inventory"
	"github.com/janderssonse/splitpick/internal/adapters/store"
	"github.com/janderssonse/splitpick/internal/config"
	"github.com/janderssonse/splitpick/internal/console"
	"github.com/janderssonse/splitpick/internal/domain"
	"github.com/janderssonse/splitpick/internal/mdm"
	"github.com/janderssonse/splitpick/internal/picker"
)

// Environment holds the adapters a session is built from. Nil fields are
// resolved from the configuration.
type Environment struct {
	Runner    domain.CommandRunner
	Files     domain.FileManager
	Inventory domain.AppInventory
	Store     domain.DisallowedStore
	Settings  domain.ManagedSettings
	Executor  picker.Executor
}

// Session bundles the picker state with the adapters it was opened with.
type Session struct {
	Config     *config.Config
	Inventory  domain.AppInventory
	Store      domain.DisallowedStore
	StorePath  string
	Settings   domain.ManagedSettings
	PolicyPath string
	State      *picker.AppExclusionState
}

// OpenSession resolves the adapters from cfg and env and loads the picker state.
func OpenSession(ctx context.Context, cfg *config.Config, env Environment, onSaveError func(error)) (*Session, error) {
	session := &Session{Config: cfg}

	session.Inventory = env.Inventory
	if session.Inventory == nil {
		inv, err := inventory.Detect(cfg.Inventory.Source, env.Runner, cfg.Inventory.Dirs...)
		if err != nil {
			return nil, err
		}

		session.Inventory = inv
	}

	session.Store = env.Store
	if session.Store == nil {
		tomlStore := store.New(cfg.Store.Path, env.Files)
		session.Store = tomlStore
		session.StorePath = tomlStore.Path()
	}

	session.Settings = env.Settings
	if session.Settings == nil {
		session.PolicyPath = mdm.ResolvePath(cfg.MDM.Path)

		policy, err := mdm.Load(session.PolicyPath)
		if err != nil {
			return nil, err
		}

		if policy.Active() {
			console.DefaultOutput.Progressf("Managed settings active from %s", session.PolicyPath)
		}

		session.Settings = policy
	}

	opts := []picker.Option{
		picker.WithSearchDebounce(cfg.Picker.SearchDebounce.Std()),
		picker.WithSaveDebounce(cfg.Picker.SaveDebounce.Std()),
	}

	if env.Executor != nil {
		opts = append(opts, picker.WithExecutor(env.Executor))
	}

	if onSaveError != nil {
		opts = append(opts, picker.WithSaveErrorHandler(onSaveError))
	}

	state, err := picker.New(ctx, picker.Deps{
		Inventory: session.Inventory,
		Store:     session.Store,
		Settings:  session.Settings,
	}, opts...)
	if err != nil {
		return nil, err
	}

	session.State = state

	return session, nil
}

// Close saves pending edits and stops the picker state.
func (s *Session) Close(ctx context.Context) error {
	defer s.State.Close()

	if err := s.State.Flush(ctx); err != nil {
		return fmt.Errorf("failed to save exclusions: %w", err)
	}

	return nil
}

// Installed returns the current inventory snapshot.
func (s *Session) Installed() []domain.InstalledApp {
	return s.State.InstalledApps().Get()
}

// IsInstalled reports whether pkg is in the inventory snapshot.
func (s *Session) IsInstalled(pkg string) bool {
	return slices.Contains(domain.PackageNames(s.Installed()), pkg)
}

// Managed reports whether an administrator policy overrides the user's set.
func (s *Session) Managed() bool {
	return s.State.MDMExcludedPackages().Get().Set || s.State.MDMIncludedPackages().Get().Set
}
