// SPDX-FileCopyrightText: 2025 The Splitpick Authors
// SPDX-License-Identifier: EUPL-1.2

// Package picker holds the state behind the split tunnel app picker: the
// installed applications, a debounced search filter and the set of
// applications excluded from the tunnel, which is saved after a quiet period.
package picker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/janderssonse/splitpick/internal/domain"
)

// Quiet periods used when no option overrides them.
const (
	DefaultSearchDebounce = 200 * time.Millisecond
	DefaultSaveDebounce   = 500 * time.Millisecond
)

var (
	// ErrClosed is returned when the state has been closed.
	ErrClosed = errors.New("picker state closed")
	// ErrMissingDependency is returned when a required port is nil.
	ErrMissingDependency = errors.New("missing dependency")
)

// Deps are the collaborators the state talks to.
type Deps struct {
	Inventory domain.AppInventory
	Store     domain.DisallowedStore
	Settings  domain.ManagedSettings // optional
}

// Option configures an AppExclusionState.
type Option func(*options)

type options struct {
	executor       Executor
	searchDebounce time.Duration
	saveDebounce   time.Duration
	onSaveError    func(error)
}

// WithExecutor runs all state work on exec instead of a private Loop.
func WithExecutor(exec Executor) Option {
	return func(o *options) { o.executor = exec }
}

// WithSearchDebounce overrides the quiet period before the filter recomputes.
func WithSearchDebounce(d time.Duration) Option {
	return func(o *options) { o.searchDebounce = d }
}

// WithSaveDebounce overrides the quiet period before exclusions are saved.
func WithSaveDebounce(d time.Duration) Option {
	return func(o *options) { o.saveDebounce = d }
}

// WithSaveErrorHandler receives errors from background saves. The state
// itself ignores them.
func WithSaveErrorHandler(fn func(error)) Option {
	return func(o *options) { o.onSaveError = fn }
}

// AppExclusionState is the state behind one picker screen.
//
// Every mutation runs on a single Executor, so fields below the exec line are
// only touched from there. The Values may be read from any goroutine.
//
//nolint:containedctx // background saves outlive the calling operation
type AppExclusionState struct {
	ctx         context.Context
	inventory   domain.AppInventory
	store       domain.DisallowedStore
	onSaveError func(error)

	installed   *Value[[]domain.InstalledApp]
	filtered    *Value[[]domain.InstalledApp]
	excluded    *Value[domain.ExclusionSet]
	searchTerm  *Value[string]
	mdmExcluded *Value[domain.SettingState]
	mdmIncluded *Value[domain.SettingState]

	exec Executor
	loop *Loop // non-nil when the state owns its executor

	appliedTerm string
	searchTimer debouncer
	saveTimer   debouncer
}

// New queries the inventory once, restores the exclusions that still match
// installed apps, and starts with the full list visible. ctx bounds the
// initial queries only; the state runs until Close.
func New(ctx context.Context, deps Deps, opts ...Option) (*AppExclusionState, error) {
	if deps.Inventory == nil || deps.Store == nil {
		return nil, fmt.Errorf("%w: inventory and store are required", ErrMissingDependency)
	}

	cfg := options{
		searchDebounce: DefaultSearchDebounce,
		saveDebounce:   DefaultSaveDebounce,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	apps, err := deps.Inventory.ListInstalled(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInventoryUnavailable, err)
	}

	persisted, err := deps.Store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}

	var mdmExcluded, mdmIncluded domain.SettingState
	if deps.Settings != nil {
		mdmExcluded = deps.Settings.ExcludedPackages()
		mdmIncluded = deps.Settings.IncludedPackages()
	}

	state := &AppExclusionState{
		ctx:         context.WithoutCancel(ctx),
		inventory:   deps.Inventory,
		store:       deps.Store,
		onSaveError: cfg.onSaveError,
		installed:   NewValue(apps),
		filtered:    NewValue(apps),
		excluded:    NewValue(domain.IntersectInstalled(persisted, apps)),
		searchTerm:  NewValue(""),
		mdmExcluded: NewValue(mdmExcluded),
		mdmIncluded: NewValue(mdmIncluded),
		exec:        cfg.executor,
	}

	if state.exec == nil {
		state.loop = NewLoop(context.WithoutCancel(ctx))
		state.exec = state.loop
	}

	state.searchTimer = debouncer{exec: state.exec, delay: cfg.searchDebounce}
	state.saveTimer = debouncer{exec: state.exec, delay: cfg.saveDebounce}

	return state, nil
}

// InstalledApps is the inventory snapshot.
func (s *AppExclusionState) InstalledApps() Observable[[]domain.InstalledApp] { return s.installed }

// FilteredApps is the installed list narrowed by the settled search term.
func (s *AppExclusionState) FilteredApps() Observable[[]domain.InstalledApp] { return s.filtered }

// ExcludedPackages is the current exclusion set.
func (s *AppExclusionState) ExcludedPackages() Observable[domain.ExclusionSet] { return s.excluded }

// SearchTerm is the raw, unsettled search input.
func (s *AppExclusionState) SearchTerm() Observable[string] { return s.searchTerm }

// MDMExcludedPackages is the managed exclusion override, for display only.
func (s *AppExclusionState) MDMExcludedPackages() Observable[domain.SettingState] {
	return s.mdmExcluded
}

// MDMIncludedPackages is the managed inclusion override, for display only.
func (s *AppExclusionState) MDMIncludedPackages() Observable[domain.SettingState] {
	return s.mdmIncluded
}

// Exclude keeps pkg out of the tunnel. Excluding twice is a no-op.
func (s *AppExclusionState) Exclude(pkg string) {
	s.exec.Submit(func() { s.exclude(pkg) })
}

// Unexclude routes pkg through the tunnel again.
func (s *AppExclusionState) Unexclude(pkg string) {
	s.exec.Submit(func() { s.unexclude(pkg) })
}

// Toggle flips the exclusion of pkg.
func (s *AppExclusionState) Toggle(pkg string) {
	s.exec.Submit(func() {
		if s.excluded.Get().Contains(pkg) {
			s.unexclude(pkg)
		} else {
			s.exclude(pkg)
		}
	})
}

// UpdateSearchTerm replaces the search term. The filtered list follows once
// edits have been quiet for the search debounce period.
func (s *AppExclusionState) UpdateSearchTerm(term string) {
	s.exec.Submit(func() {
		s.searchTerm.Set(term)
		s.searchTimer.trigger(s.applySearchTerm)
	})
}

// Refresh queries the inventory again and re-filters with the settled term.
// The exclusion set is left untouched.
func (s *AppExclusionState) Refresh(ctx context.Context) error {
	apps, err := s.inventory.ListInstalled(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInventoryUnavailable, err)
	}

	return s.await(ctx, func() {
		s.installed.Set(apps)
		s.recomputeFiltered()
	})
}

// Flush runs a pending save immediately and waits for it.
func (s *AppExclusionState) Flush(ctx context.Context) error {
	return s.await(ctx, func() { s.saveTimer.flush() })
}

// Close cancels outstanding debounced work. A pending save is dropped, so
// hosts that must keep the last edits call Flush first.
func (s *AppExclusionState) Close() {
	_ = s.await(context.Background(), func() {
		s.searchTimer.cancel()
		s.saveTimer.cancel()
	})

	if s.loop != nil {
		s.loop.Close()
	}
}

func (s *AppExclusionState) exclude(pkg string) {
	current := s.excluded.Get()
	if current.Contains(pkg) {
		return
	}

	s.excluded.Set(current.With(pkg))
	s.scheduleSave()
}

func (s *AppExclusionState) unexclude(pkg string) {
	current := s.excluded.Get()
	if current.Contains(pkg) {
		s.excluded.Set(current.Without(pkg))
	}

	s.scheduleSave()
}

func (s *AppExclusionState) applySearchTerm() {
	trimmed := strings.TrimSpace(s.searchTerm.Get())
	if trimmed == s.appliedTerm {
		return
	}

	s.appliedTerm = trimmed
	s.recomputeFiltered()
}

func (s *AppExclusionState) recomputeFiltered() {
	s.filtered.Set(FilterApps(s.installed.Get(), s.appliedTerm))
}

func (s *AppExclusionState) scheduleSave() {
	s.saveTimer.trigger(func() {
		packages := s.excluded.Get().Strings()
		if err := s.store.Save(s.ctx, packages); err != nil && s.onSaveError != nil {
			s.onSaveError(err)
		}
	})
}

// await runs fn on the executor and blocks until it has finished.
func (s *AppExclusionState) await(ctx context.Context, fn func()) error {
	done := make(chan struct{})

	if !s.exec.Submit(func() {
		defer close(done)
		fn()
	}) {
		return ErrClosed
	}

	// A Loop may stop between accepting fn and running it.
	var stopped <-chan struct{}
	if loop, ok := s.exec.(interface{ Done() <-chan struct{} }); ok {
		stopped = loop.Done()
	}

	select {
	case <-done:
		return nil
	case <-stopped:
		select {
		case <-done:
			return nil
		default:
			return ErrClosed
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}

// debouncer keeps at most one pending action; triggering again cancels the
// previous one and restarts the wait. Only used from the executor.
type debouncer struct {
	exec    Executor
	delay   time.Duration
	pending Task
	action  func()
}

func (d *debouncer) trigger(action func()) {
	d.cancel()

	d.action = action
	d.pending = d.exec.Schedule(d.delay, func() {
		d.pending = nil
		d.action = nil
		action()
	})
}

func (d *debouncer) flush() bool {
	if d.pending == nil {
		return false
	}

	action := d.action
	d.cancel()
	action()

	return true
}

func (d *debouncer) cancel() {
	if d.pending != nil {
		d.pending.Cancel()
	}

	d.pending = nil
	d.action = nil
}
