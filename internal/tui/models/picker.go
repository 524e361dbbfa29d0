// SPDX-FileCopyrightText: 2025 The Splitpick Authors
// SPDX-License-Identifier: EUPL-1.2

// Package models contains the Bubble Tea models of the splitpick TUI.
package models

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/janderssonse/splitpick/internal/domain"
	"github.com/janderssonse/splitpick/internal/picker"
	"github.com/janderssonse/splitpick/internal/tui/styles"
	"github.com/mattn/go-runewidth"
)

// KeyEnter is the enter key name.
const KeyEnter = "enter"

// Layout constants.
const (
	defaultWidth    = 80
	defaultHeight   = 24
	chromeHeight    = 6 // title, search, footer and their borders
	minListHeight   = 1
	checkboxWidth   = 4
	minNameWidth    = 8
	packageMaxRatio = 3 // the package column takes at most 1/3 of the row
)

// ManagedBanner is shown when an administrator controls the exclusion list.
const ManagedBanner = "Split tunneling is managed by your organization"

// ExclusionState is the part of picker.AppExclusionState the TUI uses.
type ExclusionState interface {
	FilteredApps() picker.Observable[[]domain.InstalledApp]
	ExcludedPackages() picker.Observable[domain.ExclusionSet]
	SearchTerm() picker.Observable[string]
	MDMExcludedPackages() picker.Observable[domain.SettingState]
	MDMIncludedPackages() picker.Observable[domain.SettingState]
	Toggle(pkg string)
	UpdateSearchTerm(term string)
	Refresh(ctx context.Context) error
}

// StateChangedMsg signals that an observed picker value changed.
type StateChangedMsg struct{}

// RefreshDoneMsg carries the result of a rescan.
type RefreshDoneMsg struct {
	Err error
}

// PickerModel is the split tunnel application picker screen.
//
//nolint:containedctx // TUI models require context for proper cancellation propagation
type PickerModel struct {
	ctx    context.Context
	state  ExclusionState
	styles *styles.Styles
	keyMap PickerKeyMap

	width  int
	height int

	search   textinput.Model
	viewport viewport.Model

	apps        []domain.InstalledApp
	excluded    domain.ExclusionSet
	mdmExcluded domain.SettingState
	mdmIncluded domain.SettingState
	cursor      int

	showHelp bool
	helpText string
	status   string
	quitting bool

	updates     chan struct{}
	unsubscribe []func()
}

// NewPicker creates the picker screen and subscribes it to state changes.
func NewPicker(ctx context.Context, state ExclusionState, styleConfig *styles.Styles) *PickerModel {
	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "Search applications"
	search.SetValue(state.SearchTerm().Get())

	model := &PickerModel{
		ctx:      ctx,
		state:    state,
		styles:   styleConfig,
		keyMap:   DefaultPickerKeyMap(),
		width:    defaultWidth,
		height:   defaultHeight,
		search:   search,
		viewport: viewport.New(defaultWidth, defaultHeight-chromeHeight),
		updates:  make(chan struct{}, 1),
	}

	notify := func() {
		select {
		case model.updates <- struct{}{}:
		default:
		}
	}

	model.unsubscribe = []func(){
		state.FilteredApps().Subscribe(func([]domain.InstalledApp) { notify() }),
		state.ExcludedPackages().Subscribe(func(domain.ExclusionSet) { notify() }),
		state.MDMExcludedPackages().Subscribe(func(domain.SettingState) { notify() }),
		state.MDMIncludedPackages().Subscribe(func(domain.SettingState) { notify() }),
	}

	model.syncFromState()

	return model
}

// Init implements tea.Model.
func (m *PickerModel) Init() tea.Cmd {
	return m.waitForUpdate()
}

// Close drops the state subscriptions.
func (m *PickerModel) Close() {
	for _, unsubscribe := range m.unsubscribe {
		unsubscribe()
	}

	m.unsubscribe = nil
}

// Update implements tea.Model.
//
//nolint:ireturn // Bubble Tea framework requires returning tea.Model interface
func (m *PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

		return m, nil

	case StateChangedMsg:
		m.syncFromState()

		return m, m.waitForUpdate()

	case RefreshDoneMsg:
		if msg.Err != nil {
			m.status = "Rescan failed: " + msg.Err.Error()
		} else {
			m.status = "Rescanned installed applications"
		}

		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.search.Focused() {
		return m.updateSearch(msg)
	}

	return m, nil
}

// View implements tea.Model.
func (m *PickerModel) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{m.styles.Title.Render("Split tunneling")}

	if m.Managed() {
		sections = append(sections, m.styles.Banner.Render(ManagedBanner))
	}

	sections = append(sections, m.styles.Search.Render(m.search.View()))

	if m.showHelp {
		sections = append(sections, m.styles.Overlay.Render(m.helpText))
	} else {
		sections = append(sections, m.viewport.View())
	}

	sections = append(sections, m.renderFooter())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// Managed reports whether an administrator policy overrides the user's choices.
func (m *PickerModel) Managed() bool {
	return m.mdmExcluded.Set || m.mdmIncluded.Set
}

// Cursor returns the highlighted row index.
func (m *PickerModel) Cursor() int {
	return m.cursor
}

// SearchFocused reports whether key input goes to the search field.
func (m *PickerModel) SearchFocused() bool {
	return m.search.Focused()
}

// HelpVisible reports whether the help overlay is shown.
func (m *PickerModel) HelpVisible() bool {
	return m.showHelp
}

// Quitting reports whether the user asked to leave.
func (m *PickerModel) Quitting() bool {
	return m.quitting
}

// Status returns the last status line.
func (m *PickerModel) Status() string {
	return m.status
}

func (m *PickerModel) waitForUpdate() tea.Cmd {
	updates := m.updates
	ctx := m.ctx

	return func() tea.Msg {
		select {
		case <-updates:
			return StateChangedMsg{}
		case <-ctx.Done():
			return nil
		}
	}
}

//nolint:ireturn // Bubble Tea framework requires returning tea.Model interface
func (m *PickerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keyMap.ForceQuit) {
		return m.quit()
	}

	if m.showHelp {
		if key.Matches(msg, m.keyMap.Help, m.keyMap.Quit, m.keyMap.Blur) {
			m.showHelp = false
		}

		return m, nil
	}

	if m.search.Focused() {
		switch {
		case key.Matches(msg, m.keyMap.Blur):
			m.search.Blur()

			return m, nil
		case msg.Type == tea.KeyUp:
			m.moveCursor(-1)

			return m, nil
		case msg.Type == tea.KeyDown:
			m.moveCursor(1)

			return m, nil
		}

		return m.updateSearch(msg)
	}

	switch {
	case key.Matches(msg, m.keyMap.Quit):
		return m.quit()
	case key.Matches(msg, m.keyMap.Help):
		m.showHelp = true
		m.helpText = renderHelp(m.width - 4)
	case key.Matches(msg, m.keyMap.Search):
		return m, m.search.Focus()
	case key.Matches(msg, m.keyMap.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keyMap.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keyMap.PageUp):
		m.moveCursor(-m.viewport.Height)
	case key.Matches(msg, m.keyMap.PageDown):
		m.moveCursor(m.viewport.Height)
	case key.Matches(msg, m.keyMap.Toggle):
		m.toggleCurrent()
	case key.Matches(msg, m.keyMap.Refresh):
		m.status = "Rescanning..."

		return m, m.refresh()
	}

	return m, nil
}

//nolint:ireturn // Bubble Tea framework requires returning tea.Model interface
func (m *PickerModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	previous := m.search.Value()

	var cmd tea.Cmd

	m.search, cmd = m.search.Update(msg)

	if value := m.search.Value(); value != previous {
		m.state.UpdateSearchTerm(value)
	}

	return m, cmd
}

//nolint:ireturn // Bubble Tea framework requires returning tea.Model interface
func (m *PickerModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.Close()

	return m, tea.Quit
}

func (m *PickerModel) refresh() tea.Cmd {
	ctx := m.ctx
	state := m.state

	return func() tea.Msg {
		return RefreshDoneMsg{Err: state.Refresh(ctx)}
	}
}

func (m *PickerModel) toggleCurrent() {
	if len(m.apps) == 0 {
		return
	}

	if m.Managed() {
		m.status = ManagedBanner

		return
	}

	app := m.apps[m.cursor]
	m.state.Toggle(app.PackageName)

	if m.excluded.Contains(app.PackageName) {
		m.status = fmt.Sprintf("%s uses the VPN", app.Name)
	} else {
		m.status = fmt.Sprintf("%s bypasses the VPN", app.Name)
	}
}

func (m *PickerModel) moveCursor(delta int) {
	if len(m.apps) == 0 {
		m.cursor = 0

		return
	}

	m.cursor = max(0, min(len(m.apps)-1, m.cursor+delta))
	m.renderList()
}

func (m *PickerModel) resize(width, height int) {
	m.width = width
	m.height = height

	listHeight := height - chromeHeight
	if m.Managed() {
		listHeight--
	}

	m.viewport.Width = width
	m.viewport.Height = max(minListHeight, listHeight)
	m.search.Width = max(minNameWidth, width-4)

	if m.showHelp {
		m.helpText = renderHelp(width - 4)
	}

	m.renderList()
}

func (m *PickerModel) syncFromState() {
	var selected string
	if m.cursor < len(m.apps) {
		selected = m.apps[m.cursor].PackageName
	}

	m.apps = m.state.FilteredApps().Get()
	m.excluded = m.state.ExcludedPackages().Get()
	m.mdmExcluded = m.state.MDMExcludedPackages().Get()
	m.mdmIncluded = m.state.MDMIncludedPackages().Get()

	m.cursor = 0

	if idx := slices.IndexFunc(m.apps, func(app domain.InstalledApp) bool {
		return app.PackageName == selected
	}); idx >= 0 {
		m.cursor = idx
	}

	m.renderList()
}

// isExcluded resolves the checkbox state, honoring managed overrides.
func (m *PickerModel) isExcluded(pkg string) (excluded, managed bool) {
	switch {
	case m.mdmIncluded.Set:
		return !slices.Contains(m.mdmIncluded.Packages, pkg), true
	case m.mdmExcluded.Set:
		return slices.Contains(m.mdmExcluded.Packages, pkg), true
	default:
		return m.excluded.Contains(pkg), false
	}
}

func (m *PickerModel) renderList() {
	if len(m.apps) == 0 {
		message := "No applications installed"
		if strings.TrimSpace(m.search.Value()) != "" {
			message = "No applications match your search"
		}

		m.viewport.SetContent(m.styles.Empty.Render(message))
		m.viewport.GotoTop()

		return
	}

	rowWidth := max(checkboxWidth+minNameWidth, m.width-2)
	pkgWidth := rowWidth / packageMaxRatio
	nameWidth := max(minNameWidth, rowWidth-checkboxWidth-pkgWidth-1)

	rows := make([]string, 0, len(m.apps))

	for i, app := range m.apps {
		excluded, managed := m.isExcluded(app.PackageName)

		name := runewidth.FillRight(runewidth.Truncate(app.Name, nameWidth, "…"), nameWidth)
		pkg := runewidth.Truncate(app.PackageName, pkgWidth, "…")

		row := m.styles.Checkbox(excluded, managed) + " " + name + " " + m.styles.Package.Render(pkg)
		if i == m.cursor {
			row = m.styles.Cursor.Render(row)
		} else {
			row = m.styles.Row.Render(row)
		}

		rows = append(rows, row)
	}

	m.viewport.SetContent(strings.Join(rows, "\n"))

	switch {
	case m.cursor < m.viewport.YOffset:
		m.viewport.SetYOffset(m.cursor)
	case m.cursor >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}

func (m *PickerModel) renderFooter() string {
	bindings := m.keyMap.ShortHelp()
	parts := make([]string, 0, len(bindings)+1)

	for _, binding := range bindings {
		help := binding.Help()
		parts = append(parts, m.styles.Keybinding(help.Key, help.Desc))
	}

	footer := strings.Join(parts, "  ")

	if m.status != "" {
		footer = m.styles.StatusOK.Render(m.status) + "\n" + footer
	}

	return m.styles.Footer.Width(max(0, m.width)).Render(footer)
}
