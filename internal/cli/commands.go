// SPDX-FileCopyrightText: 2025 The Splitpick Authors
// SPDX-License-Identifier: EUPL-1.2

package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	cliAdapter "github.com/janderssonse/splitpick/internal/adapters/cli"
	"github.com/janderssonse/splitpick/internal/cli/handlers"
	"github.com/janderssonse/splitpick/internal/console"
	"github.com/janderssonse/splitpick/internal/domain"
	"github.com/janderssonse/splitpick/internal/mdm"
	"github.com/janderssonse/splitpick/internal/picker"
	"github.com/urfave/cli/v3"
)

// saveErrors records background save failures so commands can report them.
type saveErrors struct {
	mu  sync.Mutex
	err error
}

func (s *saveErrors) record(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err == nil {
		s.err = err
	}
}

func (s *saveErrors) get() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.err
}

func (app *CLI) openSession(ctx context.Context, onSaveError func(error)) (*handlers.Session, error) {
	session, err := handlers.OpenSession(ctx, app.cfg, app.env, onSaveError)
	if err != nil {
		return nil, app.exitError(err, "")
	}

	console.DefaultOutput.Progressf("Loaded %d applications from %s inventory",
		len(session.Installed()), session.Inventory.Source())

	return session, nil
}

func (app *CLI) createPickCommand() *cli.Command {
	return &cli.Command{
		Name:  "pick",
		Usage: "Open the interactive picker",
		Description: `Search installed applications and toggle which ones bypass the VPN.

Navigation:
- / to search, esc to leave the search field
- space or enter to toggle the highlighted application
- ? for help, q or Ctrl+C to save and quit`,
		Action: app.runPick,
	}
}

func (app *CLI) runPick(ctx context.Context, _ *cli.Command) error {
	session, err := app.openSession(ctx, func(err error) {
		console.DefaultOutput.Warningf("Failed to save excluded applications: %v", err)
	})
	if err != nil {
		return err
	}

	defer session.State.Close()

	if err := app.interactive(ctx, session.State); err != nil {
		if app.verbose {
			return domain.NewExitError(ExitGeneralError, fmt.Sprintf("Failed to launch picker: %v", err), err)
		}

		return domain.NewExitError(ExitGeneralError, "Failed to launch interactive picker (terminal required, try 'splitpick list')", err)
	}

	count := len(session.State.ExcludedPackages().Get())
	console.DefaultOutput.Successf("%s application(s) bypass the VPN", console.DefaultOutput.Bold(strconv.Itoa(count)))

	return nil
}

func (app *CLI) createListCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List installed applications and their exclusion state",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "search",
				Aliases: []string{"s"},
				Usage:   "only show applications whose name contains `TERM`",
			},
			&cli.BoolFlag{
				Name:  "excluded",
				Usage: "only show excluded applications",
			},
		},
		Action: app.runList,
	}
}

func (app *CLI) runList(ctx context.Context, cmd *cli.Command) error {
	session, err := app.openSession(ctx, nil)
	if err != nil {
		return err
	}
	defer session.State.Close()

	excluded := session.State.ExcludedPackages().Get()
	apps := picker.FilterApps(session.Installed(), cmd.String("search"))

	rows := make([]cliAdapter.AppRow, 0, len(apps))

	for _, entry := range apps {
		isExcluded := excluded.Contains(entry.PackageName)
		if cmd.Bool("excluded") && !isExcluded {
			continue
		}

		rows = append(rows, cliAdapter.AppRow{
			Name:        entry.Name,
			PackageName: entry.PackageName,
			Source:      entry.Source,
			Excluded:    isExcluded,
		})
	}

	return app.handler().GetOutput().Apps(rows)
}

func (app *CLI) createExcludeCommand() *cli.Command {
	return &cli.Command{
		Name:      "exclude",
		Usage:     "Let applications bypass the VPN tunnel",
		ArgsUsage: "PACKAGE...",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return app.runEdit(ctx, cmd, true)
		},
	}
}

func (app *CLI) createIncludeCommand() *cli.Command {
	return &cli.Command{
		Name:      "include",
		Usage:     "Route applications through the VPN tunnel again",
		ArgsUsage: "PACKAGE...",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return app.runEdit(ctx, cmd, false)
		},
	}
}

func (app *CLI) runEdit(ctx context.Context, cmd *cli.Command, exclude bool) error {
	packages := cmd.Args().Slice()
	if len(packages) == 0 {
		return domain.NewExitError(ExitUsageError, "no packages specified (see 'splitpick list')", nil)
	}

	for _, pkg := range packages {
		if err := domain.ValidatePackageName(pkg); err != nil {
			return app.exitError(err, pkg)
		}
	}

	var failures saveErrors

	session, err := app.openSession(ctx, failures.record)
	if err != nil {
		return err
	}

	if session.Managed() {
		session.State.Close()

		return app.exitError(domain.ErrManagedByPolicy, "")
	}

	for _, pkg := range packages {
		if !exclude {
			session.State.Unexclude(pkg)

			continue
		}

		if !session.IsInstalled(pkg) {
			session.State.Close()

			return app.exitError(fmt.Errorf("%w: %s", domain.ErrNotInstalled, pkg), pkg)
		}

		session.State.Exclude(pkg)
	}

	if err := session.Close(ctx); err != nil {
		return app.exitError(err, "")
	}

	if err := failures.get(); err != nil {
		return app.exitError(err, "")
	}

	verb := "Included"
	if exclude {
		verb = "Excluded"
	}

	console.DefaultOutput.Progressf("%s %s", verb, strings.Join(packages, ", "))

	return app.handler().GetOutput().Success(
		fmt.Sprintf("%s %s", verb, strings.Join(packages, ", ")),
		map[string]any{"excluded": session.State.ExcludedPackages().Get().Strings()},
	)
}

func (app *CLI) createStatusCommand() *cli.Command {
	return &cli.Command{
		Name:   "status",
		Usage:  "Show managed, user and effective exclusions",
		Action: app.runStatus,
	}
}

func (app *CLI) runStatus(ctx context.Context, _ *cli.Command) error {
	session, err := app.openSession(ctx, nil)
	if err != nil {
		return err
	}
	defer session.State.Close()

	installed := session.Installed()
	user := session.State.ExcludedPackages().Get().Strings()

	return app.handler().GetOutput().Status(cliAdapter.StatusReport{
		Source:      session.Inventory.Source(),
		Installed:   len(installed),
		StorePath:   session.StorePath,
		PolicyPath:  session.PolicyPath,
		MDMExcluded: session.State.MDMExcludedPackages().Get(),
		MDMIncluded: session.State.MDMIncludedPackages().Get(),
		User:        user,
		Effective:   mdm.EffectivePolicy(session.Settings, installed, user),
	})
}

func (app *CLI) createResetCommand() *cli.Command {
	return &cli.Command{
		Name:   "reset",
		Usage:  "Route every application through the VPN tunnel again",
		Action: app.runReset,
	}
}

func (app *CLI) runReset(ctx context.Context, _ *cli.Command) error {
	session, err := app.openSession(ctx, nil)
	if err != nil {
		return err
	}

	// Pending edits are irrelevant; the list is replaced wholesale.
	session.State.Close()

	count := len(session.State.ExcludedPackages().Get())

	if !app.yes {
		confirmed, err := app.confirm(ctx,
			"Route all applications through the VPN?",
			fmt.Sprintf("%d excluded application(s) will use the tunnel again.", count))
		if errors.Is(err, ErrNotATerminal) {
			return domain.NewExitError(ExitUsageError, "use --yes to reset without a prompt", err)
		}

		if err != nil {
			return app.exitError(err, "")
		}

		if !confirmed {
			return app.handler().GetOutput().Success("Reset cancelled", map[string]any{"reset": false})
		}
	}

	if err := session.Store.Save(ctx, []string{}); err != nil {
		return app.exitError(err, "")
	}

	return app.handler().GetOutput().Success(
		fmt.Sprintf("Cleared %d excluded application(s)", count),
		map[string]any{"reset": true, "cleared": count},
	)
}

func (app *CLI) createVersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Show version information",
		Action: func(_ context.Context, _ *cli.Command) error {
			console.DefaultOutput.SuccessResult(app.getVersion(), "")

			return nil
		},
	}
}
