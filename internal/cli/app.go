// SPDX-FileCopyrightText: 2025 The Splitpick Authors
// SPDX-License-Identifier: EUPL-1.2

// Package cli provides the splitpick command-line interface.
package cli

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"runtime/debug"

	"github.com/charmbracelet/huh"
	platformAdapter "github.com/janderssonse/splitpick/internal/adapters/platform"
	"github.com/janderssonse/splitpick/internal/cli/handlers"
	"github.com/janderssonse/splitpick/internal/config"
	"github.com/janderssonse/splitpick/internal/console"
	"github.com/janderssonse/splitpick/internal/domain"
	"github.com/janderssonse/splitpick/internal/mdm"
	"github.com/janderssonse/splitpick/internal/tui"
	"github.com/urfave/cli/v3"
)

// Exit codes follow standard Unix conventions for better scripting support.
const (
	ExitSuccess         = 0 // Operation completed successfully
	ExitGeneralError    = 1 // Generic failure (catch-all)
	ExitUsageError      = 2 // Invalid command line usage
	ExitConfigError     = 3 // Configuration or policy file error
	ExitPermissionError = 4 // Permission denied
	ExitNotFoundError   = 5 // Application not installed

	ExitDependencyError = 10 // No usable application inventory
	ExitSystemError     = 12 // Store could not be read or written
	ExitTimeoutError    = 13 // Lock wait timed out
	ExitInterruptError  = 14 // User interrupted (Ctrl+C)

	ExitPolicyError = 20 // Setting is managed by the organization
)

// Version is set at build time with -ldflags "-X ...cli.Version=v1.2.3".
var Version = "" //nolint:gochecknoglobals

// ErrNotATerminal is returned when a prompt is needed but stdin is not interactive.
var ErrNotATerminal = errors.New("confirmation requires a terminal")

// ConfirmFunc asks the user to confirm a destructive action.
type ConfirmFunc func(ctx context.Context, title, description string) (bool, error)

// InteractiveFunc runs the interactive picker on state.
type InteractiveFunc func(ctx context.Context, state tui.State) error

// CLI wires the command tree to the picker state and its adapters.
type CLI struct {
	app        *cli.Command
	verbose    bool
	json       bool
	plain      bool
	yes        bool
	configPath string

	cfg         *config.Config
	env         handlers.Environment
	stdout      io.Writer
	confirm     ConfirmFunc
	interactive InteractiveFunc
}

// NewCLI creates the splitpick command tree.
func NewCLI() *CLI {
	app := &CLI{
		confirm:     confirmWithForm,
		interactive: tui.LaunchInteractive,
	}

	app.app = &cli.Command{
		Name:    "splitpick",
		Usage:   "Choose which applications bypass the VPN tunnel",
		Version: app.getVersion(),
		Suggest: true,
		Description: `Split tunneling lets selected applications use your regular network
connection while everything else stays inside the VPN tunnel.

COMMANDS:
  splitpick                      Open the interactive picker
  splitpick list --search mail   Show installed applications
  splitpick exclude org.gnome.Maps
  splitpick include org.gnome.Maps
  splitpick status               Show managed, user and effective exclusions

FILES:
  $XDG_CONFIG_HOME/splitpick/config.toml       Configuration
  $XDG_CONFIG_HOME/splitpick/disallowed.toml   Excluded applications
  /etc/splitpick/managed.yaml                  Organization policy`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "verbose",
				Usage:       "show progress messages to stderr",
				Aliases:     []string{"v"},
				Destination: &app.verbose,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output structured JSON results",
				Aliases:     []string{"j"},
				Destination: &app.json,
			},
			&cli.BoolFlag{
				Name:        "plain",
				Usage:       "output plain text without formatting for scripts",
				Destination: &app.plain,
			},
			&cli.StringFlag{
				Name:        "config",
				Usage:       "configuration file (default $XDG_CONFIG_HOME/splitpick/config.toml)",
				Sources:     cli.EnvVars(config.EnvConfigFile),
				Destination: &app.configPath,
			},
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "automatically answer yes to all prompts",
				Destination: &app.yes,
			},
		},
		Before:   app.initConfig,
		Action:   app.defaultAction,
		Commands: app.createAllCommands(),
	}

	return app
}

// Run executes the CLI application.
func (app *CLI) Run(ctx context.Context, args []string) error {
	return app.app.Run(ctx, args)
}

func (app *CLI) createAllCommands() []*cli.Command {
	return []*cli.Command{
		app.createPickCommand(),
		app.createListCommand(),
		app.createExcludeCommand(),
		app.createIncludeCommand(),
		app.createStatusCommand(),
		app.createResetCommand(),
		app.createVersionCommand(),
	}
}

// initConfig validates global flags and loads the configuration file.
func (app *CLI) initConfig(ctx context.Context, _ *cli.Command) (context.Context, error) {
	if app.json && app.plain {
		return ctx, domain.NewExitError(ExitUsageError, "cannot use both --json and --plain flags simultaneously", nil)
	}

	console.DefaultOutput.SetMode(app.verbose, app.json, app.plain)

	path := config.ResolvePath(app.configPath)

	cfg, err := config.Load(path)
	if err != nil {
		return ctx, app.exitError(err, "")
	}

	console.DefaultOutput.Progressf("Loaded configuration from %s", path)

	app.cfg = cfg

	if app.env.Runner == nil {
		app.env.Runner = platformAdapter.NewCommandRunner(app.verbose)
	}

	if app.env.Files == nil {
		app.env.Files = platformAdapter.NewFileManager(app.verbose)
	}

	return ctx, nil
}

// defaultAction opens the picker when no command is given.
func (app *CLI) defaultAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Present() {
		return domain.NewExitError(ExitUsageError,
			"'"+cmd.Args().First()+"' is not a command. Run 'splitpick --help' to see available commands.", nil)
	}

	return app.runPick(ctx, cmd)
}

func (app *CLI) handler() *handlers.BaseHandler {
	h := handlers.NewBaseHandler(app.verbose, app.json, app.plain)
	if app.stdout != nil {
		h.WithWriter(app.stdout)
	}

	return h
}

func (app *CLI) getVersion() string {
	if Version != "" {
		return Version
	}

	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	return "dev"
}

// exitError maps err to an ExitError carrying a user-facing message.
func (app *CLI) exitError(err error, pkg string) error {
	var exitErr *domain.ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}

	return domain.NewExitError(exitCodeFor(err), domain.FormatErrorMessage(err, pkg, app.verbose), err)
}

func exitCodeFor(err error) int {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, huh.ErrUserAborted):
		return ExitInterruptError
	case errors.Is(err, domain.ErrInvalidPackageName):
		return ExitUsageError
	case errors.Is(err, config.ErrInvalidConfig), errors.Is(err, mdm.ErrInvalidPolicy):
		return ExitConfigError
	case errors.Is(err, domain.ErrPermissionDenied), errors.Is(err, fs.ErrPermission):
		return ExitPermissionError
	case errors.Is(err, domain.ErrNotInstalled):
		return ExitNotFoundError
	case errors.Is(err, domain.ErrNoPackageManager), errors.Is(err, domain.ErrInventoryUnavailable):
		return ExitDependencyError
	case errors.Is(err, domain.ErrLockTimeout):
		return ExitTimeoutError
	case errors.Is(err, domain.ErrStoreUnavailable):
		return ExitSystemError
	case errors.Is(err, domain.ErrManagedByPolicy):
		return ExitPolicyError
	default:
		return ExitGeneralError
	}
}

// stdinIsTerminal reports whether prompts can be shown.
func stdinIsTerminal() bool {
	return console.DefaultOutput.IsTTY(os.Stdin.Fd())
}
