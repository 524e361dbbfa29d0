// SPDX-FileCopyrightText: 2025 The Splitpick Authors
// SPDX-License-Identifier: EUPL-1.2

// Package main provides the CLI entry point for splitpick.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gofrs/flock"
	"github.com/janderssonse/splitpick/internal/cli"
	"github.com/janderssonse/splitpick/internal/console"
	"github.com/janderssonse/splitpick/internal/domain"
)

func main() {
	os.Exit(run())
}

func run() int {
	// One picker at a time; concurrent instances would race on the debounced saves.
	lockPath := filepath.Join(os.TempDir(), "splitpick.lock")
	lock := flock.New(lockPath)

	locked, err := lock.TryLock()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to acquire process lock: %v\n", err)

		return cli.ExitSystemError
	}

	if !locked {
		fmt.Fprintf(os.Stderr, "Another splitpick instance is already running\n")

		return cli.ExitGeneralError
	}

	defer func() {
		if unlockErr := lock.Unlock(); unlockErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to release process lock: %v\n", unlockErr)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewCLI().Run(ctx, os.Args); err != nil {
		exitErr := &domain.ExitError{}
		if errors.As(err, &exitErr) {
			console.DefaultOutput.ErrorResult(errors.New(exitErr.Message), exitErr.Code)

			return exitErr.Code
		}

		fmt.Fprintf(os.Stderr, "Unexpected error: %v\n", err)

		return cli.ExitGeneralError
	}

	return cli.ExitSuccess
}
