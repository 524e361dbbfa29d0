// SPDX-FileCopyrightText: 2025 The Splitpick Authors
// SPDX-License-Identifier: EUPL-1.2

// Package platform provides the command and file adapters for the domain ports.
package platform

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/janderssonse/splitpick/internal/console"
)

// CommandRunner implements the CommandRunner port for real system commands.
type CommandRunner struct {
	verbose bool
}

// NewCommandRunner creates a new command runner.
func NewCommandRunner(verbose bool) *CommandRunner {
	return &CommandRunner{
		verbose: verbose,
	}
}

// ExecuteWithOutput runs a command and returns its stdout.
func (r *CommandRunner) ExecuteWithOutput(ctx context.Context, name string, args ...string) (string, error) {
	if r.verbose {
		console.DefaultOutput.Progressf("Executing: %s %s", name, strings.Join(args, " "))
	}

	var stderr bytes.Buffer

	// #nosec G204 - inventory commands are fixed by the adapters
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr

	output, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("command failed: %w (stderr: %s)", err, msg)
		}

		return "", fmt.Errorf("command failed: %w", err)
	}

	return string(output), nil
}

// CommandExists checks if a command is available on the system.
func (r *CommandRunner) CommandExists(name string) bool {
	_, err := exec.LookPath(name)

	return err == nil
}

// MockCommandRunner implements the CommandRunner port for testing.
type MockCommandRunner struct {
	commands map[string]string // command -> expected output
	failures map[string]error
	existing map[string]bool
}

// NewMockCommandRunner creates a new mock command runner for testing.
func NewMockCommandRunner() *MockCommandRunner {
	return &MockCommandRunner{
		commands: make(map[string]string),
		failures: make(map[string]error),
		existing: make(map[string]bool),
	}
}

// SetMockOutput sets the expected output for a command line and marks the
// program as available.
func (r *MockCommandRunner) SetMockOutput(command, output string) {
	r.commands[command] = output
	r.existing[strings.Fields(command)[0]] = true
}

// SetMockError makes a command line fail with err.
func (r *MockCommandRunner) SetMockError(command string, err error) {
	r.failures[command] = err
	r.existing[strings.Fields(command)[0]] = true
}

// ExecuteWithOutput returns the preset output for the command line.
func (r *MockCommandRunner) ExecuteWithOutput(_ context.Context, name string, args ...string) (string, error) {
	fullCommand := strings.TrimSpace(name + " " + strings.Join(args, " "))

	if err, failed := r.failures[fullCommand]; failed {
		return "", err
	}

	return r.commands[fullCommand], nil
}

// CommandExists reports whether any output was registered for the program.
func (r *MockCommandRunner) CommandExists(name string) bool {
	return r.existing[name]
}
