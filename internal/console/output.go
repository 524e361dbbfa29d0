// SPDX-FileCopyrightText: 2025 The Splitpick Authors
// SPDX-License-Identifier: EUPL-1.2

// Package console writes diagnostics to stderr and results to stdout.
package console

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

// OutputState holds global output configuration.
type OutputState struct {
	Verbose bool
	JSON    bool
	Plain   bool

	mu     sync.Mutex
	stdout io.Writer
	stderr io.Writer
	muted  bool
}

// DefaultOutput provides output formatting utilities.
var DefaultOutput = &OutputState{} //nolint:gochecknoglobals

// SetMode configures output mode.
func (o *OutputState) SetMode(verbose, json, plain bool) {
	o.Verbose = verbose
	o.JSON = json
	o.Plain = plain
}

// SetWriters redirects output, mainly for tests. Nil restores the process streams.
func (o *OutputState) SetWriters(stdout, stderr io.Writer) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.stdout = stdout
	o.stderr = stderr
}

// Mute suppresses stderr diagnostics while a full-screen UI owns the terminal.
// It returns a function restoring the previous state.
func (o *OutputState) Mute() func() {
	o.mu.Lock()
	previous := o.muted
	o.muted = true
	o.mu.Unlock()

	return func() {
		o.mu.Lock()
		o.muted = previous
		o.mu.Unlock()
	}
}

// IsTTY checks if output is going to a terminal (not piped/redirected).
func (o *OutputState) IsTTY(fd uintptr) bool {
	return term.IsTerminal(int(fd))
}

// Bold formats text with bold when in TTY, uppercase when piped.
func (o *OutputState) Bold(text string) string {
	if o.JSON || o.Plain {
		return text
	}

	// Check no-color.org standards
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return text
	}

	if o.IsTTY(os.Stdout.Fd()) {
		return "\033[1m" + text + "\033[0m"
	}

	return strings.ToUpper(text)
}

// Progressf writes progress messages to stderr (only if verbose and not JSON/Plain).
func (o *OutputState) Progressf(format string, args ...any) {
	if o.Verbose && !o.JSON && !o.Plain {
		o.errf(format+"\n", args...)
	}
}

// Successf writes success messages to stderr (only if not JSON/Plain).
func (o *OutputState) Successf(format string, args ...any) {
	if !o.JSON && !o.Plain {
		o.errf("✓ "+format+"\n", args...)
	}
}

// Warningf writes warning messages to stderr (always visible unless muted).
func (o *OutputState) Warningf(format string, args ...any) {
	if o.Plain {
		o.errf("warning: "+format+"\n", args...)
	} else {
		o.errf("⚠ "+format+"\n", args...)
	}
}

// Errorf writes error messages to stderr (always visible unless muted).
func (o *OutputState) Errorf(format string, args ...any) {
	if o.Plain {
		o.errf("error: "+format+"\n", args...)
	} else {
		o.errf("✗ "+format+"\n", args...)
	}
}

// Result writes command results to stdout (machine-readable primary output).
func (o *OutputState) Result(data any) {
	_, _ = fmt.Fprintf(o.out(), "%v\n", data)
}

// JSONResult writes structured JSON results to stdout.
func (o *OutputState) JSONResult(status string, data map[string]any) {
	result := map[string]any{
		"status": status,
	}
	maps.Copy(result, data)

	if err := json.NewEncoder(o.out()).Encode(result); err != nil {
		// Best effort - output encoding errors shouldn't crash the program
		o.errf("error encoding JSON: %v\n", err)
	}
}

// SuccessResult outputs success result to stdout with optional stderr message.
func (o *OutputState) SuccessResult(result any, message string) {
	if !o.JSON && !o.Plain && message != "" {
		o.Successf("%s", message)
	}

	if o.JSON {
		o.JSONResult("success", map[string]any{"result": result})
	} else {
		o.Result(result)
	}
}

// ErrorResult outputs an error result; JSON mode also writes it to stdout.
func (o *OutputState) ErrorResult(err error, code int) {
	if o.JSON {
		o.JSONResult("error", map[string]any{
			"error": err.Error(),
			"code":  code,
		})
	}

	o.Errorf("%s", err.Error())
}

func (o *OutputState) out() io.Writer {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.stdout != nil {
		return o.stdout
	}

	return os.Stdout
}

func (o *OutputState) errf(format string, args ...any) {
	o.mu.Lock()
	muted := o.muted
	writer := o.stderr
	o.mu.Unlock()

	if muted {
		return
	}

	if writer == nil {
		writer = os.Stderr
	}

	_, _ = fmt.Fprintf(writer, format, args...)
}
