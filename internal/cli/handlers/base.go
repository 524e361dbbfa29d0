// SPDX-FileCopyrightText: 2025 The Splitpick Authors
// SPDX-License-Identifier: EUPL-1.2

// Package handlers implements CLI command execution logic.
package handlers

import (
	"io"

	cliAdapter "github.com/janderssonse/splitpick/internal/adapters/cli"
)

// BaseHandler provides common functionality for all command handlers.
type BaseHandler struct {
	Verbose bool
	JSON    bool
	Plain   bool
	Output  *cliAdapter.OutputAdapter
}

// NewBaseHandler creates a new base handler writing results to stdout.
func NewBaseHandler(verbose, json, plain bool) *BaseHandler {
	return &BaseHandler{
		Verbose: verbose,
		JSON:    json,
		Plain:   plain,
		Output:  cliAdapter.OutputFromFlags(json, plain),
	}
}

// WithWriter redirects command results to w.
func (h *BaseHandler) WithWriter(w io.Writer) *BaseHandler {
	h.Output = cliAdapter.NewOutputAdapterWithWriter(w, h.Format(), false)

	return h
}

// Format returns the output format selected by the flags.
func (h *BaseHandler) Format() cliAdapter.OutputFormat {
	switch {
	case h.JSON:
		return cliAdapter.JSONFormat
	case h.Plain:
		return cliAdapter.PlainFormat
	default:
		return cliAdapter.TextFormat
	}
}

// GetOutput returns the output adapter for CLI rendering.
func (h *BaseHandler) GetOutput() *cliAdapter.OutputAdapter {
	if h.Output == nil {
		h.Output = cliAdapter.OutputFromFlags(h.JSON, h.Plain)
	}

	return h.Output
}
