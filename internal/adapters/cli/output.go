// SPDX-FileCopyrightText: 2025 The Splitpick Authors
// SPDX-License-Identifier: EUPL-1.2

// Package cli provides output adapters for CLI operations.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/janderssonse/splitpick/internal/domain"
)

// OutputAdapter renders command results to stdout.
type OutputAdapter struct {
	writer io.Writer
	format OutputFormat
	quiet  bool
}

// OutputFormat represents the output format type.
type OutputFormat int

const (
	// TextFormat outputs human-readable text.
	TextFormat OutputFormat = iota
	// JSONFormat outputs machine-readable JSON.
	JSONFormat
	// PlainFormat outputs tab-separated lines for scripts.
	PlainFormat
)

// AppRow is one application line in list output.
type AppRow struct {
	Name        string           `json:"name"`
	PackageName string           `json:"package"`
	Source      domain.AppSource `json:"source,omitempty"`
	Excluded    bool             `json:"excluded"`
}

// StatusReport summarizes the stored, managed and effective exclusions.
type StatusReport struct {
	Source      domain.AppSource    `json:"source"`
	Installed   int                 `json:"installed"`
	StorePath   string              `json:"store_path"`
	PolicyPath  string              `json:"policy_path"`
	MDMExcluded domain.SettingState `json:"mdm_excluded"`
	MDMIncluded domain.SettingState `json:"mdm_included"`
	User        []string            `json:"user_excluded"`
	Effective   []string            `json:"effective_excluded"`
}

// NewOutputAdapter creates a new output adapter with the specified configuration.
func NewOutputAdapter(format OutputFormat, quiet bool) *OutputAdapter {
	return NewOutputAdapterWithWriter(os.Stdout, format, quiet)
}

// NewOutputAdapterWithWriter creates a new output adapter with a custom writer for testing.
func NewOutputAdapterWithWriter(writer io.Writer, format OutputFormat, quiet bool) *OutputAdapter {
	return &OutputAdapter{
		writer: writer,
		format: format,
		quiet:  quiet,
	}
}

// Success outputs a success message with optional structured data.
func (o *OutputAdapter) Success(message string, data any) error {
	if o.quiet && data == nil {
		return nil
	}

	if o.format == JSONFormat && data != nil {
		return o.outputJSON(data)
	}

	if message != "" && !o.quiet {
		_, _ = fmt.Fprintln(o.writer, message)
	}

	return nil
}

// Table outputs tabular data.
func (o *OutputAdapter) Table(headers []string, rows [][]string) error {
	if o.quiet {
		return nil
	}

	switch o.format {
	case JSONFormat:
		return o.outputJSON(map[string]any{
			"headers": headers,
			"rows":    rows,
		})
	case PlainFormat:
		for _, row := range rows {
			_, _ = fmt.Fprintln(o.writer, strings.Join(row, "\t"))
		}

		return nil
	case TextFormat:
	}

	w := tabwriter.NewWriter(o.writer, 0, 0, 2, ' ', 0)

	defer func() { _ = w.Flush() }()

	_, _ = fmt.Fprintln(w, strings.Join(headers, "\t"))

	separators := make([]string, len(headers))
	for i := range headers {
		separators[i] = strings.Repeat("-", len(headers[i]))
	}

	_, _ = fmt.Fprintln(w, strings.Join(separators, "\t"))

	for _, row := range rows {
		_, _ = fmt.Fprintln(w, strings.Join(row, "\t"))
	}

	return nil
}

// Apps outputs the application list with exclusion markers.
func (o *OutputAdapter) Apps(apps []AppRow) error {
	if o.format == JSONFormat {
		if apps == nil {
			apps = []AppRow{}
		}

		return o.outputJSON(apps)
	}

	rows := make([][]string, 0, len(apps))

	for _, app := range apps {
		mark := " "
		if app.Excluded {
			mark = "x"
		}

		if o.format == PlainFormat {
			mark = fmt.Sprintf("%t", app.Excluded)
		}

		rows = append(rows, []string{mark, app.Name, app.PackageName})
	}

	return o.Table([]string{"EXCLUDED", "NAME", "PACKAGE"}, rows)
}

// Status outputs a status report.
func (o *OutputAdapter) Status(report StatusReport) error {
	if o.format == JSONFormat {
		return o.outputJSON(report)
	}

	rows := [][]string{
		{"source", string(report.Source)},
		{"installed", fmt.Sprintf("%d", report.Installed)},
		{"store", report.StorePath},
		{"policy", report.PolicyPath},
		{"managed excluded", describeSetting(report.MDMExcluded)},
		{"managed included", describeSetting(report.MDMIncluded)},
		{"user excluded", describeList(report.User)},
		{"effective excluded", describeList(report.Effective)},
	}

	return o.Table([]string{"SETTING", "VALUE"}, rows)
}

func describeSetting(state domain.SettingState) string {
	if !state.Set {
		return "not set"
	}

	return describeList(state.Packages)
}

func describeList(packages []string) string {
	if len(packages) == 0 {
		return "(none)"
	}

	return strings.Join(packages, ",")
}

// outputJSON outputs data as JSON.
func (o *OutputAdapter) outputJSON(data any) error {
	encoder := json.NewEncoder(o.writer)
	encoder.SetIndent("", "  ")

	return encoder.Encode(data)
}

// OutputFromFlags creates an OutputAdapter from the global output flags.
func OutputFromFlags(jsonFlag, plainFlag bool) *OutputAdapter {
	switch {
	case jsonFlag:
		return NewOutputAdapter(JSONFormat, false)
	case plainFlag:
		return NewOutputAdapter(PlainFormat, false)
	default:
		return NewOutputAdapter(TextFormat, false)
	}
}
