// SPDX-FileCopyrightText: 2025 The Splitpick Authors
// SPDX-License-Identifier: EUPL-1.2

package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/janderssonse/splitpick/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputAdapter_Success(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		format       OutputFormat
		quiet        bool
		message      string
		data         any
		wantContains string
		wantEmpty    bool
	}{
		{
			name:         "text format with message",
			format:       TextFormat,
			message:      "Excluded com.a.maps",
			wantContains: "Excluded com.a.maps",
		},
		{
			name:      "quiet mode suppresses message",
			format:    TextFormat,
			quiet:     true,
			message:   "Excluded com.a.maps",
			wantEmpty: true,
		},
		{
			name:         "JSON format with data",
			format:       JSONFormat,
			message:      "ignored",
			data:         map[string][]string{"excluded": {"com.a.maps"}},
			wantContains: `"excluded"`,
		},
		{
			name:         "JSON format without data shows message",
			format:       JSONFormat,
			message:      "Nothing to do",
			wantContains: "Nothing to do",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			adapter := NewOutputAdapterWithWriter(&buf, tt.format, tt.quiet)
			require.NoError(t, adapter.Success(tt.message, tt.data))

			if tt.wantEmpty {
				assert.Empty(t, buf.String())
			} else {
				assert.Contains(t, buf.String(), tt.wantContains)
			}
		})
	}
}

func TestOutputAdapter_Table(t *testing.T) {
	t.Parallel()

	headers := []string{"NAME", "PACKAGE"}
	rows := [][]string{
		{"Maps", "com.a.maps"},
		{"Mail", "com.b.mail"},
	}

	t.Run("text format creates aligned table", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer

		require.NoError(t, NewOutputAdapterWithWriter(&buf, TextFormat, false).Table(headers, rows))
		assert.Equal(t, "NAME  PACKAGE\n----  -------\nMaps  com.a.maps\nMail  com.b.mail\n", buf.String())
	})

	t.Run("plain format prints rows only", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer

		require.NoError(t, NewOutputAdapterWithWriter(&buf, PlainFormat, false).Table(headers, rows))
		assert.Equal(t, "Maps\tcom.a.maps\nMail\tcom.b.mail\n", buf.String())
	})

	t.Run("JSON format outputs structured data", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer

		require.NoError(t, NewOutputAdapterWithWriter(&buf, JSONFormat, false).Table(headers, rows))

		var result map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &result))

		resultRows, ok := result["rows"].([]any)
		require.True(t, ok, "rows should be []any")
		assert.Len(t, resultRows, 2)
	})

	t.Run("quiet mode suppresses table", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer

		require.NoError(t, NewOutputAdapterWithWriter(&buf, TextFormat, true).Table(headers, rows))
		assert.Empty(t, buf.String())
	})
}

func TestOutputAdapter_Apps(t *testing.T) {
	t.Parallel()

	apps := []AppRow{
		{Name: "Maps", PackageName: "com.a.maps", Source: domain.SourceDesktop, Excluded: true},
		{Name: "Mail", PackageName: "com.b.mail", Source: domain.SourceDesktop},
	}

	var text bytes.Buffer

	require.NoError(t, NewOutputAdapterWithWriter(&text, TextFormat, false).Apps(apps))
	assert.Contains(t, text.String(), "x         Maps  com.a.maps")

	var plain bytes.Buffer

	require.NoError(t, NewOutputAdapterWithWriter(&plain, PlainFormat, false).Apps(apps))
	assert.Equal(t, "true\tMaps\tcom.a.maps\nfalse\tMail\tcom.b.mail\n", plain.String())

	var encoded bytes.Buffer

	require.NoError(t, NewOutputAdapterWithWriter(&encoded, JSONFormat, false).Apps(apps))

	var decoded []AppRow
	require.NoError(t, json.Unmarshal(encoded.Bytes(), &decoded))
	assert.Equal(t, apps, decoded)

	var empty bytes.Buffer

	require.NoError(t, NewOutputAdapterWithWriter(&empty, JSONFormat, false).Apps(nil))
	assert.JSONEq(t, "[]", empty.String())
}

func TestOutputAdapter_Status(t *testing.T) {
	t.Parallel()

	report := StatusReport{
		Source:      domain.SourceDesktop,
		Installed:   2,
		StorePath:   "/tmp/disallowed.toml",
		PolicyPath:  "/etc/splitpick/managed.yaml",
		MDMExcluded: domain.SettingState{Packages: []string{"com.a.maps"}, Set: true},
		User:        []string{"com.b.mail"},
		Effective:   []string{"com.a.maps"},
	}

	var text bytes.Buffer

	require.NoError(t, NewOutputAdapterWithWriter(&text, PlainFormat, false).Status(report))
	assert.Contains(t, text.String(), "managed excluded\tcom.a.maps\n")
	assert.Contains(t, text.String(), "managed included\tnot set\n")
	assert.Contains(t, text.String(), "user excluded\tcom.b.mail\n")

	var encoded bytes.Buffer

	require.NoError(t, NewOutputAdapterWithWriter(&encoded, JSONFormat, false).Status(report))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(encoded.Bytes(), &decoded))
	assert.Equal(t, []any{"com.a.maps"}, decoded["effective_excluded"])
}

func TestOutputFromFlags(t *testing.T) {
	t.Parallel()

	assert.Equal(t, JSONFormat, OutputFromFlags(true, true).format)
	assert.Equal(t, PlainFormat, OutputFromFlags(false, true).format)
	assert.Equal(t, TextFormat, OutputFromFlags(false, false).format)
}
