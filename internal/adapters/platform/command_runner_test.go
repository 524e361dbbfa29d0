// SPDX-FileCopyrightText: 2025 The Splitpick Authors
// SPDX-License-Identifier: EUPL-1.2

package platform_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/janderssonse/splitpick/internal/adapters/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandRunner_ExecuteWithOutput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		cmd        string
		args       []string
		wantOutput string
		wantErr    bool
	}{
		{
			name:       "capture echo output",
			cmd:        "echo",
			args:       []string{"test output"},
			wantOutput: "test output",
			wantErr:    false,
		},
		{
			name:       "capture multiline output",
			cmd:        "sh",
			args:       []string{"-c", "echo line1; echo line2"},
			wantOutput: "line1\nline2",
			wantErr:    false,
		},
		{
			name:       "command not found",
			cmd:        "nonexistent_command_xyz",
			args:       []string{},
			wantOutput: "",
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cr := platform.NewCommandRunner(false)
			output, err := cr.ExecuteWithOutput(context.Background(), tt.cmd, tt.args...)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantOutput, strings.TrimSpace(output))
			}
		})
	}
}

func TestCommandRunner_StderrInError(t *testing.T) {
	t.Parallel()

	cr := platform.NewCommandRunner(false)

	_, err := cr.ExecuteWithOutput(context.Background(), "sh", "-c", "echo broken >&2; exit 3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stderr: broken")
}

func TestCommandRunner_ContextCancellation(t *testing.T) {
	t.Parallel()

	cr := platform.NewCommandRunner(false)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := cr.ExecuteWithOutput(ctx, "sleep", "10")

	require.Error(t, err, "cancelled command should return error")
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestCommandRunner_CommandExists(t *testing.T) {
	t.Parallel()

	cr := platform.NewCommandRunner(false)

	assert.True(t, cr.CommandExists("sh"))
	assert.False(t, cr.CommandExists("nonexistent_command_xyz"))
}

func TestMockCommandRunner(t *testing.T) {
	t.Parallel()

	runner := platform.NewMockCommandRunner()
	runner.SetMockOutput("brew list --formula -1", "git\nwget\n")
	runner.SetMockError("dpkg-query -W", errors.New("exit status 2"))

	output, err := runner.ExecuteWithOutput(context.Background(), "brew", "list", "--formula", "-1")
	require.NoError(t, err)
	assert.Equal(t, "git\nwget\n", output)

	_, err = runner.ExecuteWithOutput(context.Background(), "dpkg-query", "-W")
	require.EqualError(t, err, "exit status 2")

	assert.True(t, runner.CommandExists("brew"))
	assert.True(t, runner.CommandExists("dpkg-query"))
	assert.False(t, runner.CommandExists("apt"))
}
