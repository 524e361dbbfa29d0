// SPDX-FileCopyrightText: 2025 The Splitpick Authors
// SPDX-License-Identifier: EUPL-1.2

package models

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

const helpMarkdown = `# Split tunneling

Applications you exclude bypass the VPN tunnel and use your regular
network connection. Everything else stays inside the tunnel.

## Keys

| Key | Action |
|-----|--------|
| ` + "`/`" + ` | Search applications by name |
| ` + "`esc`" + ` | Leave the search field |
| ` + "`space` `enter`" + ` | Exclude or include the highlighted application |
| ` + "`j` `k`" + ` | Move down and up |
| ` + "`r`" + ` | Rescan installed applications |
| ` + "`q`" + ` | Save and quit |

Changes are saved shortly after you make them.

> When your organization manages split tunneling, the list is read-only.
`

// renderHelp renders the help text for the given wrap width.
func renderHelp(width int) string {
	if width < 20 {
		width = 20
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return helpMarkdown
	}

	out, err := renderer.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}

	return strings.TrimRight(out, "\n")
}
