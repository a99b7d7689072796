package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Banner is the startup summary printed before the emulator begins serving.
// It shows the effective configuration so a harness operator can tell at a
// glance which device is being emulated and where.
type Banner struct {
	Title  string      // e.g. "VTX EMULATOR"
	Mode   string      // e.g. "connect tcp://127.0.0.1:5762"
	Params [][2]string // ordered key/value pairs
}

// NewBanner creates a banner with the given title and mode line
func NewBanner(title, mode string) *Banner {
	return &Banner{Title: title, Mode: mode}
}

// Add appends a key/value row to the banner
func (b *Banner) Add(key, value string) *Banner {
	b.Params = append(b.Params, [2]string{key, value})
	return b
}

// Render returns the styled banner as a string
func (b *Banner) Render() string {
	var sb strings.Builder
	sb.WriteString(TitleStyle.Render(strings.ToUpper(b.Title)))
	sb.WriteString("\n")
	sb.WriteString(KeyStyle.Render(b.Mode))

	if len(b.Params) > 0 {
		keyWidth := 0
		for _, p := range b.Params {
			if len(p[0]) > keyWidth {
				keyWidth = len(p[0])
			}
		}
		for _, p := range b.Params {
			sb.WriteString("\n")
			key := fmt.Sprintf("%-*s", keyWidth+1, p[0]+":")
			sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
				KeyStyle.Render(key), " ", ValueStyle.Render(p[1])))
		}
	}

	return BoxStyle.MaxWidth(GetTerminalWidth()).Render(sb.String())
}
