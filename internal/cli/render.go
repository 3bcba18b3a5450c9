package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme colors (Flexoki Dark)
var (
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorRed       = lipgloss.Color("#D14D41")
)

// Styles
var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	bannerStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorRed)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)
)

// Renderer styles shell output. The zero value renders plain text.
type Renderer struct {
	Color bool
}

func (r Renderer) render(s lipgloss.Style, text string) string {
	if !r.Color {
		return text
	}
	// Style each line separately so multi-line text keeps its layout.
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = s.Render(l)
		}
	}
	return strings.Join(lines, "\n")
}

// Banner renders the startup summary line.
func (r Renderer) Banner(text string) string { return r.render(bannerStyle, text) }

// Heading renders a section title in help output.
func (r Renderer) Heading(text string) string { return r.render(headerStyle, text) }

// Muted renders secondary text such as hints and examples.
func (r Renderer) Muted(text string) string { return r.render(mutedStyle, text) }

// Dim renders separators and prompts.
func (r Renderer) Dim(text string) string { return r.render(dimStyle, text) }

// Error renders an "Error: <msg>" line.
func (r Renderer) Error(msg string) string { return r.render(errorStyle, "Error: "+msg) }
