package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/clinlab/demolabel/internal/version"
)

// AppName is shown in the header.
const AppName = "Demographics Label Printer"

// Layout constants
const (
	MinTerminalWidth = 72
	labelWidth       = 15
	inputWidth       = 28
)

// Palette is one colour theme.
type Palette struct {
	Primary   lipgloss.Color
	Success   lipgloss.Color
	Error     lipgloss.Color
	Warning   lipgloss.Color
	Text      lipgloss.Color
	Subtle    lipgloss.Color
	Border    lipgloss.Color
	Highlight lipgloss.Color
}

// DarkPalette is the default theme.
var DarkPalette = Palette{
	Primary:   lipgloss.Color("#7D56F4"),
	Success:   lipgloss.Color("#43BF6D"),
	Error:     lipgloss.Color("#FF5F5F"),
	Warning:   lipgloss.Color("#FFA500"),
	Text:      lipgloss.Color("#FFFFFF"),
	Subtle:    lipgloss.Color("#626262"),
	Border:    lipgloss.Color("#7D56F4"),
	Highlight: lipgloss.Color("#43BF6D"),
}

// LightPalette is used after ctrl+d.
var LightPalette = Palette{
	Primary:   lipgloss.Color("#5A3FC0"),
	Success:   lipgloss.Color("#1E7B3C"),
	Error:     lipgloss.Color("#C00000"),
	Warning:   lipgloss.Color("#B36200"),
	Text:      lipgloss.Color("#1A1A1A"),
	Subtle:    lipgloss.Color("#8A8A8A"),
	Border:    lipgloss.Color("#5A3FC0"),
	Highlight: lipgloss.Color("#1E7B3C"),
}

// Styles are the lipgloss styles derived from a Palette.
type Styles struct {
	Palette Palette

	Label        lipgloss.Style
	FocusedLabel lipgloss.Style

	Button        lipgloss.Style
	FocusedButton lipgloss.Style
	PrintButton   lipgloss.Style
	ResetButton   lipgloss.Style

	// Banner is the invalid data message.
	Banner lipgloss.Style

	StatusOK    lipgloss.Style
	StatusError lipgloss.Style
	Hint        lipgloss.Style
}

// NewStyles builds the styles for p.
func NewStyles(p Palette) Styles {
	button := lipgloss.NewStyle().
		Foreground(p.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Subtle).
		Padding(0, 2)

	return Styles{
		Palette: p,

		Label: lipgloss.NewStyle().
			Width(labelWidth).
			Foreground(p.Subtle),
		FocusedLabel: lipgloss.NewStyle().
			Width(labelWidth).
			Foreground(p.Primary).
			Bold(true),

		Button: button,
		FocusedButton: button.
			BorderForeground(p.Highlight).
			Foreground(p.Highlight).
			Bold(true),
		PrintButton: button.BorderForeground(p.Success),
		ResetButton: button.BorderForeground(p.Error),

		Banner: lipgloss.NewStyle().
			Foreground(p.Error).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Error),

		StatusOK: lipgloss.NewStyle().
			Foreground(p.Success),
		StatusError: lipgloss.NewStyle().
			Foreground(p.Warning).
			Bold(true),
		Hint: lipgloss.NewStyle().
			Foreground(p.Subtle).
			Italic(true),
	}
}

// header renders the application name and version.
func (s Styles) header() string {
	left := lipgloss.NewStyle().
		Foreground(s.Palette.Text).
		Bold(true).
		Render(AppName)

	right := lipgloss.NewStyle().
		Foreground(s.Palette.Subtle).
		Render("v" + version.Version)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

// RenderApplicationContainer wraps content in the full-screen frame: a
// header, the content and a footer pinned to the bottom, inside a border.
// A zero width or height (before the first WindowSizeMsg) renders the parts
// stacked without a frame.
func (s Styles) RenderApplicationContainer(content, footerText string, terminalWidth, terminalHeight int) string {
	footer := lipgloss.NewStyle().
		Foreground(s.Palette.Subtle).
		Render(footerText)

	if terminalWidth <= 0 || terminalHeight <= 0 {
		return lipgloss.JoinVertical(lipgloss.Left, s.header(), "", content, "", footer)
	}
	if terminalWidth < MinTerminalWidth {
		terminalWidth = MinTerminalWidth
	}

	styledHeader := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderForeground(s.Palette.Border).
		Width(terminalWidth-4).
		Padding(0, 1).
		Render(s.header())

	styledFooter := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Top: "─"}).
		BorderForeground(s.Palette.Border).
		Width(terminalWidth-4).
		Padding(0, 1).
		Render(footer)

	styledContent := lipgloss.NewStyle().
		Width(terminalWidth - 4).
		Padding(1, 1).
		Render(content)

	// Push the footer to the bottom of the frame.
	gap := terminalHeight - 2 - lipgloss.Height(styledHeader) - lipgloss.Height(styledContent) - lipgloss.Height(styledFooter)
	if gap < 0 {
		gap = 0
	}
	filler := lipgloss.NewStyle().Height(gap).Render("")
	if gap == 0 {
		filler = ""
	}

	inner := lipgloss.JoinVertical(lipgloss.Left, styledHeader, styledContent, filler, styledFooter)

	bordered := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(s.Palette.Border).
		Width(terminalWidth - 2).
		AlignVertical(lipgloss.Top).
		Render(inner)

	return lipgloss.Place(terminalWidth, terminalHeight, lipgloss.Left, lipgloss.Top, bordered)
}
