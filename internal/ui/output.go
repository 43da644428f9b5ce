package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Param is one key/value line of a header or result box.
type Param struct {
	Key   string
	Value string
}

// Output writes styled command output.
type Output struct {
	out   io.Writer
	width int
}

// NewOutput returns an Output writing to w, or stdout if w is nil.
func NewOutput(w io.Writer) *Output {
	if w == nil {
		w = os.Stdout
	}
	return &Output{out: w, width: GetTerminalWidth()}
}

// SetWidth overrides the detected terminal width.
func (o *Output) SetWidth(width int) *Output {
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}
	o.width = width
	return o
}

// Println writes content with a newline
func (o *Output) Println(content string) {
	_, _ = fmt.Fprintln(o.out, content)
}

// Newline prints an empty line
func (o *Output) Newline() {
	_, _ = fmt.Fprintln(o.out)
}

// PrintHeader prints a command header box.
func (o *Output) PrintHeader(title, command string, params []Param) {
	o.Println(RenderHeader(title, command, params, o.width))
}

// PrintSuccess prints a success result box.
func (o *Output) PrintSuccess(title string, details []Param) {
	o.Println(renderResult(SuccessTitleStyle, SuccessColor, SuccessMarker+"  SUCCESS", title, details, o.width))
}

// PrintWarning prints a warning result box.
func (o *Output) PrintWarning(title string, details []Param) {
	o.Println(renderResult(WarningTitleStyle, WarningColor, WarningMarker+"  WARNING", title, details, o.width))
}

// PrintError prints an error result box with troubleshooting tips.
func (o *Output) PrintError(title string, err error, troubleshooting []string) {
	o.Println(RenderErrorBox(title, err, troubleshooting, o.width))
}

// PrintTable prints rows under headers in aligned columns.
func (o *Output) PrintTable(headers []string, rows [][]string) {
	o.Println(RenderTable(headers, rows))
}

// RenderHeader renders a command header box
func RenderHeader(title, command string, params []Param, width int) string {
	top := lipgloss.JoinVertical(lipgloss.Left,
		HeaderTitleStyle.Render(strings.ToUpper(title)),
		HeaderCommandStyle.Render(command),
	)

	content := top
	if len(params) > 0 {
		dividerWidth := width - 6
		if dividerWidth < 10 {
			dividerWidth = 10
		}
		divider := lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Render(strings.Repeat("─", dividerWidth))

		lines := make([]string, 0, len(params))
		for _, p := range params {
			lines = append(lines, "  "+KeyStyle.Render(p.Key+":")+" "+ValueStyle.Render(p.Value))
		}
		content = lipgloss.JoinVertical(lipgloss.Left, top, divider, strings.Join(lines, "\n"))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(PrimaryColor).
		Width(width - 2).
		Render(content)
}

func renderResult(titleStyle lipgloss.Style, color lipgloss.Color, marker, title string, details []Param, width int) string {
	lines := []string{"", titleStyle.Render("   " + marker + "  ─  " + title), ""}
	for _, d := range details {
		lines = append(lines, KeyStyle.Render("   "+d.Key+":")+" "+ValueStyle.Render(d.Value))
	}
	if len(details) > 0 {
		lines = append(lines, "")
	}
	return boxStyle(color, width).Render(strings.Join(lines, "\n"))
}

// RenderErrorBox renders an error result box with troubleshooting
func RenderErrorBox(title string, err error, troubleshooting []string, width int) string {
	lines := []string{"", ErrorTitleStyle.Render("   " + FailureMarker + "  FAILED  ─  " + title), ""}

	if err != nil {
		lines = append(lines, ErrorMessageStyle.Render("   Error: "+err.Error()), "")
	}

	if len(troubleshooting) > 0 {
		tips := []string{TroubleshootingTitleStyle.Render("Troubleshooting:"), ""}
		for _, tip := range troubleshooting {
			tips = append(tips, TroubleshootingItemStyle.Render("  • "+tip))
		}
		innerWidth := width - 12
		if innerWidth < 40 {
			innerWidth = 40
		}
		box := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(MutedColor).
			Width(innerWidth).
			Padding(0, 1).
			MarginLeft(3).
			Render(strings.Join(tips, "\n"))
		lines = append(lines, box, "")
	}

	return boxStyle(ErrorColor, width).Render(strings.Join(lines, "\n"))
}

// RenderTable renders rows in columns sized to their widest cell.
func RenderTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	renderRow := func(cells []string, style lipgloss.Style) string {
		parts := make([]string, len(widths))
		for i := range widths {
			var cell string
			if i < len(cells) {
				cell = cells[i]
			}
			parts[i] = style.Width(widths[i] + 2).Render(cell)
		}
		return strings.TrimRight(lipgloss.JoinHorizontal(lipgloss.Top, parts...), " ")
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, renderRow(headers, TableHeaderStyle))
	for _, row := range rows {
		lines = append(lines, renderRow(row, TableCellStyle))
	}
	return strings.Join(lines, "\n")
}
