package tui

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/clinlab/demolabel/internal/form"
	"github.com/clinlab/demolabel/internal/gateway"
	"github.com/clinlab/demolabel/internal/logging"
)

// Model is the bubbletea model for the label form.
type Model struct {
	form   *form.Form
	inputs map[form.Element]textinput.Model

	// status is the result of the last action; separate from the invalid
	// data banner, which belongs to the form.
	status    string
	statusErr bool
	hint      string

	dark   bool
	styles Styles

	Width  int
	Height int

	help help.Model
	keys keyMap

	ctx context.Context
}

// Option configures a Model.
type Option func(*Model)

// WithDarkMode sets the starting theme.
func WithDarkMode(dark bool) Option {
	return func(m *Model) {
		m.setTheme(dark)
	}
}

// WithContext sets the parent context of print jobs.
func WithContext(ctx context.Context) Option {
	return func(m *Model) {
		m.ctx = ctx
	}
}

// New returns a model rendering f.
func New(f *form.Form, opts ...Option) Model {
	inputs := make(map[form.Element]textinput.Model, len(form.Fields))
	for _, el := range form.Fields {
		ti := textinput.New()
		ti.Placeholder = el.Placeholder()
		ti.Prompt = ""
		ti.Width = inputWidth
		inputs[el] = ti
	}

	m := Model{
		form:   f,
		inputs: inputs,
		help:   help.New(),
		keys:   defaultKeyMap(),
		ctx:    context.Background(),
	}
	m.setTheme(true)
	for _, opt := range opts {
		opt(&m)
	}

	m.syncInputs()
	m.syncFocus()
	return m
}

func (m *Model) setTheme(dark bool) {
	m.dark = dark
	if dark {
		m.styles = NewStyles(DarkPalette)
	} else {
		m.styles = NewStyles(LightPalette)
	}
}

// Form returns the underlying form.
func (m Model) Form() *form.Form {
	return m.form
}

// Status returns the status line text and whether it reports an error.
func (m Model) Status() (string, bool) {
	return m.status, m.statusErr
}

// Dark reports whether the dark theme is active.
func (m Model) Dark() bool {
	return m.dark
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Theme):
			m.setTheme(!m.dark)
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Next):
			m.form.SetFocus(m.form.Focus().Next())
			m.syncFocus()
			return m, textinput.Blink
		case key.Matches(msg, m.keys.Prev):
			m.form.SetFocus(m.form.Focus().Prev())
			m.syncFocus()
			return m, textinput.Blink
		case key.Matches(msg, m.keys.Confirm):
			m.confirm()
			return m, textinput.Blink
		}
	}

	return m.updateFocusedInput(msg)
}

// updateFocusedInput passes msg to the focused text input and copies the
// edited value into the form.
func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	el := m.form.Focus()
	ti, ok := m.inputs[el]
	if !ok {
		return m, nil
	}

	var cmd tea.Cmd
	ti, cmd = ti.Update(msg)
	m.inputs[el] = ti

	if ti.Value() != m.form.Value(el) {
		m.form.UpdateField(el, ti.Value())
		m.syncInputs()
	}
	return m, cmd
}

// confirm runs the Enter route of the focused element and reports the
// outcome on the status line.
func (m *Model) confirm() {
	focused := m.form.Focus()
	id := m.form.Value(form.ClientID)
	quantity := m.form.Value(form.Quantity)
	printer := m.form.Value(form.Printer)

	out, err := m.form.Confirm(m.ctx)
	m.syncInputs()
	m.syncFocus()

	if err != nil {
		logging.Warn("Form action failed",
			zap.String("element", focused.String()),
			zap.String("action", out.Action.String()),
			zap.Error(err),
		)
		m.setStatus(gateway.ShortMessage(err), true)
		m.hint = ""
		if gateway.IsNetworkError(err) {
			m.hint = strings.SplitN(gateway.Hint(err), "\n", 2)[0]
		}
		return
	}

	switch out.Action {
	case form.ActionLoad:
		if out.Found {
			m.setStatus(fmt.Sprintf("Loaded client %s", id), false)
		} else {
			m.setStatus(fmt.Sprintf("Client %s not found, enter details to create it", id), false)
		}
	case form.ActionSave:
		if out.Saved {
			m.setStatus(fmt.Sprintf("Saved client %s", id), false)
		}
	case form.ActionPrint:
		if out.Printed {
			m.setStatus(fmt.Sprintf("Sent %s label(s) for %s to %s", quantity, id, printer), false)
		}
	case form.ActionReset:
		m.setStatus("", false)
	}
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
	if !isErr {
		m.hint = ""
	}
}

// syncInputs copies the form's values into the text inputs.
func (m *Model) syncInputs() {
	for el, ti := range m.inputs {
		if v := m.form.Value(el); ti.Value() != v {
			// SetValue moves the cursor to the end. Keep it in place when
			// the text was only upper-cased.
			pos := ti.Position()
			sameLen := utf8.RuneCountInString(ti.Value()) == utf8.RuneCountInString(v)
			ti.SetValue(v)
			if sameLen {
				ti.SetCursor(pos)
			}
			m.inputs[el] = ti
		}
	}
}

// syncFocus focuses the input the form points at and blurs the rest.
func (m *Model) syncFocus() {
	focused := m.form.Focus()
	for el, ti := range m.inputs {
		if el == focused {
			ti.Focus()
		} else {
			ti.Blur()
		}
		m.inputs[el] = ti
	}
}

// View implements tea.Model.
func (m Model) View() string {
	return m.styles.RenderApplicationContainer(m.buildContent(), m.help.View(m.keys), m.Width, m.Height)
}

func (m Model) buildContent() string {
	var b strings.Builder

	b.WriteString(m.renderField(form.Printer))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center,
		m.renderField(form.ClientID), "  ",
		m.renderButton(form.LoadButton, m.styles.Button), " ",
		m.renderButton(form.SaveButton, m.styles.Button),
	))
	b.WriteString("\n")
	b.WriteString(m.renderField(form.Name))
	b.WriteString("\n")
	b.WriteString(m.renderField(form.Alias))
	b.WriteString("\n")
	b.WriteString(m.renderField(form.Tests))
	b.WriteString("\n")
	b.WriteString(m.renderField(form.Date))
	b.WriteString("\n")
	b.WriteString(m.renderField(form.Quantity))
	b.WriteString("\n\n")

	var row []string
	if m.form.ErrorVisible() {
		row = append(row, m.styles.Banner.Render("Error: Invalid Data Entered"), "  ")
	}
	row = append(row,
		m.renderButton(form.PrintButton, m.styles.PrintButton), " ",
		m.renderButton(form.ResetButton, m.styles.ResetButton),
	)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, row...))

	if m.status != "" {
		b.WriteString("\n\n")
		if m.statusErr {
			b.WriteString(m.styles.StatusError.Render("✗ " + m.status))
		} else {
			b.WriteString(m.styles.StatusOK.Render("✓ " + m.status))
		}
		if m.hint != "" {
			b.WriteString("\n")
			b.WriteString(m.styles.Hint.Render(m.hint))
		}
	}

	return b.String()
}

func (m Model) renderField(el form.Element) string {
	labelStyle := m.styles.Label
	if m.form.Focus() == el {
		labelStyle = m.styles.FocusedLabel
	}
	return labelStyle.Render(el.String()+":") + m.inputs[el].View()
}

func (m Model) renderButton(el form.Element, style lipgloss.Style) string {
	if m.form.Focus() == el {
		style = m.styles.FocusedButton
	}
	return style.Render(el.String())
}

// Run starts the program on the alternate screen and blocks until the
// operator quits.
func Run(ctx context.Context, f *form.Form, opts ...Option) error {
	opts = append(opts, WithContext(ctx))
	p := tea.NewProgram(New(f, opts...), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run form: %w", err)
	}
	return nil
}
