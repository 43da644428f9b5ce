package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/clinlab/demolabel/internal/form"
	"github.com/clinlab/demolabel/internal/gateway"
	"github.com/clinlab/demolabel/internal/printers"
	"github.com/clinlab/demolabel/internal/store"
)

func newTestModel(t *testing.T) (Model, *store.MemoryStore, *gateway.Recorder) {
	t.Helper()
	clients := store.NewMemoryStore(map[string]store.ClientRecord{
		"A1": {Name: "DR SMITH", Alias: "MAIN CLINIC", OrderCodes: "CBC,TSH"},
	})
	registry := printers.StaticRegistry{
		"LABREQ5": {Protocol: printers.ProtocolRaw, Host: "10.20.0.15", Port: 9100},
	}
	rec := &gateway.Recorder{}
	now := func() time.Time { return time.Date(2024, time.January, 2, 8, 0, 0, 0, time.Local) }
	f := form.New(clients, registry, rec, form.WithClock(now))
	return New(f), clients, rec
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}

func typeText(s string) tea.Msg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
)

func TestModel_InitialView(t *testing.T) {
	m, _, _ := newTestModel(t)

	if got := m.Form().Focus(); got != form.Printer {
		t.Errorf("focus = %v, want printer", got)
	}
	view := m.View()
	for _, want := range []string{"Label Printer:", "LABREQ5", "01/02/2024", "Load Client", "Save/Update", "Print", "Reset"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, "Invalid Data Entered") {
		t.Error("error banner rendered at start")
	}
}

func TestModel_TypingIsUpperCased(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = send(t, m, enter, typeText("a1"))

	if got := m.Form().Value(form.ClientID); got != "A1" {
		t.Errorf("client id = %q, want A1", got)
	}
	if got := m.inputs[form.ClientID].Value(); got != "A1" {
		t.Errorf("input shows %q, want A1", got)
	}
}

func TestModel_EditInMiddleKeepsCursor(t *testing.T) {
	m, _, _ := newTestModel(t)
	left := tea.KeyMsg{Type: tea.KeyLeft}

	m = send(t, m, tab, typeText("abc"), left, left, typeText("x"), typeText("y"))

	if got := m.Form().Value(form.ClientID); got != "AXYBC" {
		t.Errorf("client id = %q, want AXYBC", got)
	}
	if got := m.inputs[form.ClientID].Position(); got != 3 {
		t.Errorf("cursor = %d, want 3", got)
	}
}

func TestModel_LoadAndPrint(t *testing.T) {
	m, _, rec := newTestModel(t)

	// printer → client id → load → date → quantity → print
	m = send(t, m, enter, typeText("a1"), enter)
	if got := m.Form().Focus(); got != form.Date {
		t.Fatalf("focus after load = %v, want date", got)
	}
	if got := m.inputs[form.Name].Value(); got != "DR SMITH" {
		t.Errorf("name input = %q after load", got)
	}
	if status, isErr := m.Status(); isErr || !strings.Contains(status, "Loaded client A1") {
		t.Errorf("status = %q (err %v)", status, isErr)
	}

	m = send(t, m, enter, typeText("2"), enter)
	if len(rec.Jobs) != 1 || rec.Jobs[0].Quantity != 2 {
		t.Fatalf("jobs = %+v", rec.Jobs)
	}
	if got := m.inputs[form.ClientID].Value(); got != "" {
		t.Errorf("client id input = %q after print, want cleared", got)
	}
	if got := m.inputs[form.Printer].Value(); got != "LABREQ5" {
		t.Errorf("printer input = %q after print", got)
	}
	if got := m.Form().Focus(); got != form.ClientID {
		t.Errorf("focus after print = %v, want client id", got)
	}
}

func TestModel_InvalidPrintShowsBanner(t *testing.T) {
	m, _, rec := newTestModel(t)
	m.Form().SetFocus(form.PrintButton)

	m = send(t, m, enter)

	if !m.Form().ErrorVisible() {
		t.Fatal("banner not visible")
	}
	if !strings.Contains(m.View(), "Invalid Data Entered") {
		t.Error("banner not rendered")
	}
	if len(rec.Jobs) != 0 {
		t.Error("invalid form was printed")
	}
}

func TestModel_PrinterErrorOnStatusLine(t *testing.T) {
	m, _, rec := newTestModel(t)
	rec.Err = &gateway.PrinterError{
		Type:    gateway.ErrTypeConnectionRefused,
		Message: "connection refused",
		Address: "10.20.0.15:9100",
		Err:     errors.New("dial tcp: connection refused"),
	}

	m = send(t, m, enter, typeText("a1"), enter, enter, typeText("1"), enter)

	status, isErr := m.Status()
	if !isErr {
		t.Fatalf("status %q not flagged as error", status)
	}
	if !strings.Contains(status, "refused") {
		t.Errorf("status = %q", status)
	}
	if m.Form().ErrorVisible() {
		t.Error("validation banner shown for a printer error")
	}
	if got := m.Form().Value(form.ClientID); got != "A1" {
		t.Errorf("client id = %q, want kept for retry", got)
	}
}

func TestModel_SaveNewClient(t *testing.T) {
	m, clients, _ := newTestModel(t)

	m = send(t, m, enter, typeText("b2"), enter)
	if got := m.Form().Focus(); got != form.Name {
		t.Fatalf("focus after miss = %v, want name", got)
	}
	m = send(t, m, typeText("dr jones"), enter, typeText("north"), enter, typeText("bmp"))
	m.Form().SetFocus(form.SaveButton)
	m = send(t, m, enter)

	got, err := clients.Get("B2")
	if err != nil {
		t.Fatalf("B2 not saved: %v", err)
	}
	if got.Name != "DR JONES" || got.Alias != "NORTH" || got.OrderCodes != "BMP" {
		t.Errorf("B2 = %+v", got)
	}
	if status, _ := m.Status(); !strings.Contains(status, "Saved client B2") {
		t.Errorf("status = %q", status)
	}
}

func TestModel_TabCyclesFocus(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = send(t, m, tab, tab)
	if got := m.Form().Focus(); got != form.LoadButton {
		t.Errorf("focus after two tabs = %v, want load button", got)
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if got := m.Form().Focus(); got != form.ClientID {
		t.Errorf("focus after shift+tab = %v, want client id", got)
	}

	// Typing on a button does nothing.
	m = send(t, m, tab, typeText("x"))
	if got := m.Form().Value(form.ClientID); got != "" {
		t.Errorf("client id = %q", got)
	}
}

func TestModel_ThemeToggleAndQuit(t *testing.T) {
	m, _, _ := newTestModel(t)
	if !m.Dark() {
		t.Fatal("default theme is not dark")
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlD})
	if m.Dark() {
		t.Error("ctrl+d did not switch to the light theme")
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlQ})
	if cmd == nil {
		t.Fatal("ctrl+q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+q did not quit")
	}
}

func TestModel_WindowSize(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if m.Width != 100 || m.Height != 30 {
		t.Errorf("size = %dx%d", m.Width, m.Height)
	}
	if !strings.Contains(m.View(), AppName) {
		t.Error("framed view missing the header")
	}
}
