package form

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRouteFor(t *testing.T) {
	tests := []struct {
		element Element
		want    Route
	}{
		{Printer, Route{Action: ActionFocus, Target: ClientID}},
		{ClientID, Route{Action: ActionLoad}},
		{Name, Route{Action: ActionFocus, Target: Alias}},
		{Alias, Route{Action: ActionFocus, Target: Tests}},
		{Tests, Route{Action: ActionFocus, Target: Date}},
		{Date, Route{Action: ActionFocus, Target: Quantity}},
		{Quantity, Route{Action: ActionPrint}},
		{LoadButton, Route{Action: ActionLoad}},
		{SaveButton, Route{Action: ActionSave}},
		{PrintButton, Route{Action: ActionPrint}},
		{ResetButton, Route{Action: ActionReset}},
		{Element(99), Route{Action: ActionNone}},
	}

	for _, tt := range tests {
		t.Run(tt.element.String(), func(t *testing.T) {
			if diff := cmp.Diff(tt.want, RouteFor(tt.element)); diff != "" {
				t.Errorf("RouteFor(%v) mismatch (-want +got):\n%s", tt.element, diff)
			}
		})
	}
}

func TestConfirm_FocusChain(t *testing.T) {
	f, _, _ := newTestForm(t)
	f.SetFocus(Name)

	for _, want := range []Element{Alias, Tests, Date, Quantity} {
		out, err := f.Confirm(context.Background())
		if err != nil {
			t.Fatalf("Confirm() error = %v", err)
		}
		if out.Action != ActionFocus {
			t.Fatalf("Action = %v, want focus", out.Action)
		}
		if f.Focus() != want {
			t.Fatalf("Focus() = %v, want %v", f.Focus(), want)
		}
	}
}

func TestConfirm_OperatorSession(t *testing.T) {
	f, clients, rec := newTestForm(t)
	ctx := context.Background()

	// Printer field: Enter moves to the client id.
	if _, err := f.Confirm(ctx); err != nil || f.Focus() != ClientID {
		t.Fatalf("after printer confirm: focus %v, err %v", f.Focus(), err)
	}

	// Known client: Enter loads it and jumps to the date.
	f.UpdateField(ClientID, "a1")
	out, err := f.Confirm(ctx)
	if err != nil || out.Action != ActionLoad || !out.Found {
		t.Fatalf("load confirm = %+v, %v", out, err)
	}
	if f.Focus() != Date || f.Value(Name) != "DR SMITH" {
		t.Fatalf("after load: focus %v, name %q", f.Focus(), f.Value(Name))
	}

	f.UpdateField(Date, "03/07/2024")
	if _, err := f.Confirm(ctx); err != nil || f.Focus() != Quantity {
		t.Fatalf("after date confirm: focus %v", f.Focus())
	}

	// Quantity: Enter prints.
	f.UpdateField(Quantity, "3")
	out, err = f.Confirm(ctx)
	if err != nil || !out.Printed {
		t.Fatalf("print confirm = %+v, %v", out, err)
	}
	if len(rec.Jobs) != 1 || rec.Jobs[0].Quantity != 3 {
		t.Fatalf("jobs = %+v", rec.Jobs)
	}
	if f.Focus() != ClientID || f.Value(ClientID) != "" {
		t.Errorf("after print: focus %v, client id %q", f.Focus(), f.Value(ClientID))
	}

	// New client: miss keeps the id, then save through the button.
	f.UpdateField(ClientID, "c3")
	out, _ = f.Confirm(ctx)
	if out.Found || f.Focus() != Name || f.Value(ClientID) != "C3" {
		t.Fatalf("miss: %+v focus %v id %q", out, f.Focus(), f.Value(ClientID))
	}
	f.UpdateField(Name, "dr patel")
	f.UpdateField(Tests, "a1c")
	f.SetFocus(SaveButton)
	out, err = f.Confirm(ctx)
	if err != nil || !out.Saved {
		t.Fatalf("save confirm = %+v, %v", out, err)
	}
	if _, err := clients.Get("C3"); err != nil {
		t.Errorf("C3 not saved: %v", err)
	}

	// Reset button keeps printer and date.
	f.SetFocus(ResetButton)
	if _, err := f.Confirm(ctx); err != nil {
		t.Fatal(err)
	}
	want := State{PrinterName: "LABREQ5", Date: "03/07/2024"}
	if diff := cmp.Diff(want, f.State()); diff != "" {
		t.Errorf("after reset (-want +got):\n%s", diff)
	}
}

func TestConfirm_PrintButtonInvalid(t *testing.T) {
	f, _, _ := newTestForm(t)
	f.SetFocus(PrintButton)

	out, err := f.Confirm(context.Background())
	if err != nil {
		t.Fatalf("Confirm() error = %v", err)
	}
	if out.Action != ActionPrint || out.Printed {
		t.Errorf("Outcome = %+v", out)
	}
	if !f.ErrorVisible() {
		t.Error("error banner not shown")
	}
	if f.Focus() != PrintButton {
		t.Errorf("Focus() = %v, want unchanged", f.Focus())
	}
}

func TestElement_TabOrder(t *testing.T) {
	if got := Printer.Prev(); got != ResetButton {
		t.Errorf("Printer.Prev() = %v, want %v", got, ResetButton)
	}
	if got := ResetButton.Next(); got != Printer {
		t.Errorf("ResetButton.Next() = %v, want %v", got, Printer)
	}

	seen := make(map[Element]bool)
	e := Printer
	for range Elements {
		seen[e] = true
		e = e.Next()
	}
	if len(seen) != len(Elements) {
		t.Errorf("tab cycle visits %d elements, want %d", len(seen), len(Elements))
	}
	for _, f := range Fields {
		if !f.IsField() {
			t.Errorf("%v.IsField() = false", f)
		}
	}
	if LoadButton.IsField() {
		t.Error("LoadButton.IsField() = true")
	}
}
