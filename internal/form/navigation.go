package form

import "context"

// Action is what a confirm (Enter) on an element resolves to.
type Action int

const (
	ActionNone Action = iota
	ActionFocus
	ActionLoad
	ActionSave
	ActionPrint
	ActionReset
)

func (a Action) String() string {
	switch a {
	case ActionFocus:
		return "focus"
	case ActionLoad:
		return "load"
	case ActionSave:
		return "save"
	case ActionPrint:
		return "print"
	case ActionReset:
		return "reset"
	default:
		return "none"
	}
}

// Route is one row of the confirm table.
type Route struct {
	Action Action
	// Target is the element to focus when Action is ActionFocus.
	Target Element
}

var confirmRoutes = map[Element]Route{
	Printer:     {Action: ActionFocus, Target: ClientID},
	ClientID:    {Action: ActionLoad},
	Name:        {Action: ActionFocus, Target: Alias},
	Alias:       {Action: ActionFocus, Target: Tests},
	Tests:       {Action: ActionFocus, Target: Date},
	Date:        {Action: ActionFocus, Target: Quantity},
	Quantity:    {Action: ActionPrint},
	LoadButton:  {Action: ActionLoad},
	SaveButton:  {Action: ActionSave},
	PrintButton: {Action: ActionPrint},
	ResetButton: {Action: ActionReset},
}

// RouteFor returns the confirm route for e. Only e is consulted.
func RouteFor(e Element) Route {
	return confirmRoutes[e]
}

// Outcome describes what Confirm did.
type Outcome struct {
	Action Action

	// Found is set by ActionLoad.
	Found bool
	// Saved is set by ActionSave.
	Saved bool
	// Printed is set by ActionPrint.
	Printed bool
}

// Confirm handles Enter on the focused element: it either moves focus or
// runs the element's action. ctx bounds a print.
func (f *Form) Confirm(ctx context.Context) (Outcome, error) {
	route := RouteFor(f.focus)
	out := Outcome{Action: route.Action}

	var err error
	switch route.Action {
	case ActionFocus:
		f.focus = route.Target
	case ActionLoad:
		out.Found, err = f.LoadClient()
	case ActionSave:
		out.Saved, err = f.SaveClient()
	case ActionPrint:
		out.Printed, err = f.PrintLabel(ctx)
	case ActionReset:
		f.Reset()
	}
	return out, err
}
