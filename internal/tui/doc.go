// Package tui renders the label form in the terminal with bubbletea.
//
// The screen mirrors the paper request slip: printer, client id with the
// load and save buttons, name, alias, tests, date and quantity, then the
// print and reset buttons. Enter follows the form's confirm routes; tab and
// the arrow keys move between elements.
//
// Two kinds of feedback are shown. The red "Invalid Data Entered" banner
// is the form's validation state. The status line below it reports the
// last action and any store, registry or printer error.
//
// Usage:
//
//	f := form.New(clients, registry, gateway.NewClient(timeout))
//	if err := tui.Run(ctx, f, tui.WithDarkMode(settings.DarkMode)); err != nil {
//	    return err
//	}
package tui
