package form

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/clinlab/demolabel/internal/gateway"
	"github.com/clinlab/demolabel/internal/label"
	"github.com/clinlab/demolabel/internal/logging"
	"github.com/clinlab/demolabel/internal/printers"
	"github.com/clinlab/demolabel/internal/store"
)

// DateLayout is the format of the date field.
const DateLayout = "01/02/2006"

// State is the current value of every field.
type State struct {
	PrinterName string
	ClientID    string
	Name        string
	Alias       string
	TestCodes   string
	Date        string
	Quantity    string
}

// Form is the label form. It is not safe for concurrent use; the UI event
// loop owns it.
type Form struct {
	state        State
	errorVisible bool
	focus        Element

	clients  store.ClientStore
	registry printers.Registry
	gateway  gateway.Gateway

	now            func() time.Time
	defaultPrinter string
	printTimeout   time.Duration
}

// Option configures a Form.
type Option func(*Form)

// WithClock sets the clock used for the default date.
func WithClock(now func() time.Time) Option {
	return func(f *Form) {
		f.now = now
	}
}

// WithDefaultPrinter sets the printer the form opens with.
func WithDefaultPrinter(name string) Option {
	return func(f *Form) {
		f.defaultPrinter = name
	}
}

// WithPrintTimeout bounds each gateway call.
func WithPrintTimeout(d time.Duration) Option {
	return func(f *Form) {
		f.printTimeout = d
	}
}

// New returns a form with the printer and date pre-filled, focus on the
// printer field and the error banner hidden.
func New(clients store.ClientStore, registry printers.Registry, gw gateway.Gateway, opts ...Option) *Form {
	f := &Form{
		clients:        clients,
		registry:       registry,
		gateway:        gw,
		now:            time.Now,
		defaultPrinter: "LABREQ5",
		printTimeout:   gateway.DefaultTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.state.PrinterName = normalize(f.defaultPrinter)
	f.state.Date = f.now().Format(DateLayout)
	f.focus = Printer
	return f
}

// State returns a copy of the field values.
func (f *Form) State() State {
	return f.state
}

// Value returns the current value of a field, or "" for a button.
func (f *Form) Value(e Element) string {
	if p := f.field(e); p != nil {
		return *p
	}
	return ""
}

// Focus returns the element that should hold focus.
func (f *Form) Focus() Element {
	return f.focus
}

// SetFocus moves focus, e.g. when the operator tabs between elements.
func (f *Form) SetFocus(e Element) {
	f.focus = e
}

// ErrorVisible reports whether the invalid data banner is shown.
func (f *Form) ErrorVisible() bool {
	return f.errorVisible
}

// UpdateField stores raw in the given field, upper-cased unless it is the
// date. Buttons are ignored.
func (f *Form) UpdateField(e Element, raw string) {
	p := f.field(e)
	if p == nil {
		return
	}
	if e == Date {
		*p = raw
		return
	}
	*p = normalize(raw)
}

func (f *Form) field(e Element) *string {
	switch e {
	case Printer:
		return &f.state.PrinterName
	case ClientID:
		return &f.state.ClientID
	case Name:
		return &f.state.Name
	case Alias:
		return &f.state.Alias
	case Tests:
		return &f.state.TestCodes
	case Date:
		return &f.state.Date
	case Quantity:
		return &f.state.Quantity
	default:
		return nil
	}
}

func normalize(s string) string {
	return strings.ToUpper(s)
}

// LoadClient looks up the typed client id. On a hit the name, alias and
// tests are filled in and focus moves to the date. On a miss every field
// except the printer, date and client id is cleared and focus moves to the
// name, ready for a new client. found reports which happened.
func (f *Form) LoadClient() (found bool, err error) {
	rec, err := f.clients.Get(f.state.ClientID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		f.ClearFields(Printer, Date, ClientID)
		f.focus = Name
		return false, nil
	case err != nil:
		return false, fmt.Errorf("failed to load client %q: %w", f.state.ClientID, err)
	}

	f.state.Name = normalize(rec.Name)
	f.state.Alias = normalize(rec.Alias)
	f.state.TestCodes = normalize(rec.OrderCodes)
	f.focus = Date
	return true, nil
}

// SaveClient upserts the client id, name, alias and tests into the store.
// It does nothing when ValidateForSave is false; saved reports whether a
// write happened.
func (f *Form) SaveClient() (saved bool, err error) {
	if !f.ValidateForSave() {
		return false, nil
	}

	id := normalize(f.state.ClientID)
	rec := store.ClientRecord{
		Name:       normalize(f.state.Name),
		Alias:      normalize(f.state.Alias),
		OrderCodes: normalize(f.state.TestCodes),
	}
	if err := f.clients.Put(id, rec); err != nil {
		return false, fmt.Errorf("failed to save client %q: %w", id, err)
	}
	return true, nil
}

// PrintLabel prints Quantity copies of the label on the selected printer.
//
// With invalid data the error banner is shown and nothing else happens.
// Otherwise the banner is hidden, the label is sent and every field but
// the printer and date is cleared. If the registry cannot be read, the
// printer entry does not parse or the printer cannot be reached the error is
// returned and the fields are kept so the operator can try again.
func (f *Form) PrintLabel(ctx context.Context) (printed bool, err error) {
	known, err := f.printerKnown()
	if err != nil {
		return false, fmt.Errorf("failed to read printer registry: %w", err)
	}
	if !known || !f.fieldsPrintable() {
		f.errorVisible = true
		return false, nil
	}

	quantity, err := strconv.Atoi(f.state.Quantity)
	if err != nil {
		// All digits but too large for an int.
		f.errorVisible = true
		return false, nil
	}

	f.errorVisible = false
	ep, err := f.registry.Lookup(f.state.PrinterName)
	if err != nil {
		return false, fmt.Errorf("failed to resolve printer %s: %w", f.state.PrinterName, err)
	}
	doc := label.Demographic(f.state.ClientID, f.state.Name, f.state.TestCodes, f.state.Date)

	if f.printTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.printTimeout)
		defer cancel()
	}

	if err := f.gateway.Print(ctx, doc, ep, quantity); err != nil {
		logging.Error("Print failed",
			zap.String("printer", f.state.PrinterName),
			zap.String("address", ep.String()),
			zap.Error(err),
		)
		return false, fmt.Errorf("failed to print on %s: %w", f.state.PrinterName, err)
	}
	logging.LogPrintJob(f.state.PrinterName, ep.String(), f.state.ClientID, quantity)

	f.ClearFields(Printer, Date)
	return true, nil
}

// ClearFields empties every field not listed in skip and moves focus to
// the client id.
func (f *Form) ClearFields(skip ...Element) {
	keep := make(map[Element]bool, len(skip))
	for _, e := range skip {
		keep[e] = true
	}
	for _, e := range Fields {
		if !keep[e] {
			*f.field(e) = ""
		}
	}
	f.focus = ClientID
}

// Reset clears the form for the next client, keeping the printer and date.
func (f *Form) Reset() {
	f.ClearFields(Printer, Date)
}
