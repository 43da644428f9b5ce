package form

// Element identifies something on the form that can hold focus: one of the
// seven input fields or one of the four buttons.
type Element int

const (
	Printer Element = iota
	ClientID
	Name
	Alias
	Tests
	Date
	Quantity

	LoadButton
	SaveButton
	PrintButton
	ResetButton
)

// Fields lists the input fields in display order.
var Fields = []Element{Printer, ClientID, Name, Alias, Tests, Date, Quantity}

// Elements lists every focusable element in tab order.
var Elements = []Element{
	Printer,
	ClientID, LoadButton, SaveButton,
	Name, Alias,
	Tests, Date, Quantity,
	PrintButton, ResetButton,
}

// IsField reports whether e is an input field rather than a button.
func (e Element) IsField() bool {
	return e >= Printer && e <= Quantity
}

// String returns the label shown next to the element.
func (e Element) String() string {
	switch e {
	case Printer:
		return "Label Printer"
	case ClientID:
		return "Client ID"
	case Name:
		return "Name"
	case Alias:
		return "Alias"
	case Tests:
		return "Tests"
	case Date:
		return "Date"
	case Quantity:
		return "Quantity"
	case LoadButton:
		return "Load Client"
	case SaveButton:
		return "Save/Update"
	case PrintButton:
		return "Print"
	case ResetButton:
		return "Reset"
	default:
		return "Unknown"
	}
}

// Placeholder is the hint shown in an empty field.
func (e Element) Placeholder() string {
	switch e {
	case Printer:
		return "<Label Printer [LABREQ/LABREQ2/etc]>"
	case ClientID:
		return "<Client ID>"
	case Name:
		return "<Physician Name>"
	case Alias:
		return "<Alias or Clinic Name>"
	case Tests:
		return "<Test Codes>"
	case Date:
		return "<MM/DD/YYYY>"
	case Quantity:
		return "<Quantity>"
	default:
		return ""
	}
}

// Next returns the element after e in tab order, wrapping around.
func (e Element) Next() Element {
	return step(e, 1)
}

// Prev returns the element before e in tab order, wrapping around.
func (e Element) Prev() Element {
	return step(e, -1)
}

func step(e Element, delta int) Element {
	for i, el := range Elements {
		if el == e {
			n := len(Elements)
			return Elements[(i+delta+n)%n]
		}
	}
	return Printer
}
