package form

import (
	"fmt"
	"slices"
	"unicode/utf8"
)

// ValidateForPrint reports whether a print may be attempted: the printer is
// in the registry, a client id is set, the name is longer than three
// characters, the tests longer than two, the date longer than five and the
// quantity is a non-empty run of digits. A registry that cannot be read
// counts as not knowing the printer. Only the name is checked; whether its
// endpoint parses is found out by PrintLabel.
func (f *Form) ValidateForPrint() bool {
	known, err := f.printerKnown()
	return err == nil && known && f.fieldsPrintable()
}

// printerKnown reports whether the registry has an entry for the selected
// printer.
func (f *Form) printerKnown() (bool, error) {
	names, err := f.registry.Names()
	if err != nil {
		return false, err
	}
	return slices.Contains(names, f.state.PrinterName), nil
}

func (f *Form) fieldsPrintable() bool {
	s := f.state
	return s.ClientID != "" &&
		utf8.RuneCountInString(s.Name) > 3 &&
		utf8.RuneCountInString(s.TestCodes) > 2 &&
		utf8.RuneCountInString(s.Date) > 5 &&
		isDigits(s.Quantity)
}

// ValidateForSave reports whether the client fields may be saved. The
// printer, date and quantity do not matter.
func (f *Form) ValidateForSave() bool {
	s := f.state
	return s.ClientID != "" &&
		utf8.RuneCountInString(s.Name) > 3 &&
		utf8.RuneCountInString(s.TestCodes) > 2
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// PrintProblems lists why ValidateForPrint is false, one message per
// failed check. It is empty when the form is printable.
func (f *Form) PrintProblems() []string {
	var problems []string
	s := f.state
	if known, err := f.printerKnown(); err != nil || !known {
		problems = append(problems, fmt.Sprintf("printer %q is not configured", s.PrinterName))
	}
	if s.ClientID == "" {
		problems = append(problems, "client id is required")
	}
	if utf8.RuneCountInString(s.Name) <= 3 {
		problems = append(problems, "name must be longer than 3 characters")
	}
	if utf8.RuneCountInString(s.TestCodes) <= 2 {
		problems = append(problems, "tests must be longer than 2 characters")
	}
	if utf8.RuneCountInString(s.Date) <= 5 {
		problems = append(problems, "date must be longer than 5 characters")
	}
	if !isDigits(s.Quantity) {
		problems = append(problems, "quantity must be a whole number")
	}
	return problems
}
