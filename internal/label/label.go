// Package label renders specimen labels as ZPL II documents.
package label

import (
	"fmt"
	"strings"
)

// Label geometry in dots for a 2" x 1" label at 203 dpi.
const (
	widthDots  = 406
	lengthDots = 203
	marginDots = 20
)

// Document is a printer-ready label.
type Document struct {
	body []byte
}

// Bytes returns the encoded label.
func (d Document) Bytes() []byte {
	return d.body
}

// Len returns the encoded size in bytes.
func (d Document) Len() int {
	return len(d.body)
}

// Demographic builds the client label: name, client id, order codes and
// collection date, with the client id repeated as a Code 128 barcode.
func Demographic(clientID, name, testCodes, date string) Document {
	var b strings.Builder

	b.WriteString("^XA\n")
	b.WriteString("^CI28\n") // UTF-8 field data
	fmt.Fprintf(&b, "^PW%d\n^LL%d\n", widthDots, lengthDots)

	field(&b, 15, 30, name)
	field(&b, 52, 24, "ID: "+clientID)
	field(&b, 82, 24, "TESTS: "+testCodes)
	field(&b, 112, 24, "DATE: "+date)

	fmt.Fprintf(&b, "^FO%d,%d^BY2^BCN,45,N,N,N^FH^FD%s^FS\n", marginDots, 145, escape(clientID))

	b.WriteString("^XZ\n")
	return Document{body: []byte(b.String())}
}

// field writes one scalable-font text line at row y.
func field(b *strings.Builder, y, height int, text string) {
	fmt.Fprintf(b, "^FO%d,%d^A0N,%d,%d^FB%d,1,0,L^FH^FD%s^FS\n",
		marginDots, y, height, height, widthDots-2*marginDots, escape(text))
}

// escape hex-encodes the characters ZPL treats as commands inside ^FD
// (^FH makes '_' the escape introducer).
func escape(s string) string {
	r := strings.NewReplacer(
		"_", "_5F",
		"^", "_5E",
		"~", "_7E",
	)
	return r.Replace(s)
}
