// Package form holds the demographic label form: the field values, their
// validation, the load/save/print/clear actions and where keyboard focus
// goes next.
//
// The form knows nothing about terminals. The tui package renders it and
// forwards edits and confirm events; the print command drives it headless.
//
// # Fields
//
// Every field except the date is upper-cased as it is set. Lengths are
// counted in characters, not bytes.
//
//	Printer   registry key, defaults to the configured printer
//	ClientID  client store key
//	Name      physician name
//	Alias     alias or clinic
//	Tests     order codes
//	Date      MM/DD/YYYY, defaults to today
//	Quantity  copies to print, digits only
//
// # Error banner
//
// The banner starts hidden, becomes visible when a print is attempted with
// invalid data and is hidden again by the next successful print. Store,
// registry and printer I/O errors are returned to the caller and do not
// touch the banner.
package form
