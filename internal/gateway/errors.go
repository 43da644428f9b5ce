package gateway

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"
)

// ErrorType represents the category of a print failure.
type ErrorType int

const (
	// ErrTypeNetwork indicates a network-level error not covered below
	ErrTypeNetwork ErrorType = iota
	// ErrTypeTimeout indicates the printer did not accept the job in time
	ErrTypeTimeout
	// ErrTypeConnectionRefused indicates nothing is listening on the printer port
	ErrTypeConnectionRefused
	// ErrTypeDNS indicates the printer hostname did not resolve
	ErrTypeDNS
	// ErrTypeHTTP indicates the printer web server rejected the job
	ErrTypeHTTP
	// ErrTypeProtocol indicates an unsupported or failed transport handshake
	ErrTypeProtocol
	// ErrTypeValidation indicates a job that cannot be sent (e.g. negative quantity)
	ErrTypeValidation
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeNetwork:
		return "Network Error"
	case ErrTypeTimeout:
		return "Timeout"
	case ErrTypeConnectionRefused:
		return "Connection Refused"
	case ErrTypeDNS:
		return "DNS Error"
	case ErrTypeHTTP:
		return "HTTP Error"
	case ErrTypeProtocol:
		return "Protocol Error"
	case ErrTypeValidation:
		return "Validation Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// PrinterError describes a failed print dispatch.
type PrinterError struct {
	Type       ErrorType
	Message    string
	Address    string // host:port of the printer
	StatusCode int    // HTTP transport only
	Err        error
}

// Error implements the error interface
func (e *PrinterError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *PrinterError) Unwrap() error {
	return e.Err
}

// classify turns a transport error into a PrinterError.
func classify(message, address string, err error) *PrinterError {
	if err == nil {
		return nil
	}

	var already *PrinterError
	if errors.As(err, &already) {
		return already
	}

	pe := &PrinterError{Type: ErrTypeNetwork, Message: message, Address: address, Err: err}

	var timeout interface{ Timeout() bool }
	var dnsErr *net.DNSError
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &timeout) && timeout.Timeout():
		pe.Type = ErrTypeTimeout
	case errors.As(err, &dnsErr):
		pe.Type = ErrTypeDNS
	case errors.Is(err, syscall.ECONNREFUSED):
		pe.Type = ErrTypeConnectionRefused
	}
	return pe
}

func errorType(err error) (ErrorType, bool) {
	var pe *PrinterError
	if errors.As(err, &pe) {
		return pe.Type, true
	}
	return 0, false
}

// IsNetworkError reports whether err is any kind of network failure.
func IsNetworkError(err error) bool {
	t, ok := errorType(err)
	if !ok {
		return false
	}
	switch t {
	case ErrTypeNetwork, ErrTypeTimeout, ErrTypeConnectionRefused, ErrTypeDNS:
		return true
	}
	return false
}

// IsTimeout reports whether err is a print timeout.
func IsTimeout(err error) bool {
	t, ok := errorType(err)
	return ok && t == ErrTypeTimeout
}

// ShortMessage returns a one-line description suitable for a status bar.
func ShortMessage(err error) string {
	var pe *PrinterError
	if !errors.As(err, &pe) {
		return err.Error()
	}

	switch pe.Type {
	case ErrTypeTimeout:
		return fmt.Sprintf("Printer %s not responding (timeout)", pe.Address)
	case ErrTypeConnectionRefused:
		return fmt.Sprintf("Printer %s refused the connection", pe.Address)
	case ErrTypeDNS:
		return fmt.Sprintf("Cannot resolve printer host %s", pe.Address)
	case ErrTypeHTTP:
		return fmt.Sprintf("Printer rejected the job (HTTP %d)", pe.StatusCode)
	default:
		return pe.Message
	}
}

// Hint returns troubleshooting advice for err.
func Hint(err error) string {
	t, ok := errorType(err)
	if !ok {
		return "An unexpected error occurred. Please try again."
	}

	switch t {
	case ErrTypeTimeout, ErrTypeConnectionRefused:
		return strings.Join([]string{
			"The printer did not accept the job.",
			"Troubleshooting:",
			"  • Check that the printer is powered on and online (not paused)",
			"  • Verify the address in printers.json",
			"  • Raw printing normally uses port 9100",
		}, "\n")
	case ErrTypeDNS:
		return strings.Join([]string{
			"Could not resolve the printer hostname.",
			"Troubleshooting:",
			"  • Use the printer's IP address in printers.json",
			"  • Run 'demolabel scan' to find printers on the network",
		}, "\n")
	case ErrTypeHTTP:
		return "The printer web server refused the job. Check that HTTP printing is enabled on the printer."
	case ErrTypeProtocol:
		return "The printer transport could not be used. Check the protocol in printers.json."
	default:
		return "Check the network connection to the printer."
	}
}
