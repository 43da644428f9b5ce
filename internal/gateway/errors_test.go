package gateway

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"syscall"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{
			name: "deadline exceeded",
			err:  fmt.Errorf("dial: %w", context.DeadlineExceeded),
			want: ErrTypeTimeout,
		},
		{
			name: "os deadline",
			err:  &net.OpError{Op: "write", Net: "tcp", Err: os.ErrDeadlineExceeded},
			want: ErrTypeTimeout,
		},
		{
			name: "dns",
			err:  &net.OpError{Op: "dial", Net: "tcp", Err: &net.DNSError{Name: "labreq5.invalid", Err: "no such host"}},
			want: ErrTypeDNS,
		},
		{
			name: "refused",
			err:  &net.OpError{Op: "dial", Net: "tcp", Err: os.NewSyscallError("connect", syscall.ECONNREFUSED)},
			want: ErrTypeConnectionRefused,
		},
		{
			name: "other",
			err:  errors.New("broken pipe"),
			want: ErrTypeNetwork,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify("send failed", "10.0.0.1:9100", tt.err)
			if got.Type != tt.want {
				t.Errorf("classify().Type = %v, want %v", got.Type, tt.want)
			}
			if !errors.Is(got, tt.err) {
				t.Error("classified error should wrap the cause")
			}
		})
	}
}

func TestClassify_NilAndAlreadyClassified(t *testing.T) {
	if classify("x", "a", nil) != nil {
		t.Error("classify(nil) should be nil")
	}

	pe := &PrinterError{Type: ErrTypeHTTP, StatusCode: 500}
	if got := classify("x", "a", fmt.Errorf("wrapped: %w", pe)); got != pe {
		t.Errorf("classify() = %v, want the original PrinterError", got)
	}
}

func TestPrinterError_Error(t *testing.T) {
	e := &PrinterError{Type: ErrTypeTimeout, Message: "no answer"}
	if got := e.Error(); got != "Timeout: no answer" {
		t.Errorf("Error() = %q", got)
	}

	e.Err = errors.New("i/o timeout")
	if got := e.Error(); !strings.Contains(got, "caused by: i/o timeout") {
		t.Errorf("Error() = %q", got)
	}
}

func TestShortMessageAndHint(t *testing.T) {
	plain := errors.New("disk full")
	if ShortMessage(plain) != "disk full" {
		t.Errorf("ShortMessage(plain) = %q", ShortMessage(plain))
	}
	if !strings.Contains(Hint(plain), "unexpected") {
		t.Errorf("Hint(plain) = %q", Hint(plain))
	}

	dns := &PrinterError{Type: ErrTypeDNS, Address: "labreq5:9100"}
	if !strings.Contains(ShortMessage(dns), "labreq5:9100") {
		t.Errorf("ShortMessage(dns) = %q", ShortMessage(dns))
	}
	if !strings.Contains(Hint(dns), "demolabel scan") {
		t.Errorf("Hint(dns) = %q", Hint(dns))
	}
}

func TestErrorType_String(t *testing.T) {
	if ErrTypeConnectionRefused.String() != "Connection Refused" {
		t.Errorf("String() = %q", ErrTypeConnectionRefused.String())
	}
	if ErrorType(99).String() != "ErrorType(99)" {
		t.Errorf("String() = %q", ErrorType(99).String())
	}
}
