package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/clinlab/demolabel/internal/config"
	"github.com/clinlab/demolabel/internal/discovery"
	"github.com/clinlab/demolabel/internal/form"
	"github.com/clinlab/demolabel/internal/gateway"
	"github.com/clinlab/demolabel/internal/printers"
	"github.com/clinlab/demolabel/internal/store"
	"github.com/clinlab/demolabel/internal/ui"
)

func testForm(t *testing.T) (*form.Form, *store.MemoryStore, *gateway.Recorder) {
	t.Helper()
	clients := store.NewMemoryStore(map[string]store.ClientRecord{
		"A1": {Name: "DR SMITH", Alias: "MAIN CLINIC", OrderCodes: "CBC,TSH"},
	})
	registry := printers.StaticRegistry{
		"LABREQ5": {Protocol: printers.ProtocolRaw, Host: "10.20.0.15", Port: 9100},
	}
	rec := &gateway.Recorder{}
	f := form.New(clients, registry, rec, form.WithClock(func() time.Time {
		return time.Date(2024, time.May, 1, 0, 0, 0, 0, time.Local)
	}))
	return f, clients, rec
}

func TestPrintJob(t *testing.T) {
	tests := []struct {
		name      string
		req       printRequest
		wantErr   error
		wantJobs  int
		wantSaved bool
	}{
		{
			name:     "stored client",
			req:      printRequest{ClientID: "a1", Quantity: 2},
			wantJobs: 1,
		},
		{
			name:      "new client saved",
			req:       printRequest{ClientID: "b2", Name: "dr jones", Tests: "bmp", Quantity: 1, Save: true},
			wantJobs:  1,
			wantSaved: true,
		},
		{
			name:     "dry run skips save",
			req:      printRequest{ClientID: "b2", Name: "dr jones", Tests: "bmp", Quantity: 1, Save: true, DryRun: true},
			wantJobs: 1,
		},
		{
			name:     "zero copies",
			req:      printRequest{ClientID: "a1", Quantity: 0},
			wantJobs: 1,
		},
		{
			name:    "unknown client without details",
			req:     printRequest{ClientID: "zz", Quantity: 1},
			wantErr: errInvalidLabel,
		},
		{
			name:    "unknown printer",
			req:     printRequest{Printer: "labreq9", ClientID: "a1", Quantity: 1},
			wantErr: errInvalidLabel,
		},
		{
			name:    "negative quantity",
			req:     printRequest{ClientID: "a1", Quantity: -1},
			wantErr: errInvalidLabel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, clients, rec := testForm(t)
			var buf bytes.Buffer

			err := printJob(context.Background(), f, tt.req, ui.NewOutput(&buf))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("printJob() error = %v, want %v", err, tt.wantErr)
			}
			if len(rec.Jobs) != tt.wantJobs {
				t.Errorf("jobs = %d, want %d", len(rec.Jobs), tt.wantJobs)
			}
			if got := clients.Writes() > 0; got != tt.wantSaved {
				t.Errorf("saved = %v, want %v", got, tt.wantSaved)
			}
			if tt.wantErr != nil && !strings.Contains(buf.String(), "Invalid data entered") {
				t.Errorf("output does not explain the failure:\n%s", buf.String())
			}
		})
	}
}

func TestPrintJob_Warnings(t *testing.T) {
	tests := []struct {
		name string
		req  printRequest
		want string
	}{
		{
			name: "dry run save",
			req:  printRequest{ClientID: "a1", Quantity: 1, Save: true, DryRun: true},
			want: "Client not saved",
		},
		{
			name: "zero copies",
			req:  printRequest{ClientID: "a1", Quantity: 0},
			want: "Nothing printed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, _, _ := testForm(t)
			var buf bytes.Buffer

			if err := printJob(context.Background(), f, tt.req, ui.NewOutput(&buf)); err != nil {
				t.Fatalf("printJob() error = %v", err)
			}
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output does not contain %q:\n%s", tt.want, buf.String())
			}
		})
	}
}

func TestPrintJob_GatewayError(t *testing.T) {
	f, _, rec := testForm(t)
	rec.Err = &gateway.PrinterError{Type: gateway.ErrTypeTimeout, Message: "timeout", Address: "10.20.0.15:9100"}
	var buf bytes.Buffer

	err := printJob(context.Background(), f, printRequest{ClientID: "A1", Quantity: 1}, ui.NewOutput(&buf))
	if !gateway.IsTimeout(err) {
		t.Fatalf("printJob() error = %v, want timeout", err)
	}
	if !strings.Contains(buf.String(), "Print failed") {
		t.Errorf("output:\n%s", buf.String())
	}
}

func TestHintLines(t *testing.T) {
	err := &gateway.PrinterError{Type: gateway.ErrTypeConnectionRefused}
	tips := hintLines(err)
	if len(tips) == 0 {
		t.Fatal("no tips for a refused connection")
	}
	for _, tip := range tips {
		if strings.HasPrefix(tip, "•") || strings.HasSuffix(tip, ":") {
			t.Errorf("tip not cleaned: %q", tip)
		}
	}
	if got := hintLines(errors.New("boom")); got != nil {
		t.Errorf("hintLines(non-printer error) = %v", got)
	}
}

func TestSavePrinter(t *testing.T) {
	reg := printers.NewFileRegistry(filepath.Join(t.TempDir(), "printers.json"))
	found := []*discovery.Printer{
		{Instance: "ZD421 LABREQ5", IP: "10.20.0.15", Port: 9100},
		{Instance: "ZT411 BULK", IP: "10.20.0.16", Port: 9100},
	}
	var buf bytes.Buffer

	if err := savePrinter(&buf, reg, found, "labreq6", 2); err != nil {
		t.Fatalf("savePrinter() error = %v", err)
	}
	ep, err := reg.Lookup("LABREQ6")
	if err != nil {
		t.Fatalf("Lookup(LABREQ6) error = %v", err)
	}
	if ep.Host != "10.20.0.16" {
		t.Errorf("saved host = %q", ep.Host)
	}

	if err := savePrinter(&buf, reg, found, "x", 3); err == nil {
		t.Error("savePrinter() accepted --pick out of range")
	}
}

func TestLoadSettings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "version: 1\nclients_file: /srv/labels/clients.json\nprint_timeout: 2s\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	saved := configPath
	defer func() { configPath = saved }()
	configPath = path

	s, err := loadSettings(&cobra.Command{})
	if err != nil {
		t.Fatalf("loadSettings() error = %v", err)
	}
	if s.ClientsFile != "/srv/labels/clients.json" {
		t.Errorf("ClientsFile = %q", s.ClientsFile)
	}
	if s.PrintTimeout != 2*time.Second {
		t.Errorf("PrintTimeout = %v", s.PrintTimeout)
	}
	if s.DefaultPrinter != config.DefaultPrinter {
		t.Errorf("DefaultPrinter = %q", s.DefaultPrinter)
	}
}

func TestOpenClients_SQLite(t *testing.T) {
	s := config.NewSettings()
	s.ClientsBackend = config.BackendSQLite
	s.ClientsFile = filepath.Join(t.TempDir(), "clients.db")

	clients, closeClients, err := openClients(s)
	if err != nil {
		t.Fatalf("openClients() error = %v", err)
	}
	defer closeClients()

	if err := clients.Put("A1", store.ClientRecord{Name: "DR SMITH"}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if _, err := clients.Get("A1"); err != nil {
		t.Errorf("Get() error = %v", err)
	}
}

func TestClientRows_Sorted(t *testing.T) {
	rows := clientRows(map[string]store.ClientRecord{
		"B2": {Name: "DR JONES"},
		"A1": {Name: "DR SMITH", OrderCodes: "CBC"},
	})
	if len(rows) != 2 || rows[0][0] != "A1" || rows[1][0] != "B2" {
		t.Errorf("rows = %v", rows)
	}
	if rows[0][3] != "CBC" {
		t.Errorf("order codes column = %q", rows[0][3])
	}
}
