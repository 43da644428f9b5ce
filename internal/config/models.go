package config

import (
	"fmt"
	"path/filepath"
	"time"
)

// Client store backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

const (
	currentVersion = 1

	DefaultClientsFile    = "clients.json"
	DefaultPrintersFile   = "printers.json"
	DefaultPrinter        = "LABREQ5"
	DefaultPrintTimeout   = 5 * time.Second
	defaultClientsBackend = BackendJSON
)

// Settings is the demolabel configuration file.
type Settings struct {
	Version int `yaml:"version"`

	// ClientsFile is the client store. Relative paths resolve against the
	// working directory, like the flat files the form has always used.
	ClientsFile    string `yaml:"clients_file"`
	ClientsBackend string `yaml:"clients_backend"` // json | sqlite
	PrintersFile   string `yaml:"printers_file"`

	// DefaultPrinter pre-fills the printer field when the form opens.
	DefaultPrinter string `yaml:"default_printer"`

	PrintTimeout time.Duration `yaml:"print_timeout"`

	LogLevel string `yaml:"log_level,omitempty"`
	LogFile  string `yaml:"log_file,omitempty"`

	DarkMode bool `yaml:"dark_mode"`
}

// NewSettings returns the built-in defaults.
func NewSettings() *Settings {
	return &Settings{
		Version:        currentVersion,
		ClientsFile:    DefaultClientsFile,
		ClientsBackend: defaultClientsBackend,
		PrintersFile:   DefaultPrintersFile,
		DefaultPrinter: DefaultPrinter,
		PrintTimeout:   DefaultPrintTimeout,
		DarkMode:       true,
	}
}

// applyDefaults fills zero values left by a partial config file.
func (s *Settings) applyDefaults() {
	d := NewSettings()
	if s.ClientsFile == "" {
		s.ClientsFile = d.ClientsFile
	}
	if s.ClientsBackend == "" {
		s.ClientsBackend = d.ClientsBackend
	}
	if s.PrintersFile == "" {
		s.PrintersFile = d.PrintersFile
	}
	if s.DefaultPrinter == "" {
		s.DefaultPrinter = d.DefaultPrinter
	}
	if s.PrintTimeout <= 0 {
		s.PrintTimeout = d.PrintTimeout
	}
}

// Validate checks values that cannot be defaulted.
func (s *Settings) Validate() error {
	if s.Version != currentVersion {
		return fmt.Errorf("unsupported config version: %d (expected %d)", s.Version, currentVersion)
	}
	switch s.ClientsBackend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("unknown clients_backend %q (expected %s or %s)", s.ClientsBackend, BackendJSON, BackendSQLite)
	}
	return nil
}

// ResolvePath makes p absolute relative to base unless it already is.
func ResolvePath(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
