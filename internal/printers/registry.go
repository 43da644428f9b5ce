package printers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
)

// ErrUnknownPrinter is returned when a printer name has no registry entry.
var ErrUnknownPrinter = errors.New("unknown printer")

// Registry resolves printer names to endpoints.
type Registry interface {
	// Lookup returns the endpoint for name, or an error wrapping
	// ErrUnknownPrinter.
	Lookup(name string) (Endpoint, error)

	// Names lists the configured printers in order.
	Names() ([]string, error)
}

// FileRegistry reads printers from a JSON object mapping names to
// endpoints. The file is re-read on every call; the registry is managed
// outside this program.
type FileRegistry struct {
	path string
}

// NewFileRegistry returns a registry backed by path.
func NewFileRegistry(path string) *FileRegistry {
	return &FileRegistry{path: path}
}

// Path returns the backing file.
func (r *FileRegistry) Path() string {
	return r.path
}

// Lookup implements Registry.
func (r *FileRegistry) Lookup(name string) (Endpoint, error) {
	entries, err := r.read()
	if err != nil {
		return Endpoint{}, err
	}
	raw, ok := entries[name]
	if !ok {
		return Endpoint{}, fmt.Errorf("%w: %q", ErrUnknownPrinter, name)
	}
	ep, err := ParseEndpoint(raw)
	if err != nil {
		return Endpoint{}, fmt.Errorf("printer %q: %w", name, err)
	}
	return ep, nil
}

// Names implements Registry.
func (r *FileRegistry) Names() ([]string, error) {
	entries, err := r.read()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Add writes name → ep into the file, replacing any existing entry. Used
// by the scan command; the form never writes the registry.
func (r *FileRegistry) Add(name string, ep Endpoint) error {
	entries, err := r.read()
	if err != nil {
		return err
	}

	raw, err := json.Marshal(ep.String())
	if err != nil {
		return fmt.Errorf("failed to encode endpoint: %w", err)
	}
	entries[name] = raw

	data, err := json.MarshalIndent(entries, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal printers: %w", err)
	}
	tmpPath := r.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temporary printers file: %w", err)
	}
	if err := os.Rename(tmpPath, r.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to save printers file: %w", err)
	}
	return nil
}

// read loads the raw entries. A missing file is an empty registry.
func (r *FileRegistry) read() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return make(map[string]json.RawMessage), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read printers file: %w", err)
	}

	entries := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse printers file %s: %w", r.path, err)
	}
	if entries == nil {
		entries = make(map[string]json.RawMessage)
	}
	return entries, nil
}

// StaticRegistry is an in-memory Registry.
type StaticRegistry map[string]Endpoint

// Lookup implements Registry.
func (r StaticRegistry) Lookup(name string) (Endpoint, error) {
	ep, ok := r[name]
	if !ok {
		return Endpoint{}, fmt.Errorf("%w: %q", ErrUnknownPrinter, name)
	}
	return ep, nil
}

// Names implements Registry.
func (r StaticRegistry) Names() ([]string, error) {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
