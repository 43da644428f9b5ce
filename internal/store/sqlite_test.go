package store

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func openTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "clients.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStore_PutGet(t *testing.T) {
	s := openTestSQLite(t)

	if _, err := s.Get("A1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get() on empty db error = %v, want ErrNotFound", err)
	}

	want := ClientRecord{Name: "DR SMITH", Alias: "MAIN CLINIC", OrderCodes: "CBC,TSH"}
	if err := s.Put("A1", want); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, err := s.Get("A1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(ClientRecord{})); diff != "" {
		t.Errorf("Get() mismatch (-want +got):\n%s", diff)
	}

	if err := s.Put("A1", ClientRecord{Name: "DR SMITH", OrderCodes: "CBC"}); err != nil {
		t.Fatalf("Put() update error = %v", err)
	}
	got, _ = s.Get("A1")
	if got.Alias != "" || got.OrderCodes != "CBC" {
		t.Errorf("Get() after update = %+v", got)
	}
}

func TestSQLiteStore_ImportKeepsExtras(t *testing.T) {
	src := NewFileStore(writeClients(t, sampleClients))
	s := openTestSQLite(t)

	n, err := Copy(s, src)
	if err != nil {
		t.Fatalf("Copy() error = %v", err)
	}
	if n != 2 {
		t.Errorf("Copy() = %d, want 2", n)
	}

	all, err := s.All()
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("All() len = %d, want 2", len(all))
	}

	data, err := json.Marshal(all["B7"])
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]string
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded["phone"] != "555-0100" {
		t.Errorf("extra field lost through sqlite: %s", data)
	}
}
