package store

import (
	"errors"
	"sort"
)

// ErrNotFound is returned by Get when no record has the given id.
var ErrNotFound = errors.New("client not found")

// ClientStore persists client records keyed by client id. Keys are used
// exactly as given; callers normalize them.
type ClientStore interface {
	// Get returns the record for id or ErrNotFound.
	Get(id string) (ClientRecord, error)

	// Put upserts rec under id. Fields of an existing record that
	// ClientRecord does not model are kept.
	Put(id string, rec ClientRecord) error

	// All returns every record.
	All() (map[string]ClientRecord, error)
}

// SortedIDs returns the keys of records in ascending order.
func SortedIDs(records map[string]ClientRecord) []string {
	ids := make([]string, 0, len(records))
	for id := range records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Copy puts every record of src into dst and returns how many were copied.
func Copy(dst, src ClientStore) (int, error) {
	records, err := src.All()
	if err != nil {
		return 0, err
	}
	for n, id := range SortedIDs(records) {
		if err := dst.Put(id, records[id]); err != nil {
			return n, err
		}
	}
	return len(records), nil
}
