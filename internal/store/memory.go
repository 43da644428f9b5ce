package store

// MemoryStore is a ClientStore held in a map. It backs dry runs and tests.
type MemoryStore struct {
	records map[string]ClientRecord
	puts    int
}

// NewMemoryStore returns a store seeded with a copy of seed.
func NewMemoryStore(seed map[string]ClientRecord) *MemoryStore {
	records := make(map[string]ClientRecord, len(seed))
	for id, rec := range seed {
		records[id] = rec
	}
	return &MemoryStore{records: records}
}

// Get implements ClientStore.
func (s *MemoryStore) Get(id string) (ClientRecord, error) {
	rec, ok := s.records[id]
	if !ok {
		return ClientRecord{}, ErrNotFound
	}
	return rec, nil
}

// Put implements ClientStore.
func (s *MemoryStore) Put(id string, rec ClientRecord) error {
	s.records[id] = s.records[id].merge(rec)
	s.puts++
	return nil
}

// All implements ClientStore.
func (s *MemoryStore) All() (map[string]ClientRecord, error) {
	out := make(map[string]ClientRecord, len(s.records))
	for id, rec := range s.records {
		out[id] = rec
	}
	return out, nil
}

// Writes reports how many times Put has been called.
func (s *MemoryStore) Writes() int {
	return s.puts
}
