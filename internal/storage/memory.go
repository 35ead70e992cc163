package storage

import (
	"sort"
	"sync"

	"github.com/JoaoVF25/dashboard/internal/domain/models"
)

// MemoryStore is an in-memory TableStore used in tests and as a fallback
// when no database is configured. Rows keep insertion order per table.
type MemoryStore struct {
	mu     sync.Mutex
	tables map[string][]models.VersionedRow
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tables: make(map[string][]models.VersionedRow)}
}

func (s *MemoryStore) ListTables() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.tables))
	for name := range s.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *MemoryStore) AppendRows(table string, rows []models.VersionedRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[table] = append(s.tables[table], rows...)
	return nil
}

func (s *MemoryStore) ReadAllRows(table string) ([]models.VersionedRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.VersionedRow(nil), s.tables[table]...), nil
}

func (s *MemoryStore) DeleteTable(table string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tables, table)
	return nil
}
