package memory

import (
	"context"
	"fmt"
	"sync"

	"nutrilog/internal/ledger"
)

// Store is an in-memory ledger used for local development and tests. A
// table that has never been appended to reads as ledger.ErrTableMissing,
// matching the behavior of a spreadsheet tab that was never created.
type Store struct {
	mu     sync.Mutex
	tables map[ledger.Table][]ledger.Row
}

var _ ledger.Store = (*Store)(nil)

func New() *Store {
	return &Store{tables: make(map[ledger.Table][]ledger.Row)}
}

// Seed replaces a table's rows wholesale. Test helper.
func (s *Store) Seed(table ledger.Table, rows []ledger.Row) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]ledger.Row, len(rows))
	for i, r := range rows {
		cp[i] = append(ledger.Row(nil), r...)
	}
	s.tables[table] = cp
}

func (s *Store) ReadRange(_ context.Context, table ledger.Table, rng ledger.Range) ([]ledger.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, ok := s.tables[table]
	if !ok {
		return nil, fmt.Errorf("%s: %w", table, ledger.ErrTableMissing)
	}
	if rng.MaxRows > 0 && rng.MaxRows < len(rows) {
		rows = rows[:rng.MaxRows]
	}
	out := make([]ledger.Row, len(rows))
	for i, r := range rows {
		out[i] = append(ledger.Row(nil), r...)
	}
	return out, nil
}

func (s *Store) AppendRow(_ context.Context, table ledger.Table, row ledger.Row) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[table] = append(s.tables[table], append(ledger.Row(nil), row...))
	return fmt.Sprintf("mem:%s:%d", table, len(s.tables[table])), nil
}

func (s *Store) DeleteRow(_ context.Context, table ledger.Table, match func(ledger.Row) bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, ok := s.tables[table]
	if !ok {
		return fmt.Errorf("%s: %w", table, ledger.ErrNotFound)
	}
	for i, r := range rows {
		if match(r) {
			s.tables[table] = append(rows[:i:i], rows[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%s: %w", table, ledger.ErrNotFound)
}
