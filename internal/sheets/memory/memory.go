// Package memory holds an in-memory stand-in for the Google Sheets
// backup, used in tests and broker-less local runs.
package memory

import (
	"context"
	"fmt"
	"sync"

	ports "financas/internal/sheets"
)

type Store struct {
	mu   sync.Mutex
	rows []ports.Row
}

var (
	_ ports.Writer  = (*Store)(nil)
	_ ports.Deleter = (*Store)(nil)
)

func New() *Store {
	return &Store{}
}

func (s *Store) Append(ctx context.Context, row ports.Row) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, row)
	return fmt.Sprintf("memory!A%d:G%d", len(s.rows), len(s.rows)), nil
}

func (s *Store) DeleteByTransactionID(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, row := range s.rows {
		if row.TransactionID == id {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return nil
		}
	}
	return nil
}

// Rows returns a copy of everything appended so far.
func (s *Store) Rows() []ports.Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ports.Row, len(s.rows))
	copy(out, s.rows)
	return out
}
