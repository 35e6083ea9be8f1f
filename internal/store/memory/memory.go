// Package memory is the in-memory tabular store used for local development
// and as the test double for the remote sheet.
package memory

import (
	"context"
	"encoding/csv"
	"os"
	"sync"

	"github.com/IlRyze11/gestione-spese/internal/store"
)

type Store struct {
	mu     sync.Mutex
	header []string
	rows   [][]string

	// FailReads/FailWrites let tests exercise the degraded-load and
	// failed-save paths.
	FailReads  error
	FailWrites error
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{}
}

// NewWithRows seeds the store with a header and data rows.
func NewWithRows(header []string, rows [][]string) *Store {
	return &Store{header: header, rows: copyRows(rows)}
}

// NewFromFile seeds the store from a CSV file whose first record is the
// header. A missing or unreadable file yields an empty store.
func NewFromFile(path string) *Store {
	f, err := os.Open(path)
	if err != nil {
		return New()
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil || len(records) == 0 {
		return New()
	}
	return NewWithRows(records[0], records[1:])
}

func (s *Store) ReadAll(_ context.Context) ([]store.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailReads != nil {
		return nil, s.FailReads
	}
	out := make([]store.Row, 0, len(s.rows))
	for _, cols := range s.rows {
		row := make(store.Row, len(s.header))
		for i, name := range s.header {
			if name == "" {
				continue
			}
			if i < len(cols) {
				row[name] = cols[i]
			} else {
				row[name] = ""
			}
		}
		out = append(out, row)
	}
	return out, nil
}

func (s *Store) OverwriteAll(_ context.Context, header []string, rows [][]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	s.header = append([]string(nil), header...)
	s.rows = copyRows(rows)
	return nil
}

// Len reports the number of data rows currently held.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

func copyRows(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = append([]string(nil), r...)
	}
	return out
}
