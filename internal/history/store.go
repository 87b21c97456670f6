package history

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"avis-insight/internal/sentiment"
)

// PageSize is the number of rows per dashboard page.
const PageSize = 4

var ErrIndexOutOfRange = errors.New("review index out of range")

// header is part of the external contract of the history file.
var header = []string{"ID Utilisateur", "Commentaire", "Sentiment"}

// Record is one submitted review. Fields are stored as entered,
// whitespace included. Callers validate non-emptiness before appending.
type Record struct {
	UserID    string
	Comment   string
	Sentiment sentiment.Label
}

// Entry pairs a record with its absolute index in the unfiltered history,
// so deletes issued from a filtered page address the right row.
type Entry struct {
	Index  int
	Record Record
}

// Store owns the review history and its CSV file. All mutations persist
// before returning; the file is rewritten through a temp file and rename
// so a failed write never corrupts prior records. Mutations from multiple
// processes on the same file race last-writer-wins.
type Store struct {
	path string

	mu      sync.Mutex
	records []Record
	skipped int
}

// Open loads the history file, creating an empty store when the file does
// not exist yet. Malformed rows are skipped and counted, not fatal.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("open history: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	first := true
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			s.skipped++
			continue
		}
		if first {
			first = false
			if isHeader(row) {
				continue
			}
			// Headerless file: fall through and treat the row as data.
		}
		rec, ok := parseRow(row)
		if !ok {
			s.skipped++
			continue
		}
		s.records = append(s.records, rec)
	}
	return s, nil
}

func isHeader(row []string) bool {
	if len(row) != len(header) {
		return false
	}
	for i := range header {
		if row[i] != header[i] {
			return false
		}
	}
	return true
}

func parseRow(row []string) (Record, bool) {
	if len(row) != 3 || row[0] == "" || row[1] == "" {
		return Record{}, false
	}
	label := sentiment.Label(row[2])
	if !label.Valid() {
		return Record{}, false
	}
	return Record{UserID: row[0], Comment: row[1], Sentiment: label}, true
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// SkippedRows reports how many rows were dropped while loading the file.
func (s *Store) SkippedRows() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.skipped
}

func (s *Store) All() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// Append adds the record at the end, persists, and returns the new length.
// When persistence fails the in-memory append is rolled back so the view
// keeps matching the file.
func (s *Store) Append(rec Record) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	if err := s.persistUnlocked(); err != nil {
		s.records = s.records[:len(s.records)-1]
		return 0, fmt.Errorf("persist history: %w", err)
	}
	return len(s.records), nil
}

// DeleteAt removes the record at the given absolute index and shifts the
// suffix down by one. Rolled back if the rewrite fails.
func (s *Store) DeleteAt(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.records) {
		return ErrIndexOutOfRange
	}
	removed := s.records[index]
	s.records = append(s.records[:index], s.records[index+1:]...)
	if err := s.persistUnlocked(); err != nil {
		s.records = append(s.records[:index], append([]Record{removed}, s.records[index:]...)...)
		return fmt.Errorf("persist history: %w", err)
	}
	return nil
}

// Filter returns the records whose sentiment equals label, in original
// order, each carrying its absolute index. The FilterAll wildcard (or an
// empty label) returns the whole history.
func (s *Store) Filter(label string) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Entry
	for i, rec := range s.records {
		if label == "" || label == sentiment.FilterAll || string(rec.Sentiment) == label {
			out = append(out, Entry{Index: i, Record: rec})
		}
	}
	return out
}

// Paginate returns the slice of view for a 0-based page of PageSize rows.
func Paginate(view []Entry, page int) []Entry {
	start := page * PageSize
	if start < 0 || start >= len(view) {
		return nil
	}
	end := start + PageSize
	if end > len(view) {
		end = len(view)
	}
	return view[start:end]
}

// TotalPages is never below one, even for an empty view.
func TotalPages(n int) int {
	if n <= 0 {
		return 1
	}
	return (n + PageSize - 1) / PageSize
}

// Export serializes the full history in the on-disk format.
func (s *Store) Export() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var buf bytes.Buffer
	if err := s.encodeUnlocked(&buf); err != nil {
		return nil, fmt.Errorf("export history: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *Store) encodeUnlocked(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, rec := range s.records {
		if err := cw.Write([]string{rec.UserID, rec.Comment, string(rec.Sentiment)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (s *Store) persistUnlocked() error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	if err := s.encodeUnlocked(tmp); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("replace history file: %w", err)
	}
	return nil
}
