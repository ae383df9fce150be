// Package persist stores calculation history as CSV.
//
// The column set and order — timestamp, operation, a, b, result — are the
// compatibility contract with prior sessions; loading reconstructs
// calculations with their original timestamps. A missing file loads as an
// empty history, malformed contents fail.
package persist

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dshills/calcstorm/internal/calc"
)

// ErrMalformedRecord indicates a history file that cannot be parsed back
// into calculations.
var ErrMalformedRecord = errors.New("persist: malformed history record")

// header is the fixed CSV column contract.
var header = []string{"timestamp", "operation", "a", "b", "result"}

// timeLayout keeps full timestamp precision across save/load cycles.
const timeLayout = time.RFC3339Nano

// Store reads and writes one history file.
type Store struct {
	path string
}

// NewStore creates a store for the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the history file path.
func (s *Store) Path() string { return s.path }

// Save writes the records to the history file. The write goes through a
// temp file in the same directory and a rename, so a crash mid-save cannot
// truncate an existing history.
func (s *Store) Save(records []calc.Calculation) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("persist: creating history dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".history-*.csv")
	if err != nil {
		return fmt.Errorf("persist: creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	w := csv.NewWriter(tmp)
	if err := w.Write(header); err != nil {
		tmp.Close()
		return fmt.Errorf("persist: writing header: %w", err)
	}
	for _, rec := range records {
		row := []string{
			rec.Timestamp.Format(timeLayout),
			rec.Op,
			rec.A.String(),
			rec.B.String(),
			rec.Result.String(),
		}
		if err := w.Write(row); err != nil {
			tmp.Close()
			return fmt.Errorf("persist: writing record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("persist: flushing records: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("persist: closing temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("persist: replacing history file: %w", err)
	}
	return nil
}

// Load reads the history file back into calculations, preserving the
// original timestamps. A missing file yields an empty history and no error.
func (s *Store) Load() ([]calc.Calculation, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("persist: opening history file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("persist: reading %s: %v: %w", s.path, err, ErrMalformedRecord)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	if !isHeader(rows[0]) {
		return nil, fmt.Errorf("persist: %s: unexpected header %v: %w", s.path, rows[0], ErrMalformedRecord)
	}

	records := make([]calc.Calculation, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rec, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("persist: %s line %d: %w", s.path, i+2, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func isHeader(row []string) bool {
	if len(row) != len(header) {
		return false
	}
	for i, col := range header {
		if row[i] != col {
			return false
		}
	}
	return true
}

func parseRow(row []string) (calc.Calculation, error) {
	if len(row) != len(header) {
		return calc.Calculation{}, fmt.Errorf("expected %d fields, got %d: %w", len(header), len(row), ErrMalformedRecord)
	}

	ts, err := time.Parse(timeLayout, row[0])
	if err != nil {
		return calc.Calculation{}, fmt.Errorf("bad timestamp %q: %w", row[0], ErrMalformedRecord)
	}

	nums := make([]decimal.Decimal, 3)
	for i, raw := range row[2:] {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return calc.Calculation{}, fmt.Errorf("bad number %q: %w", raw, ErrMalformedRecord)
		}
		nums[i] = d
	}

	return calc.Restore(row[1], nums[0], nums[1], nums[2], ts), nil
}
