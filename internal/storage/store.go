// Package storage keeps sweep results and simulation runs on disk. Each
// entry is a directory holding metadata.json and data.csv.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
)

const (
	KindSweep = "sweep"
	KindRun   = "run"

	metaFile = "metadata.json"
	dataFile = "data.csv"
)

var ErrNotFound = errors.New("storage: entry not found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type Metadata struct {
	ID         string             `json:"id"`
	Kind       string             `json:"kind"`
	Controller string             `json:"controller"`
	Timestamp  time.Time          `json:"timestamp"`
	Columns    []string           `json:"columns"`
	Rows       int                `json:"rows"`
	Params     map[string]float64 `json:"params,omitempty"`
	Metrics    map[string]float64 `json:"metrics,omitempty"`
}

// Table is a rectangular block of numbers with named columns.
type Table struct {
	Columns []string    `json:"columns"`
	Rows    [][]float64 `json:"rows"`
}

// Column returns column i of every row.
func (t *Table) Column(i int) []float64 {
	out := make([]float64, 0, len(t.Rows))
	for _, row := range t.Rows {
		if i < len(row) {
			out = append(out, row[i])
		}
	}
	return out
}

func newID(kind string) string {
	return fmt.Sprintf("%s_%s", kind, uuid.NewString()[:8])
}

func (s *Store) dir(id string) string {
	return filepath.Join(s.baseDir, id)
}

// Save writes the table under a fresh id and returns it.
func (s *Store) Save(kind, controller string, params, metrics map[string]float64, table Table) (string, error) {
	id := newID(kind)
	dir := s.dir(id)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	meta := Metadata{
		ID:         id,
		Kind:       kind,
		Controller: controller,
		Timestamp:  time.Now(),
		Columns:    table.Columns,
		Rows:       len(table.Rows),
		Params:     params,
		Metrics:    metrics,
	}
	if err := writeMeta(filepath.Join(dir, metaFile), meta); err != nil {
		return "", err
	}
	if err := writeCSV(filepath.Join(dir, dataFile), table); err != nil {
		return "", err
	}
	return id, nil
}

func writeMeta(path string, meta Metadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func writeCSV(path string, table Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(table.Columns); err != nil {
		return err
	}
	for _, row := range table.Rows {
		rec := make([]string, len(row))
		for i, v := range row {
			rec[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable entry, newest first.
func (s *Store) List() ([]Metadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Metadata{}, nil
		}
		return nil, err
	}

	out := make([]Metadata, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		out = append(out, *meta)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

func (s *Store) Load(id string) (*Metadata, error) {
	data, err := os.ReadFile(filepath.Join(s.dir(id), metaFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
		}
		return nil, err
	}

	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("%s: %w", id, err)
	}
	return &meta, nil
}

func (s *Store) LoadRows(id string) (*Table, error) {
	f, err := os.Open(filepath.Join(s.dir(id), dataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	table := &Table{Rows: [][]float64{}}
	if len(records) == 0 {
		return table, nil
	}
	table.Columns = records[0]

	for n, rec := range records[1:] {
		row := make([]float64, len(rec))
		for i, field := range rec {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%s: row %d column %d: %w", id, n+1, i, err)
			}
			row[i] = v
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// ExportCSV copies the stored data.csv to w.
func (s *Store) ExportCSV(w io.Writer, id string) error {
	f, err := os.Open(filepath.Join(s.dir(id), dataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s: %w", id, ErrNotFound)
		}
		return err
	}
	defer f.Close()

	_, err = io.Copy(w, f)
	return err
}
