package storage

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/san-kum/fuzzylab/internal/plant"
	"github.com/san-kum/fuzzylab/internal/sweep"
)

type ExportData struct {
	Metadata
	Data [][]float64 `json:"data"`
}

// ExportJSON writes the metadata and rows of one entry to w as a single
// JSON document.
func (s *Store) ExportJSON(w io.Writer, id string) error {
	meta, err := s.Load(id)
	if err != nil {
		return err
	}
	table, err := s.LoadRows(id)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ExportData{Metadata: *meta, Data: table.Rows})
}

// SweepTable lays out samples as one column per input followed by "output".
func SweepTable(inputs []string, samples []sweep.Sample) Table {
	cols := append(append([]string{}, inputs...), "output")
	rows := make([][]float64, len(samples))
	for i, s := range samples {
		row := make([]float64, 0, len(cols))
		row = append(row, s.Inputs...)
		rows[i] = append(row, s.Output)
	}
	return Table{Columns: cols, Rows: rows}
}

// RunTable lays out a simulation as time, x0..xn, u0..um. Steps without a
// recorded control are padded with zeros.
func RunTable(result *plant.Result) Table {
	if len(result.States) == 0 {
		return Table{Columns: []string{"time"}, Rows: [][]float64{}}
	}

	cols := []string{"time"}
	for i := range result.States[0] {
		cols = append(cols, fmt.Sprintf("x%d", i))
	}
	numControls := 0
	if len(result.Controls) > 0 {
		numControls = len(result.Controls[0])
	}
	for i := 0; i < numControls; i++ {
		cols = append(cols, fmt.Sprintf("u%d", i))
	}

	rows := make([][]float64, len(result.States))
	for i, x := range result.States {
		row := make([]float64, 0, len(cols))
		row = append(row, result.Times[i])
		row = append(row, x...)
		if i < len(result.Controls) && len(result.Controls[i]) == numControls {
			row = append(row, result.Controls[i]...)
		} else {
			row = append(row, make([]float64, numControls)...)
		}
		rows[i] = row
	}
	return Table{Columns: cols, Rows: rows}
}
