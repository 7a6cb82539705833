package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	// ErrUnsupportedFormat is returned for source files that are neither CSV nor XLSX.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrMissingColumn is returned when a source header lacks a required column.
	ErrMissingColumn = errors.New("missing required column")
	// ErrEmptySource is returned when a source has no header row.
	ErrEmptySource = errors.New("source has no header row")
)

// records is a decoded source: a normalised header plus the data rows.
type records struct {
	header []string
	rows   [][]string
}

// readRecords decodes the file at path, picking the reader from its extension.
func readRecords(path string) (*records, error) {
	var (
		all [][]string
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		all, err = readCSV(path)
	case ".xlsx":
		all, err = readXLSX(path)
	default:
		return nil, fmt.Errorf("loader: %q: %w (%s)", path, ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("loader: %q: %w", path, ErrEmptySource)
	}

	header := make([]string, len(all[0]))
	for i, h := range all[0] {
		h = strings.TrimPrefix(h, "\ufeff")
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}
	return &records{header: header, rows: all[1:]}, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %q: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	// Short rows become missing cells and are flagged later.
	r.FieldsPerRecord = -1

	var all [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: read %q: %w", path, err)
		}
		all = append(all, rec)
	}
	return all, nil
}

// readXLSX returns the rows of the first sheet. Dates are expected as ISO text cells.
func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("xlsx: open %q: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx: %q: %w", path, ErrEmptySource)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("xlsx: read sheet %q of %q: %w", sheets[0], path, err)
	}
	return rows, nil
}

// columnIndex maps column names to positions in a header.
type columnIndex map[string]int

func newColumnIndex(header []string) columnIndex {
	idx := make(columnIndex, len(header))
	for i, h := range header {
		if _, dup := idx[h]; !dup {
			idx[h] = i
		}
	}
	return idx
}

// require returns the position of the first present name among alternatives.
func (c columnIndex) require(table string, names ...string) (int, error) {
	for _, n := range names {
		if i, ok := c[n]; ok {
			return i, nil
		}
	}
	return -1, fmt.Errorf("loader: %s: %w %q", table, ErrMissingColumn, strings.Join(names, "|"))
}

// optional returns the column position or -1.
func (c columnIndex) optional(name string) int {
	if i, ok := c[name]; ok {
		return i
	}
	return -1
}

func cell(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return rec[i]
}

func cloneRow(rec []string) []string {
	out := make([]string, len(rec))
	copy(out, rec)
	return out
}
