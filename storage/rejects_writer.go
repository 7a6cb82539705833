package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"football-stats/models"
)

// RejectsWriter writes the rows dropped by the quality filter to a CSV audit file.
// Each record is table, source line, reason, then the original cells.
type RejectsWriter struct {
	file   *os.File
	writer *csv.Writer
}

// NewRejectsWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewRejectsWriter(path string) (*RejectsWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write([]string{"table", "line", "reason", "cells"}); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &RejectsWriter{file: f, writer: w}, nil
}

// WriteRejected appends one record per rejected row.
func (r *RejectsWriter) WriteRejected(rejected []models.Rejection) error {
	for _, rej := range rejected {
		row := make([]string, 0, 3+len(rej.Cells))
		row = append(row, rej.Table, strconv.Itoa(rej.Line), rej.Reason)
		row = append(row, rej.Cells...)
		if err := r.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	r.writer.Flush()
	return r.writer.Error()
}

// Close flushes and closes the underlying file.
func (r *RejectsWriter) Close() error {
	r.writer.Flush()
	return r.file.Close()
}
