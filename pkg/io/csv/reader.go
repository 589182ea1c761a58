// Package csv reads multivariate time series from CSV files: one row per
// time step, one numeric column per series.
package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Reader reads a series from a CSV file.
type Reader struct {
	file      *os.File
	reader    *csv.Reader
	hasHeader bool
	strict    bool
	headers   []string
}

// Option configures a CSV reader.
type Option func(*Reader)

// WithHeader indicates the CSV has a header row.
func WithHeader(has bool) Option {
	return func(r *Reader) {
		r.hasHeader = has
	}
}

// WithStrict makes non-numeric rows an error instead of being skipped.
func WithStrict(strict bool) Option {
	return func(r *Reader) {
		r.strict = strict
	}
}

// NewReader creates a new CSV series reader.
func NewReader(filename string, opts ...Option) (*Reader, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	r := &Reader{
		file:      file,
		reader:    csv.NewReader(file),
		hasHeader: true,
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.hasHeader {
		headers, err := r.reader.Read()
		if err != nil {
			file.Close()
			return nil, err
		}
		r.headers = headers
	}

	return r, nil
}

// Headers returns the column headers.
func (r *Reader) Headers() []string {
	return r.headers
}

// Read returns the whole series as a 2D float slice.
func (r *Reader) Read() ([][]float64, error) {
	var data [][]float64

	line := 0
	for {
		record, err := r.reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line++

		row, err := parseRow(record)
		if err != nil {
			if r.strict {
				return nil, fmt.Errorf("row %d: %w", line, err)
			}
			continue // skip malformed rows
		}
		data = append(data, row)
	}

	return data, nil
}

// Close releases resources.
func (r *Reader) Close() error {
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// parseRow converts string slice to float slice.
func parseRow(record []string) ([]float64, error) {
	if len(record) == 0 {
		return nil, errors.New("empty row")
	}

	row := make([]float64, len(record))
	for i, val := range record {
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return nil, err
		}
		row[i] = f
	}
	return row, nil
}
