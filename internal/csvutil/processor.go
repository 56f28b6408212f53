// Package csvutil reads header-addressed CSV files.
package csvutil

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Row is one record addressed by lower-cased header name.
type Row struct {
	Line   int
	fields map[string]string
}

// Get returns the trimmed value of the first named column that is present
// and non-empty.
func (r Row) Get(names ...string) string {
	for _, name := range names {
		if v := strings.TrimSpace(r.fields[strings.ToLower(name)]); v != "" {
			return v
		}
	}
	return ""
}

// ProcessorOptions configures CSV processing behavior.
type ProcessorOptions struct {
	// SkipInvalid controls whether to skip rows the parser rejects or
	// return an error.
	SkipInvalid bool
}

// ProcessCSV reads filename and parses each data row into T. The first row
// is the header; column lookups through Row are case-insensitive.
func ProcessCSV[T any](filename string, parser func(Row) (T, error), opts ProcessorOptions) ([]T, error) {
	csvFile, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer func() { _ = csvFile.Close() }()

	return Process(csvFile, parser, opts)
}

// Process parses CSV data from r. See ProcessCSV.
func Process[T any](r io.Reader, parser func(Row) (T, error), opts ProcessorOptions) ([]T, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("CSV file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	for i, name := range header {
		header[i] = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
	}

	var items []T
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			slog.Warn("Error reading record", "line", line, "error", err)
			continue
		}

		row := Row{Line: line, fields: make(map[string]string, len(header))}
		for i, name := range header {
			if i < len(record) {
				row.fields[name] = record[i]
			}
		}

		item, err := parser(row)
		if err != nil {
			if opts.SkipInvalid {
				slog.Warn("Skipping invalid record", "line", line, "error", err)
				continue
			}
			return nil, fmt.Errorf("invalid record on line %d: %w", line, err)
		}
		items = append(items, item)
	}

	return items, nil
}
