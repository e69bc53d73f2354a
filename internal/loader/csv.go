// Package loader reads proxy records and interval definitions from disk.
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/huangsam/paleoreel/schema"
)

// LoadTimeSeries reads a CSV file with a header row into a TimeSeries.
func LoadTimeSeries(path, timeColumn string) (*schema.TimeSeries, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return ReadTimeSeries(file, timeColumn)
}

// ReadTimeSeries parses CSV records from r. The time column is matched
// case-insensitively. Only columns whose non-empty cells are all numeric are
// kept as series; empty cells become NaN.
func ReadTimeSeries(r io.Reader, timeColumn string) (*schema.TimeSeries, error) {
	if timeColumn == "" {
		timeColumn = schema.DefaultTimeColumn
	}

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("CSV file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("error reading CSV header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	timeCol := -1
	for i, col := range header {
		if strings.EqualFold(col, timeColumn) {
			timeCol = i
			break
		}
	}
	if timeCol < 0 {
		return nil, fmt.Errorf("time column '%s' not found in CSV. Available columns: %v", timeColumn, header)
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error reading CSV: %w", err)
	}

	ts := &schema.TimeSeries{
		TimeColumn: header[timeCol],
		Times:      make([]float64, len(records)),
		Values:     make([][]float64, len(records)),
	}

	for row, record := range records {
		cell := strings.TrimSpace(record[timeCol])
		t, err := strconv.ParseFloat(cell, 64)
		if err == nil && !finite(t) {
			err = errNotFinite
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid %s value '%s': %w", row+2, header[timeCol], cell, err)
		}
		ts.Times[row] = t
	}

	var keep []int
	for col, name := range header {
		if col == timeCol {
			continue
		}
		if numericColumn(records, col) {
			keep = append(keep, col)
			ts.Series = append(ts.Series, name)
		}
	}
	if len(keep) == 0 {
		return nil, fmt.Errorf("no numeric columns besides '%s' in CSV. Available columns: %v", header[timeCol], header)
	}

	for row, record := range records {
		values := make([]float64, len(keep))
		for i, col := range keep {
			values[i] = parseCell(record[col])
		}
		ts.Values[row] = values
	}
	return ts, nil
}

// numericColumn reports whether every non-empty cell of col parses as a float.
func numericColumn(records [][]string, col int) bool {
	for _, record := range records {
		cell := strings.TrimSpace(record[col])
		if cell == "" {
			continue
		}
		if _, err := strconv.ParseFloat(cell, 64); err != nil {
			return false
		}
	}
	return true
}

func parseCell(cell string) float64 {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil || !finite(v) {
		return math.NaN()
	}
	return v
}

// errNotFinite rejects NaN and infinite time values, which strconv accepts.
var errNotFinite = errors.New("value is not finite")

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
