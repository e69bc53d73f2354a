// Package parquet provides row types and functions for exporting paleoreel
// frame tables to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"os"

	"github.com/huangsam/paleoreel/schema"
	"github.com/parquet-go/parquet-go"
)

// WeightRow is the emphasis of one series at one frame.
type WeightRow struct {
	Frame  int32   `parquet:"frame,snappy"`
	Time   float64 `parquet:"time,snappy"`
	Series string  `parquet:"series,snappy,dict"`
	Alpha  float64 `parquet:"alpha,snappy"`
	Alpha2 float64 `parquet:"alpha2,snappy"`
	Width  float64 `parquet:"width,snappy"`
}

// EpochRow is the interval label of one frame. Label and Note are null when
// no interval covers the frame.
type EpochRow struct {
	Frame int32   `parquet:"frame,snappy"`
	Time  float64 `parquet:"time,snappy"`
	Label *string `parquet:"label,optional,snappy"`
	Note  *string `parquet:"note,optional,snappy"`
}

// ReadoutRow is one readout line. Value is null for N/A cells.
type ReadoutRow struct {
	Frame  int32    `parquet:"frame,snappy"`
	Column string   `parquet:"column,snappy,dict"`
	Value  *float64 `parquet:"value,optional,snappy"`
	Text   string   `parquet:"text,snappy"`
}

// CorrelationRow is one series pair of a sliding-window correlation frame.
// R is null when the coefficient is undefined.
type CorrelationRow struct {
	Frame       int32    `parquet:"frame,snappy"`
	WindowStart int32    `parquet:"window_start,snappy"`
	WindowEnd   int32    `parquet:"window_end,snappy"`
	SeriesA     string   `parquet:"series_a,snappy,dict"`
	SeriesB     string   `parquet:"series_b,snappy,dict"`
	R           *float64 `parquet:"r,optional,snappy"`
}

// WeightRows converts weight records to Parquet rows.
func WeightRows(records []schema.WeightRecord) []WeightRow {
	rows := make([]WeightRow, len(records))
	for i, r := range records {
		rows[i] = WeightRow{
			Frame:  int32(r.Frame),
			Time:   r.Time,
			Series: r.Series,
			Alpha:  r.Alpha,
			Alpha2: r.Alpha2,
			Width:  r.Width,
		}
	}
	return rows
}

// EpochRows converts per-frame epoch labels to Parquet rows.
func EpochRows(epochs []schema.EpochFrame) []EpochRow {
	rows := make([]EpochRow, len(epochs))
	for i, e := range epochs {
		rows[i] = EpochRow{Frame: int32(e.Frame), Time: e.Time}
		if e.Matched {
			label, note := e.Label, e.Note
			rows[i].Label = &label
			rows[i].Note = &note
		}
	}
	return rows
}

// ReadoutRows converts readout records to Parquet rows.
func ReadoutRows(records []schema.ReadoutRecord) []ReadoutRow {
	rows := make([]ReadoutRow, len(records))
	for i, r := range records {
		rows[i] = ReadoutRow{
			Frame:  int32(r.Frame),
			Column: r.Column,
			Value:  r.Value,
			Text:   r.Text,
		}
	}
	return rows
}

// CorrelationRows converts correlation cells to Parquet rows.
func CorrelationRows(cells []schema.CorrelationCell) []CorrelationRow {
	rows := make([]CorrelationRow, len(cells))
	for i, c := range cells {
		rows[i] = CorrelationRow{
			Frame:       int32(c.Frame),
			WindowStart: int32(c.Start),
			WindowEnd:   int32(c.End),
			SeriesA:     c.SeriesA,
			SeriesB:     c.SeriesB,
			R:           c.R,
		}
	}
	return rows
}

// Write encodes rows as a Parquet file on w.
// The schema is derived from the struct tags of T.
func Write[T any](w io.Writer, rows []T) error {
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finish parquet file: %w", err)
	}
	return nil
}

// WriteFile writes rows to a new Parquet file at outputPath.
func WriteFile[T any](rows []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := Write(file, rows); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
