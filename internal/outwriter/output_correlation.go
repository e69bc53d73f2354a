package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/huangsam/paleoreel/core/frames"
	"github.com/huangsam/paleoreel/internal/contract"
	"github.com/huangsam/paleoreel/internal/parquet"
	"github.com/huangsam/paleoreel/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintCorrelations outputs sliding-window correlation frames. Structured
// formats list each series pair; the text format prints one matrix per frame.
func PrintCorrelations(corr []schema.CorrelationFrame, cfg *contract.Config, duration time.Duration) error {
	cells := schema.FlattenCorrelations(corr)
	fmtFloat := createFormatters(cfg.Precision)
	return dispatch(cfg, formatWriters{
		name: "correlation",
		json: func(w io.Writer) error {
			return writeJSON(w, nonNil(cells))
		},
		csv: func(w io.Writer) error {
			return writeCorrelationCSV(w, cells, createFormatters(-1))
		},
		parquet: parquetWriter(parquet.CorrelationRows(cells)),
		table: func(w io.Writer) error {
			return writeCorrelationTables(w, corr, cfg, fmtFloat, duration)
		},
	})
}

// writeCorrelationCSV writes one CSV row per series pair and frame.
func writeCorrelationCSV(w io.Writer, cells []schema.CorrelationCell, fmtFloat func(float64) string) error {
	header := []string{"frame", "start", "end", "series_a", "series_b", "r", "strength"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, c := range cells {
			strength := contract.NoneValue
			if c.R != nil {
				strength = contract.GetPlainLabel(*c.R)
			}
			row := []string{
				strconv.Itoa(c.Frame),
				strconv.Itoa(c.Start),
				strconv.Itoa(c.End),
				c.SeriesA,
				c.SeriesB,
				formatOptional(c.R, fmtFloat),
				strength,
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeCorrelationTables prints a titled matrix per frame. Cells are colored
// by strength when colors are enabled.
func writeCorrelationTables(w io.Writer, corr []schema.CorrelationFrame, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	for _, cf := range corr {
		if _, err := fmt.Fprintf(w, "Frame %d (rows %d-%d)\n", cf.Frame, cf.Start, cf.End-1); err != nil {
			return err
		}

		nameWidth := getMaxTableNameWidth(cfg, 8*len(cf.Series))
		names := make([]string, len(cf.Series))
		for i, s := range cf.Series {
			names[i] = contract.TruncateName(s, nameWidth)
		}

		table := tablewriter.NewWriter(w)
		table.Header(append([]string{""}, names...))
		table.Configure(func(cfg *tablewriter.Config) {
			cfg.Row.Alignment.Global = tw.AlignRight
		})

		var data [][]string
		for i, row := range cf.Matrix {
			line := []string{names[i]}
			for _, r := range row {
				line = append(line, formatCoefficient(r, cfg, fmtFloat))
			}
			data = append(data, line)
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
	}
	return writeFooter(w, cfg, "correlation frames", len(corr), duration)
}

// formatCoefficient formats r and colors it by strength label.
func formatCoefficient(r float64, cfg *contract.Config, fmtFloat func(float64) string) string {
	text := frames.NotAvailable
	if !math.IsNaN(r) {
		text = fmtFloat(r)
	}
	if !cfg.UseColors {
		return text
	}
	return contract.ColorizeByLabel(text, contract.GetPlainLabel(r))
}
