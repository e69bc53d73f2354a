package outwriter

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/paleoreel/internal/contract"
	"github.com/huangsam/paleoreel/internal/parquet"
	"github.com/huangsam/paleoreel/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintWeights outputs per-frame series weights, dispatching based on the output format configured.
func PrintWeights(records []schema.WeightRecord, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFormatters(cfg.Precision)
	return dispatch(cfg, formatWriters{
		name: "weights",
		json: func(w io.Writer) error {
			return writeJSON(w, nonNil(records))
		},
		csv: func(w io.Writer) error {
			// CSV keeps full precision
			return writeWeightsCSV(w, records, createFormatters(-1))
		},
		parquet: parquetWriter(parquet.WeightRows(records)),
		table: func(w io.Writer) error {
			return writeWeightsTable(w, records, cfg, fmtFloat, duration)
		},
	})
}

// writeWeightsCSV writes one CSV row per (frame, series) pair.
func writeWeightsCSV(w io.Writer, records []schema.WeightRecord, fmtFloat func(float64) string) error {
	header := []string{"frame", "time", "series", "alpha", "alpha2", "width"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range records {
			row := []string{
				strconv.Itoa(r.Frame),
				fmtFloat(r.Time),
				r.Series,
				fmtFloat(r.Alpha),
				fmtFloat(r.Alpha2),
				fmtFloat(r.Width),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeWeightsTable generates and writes the human-readable table.
// Raised series are highlighted when colors are enabled.
func writeWeightsTable(w io.Writer, records []schema.WeightRecord, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Frame", "Time", "Series", "Alpha", "Alpha2", "Width"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	raised := colorizer(cfg, contract.EpochColor)
	nameWidth := getMaxTableNameWidth(cfg, 50)
	var data [][]string
	for _, r := range records {
		name := contract.TruncateName(r.Series, nameWidth)
		if r.Alpha2 >= schema.RaisedAlpha2 {
			name = raised(name)
		}
		data = append(data, []string{
			strconv.Itoa(r.Frame),
			fmtFloat(r.Time),
			name,
			fmtFloat(r.Alpha),
			fmtFloat(r.Alpha2),
			fmtFloat(r.Width),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	return writeFooter(w, cfg, "weights computed", len(records), duration)
}

// nonNil keeps empty results encoding as [] instead of null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
