package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/paleoreel/internal/contract"
	"github.com/huangsam/paleoreel/internal/parquet"
	"github.com/huangsam/paleoreel/schema"
)

// PrintReadouts outputs per-frame text readouts. The text format prints each
// readout as the block of lines shown next to the animation.
func PrintReadouts(readouts []schema.Readout, cfg *contract.Config, duration time.Duration) error {
	records := schema.FlattenReadouts(readouts)
	return dispatch(cfg, formatWriters{
		name: "readouts",
		json: func(w io.Writer) error {
			return writeJSON(w, nonNil(records))
		},
		csv: func(w io.Writer) error {
			return writeReadoutsCSV(w, records, createFormatters(cfg.Precision))
		},
		parquet: parquetWriter(parquet.ReadoutRows(records)),
		table: func(w io.Writer) error {
			return writeReadoutBlocks(w, readouts, cfg, duration)
		},
	})
}

// writeReadoutsCSV writes one CSV row per readout line.
func writeReadoutsCSV(w io.Writer, records []schema.ReadoutRecord, fmtFloat func(float64) string) error {
	header := []string{"frame", "column", "value", "text"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range records {
			row := []string{
				strconv.Itoa(r.Frame),
				r.Column,
				formatOptional(r.Value, fmtFloat),
				r.Text,
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeReadoutBlocks prints one block of "<column>: <value>" lines per frame.
func writeReadoutBlocks(w io.Writer, readouts []schema.Readout, cfg *contract.Config, duration time.Duration) error {
	heading := colorizer(cfg, contract.EpochColor)
	for i, ro := range readouts {
		if len(readouts) > 1 {
			if i > 0 {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintln(w, heading(fmt.Sprintf("Frame %d", ro.Frame))); err != nil {
				return err
			}
		}
		lines := make([]string, len(ro.Lines))
		for j, line := range ro.Lines {
			lines[j] = line.Text
		}
		if _, err := fmt.Fprintln(w, strings.Join(lines, "\n")); err != nil {
			return err
		}
	}
	if len(readouts) > 1 {
		return writeFooter(w, cfg, "readouts", len(readouts), duration)
	}
	return nil
}
