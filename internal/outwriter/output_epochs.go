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

// PrintEpochs outputs the interval label and note of each frame.
func PrintEpochs(epochs []schema.EpochFrame, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFormatters(cfg.Precision)
	return dispatch(cfg, formatWriters{
		name: "epochs",
		json: func(w io.Writer) error {
			return writeJSON(w, nonNil(epochs))
		},
		csv: func(w io.Writer) error {
			return writeEpochsCSV(w, epochs, createFormatters(-1))
		},
		parquet: parquetWriter(parquet.EpochRows(epochs)),
		table: func(w io.Writer) error {
			return writeEpochsTable(w, epochs, cfg, fmtFloat, duration)
		},
	})
}

// writeEpochsCSV writes one CSV row per frame. Unmatched frames have empty label and note.
func writeEpochsCSV(w io.Writer, epochs []schema.EpochFrame, fmtFloat func(float64) string) error {
	header := []string{"frame", "time", "label", "note", "matched"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, e := range epochs {
			row := []string{
				strconv.Itoa(e.Frame),
				fmtFloat(e.Time),
				e.Label,
				e.Note,
				strconv.FormatBool(e.Matched),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeEpochsTable prints frames with their epoch. Runs of frames sharing a
// label are printed as a single row to keep long series readable.
func writeEpochsTable(w io.Writer, epochs []schema.EpochFrame, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Frames", "Time", "Epoch", "Note"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	label := colorizer(cfg, contract.EpochColor)
	var data [][]string
	for _, run := range epochRuns(epochs) {
		first, last := epochs[run[0]], epochs[run[1]]
		frames := strconv.Itoa(first.Frame)
		times := fmtFloat(first.Time)
		if run[0] != run[1] {
			frames += "-" + strconv.Itoa(last.Frame)
			times += " .. " + fmtFloat(last.Time)
		}
		name := "-"
		if first.Matched {
			name = label(first.Label)
		}
		data = append(data, []string{frames, times, name, first.Note})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	return writeFooter(w, cfg, "frames labelled", len(epochs), duration)
}

// epochRuns groups consecutive frames with the same label, note and match
// state. Each run is given as inclusive [first, last] indexes into epochs.
func epochRuns(epochs []schema.EpochFrame) [][2]int {
	var runs [][2]int
	for i, e := range epochs {
		if n := len(runs); n > 0 {
			prev := epochs[runs[n-1][1]]
			if prev.Matched == e.Matched && prev.Label == e.Label && prev.Note == e.Note {
				runs[n-1][1] = i
				continue
			}
		}
		runs = append(runs, [2]int{i, i})
	}
	return runs
}
