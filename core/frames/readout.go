package frames

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/huangsam/paleoreel/schema"
)

// NotAvailable is printed for cells that have no value at a frame.
const NotAvailable = "N/A"

// Readout returns the "<column>: <value>" lines shown next to frame f.
// The time column comes first. Frames past the last row print N/A for every column.
func Readout(ts *schema.TimeSeries, f, precision int) (schema.Readout, error) {
	if f < 0 {
		return schema.Readout{}, schema.OutOfRange(fmt.Sprintf("frame %d is negative", f))
	}
	if precision < 0 {
		return schema.Readout{}, schema.InvalidArgument(fmt.Sprintf("precision must not be negative (received %d)", precision))
	}

	out := schema.Readout{Frame: f, Lines: make([]schema.ReadoutLine, 0, len(ts.Series)+1)}
	inRange := f < ts.Len()

	timeValue := math.NaN()
	if inRange {
		timeValue = ts.Times[f]
	}
	out.Lines = append(out.Lines, readoutLine(ts.TimeColumn, timeValue, precision))

	for c, name := range ts.Series {
		v := math.NaN()
		if inRange {
			v = ts.Values[f][c]
		}
		out.Lines = append(out.Lines, readoutLine(name, v, precision))
	}
	return out, nil
}

func readoutLine(column string, v float64, precision int) schema.ReadoutLine {
	line := schema.ReadoutLine{Column: column, Value: v, Available: !math.IsNaN(v)}
	text := NotAvailable
	if line.Available {
		text = FormatRounded(v, precision)
	}
	line.Text = column + ": " + text
	return line
}

// FormatRounded rounds v to precision decimals and prints the shortest form
// that keeps one decimal, so 3.10 prints as 3.1 and 280 as 280.0.
func FormatRounded(v float64, precision int) string {
	scale := math.Pow(10, float64(precision))
	if r := math.Round(v*scale) / scale; !math.IsInf(r, 0) && !math.IsNaN(r) {
		v = r
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}
	return s
}
