// Package schema has the models, enums and error taxonomy shared by all parts of paleoreel.
package schema

import (
	"fmt"
	"math"
	"strings"
)

// DefaultTimeColumn is the conventional name of the time coordinate column.
const DefaultTimeColumn = "age"

// TimeSeries is an ordered table of proxy measurements. Each row has a scalar
// time coordinate and one value per series. Row order is preserved as loaded.
type TimeSeries struct {
	TimeColumn string      // Name of the time coordinate column (e.g. "age")
	Series     []string    // Names of the non-time columns, in file order
	Times      []float64   // Time coordinate per row
	Values     [][]float64 // Values[row][series]; missing cells are NaN
}

// Len returns the number of rows.
func (ts *TimeSeries) Len() int {
	return len(ts.Times)
}

// SeriesIndex returns the column index of the named series, or -1 when absent.
func (ts *TimeSeries) SeriesIndex(name string) int {
	for i, s := range ts.Series {
		if s == name {
			return i
		}
	}
	return -1
}

// Value returns the value of a series at a row. The boolean is false when the
// row or series does not exist.
func (ts *TimeSeries) Value(row int, name string) (float64, bool) {
	idx := ts.SeriesIndex(name)
	if idx < 0 || row < 0 || row >= ts.Len() {
		return math.NaN(), false
	}
	return ts.Values[row][idx], true
}

// Column returns a copy of all values of the series at index idx.
func (ts *TimeSeries) Column(idx int) []float64 {
	col := make([]float64, ts.Len())
	for r := range ts.Values {
		col[r] = ts.Values[r][idx]
	}
	return col
}

// Interval is a closed range on the time axis together with the series that are
// considered relevant inside it. Endpoints may be given in either order.
type Interval struct {
	Label    string   `yaml:"label" json:"label,omitempty"`
	Start    float64  `yaml:"start" json:"start"`
	End      float64  `yaml:"end" json:"end"`
	Relevant []string `yaml:"relevant" json:"relevant"`
	Note     string   `yaml:"note" json:"note,omitempty"`
}

// Bounds returns the interval endpoints ordered low to high.
func (iv Interval) Bounds() (lo, hi float64) {
	return min(iv.Start, iv.End), max(iv.Start, iv.End)
}

// Contains reports whether t lies within the interval, boundaries included.
func (iv Interval) Contains(t float64) bool {
	lo, hi := iv.Bounds()
	return lo <= t && t <= hi
}

// IntervalSet is an ordered sequence of intervals. Later intervals take
// precedence over earlier ones where their ranges overlap.
type IntervalSet []Interval

// Select returns a copy of ts restricted to the named series, in the given
// order. An empty list selects every series.
func (ts *TimeSeries) Select(names []string) (*TimeSeries, error) {
	if len(names) == 0 {
		return ts, nil
	}
	idx := make([]int, len(names))
	for i, name := range names {
		idx[i] = ts.SeriesIndex(name)
		if idx[i] < 0 {
			return nil, InvalidArgument(fmt.Sprintf("unknown series %q (available: %s)", name, strings.Join(ts.Series, ", ")))
		}
	}
	out := &TimeSeries{
		TimeColumn: ts.TimeColumn,
		Series:     append([]string(nil), names...),
		Times:      append([]float64(nil), ts.Times...),
		Values:     make([][]float64, len(ts.Values)),
	}
	for r, row := range ts.Values {
		out.Values[r] = make([]float64, len(idx))
		for i, c := range idx {
			out.Values[r][i] = row[c]
		}
	}
	return out, nil
}
