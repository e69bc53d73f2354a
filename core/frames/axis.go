package frames

import (
	"fmt"
	"math"

	"github.com/huangsam/paleoreel/schema"
)

// ExpandingRange returns the value range of the named series over rows 0..f.
// All series are used when names is empty. NaN cells are skipped, and the
// result is Empty when no row holds a value.
func ExpandingRange(ts *schema.TimeSeries, f int, names []string) (schema.AxisRange, error) {
	if err := schema.CheckFrame(f, ts.Len()); err != nil {
		return schema.AxisRange{}, err
	}
	cols, err := columnIndexes(ts, names)
	if err != nil {
		return schema.AxisRange{}, err
	}

	r := schema.AxisRange{Min: math.Inf(1), Max: math.Inf(-1)}
	for row := 0; row <= f; row++ {
		for _, c := range cols {
			v := ts.Values[row][c]
			if math.IsNaN(v) {
				continue
			}
			r.Min = min(r.Min, v)
			r.Max = max(r.Max, v)
		}
	}
	return r, nil
}

// TimeRange returns the range of the time coordinate over rows 0..f.
func TimeRange(ts *schema.TimeSeries, f int) (schema.AxisRange, error) {
	if err := schema.CheckFrame(f, ts.Len()); err != nil {
		return schema.AxisRange{}, err
	}
	r := schema.AxisRange{Min: math.Inf(1), Max: math.Inf(-1)}
	for _, t := range ts.Times[:f+1] {
		r.Min = min(r.Min, t)
		r.Max = max(r.Max, t)
	}
	return r, nil
}

func columnIndexes(ts *schema.TimeSeries, names []string) ([]int, error) {
	if len(names) == 0 {
		cols := make([]int, len(ts.Series))
		for i := range cols {
			cols[i] = i
		}
		return cols, nil
	}
	cols := make([]int, 0, len(names))
	for _, name := range names {
		idx := ts.SeriesIndex(name)
		if idx < 0 {
			return nil, schema.InvalidArgument(fmt.Sprintf("unknown series %q", name))
		}
		cols = append(cols, idx)
	}
	return cols, nil
}
