// Package relevance computes per-frame display emphasis for each series of a
// time series from an ordered set of labelled time intervals.
package relevance

import (
	"fmt"

	"github.com/huangsam/paleoreel/schema"
	"github.com/yourbasic/bit"
)

// BuildWeightTable computes the unsmoothed emphasis of every (row, series) pair.
//
// Rows outside every interval keep the defaults. Inside an interval, relevant
// series are raised (alpha 1, alpha2 1, width maxWidth) and all other series are
// dimmed (alpha 0.1, alpha2 0.1) with their width left as it was. Intervals are
// applied in order, so the last matching interval decides a row.
func BuildWeightTable(ts *schema.TimeSeries, intervals schema.IntervalSet, maxWidth float64) (*schema.WeightTable, error) {
	if ts == nil || len(ts.Series) == 0 {
		return nil, schema.InvalidArgument("time series has no value columns")
	}
	if !(maxWidth > 0) {
		return nil, schema.InvalidArgument(fmt.Sprintf("max width must be positive (received %v)", maxWidth))
	}

	wt := schema.NewWeightTable(ts.Series, ts.Times)
	for _, iv := range intervals {
		relevant := relevantColumns(ts, iv)
		for r, t := range ts.Times {
			if !iv.Contains(t) {
				continue
			}
			for c := range ts.Series {
				if relevant.Contains(c) {
					wt.Alpha[r][c] = schema.DefaultAlpha
					wt.Alpha2[r][c] = schema.RaisedAlpha2
					wt.Width[r][c] = maxWidth
					continue
				}
				wt.Alpha[r][c] = schema.DimmedAlpha
				wt.Alpha2[r][c] = schema.DefaultAlpha2
			}
		}
	}
	return wt, nil
}

// relevantColumns maps the relevant names of an interval to column indices.
// Names that are not columns of ts are dropped.
func relevantColumns(ts *schema.TimeSeries, iv schema.Interval) *bit.Set {
	set := bit.New()
	for _, name := range iv.Relevant {
		if idx := ts.SeriesIndex(name); idx >= 0 {
			set.Add(idx)
		}
	}
	return set
}

// Smooth returns a copy of wt where every weight is replaced by the mean of
// itself and up to window-1 preceding rows. The first rows use partial windows.
func Smooth(wt *schema.WeightTable, window int) (*schema.WeightTable, error) {
	if window < 1 {
		return nil, schema.InvalidArgument(fmt.Sprintf("smoothing window must be at least 1 (received %d)", window))
	}
	return &schema.WeightTable{
		Series: append([]string(nil), wt.Series...),
		Times:  append([]float64(nil), wt.Times...),
		Alpha:  trailingMean(wt.Alpha, window),
		Alpha2: trailingMean(wt.Alpha2, window),
		Width:  trailingMean(wt.Width, window),
	}, nil
}

// trailingMean computes a causal moving average down each column of rows.
// Results are clamped to the window's range so rounding never overshoots it.
func trailingMean(rows [][]float64, window int) [][]float64 {
	out := make([][]float64, len(rows))
	for r := range rows {
		first := max(0, r-window+1)
		n := float64(r - first + 1)
		out[r] = make([]float64, len(rows[r]))
		for c := range rows[r] {
			sum, lo, hi := 0.0, rows[first][c], rows[first][c]
			for k := first; k <= r; k++ {
				v := rows[k][c]
				sum += v
				lo = min(lo, v)
				hi = max(hi, v)
			}
			out[r][c] = min(max(sum/n, lo), hi)
		}
	}
	return out
}

// Build runs BuildWeightTable followed by Smooth.
func Build(ts *schema.TimeSeries, intervals schema.IntervalSet, maxWidth float64, window int) (*schema.WeightTable, error) {
	wt, err := BuildWeightTable(ts, intervals, maxWidth)
	if err != nil {
		return nil, err
	}
	return Smooth(wt, window)
}
