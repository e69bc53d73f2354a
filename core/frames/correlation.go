package frames

import (
	"fmt"
	"math"

	"github.com/huangsam/paleoreel/schema"
)

// Default sliding correlation parameters.
const (
	DefaultCorrelationWindow = 50
	DefaultCorrelationStep   = 1
)

// SlidingCorrelation returns one correlation matrix per window position.
// Frame k covers rows [k*step, k*step+window). The time column is not part of
// the matrix.
func SlidingCorrelation(ts *schema.TimeSeries, window, step int) ([]schema.CorrelationFrame, error) {
	if window < 2 {
		return nil, schema.InvalidArgument(fmt.Sprintf("correlation window must be at least 2 (received %d)", window))
	}
	if step < 1 {
		return nil, schema.InvalidArgument(fmt.Sprintf("correlation step must be at least 1 (received %d)", step))
	}
	if ts.Len() < window {
		return []schema.CorrelationFrame{}, nil
	}

	count := (ts.Len()-window)/step + 1
	out := make([]schema.CorrelationFrame, count)
	for k := range out {
		start := k * step
		out[k] = schema.CorrelationFrame{
			Frame:  k,
			Start:  start,
			End:    start + window,
			Series: ts.Series,
			Matrix: CorrelationMatrix(ts.Values[start : start+window]),
		}
	}
	return out, nil
}

// CorrelationMatrix computes the pairwise-complete Pearson matrix of rows.
func CorrelationMatrix(rows [][]float64) [][]float64 {
	if len(rows) == 0 {
		return nil
	}
	n := len(rows[0])
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			r := pearson(rows, i, j)
			m[i][j], m[j][i] = r, r
		}
	}
	return m
}

// pearson correlates columns a and b over the rows where both are present.
func pearson(rows [][]float64, a, b int) float64 {
	var n, sumA, sumB float64
	for _, row := range rows {
		x, y := row[a], row[b]
		if math.IsNaN(x) || math.IsNaN(y) {
			continue
		}
		n++
		sumA += x
		sumB += y
	}
	if n < 2 {
		return math.NaN()
	}
	meanA, meanB := sumA/n, sumB/n

	var cov, varA, varB float64
	for _, row := range rows {
		x, y := row[a], row[b]
		if math.IsNaN(x) || math.IsNaN(y) {
			continue
		}
		dx, dy := x-meanA, y-meanB
		cov += dx * dy
		varA += dx * dx
		varB += dy * dy
	}
	if varA == 0 || varB == 0 {
		return math.NaN()
	}
	if a == b {
		return 1
	}
	r := cov / math.Sqrt(varA*varB)
	return min(max(r, -1), 1)
}
