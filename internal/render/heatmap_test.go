package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"math"
	"path/filepath"
	"testing"

	"github.com/huangsam/paleoreel/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

func sampleCorrelation() schema.CorrelationFrame {
	return schema.CorrelationFrame{
		Frame:  4,
		Start:  4,
		End:    54,
		Series: []string{"d18O", "d13C"},
		Matrix: [][]float64{
			{1, math.NaN()},
			{math.NaN(), -1},
		},
	}
}

func pixel(img image.Image, x, y int) drawing.Color {
	r, g, b, a := img.At(x, y).RGBA()
	return drawing.Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}

func TestCoolwarm(t *testing.T) {
	tests := []struct {
		name string
		r    float64
		want drawing.Color
	}{
		{name: "perfect negative", r: -1, want: coolColor},
		{name: "uncorrelated", r: 0, want: neutralColor},
		{name: "perfect positive", r: 1, want: warmColor},
		{name: "clamped above", r: 1.5, want: warmColor},
		{name: "clamped below", r: -3, want: coolColor},
		{name: "undefined", r: math.NaN(), want: backgroundColor},
		{name: "halfway warm", r: 0.5, want: drawing.Color{R: 201, G: 113, B: 130, A: 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Coolwarm(tt.r))
		})
	}
}

func TestHeatmapGrid(t *testing.T) {
	g := newHeatmapGrid(2, 320, 200)
	assert.Equal(t, 64, g.left)
	assert.Equal(t, heatmapTop, g.top)
	assert.Equal(t, 60, g.cell)

	box := g.cellBox(1, 0)
	assert.Equal(t, 64, box.Left)
	assert.Equal(t, 108, box.Top)
	assert.Equal(t, 124, box.Right)
	assert.Equal(t, 168, box.Bottom)

	assert.Equal(t, 1, newHeatmapGrid(500, 320, 200).cell, "cells never collapse to zero")
}

func TestRenderCorrelationFrame(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderCorrelationFrame(&buf, sampleCorrelation(), testOptions()))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 320, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())

	g := newHeatmapGrid(2, 320, 200)
	center := func(row, col int) (int, int) {
		return g.cellBox(row, col).Center()
	}

	tests := []struct {
		name     string
		row, col int
		want     drawing.Color
	}{
		{name: "positive cell", row: 0, col: 0, want: warmColor},
		{name: "negative cell", row: 1, col: 1, want: coolColor},
		{name: "undefined cell", row: 0, col: 1, want: backgroundColor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := center(tt.row, tt.col)
			assert.Equal(t, tt.want, pixel(img, x, y))
		})
	}
}

func TestRenderCorrelationFrame_Errors(t *testing.T) {
	var buf bytes.Buffer

	empty := schema.CorrelationFrame{Frame: 0}
	assert.True(t, schema.IsInvalidArgument(RenderCorrelationFrame(&buf, empty, testOptions())))

	ragged := sampleCorrelation()
	ragged.Matrix = ragged.Matrix[:1]
	assert.True(t, schema.IsInvalidArgument(RenderCorrelationFrame(&buf, ragged, testOptions())))

	opts := testOptions()
	opts.Width = 0
	assert.True(t, schema.IsInvalidArgument(RenderCorrelationFrame(&buf, sampleCorrelation(), opts)))
}

func TestRenderCorrelationFrames(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "heatmaps")
	first, second := sampleCorrelation(), sampleCorrelation()
	second.Frame, second.Start, second.End = 5, 5, 55

	n, err := RenderCorrelationFrames(context.Background(), dir, []schema.CorrelationFrame{first, second}, testOptions())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.FileExists(t, filepath.Join(dir, fmt.Sprintf(HeatmapFileNameFormat, 4)))
	assert.FileExists(t, filepath.Join(dir, fmt.Sprintf(HeatmapFileNameFormat, 5)))
	assert.NoFileExists(t, filepath.Join(dir, fmt.Sprintf(HeatmapFileNameFormat, 0)))

	bad := sampleCorrelation()
	bad.Series = nil
	dir = t.TempDir()
	n, err = RenderCorrelationFrames(context.Background(), dir, []schema.CorrelationFrame{bad}, testOptions())
	assert.True(t, schema.IsInvalidArgument(err))
	assert.Equal(t, 0, n)
	assert.NoFileExists(t, filepath.Join(dir, fmt.Sprintf(HeatmapFileNameFormat, 4)))
}
