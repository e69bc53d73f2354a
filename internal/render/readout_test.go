package render

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/huangsam/paleoreel/core/frames"
	"github.com/huangsam/paleoreel/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadoutLayout(t *testing.T) {
	tests := []struct {
		line  int
		wantX int
		wantY int
	}{
		{line: 0, wantX: 100, wantY: 100},
		{line: 1, wantX: 100, wantY: 140},
		{line: 5, wantX: 100, wantY: 300},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("line %d", tt.line), func(t *testing.T) {
			x, y := readoutLayout(1000, 1000, tt.line)
			assert.Equal(t, tt.wantX, x)
			assert.Equal(t, tt.wantY, y)
		})
	}
}

func TestRenderReadoutFrame(t *testing.T) {
	ts, _, _ := fixture(t)
	opts := Options{Width: 400, Height: 400}

	for _, f := range []int{0, 2, 7} {
		t.Run(fmt.Sprintf("frame %d", f), func(t *testing.T) {
			ro, err := frames.Readout(ts, f, 2)
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, RenderReadoutFrame(&buf, ro, opts))
			img, err := png.Decode(&buf)
			require.NoError(t, err)

			x, y := readoutLayout(opts.Width, opts.Height, 0)
			lit := false
			for py := y - 12; py <= y && !lit; py++ {
				for px := x; px < x+120; px++ {
					if pixel(img, px, py).R > backgroundColor.R+64 {
						lit = true
						break
					}
				}
			}
			assert.True(t, lit, "the first line is drawn in white")
			assert.Equal(t, backgroundColor, pixel(img, opts.Width-2, opts.Height-2))
		})
	}
}

func TestRenderReadoutFrames(t *testing.T) {
	ts, _, _ := fixture(t)
	dir := filepath.Join(t.TempDir(), "readouts")
	opts := Options{Width: 200, Height: 200}

	n, err := RenderReadoutFrames(context.Background(), dir, ts, 2, 5, 2, opts)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	for f := 2; f < 5; f++ {
		assert.FileExists(t, filepath.Join(dir, fmt.Sprintf(ReadoutFileNameFormat, f)))
	}

	_, err = RenderReadoutFrames(context.Background(), dir, ts, 4, 6, 2, opts)
	assert.True(t, schema.IsOutOfRange(err))

	n, err = RenderReadoutFrames(context.Background(), t.TempDir(), ts, 0, 2, -1, opts)
	assert.True(t, schema.IsInvalidArgument(err))
	assert.Equal(t, 0, n)
}
