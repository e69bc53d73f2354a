package render

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/huangsam/paleoreel/core/frames"
	"github.com/huangsam/paleoreel/schema"
)

// ReadoutFileNameFormat names the PNG written for each text readout frame.
const ReadoutFileNameFormat = "readout_%05d.png"

// readoutLayout places readout line i at x = 10% of the width and
// y = (0.1 + 0.04*i) of the height, measured from the top.
func readoutLayout(width, height, i int) (x, y int) {
	return width / 10, int(math.Round(float64(height) * (0.1 + 0.04*float64(i))))
}

// readoutFontSize keeps consecutive lines from overlapping.
func readoutFontSize(height int) float64 {
	return max(8, float64(height)*0.04*0.6)
}

// RenderReadoutFrame draws the text readout of one frame as a PNG with no axes.
func RenderReadoutFrame(w io.Writer, ro schema.Readout, opts Options) error {
	r, err := newCanvas(opts)
	if err != nil {
		return err
	}

	r.SetFontColor(textColor)
	r.SetFontSize(readoutFontSize(opts.Height))
	for i, line := range ro.Lines {
		x, y := readoutLayout(opts.Width, opts.Height, i)
		if y > opts.Height {
			break
		}
		r.Text(line.Text, x, y)
	}

	if err := r.Save(w); err != nil {
		return fmt.Errorf("failed to render readout frame %d: %w", ro.Frame, err)
	}
	return nil
}

// RenderReadoutFrames writes the text readouts of frames [from, to) into dir.
func RenderReadoutFrames(ctx context.Context, dir string, ts *schema.TimeSeries, from, to, precision int, opts Options) (int, error) {
	if from < 0 || to > ts.Len() || from >= to {
		return 0, schema.OutOfRange(fmt.Sprintf("frame range [%d, %d) outside [0, %d)", from, to, ts.Len()))
	}
	return writeFrames(ctx, dir, to-from,
		func(i int) string { return fmt.Sprintf(ReadoutFileNameFormat, from+i) },
		func(w io.Writer, i int) error {
			ro, err := frames.Readout(ts, from+i, precision)
			if err != nil {
				return err
			}
			return RenderReadoutFrame(w, ro, opts)
		},
	)
}
