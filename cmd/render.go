package cmd

import (
	"github.com/huangsam/paleoreel/core"
	"github.com/spf13/cobra"
)

// renderCmd writes PNG animation frames.
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render one PNG per frame using the relevance weights",
	Long: `Draw every frame in the --from/--to range as a PNG in --out-dir.

Each series is drawn over the last --trail rows with its stroke opacity set by
alpha, its line width by width and its fill opacity by alpha2. The current epoch
label is the frame title. The command also reports the per-frame interval that
plays all frames back in --duration. With --readout each frame is a text panel
of "<column>: <value>" lines instead of a chart.

Examples:
  paleoreel render --data cenozoic.csv --intervals epochs.yaml --out-dir frames
  paleoreel render -d cenozoic.csv -i epochs.yaml --trail 50 --duration 30s \
    --frame-width 1920 --frame-height 1080
  paleoreel render -d cenozoic.csv --readout --series d18O --out-dir readouts`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runExecutor("render", func() error {
			return core.ExecuteRender(rootCtx, cfg, cacheManager)
		})
	},
}
