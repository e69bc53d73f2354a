package cmd

import (
	"github.com/huangsam/paleoreel/core"
	"github.com/spf13/cobra"
)

// readoutCmd prints the per-column value text of a frame.
var readoutCmd = &cobra.Command{
	Use:   "readout",
	Short: "Print the value readout of one frame or a range of frames",
	Long: `Print "<column>: <value>" for every column of a frame, rounded to --precision.
Missing values and frames past the end of the table read N/A.

--at picks the frame nearest to a time coordinate and takes precedence over --frame.
--all-frames prints every frame in the --from/--to range.

Examples:
  paleoreel readout --data cenozoic.csv --frame 120
  paleoreel readout -d cenozoic.csv --at 55.8 --series d13C
  paleoreel readout -d cenozoic.csv --all-frames --from 100 --to 110 --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runExecutor("readout", func() error {
			return core.ExecuteReadout(rootCtx, cfg, cacheManager)
		})
	},
}
