package cmd

import (
	"github.com/huangsam/paleoreel/core"
	"github.com/spf13/cobra"
)

// corrCmd prints sliding-window correlation matrices.
var corrCmd = &cobra.Command{
	Use:   "corr",
	Short: "Print Pearson correlation matrices over sliding windows",
	Long: `Slide a window of --corr-window rows over the table, --step rows at a time,
and print the pairwise Pearson correlation of the selected series in each window.

Rows with a missing value in either series are skipped for that pair.
--from/--to select correlation frames rather than rows. With --out-dir each
frame is also drawn as a heatmap PNG named corr_<frame>.png.

Examples:
  paleoreel corr --data cenozoic.csv --corr-window 100 --step 10
  paleoreel corr -d cenozoic.csv --series d18O,d13C --output csv --output-file corr.csv
  paleoreel corr -d cenozoic.csv --corr-window 100 --out-dir heatmaps`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runExecutor("correlation", func() error {
			return core.ExecuteCorrelation(rootCtx, cfg, cacheManager)
		})
	},
}
