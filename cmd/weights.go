package cmd

import (
	"github.com/huangsam/paleoreel/core"
	"github.com/spf13/cobra"
)

// weightsCmd prints the per-frame styling table.
var weightsCmd = &cobra.Command{
	Use:   "weights",
	Short: "Print per-frame alpha, alpha2 and width for every series",
	Long: `Build the relevance weight table and print it in long format,
one record per frame and series.

Inside an interval the relevant series are drawn at full opacity and max width
while the rest are dimmed. The raw table is then smoothed with a trailing mean
over --window frames so emphasis fades in and out.

Examples:
  # Weights of every frame as a table
  paleoreel weights --data cenozoic.csv --intervals epochs.yaml

  # Export two series as parquet with a wider smoothing window
  paleoreel weights -d cenozoic.csv -i epochs.yaml --series d18O,d13C --window 20 \
    --output parquet --output-file weights.parquet`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runExecutor("weights", func() error {
			return core.ExecuteWeights(rootCtx, cfg, cacheManager)
		})
	},
}
