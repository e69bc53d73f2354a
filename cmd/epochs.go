package cmd

import (
	"github.com/huangsam/paleoreel/core"
	"github.com/spf13/cobra"
)

// epochsCmd prints the interval label of every frame.
var epochsCmd = &cobra.Command{
	Use:   "epochs",
	Short: "Print the interval label and note shown on each frame",
	Long: `Resolve the label of every frame against the interval file.

When intervals overlap, the last one listed wins. Frames outside every interval
have no label. Text output collapses consecutive frames that share a label.

Examples:
  paleoreel epochs --data cenozoic.csv --intervals epochs.yaml
  paleoreel epochs -d cenozoic.csv -i epochs.yaml --output csv --output-file epochs.csv`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runExecutor("epochs", func() error {
			return core.ExecuteEpochs(rootCtx, cfg, cacheManager)
		})
	},
}
