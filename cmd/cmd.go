// Package cmd defines the command-line interface for paleoreel.
package cmd

import (
	"github.com/huangsam/paleoreel/internal/contract"
	"github.com/huangsam/paleoreel/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(weightsCmd)
	rootCmd.AddCommand(epochsCmd)
	rootCmd.AddCommand(readoutCmd)
	rootCmd.AddCommand(corrCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)
	cacheCmd.AddCommand(cacheMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("data", "d", "", "Path to the CSV time series")
	rootCmd.PersistentFlags().String("time-column", schema.DefaultTimeColumn, "Name of the time coordinate column")
	rootCmd.PersistentFlags().StringP("intervals", "i", "", "Path to the YAML interval (epoch) file")
	rootCmd.PersistentFlags().Float64("max-width", contract.DefaultMaxWidth, "Line width of relevant series inside an interval")
	rootCmd.PersistentFlags().IntP("window", "w", contract.DefaultWindow, "Trailing smoothing window in frames")
	rootCmd.PersistentFlags().StringP("series", "s", "", "Comma-separated list of series to include (default all)")
	rootCmd.PersistentFlags().Int("from", 0, "First frame (inclusive)")
	rootCmd.PersistentFlags().Int("to", 0, "Last frame (exclusive, 0 = through the end)")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("emoji", "yes", "Enable emoji status prefixes (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Log debug diagnostics to stderr")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.SQLiteBackend), "Cache backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	rootCmd.PersistentFlags().String("out-dir", "", "Directory receiving PNG frames (render defaults to "+contract.DefaultOutDir+", corr draws heatmaps only when set)")
	rootCmd.PersistentFlags().Int("frame-width", contract.DefaultFrameWidth, "Frame width in pixels")
	rootCmd.PersistentFlags().Int("frame-height", contract.DefaultFrameHeight, "Frame height in pixels")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of readoutCmd to Viper
	readoutCmd.Flags().Int("frame", 0, "Frame to read out")
	readoutCmd.Flags().String("at", "", "Read out the frame nearest to this time coordinate")
	readoutCmd.Flags().Bool("all-frames", false, "Read out every frame in the --from/--to range")
	if err := viper.BindPFlags(readoutCmd.Flags()); err != nil {
		contract.LogFatal("Error binding readout flags", err)
	}

	// Bind all flags of corrCmd to Viper
	corrCmd.Flags().Int("corr-window", contract.DefaultCorrWindow, "Rows per correlation window")
	corrCmd.Flags().Int("step", contract.DefaultStep, "Rows between consecutive correlation windows")
	if err := viper.BindPFlags(corrCmd.Flags()); err != nil {
		contract.LogFatal("Error binding corr flags", err)
	}

	// Bind all flags of renderCmd to Viper
	renderCmd.Flags().Int("trail", contract.DefaultTrail, "Rows drawn up to and including the current frame")
	renderCmd.Flags().String("duration", contract.DefaultDuration, "Total playback time the frames should fill")
	renderCmd.Flags().Bool("readout", false, "Render text readout panels instead of line charts")
	if err := viper.BindPFlags(renderCmd.Flags()); err != nil {
		contract.LogFatal("Error binding render flags", err)
	}

	// Bind all flags of cacheMigrateCmd to Viper
	cacheMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(cacheMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding cache migrate flags", err)
	}
}
