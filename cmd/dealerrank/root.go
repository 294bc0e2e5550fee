package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/spboyer/dealerrank/internal/projectconfig"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dealerrank",
		Short: "dealerrank - rank entities by a weighted score of normalized metrics",
		Long: `dealerrank ranks entities (dealers, by default) by a weighted score.

Each numeric metric is min-max normalized across the dataset, categorical
metrics map onto 0 or 1, and the weighted sum orders the entities. Weights
come from .dealerrank.yaml; without one the built-in dealer weighting is used.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	cmd.AddCommand(newScoreCommand())
	cmd.AddCommand(newWeightsCommand())
	cmd.AddCommand(newCompareCommand())
	cmd.AddCommand(newInitCommand())
	cmd.AddCommand(newServeCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}

// loadProjectConfig reads the file named by --config, or discovers
// .dealerrank.yaml from the working directory.
func loadProjectConfig(path string) (*projectconfig.ProjectConfig, error) {
	if path != "" {
		return projectconfig.LoadFile(path)
	}
	return projectconfig.Load(".")
}
