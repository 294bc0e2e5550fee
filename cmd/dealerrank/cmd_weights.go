package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/spboyer/dealerrank/internal/models"
	"github.com/spboyer/dealerrank/internal/projectconfig"
	"github.com/spboyer/dealerrank/internal/scoring"
	"github.com/spboyer/dealerrank/internal/validation"
)

func newWeightsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weights",
		Short: "Inspect and validate the weight set",
	}
	cmd.AddCommand(newWeightsShowCommand())
	cmd.AddCommand(newWeightsValidateCommand())
	return cmd
}

func newWeightsShowCommand() *cobra.Command {
	var configPath, format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the weight set in effect",
		Long: `Print the weight set that 'score' would use: the metrics of the
discovered .dealerrank.yaml, or the built-in dealer weighting.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadProjectConfig(configPath)
			if err != nil {
				return err
			}
			return printWeights(cmd.OutOrStdout(), cfg, format)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to a config file (default: discover .dealerrank.yaml)")
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "Output format: yaml or json")
	return cmd
}

func printWeights(w io.Writer, cfg *projectconfig.ProjectConfig, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(cfg.Metrics, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal weights: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		source := cfg.Path
		if source == "" {
			source = "built-in defaults"
		}
		data, err := yaml.Marshal(struct {
			Metrics models.WeightSet `yaml:"metrics"`
		}{cfg.Metrics})
		if err != nil {
			return fmt.Errorf("failed to marshal weights: %w", err)
		}
		_, err = fmt.Fprintf(w, "# source: %s\n# sum: %.6g\n%s", source, cfg.Metrics.Sum(), data)
		return err
	default:
		return fmt.Errorf("unsupported format %q: must be yaml or json", format)
	}
}

func newWeightsValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [config-file]",
		Short: "Check a config file against the schema and the weight rules",
		Long: `Validate a .dealerrank.yaml file. Without an argument the file is
discovered from the working directory.

Checks the JSON Schema first, then the weight rules: unique metric names,
weights in [0,1] summing to 1, and a complete 0/1 label mapping for every
categorical metric.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			var cfg *projectconfig.ProjectConfig
			if len(args) == 1 {
				issues, err := validation.ValidateConfigFile(args[0])
				if err != nil {
					return err
				}
				if len(issues) > 0 {
					for _, issue := range issues {
						fmt.Fprintf(out, "  ✗ %s\n", issue) //nolint:errcheck
					}
					return fmt.Errorf("%s: %d schema error(s)", args[0], len(issues))
				}
				if cfg, err = projectconfig.LoadFile(args[0]); err != nil {
					return err
				}
			} else {
				var err error
				if cfg, err = projectconfig.Load("."); err != nil {
					return err
				}
			}

			if err := scoring.ValidateWeights(cfg.Metrics); err != nil {
				fmt.Fprintf(out, "  ✗ %v\n", err) //nolint:errcheck
				return err
			}

			source := cfg.Path
			if source == "" {
				source = "built-in defaults"
			}
			fmt.Fprintf(out, "✓ %s: %d metrics, weights sum to %.6g\n", source, len(cfg.Metrics), cfg.Metrics.Sum()) //nolint:errcheck
			return nil
		},
	}
}
