package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/spboyer/dealerrank/internal/projectconfig"
)

const configHeader = `# dealerrank project configuration.
# metrics: ordered weight set; weights must lie in [0,1] and sum to 1.
# missing: zero | exclude | fail
# output.format: auto | table | json | markdown | html
`

func newInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a default .dealerrank.yaml",
		Long: `Write a .dealerrank.yaml holding the built-in dealer weighting and
defaults, ready to edit.

If no directory is specified, the current directory is used. An existing
file is kept unless --force is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", dir, err)
			}

			path := filepath.Join(dir, projectconfig.FileName)
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("checking %s: %w", path, err)
			}

			data, err := projectconfig.Marshal(projectconfig.New())
			if err != nil {
				return fmt.Errorf("failed to render config: %w", err)
			}
			if err := os.WriteFile(path, append([]byte(configHeader), data...), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path) //nolint:errcheck
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}
