package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/spboyer/dealerrank/internal/dataset"
	"github.com/spboyer/dealerrank/internal/models"
	"github.com/spboyer/dealerrank/internal/projectconfig"
	"github.com/spboyer/dealerrank/internal/reporting"
	"github.com/spboyer/dealerrank/internal/scoring"
)

type scoreOptions struct {
	format     string
	missing    string
	configPath string
	output     string
	rows       string
}

func newScoreCommand() *cobra.Command {
	opts := &scoreOptions{}

	cmd := &cobra.Command{
		Use:   "score [dataset ...]",
		Short: "Score and rank one or more datasets",
		Long: `Score and rank entities from CSV or JSON datasets.

Each file is scored independently: min-max bounds come from that file alone.
Files ending in .gz or .zst are decompressed transparently. Without arguments
the built-in 25-dealer sample is scored.

Several files are scored in parallel and reported in argument order. With
--output and several files, --output names a directory that receives one
report per input.

Output formats: auto (table on a terminal, JSON otherwise), table, json,
markdown, html.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return scoreCommandE(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "Output format: auto, table, json, markdown, or html (default from config)")
	cmd.Flags().StringVar(&opts.missing, "missing", "", "Missing-value policy: zero, exclude, or fail (default from config)")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to a config file (default: discover .dealerrank.yaml)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write the report to a file (a directory when scoring several files)")
	cmd.Flags().StringVar(&opts.rows, "rows", "", "Only score data rows START-END (1-based, inclusive), e.g. 3-10")

	return cmd
}

// scoreJob is one dataset to score. An empty path means the built-in sample.
type scoreJob struct {
	path string
}

func (j scoreJob) source() string {
	if j.path == "" {
		return dataset.SampleName
	}
	return j.path
}

func scoreCommandE(cmd *cobra.Command, args []string, opts *scoreOptions) error {
	cfg, err := loadProjectConfig(opts.configPath)
	if err != nil {
		return err
	}

	policy, err := scoring.ParseMissingPolicy(firstNonEmpty(opts.missing, cfg.Missing))
	if err != nil {
		return err
	}
	format, err := reporting.ParseFormat(firstNonEmpty(opts.format, cfg.Output.Format))
	if err != nil {
		return err
	}
	format = resolveFormat(format, cmd.OutOrStdout(), opts.output)

	var rowRange *[2]int
	if opts.rows != "" {
		start, end, err := parseRowRange(opts.rows)
		if err != nil {
			return err
		}
		rowRange = &[2]int{start, end}
	}

	engine, err := scoring.NewEngine(cfg.Metrics,
		scoring.WithLogger(slog.Default()),
		scoring.WithPrecision(cfg.PrecisionOrDefault()),
	)
	if err != nil {
		return fmt.Errorf("weights: %w", err)
	}

	jobs := []scoreJob{{}}
	if len(args) > 0 {
		jobs = make([]scoreJob, len(args))
		for i, a := range args {
			jobs[i] = scoreJob{path: a}
		}
	}

	reports := make([]*reporting.Report, len(jobs))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, job := range jobs {
		g.Go(func() error {
			entities, err := loadEntities(job, cfg, rowRange)
			if err != nil {
				return wrapInputError(job.source(), err)
			}
			result, err := engine.Run(entities, policy)
			if err != nil {
				return wrapInputError(job.source(), err)
			}
			reports[i] = reporting.NewReport(job.source(), result)
			slog.Debug("scored dataset", "source", job.source(), "run_id", reports[i].RunID, "entities", len(result.Ranked))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if opts.output != "" {
		return writeReports(cmd.OutOrStdout(), jobs, reports, format, opts.output)
	}
	out := cmd.OutOrStdout()
	for i, r := range reports {
		if i > 0 && format != reporting.FormatJSON {
			fmt.Fprintln(out) //nolint:errcheck
		}
		if err := reporting.Render(out, r, format); err != nil {
			return err
		}
	}
	return nil
}

func loadEntities(job scoreJob, cfg *projectconfig.ProjectConfig, rowRange *[2]int) ([]models.Entity, error) {
	if job.path == "" {
		entities := dataset.Sample()
		if rowRange != nil {
			start, end := rowRange[0], min(rowRange[1], len(entities))
			if start > len(entities) {
				return nil, fmt.Errorf("row range starts at %d but the sample has %d rows", start, len(entities))
			}
			entities = entities[start-1 : end]
		}
		return entities, nil
	}

	rows, err := dataset.Load(job.path)
	if err != nil {
		return nil, err
	}
	if rowRange != nil {
		if rows, err = dataset.SelectRange(rows, rowRange[0], rowRange[1]); err != nil {
			return nil, err
		}
	}
	return dataset.Entities(rows, cfg.Dataset.IDColumn, cfg.Metrics)
}

// wrapInputError marks rejected records so main exits with ExitInvalidInput.
// Configuration problems and I/O failures keep their own exit code.
func wrapInputError(source string, err error) error {
	if errors.Is(err, models.ErrValidation) {
		return &InvalidInputError{Source: source, Err: err}
	}
	return fmt.Errorf("%s: %w", source, err)
}

// resolveFormat turns FormatAuto into a concrete format: a table on an
// interactive terminal, JSON for pipes and files.
func resolveFormat(f reporting.Format, out io.Writer, outputPath string) reporting.Format {
	if f != reporting.FormatAuto {
		return f
	}
	if outputPath == "" {
		if file, ok := out.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
			return reporting.FormatTable
		}
	}
	return reporting.FormatJSON
}

func writeReports(stdout io.Writer, jobs []scoreJob, reports []*reporting.Report, format reporting.Format, output string) error {
	paths := []string{output}
	if len(reports) > 1 {
		if err := os.MkdirAll(output, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", output, err)
		}
		paths = make([]string, len(reports))
		for i, job := range jobs {
			paths[i] = filepath.Join(output, reportBaseName(job.path)+format.Extension())
		}
	}

	for i, r := range reports {
		var buf bytes.Buffer
		if err := reporting.Render(&buf, r, format); err != nil {
			return err
		}
		if err := os.WriteFile(paths[i], buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		fmt.Fprintf(stdout, "Report written to: %s\n", paths[i]) //nolint:errcheck
	}
	return nil
}

// reportBaseName strips directories and dataset extensions:
// "data/north.csv.gz" becomes "north".
func reportBaseName(path string) string {
	if path == "" {
		return "sample"
	}
	base := filepath.Base(path)
	for _, ext := range []string{".gz", ".zst"} {
		base = strings.TrimSuffix(base, ext)
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func parseRowRange(s string) (int, int, error) {
	startStr, endStr, ok := strings.Cut(s, "-")
	if !ok {
		return 0, 0, fmt.Errorf("invalid row range %q: expected START-END", s)
	}
	start, err := strconv.Atoi(strings.TrimSpace(startStr))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid row range start %q: %w", startStr, err)
	}
	end, err := strconv.Atoi(strings.TrimSpace(endStr))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid row range end %q: %w", endStr, err)
	}
	if start < 1 || end < start {
		return 0, 0, fmt.Errorf("invalid row range %q: need 1 <= START <= END", s)
	}
	return start, end, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
