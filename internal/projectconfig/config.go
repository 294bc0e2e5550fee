// Package projectconfig provides the ProjectConfig struct and loader for
// .dealerrank.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/spboyer/dealerrank/internal/models"
	"github.com/spboyer/dealerrank/internal/validation"
)

// FileName is the project configuration file looked up by Load.
const FileName = ".dealerrank.yaml"

// Default values for project configuration. New() references them and no
// other code should duplicate them.
const (
	DefaultIDColumn = "Dealer"
	DefaultMissing  = "zero"

	DefaultOutputFormat = "auto"
	DefaultPrecision    = 2

	DefaultServerPort = 3000
)

// maxWalkUp bounds the directory walk performed by Load.
const maxWalkUp = 10

// DatasetConfig describes how tabular input maps onto entities.
type DatasetConfig struct {
	IDColumn string `yaml:"id_column,omitempty"`
}

// OutputConfig holds report rendering settings.
type OutputConfig struct {
	Format    string `yaml:"format,omitempty"`
	Precision *int   `yaml:"precision,omitempty"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Port           int      `yaml:"port,omitempty"`
	AllowedOrigins []string `yaml:"allowed_origins,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .dealerrank.yaml.
type ProjectConfig struct {
	Metrics models.WeightSet `yaml:"metrics,omitempty"`
	Dataset DatasetConfig    `yaml:"dataset,omitempty"`
	Missing string           `yaml:"missing,omitempty"`
	Output  OutputConfig     `yaml:"output,omitempty"`
	Server  ServerConfig     `yaml:"server,omitempty"`

	// Path is the file the config was read from; empty for defaults.
	Path string `yaml:"-"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		Metrics: models.DefaultDealerWeights(),
		Dataset: DatasetConfig{IDColumn: DefaultIDColumn},
		Missing: DefaultMissing,
		Output: OutputConfig{
			Format:    DefaultOutputFormat,
			Precision: intPtr(DefaultPrecision),
		},
		Server: ServerConfig{Port: DefaultServerPort},
	}
}

// PrecisionOrDefault returns the configured annotation precision.
func (c *ProjectConfig) PrecisionOrDefault() int {
	if c.Output.Precision == nil {
		return DefaultPrecision
	}
	return *c.Output.Precision
}

// SchemaError reports a config file that does not match the schema.
type SchemaError struct {
	Path   string
	Issues []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s does not match the config schema:\n  %s", e.Path, strings.Join(e.Issues, "\n  "))
}

// Load finds .dealerrank.yaml by walking up from startDir (max 10 levels),
// validates and unmarshals it, and fills in missing fields with defaults.
// If no config file is found, returns defaults with a nil error.
func Load(startDir string) (*ProjectConfig, error) {
	path, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return New(), nil
		}
		return nil, fmt.Errorf("loading %s: %w", FileName, err)
	}
	return LoadFile(path)
}

// LoadFile reads the config at path. Unlike Load, a missing file is an error.
func LoadFile(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		var schemaErr *SchemaError
		if errors.As(err, &schemaErr) {
			schemaErr.Path = path
			return nil, schemaErr
		}
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Parse validates data against the config schema and merges it onto New().
func Parse(data []byte) (*ProjectConfig, error) {
	if issues := validation.ValidateConfigBytes(data); len(issues) > 0 {
		return nil, &SchemaError{Path: FileName, Issues: issues}
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, err
	}

	cfg := New()
	mergeConfig(cfg, &fileCfg)
	return cfg, nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg *ProjectConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// findConfigFile walks up from dir looking for .dealerrank.yaml (max 10
// levels) and returns its path. Returns os.ErrNotExist if none is found.
// Real I/O errors (e.g. permission denied) are propagated.
func findConfigFile(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < maxWalkUp; i++ {
		p := filepath.Join(dir, FileName)
		info, err := os.Stat(p)
		if err == nil && !info.IsDir() {
			return p, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst. A metrics list
// replaces the default list wholesale: weights are a set, not a patch.
func mergeConfig(dst, src *ProjectConfig) {
	if len(src.Metrics) > 0 {
		dst.Metrics = src.Metrics
		for i := range dst.Metrics {
			if dst.Metrics[i].Kind == "" {
				dst.Metrics[i].Kind = models.MetricKindNumeric
			}
			if dst.Metrics[i].Policy == "" {
				dst.Metrics[i].Policy = models.PolicyMinMax
			}
		}
	}

	if src.Dataset.IDColumn != "" {
		dst.Dataset.IDColumn = src.Dataset.IDColumn
	}
	if src.Missing != "" {
		dst.Missing = src.Missing
	}

	// Output
	if src.Output.Format != "" {
		dst.Output.Format = src.Output.Format
	}
	if src.Output.Precision != nil {
		dst.Output.Precision = src.Output.Precision
	}

	// Server
	if src.Server.Port != 0 {
		dst.Server.Port = src.Server.Port
	}
	if len(src.Server.AllowedOrigins) > 0 {
		dst.Server.AllowedOrigins = src.Server.AllowedOrigins
	}
}

func intPtr(i int) *int {
	return &i
}
