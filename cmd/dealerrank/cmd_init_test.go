package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spboyer/dealerrank/internal/models"
	"github.com/spboyer/dealerrank/internal/projectconfig"
)

func TestInit_WritesLoadableConfig(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "project")

	out, err := runCLI(t, "init", dir)
	require.NoError(t, err)
	path := filepath.Join(dir, projectconfig.FileName)
	assert.Contains(t, out, "Created "+path)

	cfg, err := projectconfig.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultDealerWeights(), cfg.Metrics)
	assert.Equal(t, "Dealer", cfg.Dataset.IDColumn)
	assert.Equal(t, 3000, cfg.Server.Port)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# dealerrank project configuration.")
}

func TestInit_RefusesToOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, projectconfig.FileName, "missing: fail\n")

	_, err := runCLI(t, "init", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "missing: fail\n", string(data))

	_, err = runCLI(t, "init", dir, "--force")
	require.NoError(t, err)
	cfg, err := projectconfig.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "zero", cfg.Missing)
}

func TestServe_RejectsInvalidWeights(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	cfg := writeFile(t, dir, "bad.yaml", "metrics:\n  - {name: a, weight: 0.2}\n")

	_, err := runCLI(t, "serve", "--config", cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must sum to 1")
}
