package main

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	before := filepath.Join(dir, "before.json")
	_, err := runCLI(t, "score", "-f", "json", "-o", before)
	require.NoError(t, err)

	// Putting all weight on rating moves Dealer 14 (4.8) to second place.
	cfg := writeFile(t, dir, "rating.yaml", `metrics:
  - {name: Rating, weight: 1}
`)
	after := filepath.Join(dir, "after.json")
	_, err = runCLI(t, "score", "-f", "json", "--config", cfg, "-o", after)
	require.NoError(t, err)

	out, err := runCLI(t, "compare", before, after)
	require.NoError(t, err)
	assert.Contains(t, out, "RANKING COMPARISON")
	assert.Contains(t, out, "[A] "+before)
	assert.Contains(t, out, "[B] "+after)

	out, err = runCLI(t, "compare", before, after, "--format", "json")
	require.NoError(t, err)
	var c struct {
		A      string `json:"a"`
		Deltas []struct {
			ID    string `json:"id"`
			RankA int    `json:"rank_a"`
			RankB int    `json:"rank_b"`
		} `json:"deltas"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &c))
	assert.Equal(t, before, c.A)
	require.Len(t, c.Deltas, 25)
	assert.Equal(t, "Dealer 21", c.Deltas[0].ID)
	assert.Equal(t, 1, c.Deltas[0].RankA)
	assert.Equal(t, 1, c.Deltas[0].RankB)
	assert.Equal(t, "Dealer 14", c.Deltas[1].ID)
	assert.Equal(t, 2, c.Deltas[1].RankB)
}

func TestCompare_Errors(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	_, err := runCLI(t, "compare", "only-one.json")
	require.Error(t, err)

	_, err = runCLI(t, "compare", filepath.Join(dir, "a.json"), filepath.Join(dir, "b.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load")

	a := writeFile(t, dir, "a.json", "{}")
	_, err = runCLI(t, "compare", a, a, "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}
