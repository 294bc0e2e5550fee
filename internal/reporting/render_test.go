package reporting

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatAuto, false},
		{"auto", FormatAuto, false},
		{"TABLE", FormatTable, false},
		{"json", FormatJSON, false},
		{"md", FormatMarkdown, false},
		{"markdown", FormatMarkdown, false},
		{"html", FormatHTML, false},
		{"pdf", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewReport(t *testing.T) {
	r := sampleReport(t)
	_, err := uuid.Parse(r.RunID)
	require.NoError(t, err)
	assert.NotEqual(t, r.RunID, sampleReport(t).RunID)
	require.NotNil(t, r.Summary)
	assert.Equal(t, 25, r.Summary.Count)
	assert.Equal(t, 1.0, r.Summary.Max)
	assert.Equal(t, 0.0, r.Summary.Min)
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleReport(t), FormatTable))
	out := buf.String()

	lines := strings.Split(out, "\n")
	require.Greater(t, len(lines), 30)
	assert.Contains(t, lines[3], "#")
	assert.Contains(t, lines[3], "WeightedScore")
	assert.True(t, strings.HasPrefix(lines[4], "--"))
	assert.True(t, strings.HasPrefix(lines[5], "1   Dealer 21"), lines[5])
	assert.True(t, strings.HasSuffix(lines[5], "1.00"))
	assert.True(t, strings.HasPrefix(lines[29], "25  Dealer 4 "), lines[29])

	// Columns line up: every body row has the score at the same offset.
	at := strings.Index(lines[3], "WeightedScore")
	for _, l := range lines[5:30] {
		assert.GreaterOrEqual(t, len(l), at+4)
	}
	assert.Contains(t, out, "=== Interpretation ===")
}

func TestRenderJSON_RoundTrip(t *testing.T) {
	r := sampleReport(t)
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, r, FormatJSON))

	var raw map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	assert.Equal(t, r.RunID, raw["run_id"])
	result := raw["result"].(map[string]any)
	ranked := result["ranked"].([]any)
	first := ranked[0].(map[string]any)
	assert.Equal(t, "Dealer 21", first["id"])
	assert.Equal(t, 1.0, first["weighted_score"])

	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	loaded, err := LoadReport(path)
	require.NoError(t, err)
	assert.Equal(t, r.Result.Ranked, loaded.Result.Ranked)
	assert.Equal(t, r.Result.Display.Color.Cells(), loaded.Result.Display.Color.Cells())
	assert.Equal(t, r.Result.Display.Annotation, loaded.Result.Display.Annotation)
}

func TestLoadReport_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadReport(filepath.Join(dir, "absent.json"))
	require.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o644))
	_, err = LoadReport(bad)
	require.Error(t, err)

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte(`{"run_id":"x"}`), 0o644))
	_, err = LoadReport(empty)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no result")
}

func TestMarkdown(t *testing.T) {
	md := Markdown(sampleReport(t))

	assert.Contains(t, md, "# Ranking: built-in sample (25 dealers)")
	assert.Contains(t, md, "| # | ID | Rating | MedianPrice | AnnualTurnover | Branches | SocialNetworks | WeightedScore |")
	assert.Contains(t, md, "| ---: | --- | ---: | ---: | ---: | ---: | ---: | ---: |")
	assert.Contains(t, md, "| 1 | Dealer 21 | 4.9 | 50000 | 10 | 5 | Yes | 1.00 |")
	assert.Contains(t, md, "| 25 | Dealer 4 | 3.5 | 32000 | 3.2 | 1 | No | 0.00 |")
	assert.Contains(t, md, "## Summary")
	assert.Contains(t, md, "| SocialNetworks | 0.35 |")
}

func TestEscapeMarkdown(t *testing.T) {
	assert.Equal(t, `a\|b`, escapeMarkdown("a|b"))
}

func TestRenderHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleReport(t), FormatHTML))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "<title>Ranking: built-in sample (25 dealers)</title>")
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<td>Dealer 21</td>")
	assert.Contains(t, out, "<h2>Summary</h2>")
}

func TestRender_UnresolvedAuto(t *testing.T) {
	err := Render(&bytes.Buffer{}, sampleReport(t), FormatAuto)
	require.Error(t, err)
}

func TestFormatExtension(t *testing.T) {
	assert.Equal(t, ".json", FormatJSON.Extension())
	assert.Equal(t, ".md", FormatMarkdown.Extension())
	assert.Equal(t, ".html", FormatHTML.Extension())
	assert.Equal(t, ".txt", FormatTable.Extension())
}
