package reporting

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/spboyer/dealerrank/internal/models"
)

// Format selects a report rendering.
type Format string

const (
	FormatAuto     Format = "auto"
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// ParseFormat validates a --format value. "md" is accepted for markdown.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "table":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("unsupported format %q: must be auto, table, json, markdown, or html", s)
	}
}

// Extension returns the file suffix used when a report is written to disk.
func (f Format) Extension() string {
	switch f {
	case FormatJSON:
		return ".json"
	case FormatMarkdown:
		return ".md"
	case FormatHTML:
		return ".html"
	default:
		return ".txt"
	}
}

// Render writes r to w in format f. FormatAuto must be resolved by the caller.
func Render(w io.Writer, r *Report, f Format) error {
	switch f {
	case FormatTable:
		return RenderTable(w, r)
	case FormatJSON:
		return RenderJSON(w, r)
	case FormatMarkdown:
		return RenderMarkdown(w, r)
	case FormatHTML:
		return RenderHTML(w, r)
	default:
		return fmt.Errorf("cannot render format %q", f)
	}
}

// RenderJSON writes r indented by two spaces.
func RenderJSON(w io.Writer, r *Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// rankedRows returns the header and body of the ranked table: rank,
// identifier, then the annotation cells.
func rankedRows(r *Report) ([]string, [][]string) {
	ann := r.Result.Display.Annotation
	header := append([]string{"#", "ID"}, ann.Columns...)
	rows := make([][]string, len(ann.Rows))
	for i, id := range ann.Rows {
		row := make([]string, 0, len(header))
		row = append(row, strconv.Itoa(i+1), id)
		row = append(row, ann.Cells[i]...)
		rows[i] = row
	}
	return header, rows
}

// RenderTable writes an aligned plain-text table followed by the summary.
func RenderTable(w io.Writer, r *Report) error {
	header, rows := rankedRows(r)

	widths := make([]int, len(header))
	for j, h := range header {
		widths[j] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for j, cell := range row {
			if cw := runewidth.StringWidth(cell); cw > widths[j] {
				widths[j] = cw
			}
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Source: %s\nRun:    %s\n\n", r.Source, r.RunID)
	writeTableRow(&b, header, widths)
	sep := make([]string, len(widths))
	for j, wd := range widths {
		sep[j] = strings.Repeat("-", wd)
	}
	writeTableRow(&b, sep, widths)
	for _, row := range rows {
		writeTableRow(&b, row, widths)
	}

	b.WriteString("\n")
	b.WriteString(FormatSummaryReport(r))

	_, err := io.WriteString(w, b.String())
	return err
}

func writeTableRow(b *strings.Builder, cells []string, widths []int) {
	for j, cell := range cells {
		if j > 0 {
			b.WriteString("  ")
		}
		if j == len(cells)-1 {
			b.WriteString(cell)
			continue
		}
		b.WriteString(padRight(cell, widths[j]))
	}
	b.WriteString("\n")
}

func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}

// Markdown returns r as a GFM document.
func Markdown(r *Report) string {
	header, rows := rankedRows(r)

	var b strings.Builder
	fmt.Fprintf(&b, "# Ranking: %s\n\n", escapeMarkdown(r.Source))
	fmt.Fprintf(&b, "Run `%s`, missing values: %s.\n\n", r.RunID, r.Result.Missing)

	writeMarkdownRow(&b, header)
	align := make([]string, len(header))
	for j := range align {
		align[j] = "---"
		if j == 0 || j >= 2 {
			align[j] = "---:"
		}
	}
	writeMarkdownRow(&b, align)
	for _, row := range rows {
		writeMarkdownRow(&b, row)
	}

	if s := r.Summary; s != nil && s.Count > 0 {
		b.WriteString("\n## Summary\n\n")
		fmt.Fprintf(&b, "- Entities: %d\n", s.Count)
		fmt.Fprintf(&b, "- Mean score: %.2f (%s)\n", s.Mean, InterpretScore(s.Mean))
		fmt.Fprintf(&b, "- Median score: %.2f\n", s.Median)
		fmt.Fprintf(&b, "- Range: %.2f to %.2f\n", s.Min, s.Max)
		b.WriteString("\n| Metric | Weight | Mean contribution | Share |\n|---|---:|---:|---:|\n")
		for _, c := range s.Contributions {
			fmt.Fprintf(&b, "| %s | %.2f | %.3f | %.0f%% |\n", escapeMarkdown(c.Metric), c.Weight, c.Mean, c.Share*100)
		}
	}

	if len(r.Result.Excluded) > 0 {
		b.WriteString("\n## Excluded\n\n")
		for _, id := range r.Result.Excluded {
			fmt.Fprintf(&b, "- %s\n", escapeMarkdown(id))
		}
	}
	return b.String()
}

func writeMarkdownRow(b *strings.Builder, cells []string) {
	b.WriteString("|")
	for _, c := range cells {
		b.WriteString(" ")
		b.WriteString(escapeMarkdown(c))
		b.WriteString(" |")
	}
	b.WriteString("\n")
}

func escapeMarkdown(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// RenderMarkdown writes Markdown(r).
func RenderMarkdown(w io.Writer, r *Report) error {
	_, err := io.WriteString(w, Markdown(r))
	return err
}

var markdownConverter = goldmark.New(goldmark.WithExtensions(extension.Table))

// RenderHTML converts the markdown report to a standalone HTML page.
func RenderHTML(w io.Writer, r *Report) error {
	var body bytes.Buffer
	if err := markdownConverter.Convert([]byte(Markdown(r)), &body); err != nil {
		return fmt.Errorf("converting report to HTML: %w", err)
	}
	_, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>
%s</body>
</html>
`, html.EscapeString("Ranking: "+r.Source), body.String())
	return err
}

// ScoreCell returns the annotation of the WeightedScore column for row i.
func ScoreCell(d *models.Display, i int) string {
	return d.Annotation.At(i, len(d.Annotation.Columns)-1)
}
