package doctor

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/gitship/gitship/internal/color"
)

// StatusIcon returns a single-width character icon for a check result.
// Single-width characters keep table columns aligned where emoji would not.
func StatusIcon(result CheckResult) string {
	switch result.Status {
	case StatusPass:
		return "✓"
	case StatusFail:
		if result.Severity == SeverityError {
			return "✗"
		}

		return "!"
	case StatusSkipped:
		return "-"
	default:
		return "?"
	}
}

// StyledIcon returns a StatusIcon colored by the theme.
func StyledIcon(result CheckResult, theme color.Theme) string {
	icon := StatusIcon(result)

	switch result.Status {
	case StatusPass:
		return theme.Ok.Render(icon)
	case StatusFail:
		if result.Severity == SeverityError {
			return theme.Err.Render(icon)
		}

		return theme.Warn.Render(icon)
	case StatusSkipped:
		return theme.Muted.Render(icon)
	default:
		return icon
	}
}

// RenderTable builds a table from check results using tablewriter. With
// verbose set, detail lines are included in a fourth column.
func RenderTable(results []CheckResult, verbose bool, theme color.Theme) string {
	if len(results) == 0 {
		return ""
	}

	headers := []string{"", "Check", "Message"}
	if verbose {
		headers = append(headers, "Details")
	}

	var buf bytes.Buffer

	t := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Symbols: tw.NewSymbols(tw.StyleRounded),
		})),
		tablewriter.WithPadding(tw.Padding{Left: " ", Right: " "}),
	)

	t.Header(headers)

	for _, result := range results {
		row := []string{
			StyledIcon(result, theme),
			result.Name,
			result.Message,
		}
		if verbose {
			row = append(row, strings.Join(result.Details, "\n"))
		}

		_ = t.Append(row)
	}

	_ = t.Render()

	return strings.TrimRight(buf.String(), "\n")
}

// Summary returns a one-line tally of the results.
func Summary(results []CheckResult) string {
	var passed, warnings, failed, skipped int

	for _, result := range results {
		switch {
		case result.IsPassed():
			passed++
		case result.IsError():
			failed++
		case result.IsWarning():
			warnings++
		default:
			skipped++
		}
	}

	return fmt.Sprintf("%d passed, %d warnings, %d failed, %d skipped",
		passed, warnings, failed, skipped)
}

// IsPassed returns true if the check passed.
func (r CheckResult) IsPassed() bool {
	return r.Status == StatusPass
}
