package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/picsort/internal/model"
)

// RenderSummary renders the totals of a finished run.
func RenderSummary(run model.Run, dryRun bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %d\n", OutcomeStyle(model.OutcomeMatched).Render("Matched:   "), run.Matched)
	fmt.Fprintf(&b, "%s %d\n", OutcomeStyle(model.OutcomeUnmatched).Render("Unmatched: "), run.Unmatched)
	fmt.Fprintf(&b, "%s %d\n", OutcomeStyle(model.OutcomeErrored).Render("Errored:   "), run.Errored)
	fmt.Fprintf(&b, "%s %d\n", MutedStyle.Render("Skipped:   "), run.Skipped)
	fmt.Fprintf(&b, "\n%s %s\n", FolderIcon, run.OutputDir)
	fmt.Fprintf(&b, "%s %s", MutedStyle.Render("Run log:"), run.LogPath)
	if d := run.Duration(); d > 0 {
		fmt.Fprintf(&b, "\n%s %s", MutedStyle.Render("Took:"), d.Round(time.Millisecond))
	}

	title := fmt.Sprintf("%s Sorted %d images", CameraIcon, run.Processed)
	if dryRun {
		title += " (dry run, nothing copied)"
	}
	return RenderBox(title, b.String())
}

// CompletionMessage returns the closing line for a run.
func CompletionMessage(run model.Run) string {
	switch {
	case run.Status == model.RunStatusInterrupted:
		return FormatWarning("Sorting interrupted")
	case run.Status == model.RunStatusAborted:
		return FormatError("Sorting aborted")
	case run.Errored > 0:
		return FormatWarning(fmt.Sprintf("Sorting finished with %d errored images", run.Errored))
	default:
		return FormatSuccess("Image sorting completed")
	}
}

// RenderRunsTable renders ledger runs as a table, newest first.
func RenderRunsTable(runs []model.Run) string {
	headers := []string{"ID", "STARTED", "STATUS", "MODE", "PROCESSED", "MATCHED", "UNMATCHED", "ERRORED", "SKIPPED"}
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			r.ID,
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			string(r.Status),
			r.Mode,
			fmt.Sprint(r.Processed),
			fmt.Sprint(r.Matched),
			fmt.Sprint(r.Unmatched),
			fmt.Sprint(r.Errored),
			fmt.Sprint(r.Skipped),
		})
	}
	return renderTable(headers, rows)
}

// RenderResultsTable renders the per-image results of a run.
func RenderResultsTable(results []model.ClassificationResult) string {
	headers := []string{"IMAGE", "CATEGORY", "OUTCOME", "ANSWER", "REASONING"}
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		detail := ""
		if r.Reasoning != nil {
			detail = *r.Reasoning
		}
		if r.Error != "" {
			detail = r.Error
		}
		rows = append(rows, []string{r.ImageName, r.CategoryLabel(), OutcomeStyle(r.Outcome).Render(string(r.Outcome)), r.Answer, truncate(detail, 60)})
	}
	return renderTable(headers, rows)
}

func renderTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	renderRow := func(cells []string, style lipgloss.Style) string {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			parts[i] = TableCellStyle.Width(widths[i] + 2).Render(cell)
		}
		return style.Render(lipgloss.JoinHorizontal(lipgloss.Top, parts...))
	}

	lines := []string{renderRow(headers, TableHeaderStyle)}
	for _, row := range rows {
		lines = append(lines, renderRow(row, lipgloss.NewStyle()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// RenderCategoriesTable renders the registry in load order.
func RenderCategoriesTable(categories []model.Category) string {
	headers := []string{"CATEGORY", "FOLDER", "DESCRIPTION"}
	rows := make([][]string, 0, len(categories))
	for _, c := range categories {
		desc := c.Description
		if desc == "" {
			desc = MutedStyle.Render("(no description)")
		}
		rows = append(rows, []string{c.Name, c.Folder + "/", truncate(desc, 70)})
	}
	return renderTable(headers, rows)
}
