// Package cli renders picsort's terminal output using lipgloss.
package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/picsort/internal/model"
)

var (
	// TitleStyle heads summary boxes and listings.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7AA2F7")).
			MarginBottom(1)

	// MutedStyle is for paths, skipped files and secondary labels.
	MutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	// NoteStyle is for hints that need no action.
	NoteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1D3"))

	// BoxStyle frames the run summary.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333")).
			Padding(1, 2)

	// TableHeaderStyle is used for table headers.
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(lipgloss.Color("#333"))

	// TableCellStyle pads table cells.
	TableCellStyle = lipgloss.NewStyle().
			PaddingRight(2)
)

// Each outcome has one colour and icon, shared by progress lines, the
// summary and result tables.
var (
	outcomeStyles = map[model.Outcome]lipgloss.Style{
		model.OutcomeMatched:   lipgloss.NewStyle().Foreground(lipgloss.Color("#4ECDC4")),
		model.OutcomeUnmatched: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFE66D")),
		model.OutcomeErrored:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
	}
	outcomeIcons = map[model.Outcome]string{
		model.OutcomeMatched:   "✓",
		model.OutcomeUnmatched: "?",
		model.OutcomeErrored:   "✗",
	}
)

// Icons.
const (
	CameraIcon = "📷"
	FolderIcon = "🗂️"
	SkipIcon   = "↷"
	NoteIcon   = "ℹ️"
)

// OutcomeStyle returns the colour of an outcome.
func OutcomeStyle(o model.Outcome) lipgloss.Style {
	if style, ok := outcomeStyles[o]; ok {
		return style
	}
	return MutedStyle
}

// FormatOutcome prefixes message with the outcome icon and colours it.
func FormatOutcome(o model.Outcome, message string) string {
	return OutcomeStyle(o).Render(outcomeIcons[o] + " " + message)
}

// FormatSuccess formats a message in the matched colour.
func FormatSuccess(message string) string {
	return FormatOutcome(model.OutcomeMatched, message)
}

// FormatWarning formats a message in the unmatched colour.
func FormatWarning(message string) string {
	return FormatOutcome(model.OutcomeUnmatched, message)
}

// FormatError formats a message in the errored colour.
func FormatError(message string) string {
	return FormatOutcome(model.OutcomeErrored, message)
}

// FormatInfo formats a hint.
func FormatInfo(message string) string {
	return NoteStyle.Render(NoteIcon + " " + message)
}

// FormatTitle formats a title with the camera icon.
func FormatTitle(title string) string {
	return TitleStyle.Render(CameraIcon + " " + title)
}

// RenderBox renders content in a styled box.
func RenderBox(title, content string) string {
	boxTitle := TitleStyle.
		UnsetMargins().
		Render(title)

	return BoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, boxTitle, content))
}
