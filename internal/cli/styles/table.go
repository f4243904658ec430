package styles

import (
	"path/filepath"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/retouch/internal/domain/entity"
)

// NewStyledTable creates a themed table model.
func NewStyledTable(theme *Theme, columns []table.Column, rows []table.Row, width, height int) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
		table.WithWidth(width),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Foreground(theme.Accent).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(theme.Text).
		Background(theme.SurfaceVariant).
		Bold(true)
	s.Cell = s.Cell.
		Foreground(theme.Text)

	t.SetStyles(s)
	return t
}

// HistoryTableColumns returns columns for the prompt history table.
func HistoryTableColumns() []table.Column {
	return []table.Column{
		{Title: "When", Width: 10},
		{Title: "Image", Width: 22},
		{Title: "Prompt", Width: 44},
	}
}

// HistoryRow converts a record to a table row. The record ID is not shown;
// callers keep rows and records index-aligned.
func HistoryRow(r entity.PromptRecord) table.Row {
	image := "-"
	if r.ImagePath != "" {
		image = filepath.Base(r.ImagePath)
	}
	return table.Row{RelativeTime(r.Timestamp), Truncate(image, 22), Truncate(r.Prompt, 44)}
}

// Truncate shortens s to max runes with an ellipsis.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}
