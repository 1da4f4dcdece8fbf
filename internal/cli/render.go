package cli

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"

	"github.com/vvka-141/tabwatch/internal/tui"
	"github.com/vvka-141/tabwatch/pkg/tabwatch"
)

var (
	headerCellStyle = lipgloss.NewStyle().Bold(true).Foreground(tui.ColorPrimary).Padding(0, 1)
	bodyCellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// renderTable draws t with box borders for terminal output.
func renderTable(t *tabwatch.Table) string {
	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = strings.ReplaceAll(strings.ReplaceAll(cell, "\r\n", " "), "\n", " ")
		}
		rows[i] = cells
	}

	return ltable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(tui.ColorMuted)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == ltable.HeaderRow {
				return headerCellStyle
			}
			return bodyCellStyle
		}).
		Headers(t.Columns...).
		Rows(rows...).
		Render()
}

// writeCSV writes t as comma-separated UTF-8 text with a header row.
func writeCSV(w io.Writer, t *tabwatch.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return err
	}
	return cw.Error()
}
