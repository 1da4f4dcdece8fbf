package loader

import (
	"fmt"
	"strconv"
	"strings"
)

// uniqueColumns turns a header record into unique column names.
// Blank names become "Unnamed: <index>"; repeated names get ".1", ".2", ...
func uniqueColumns(header []string) []string {
	names := make([]string, len(header))
	used := make(map[string]bool, len(header))
	suffix := make(map[string]int)

	for i, h := range header {
		name := h
		if strings.TrimSpace(name) == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		if used[name] {
			base := name
			for n := suffix[base] + 1; ; n++ {
				candidate := base + "." + strconv.Itoa(n)
				if !used[candidate] {
					suffix[base] = n
					name = candidate
					break
				}
			}
		}
		used[name] = true
		names[i] = name
	}
	return names
}

// padRow returns row extended with empty cells to width.
func padRow(row []string, width int) []string {
	if len(row) >= width {
		return row
	}
	out := make([]string, width)
	copy(out, row)
	return out
}

// isBlankRow reports whether every cell is empty after trimming.
func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// gridToTable uses the first non-blank row of grid as header and the rest as
// data. Rows wider than the header add unnamed columns; blank rows are dropped.
func gridToTable(grid [][]string) ([]string, [][]string, error) {
	var nonBlank [][]string
	for _, row := range grid {
		if !isBlankRow(row) {
			nonBlank = append(nonBlank, row)
		}
	}
	if len(nonBlank) == 0 {
		return nil, nil, errNoColumns
	}

	width := 0
	for _, row := range nonBlank {
		if len(row) > width {
			width = len(row)
		}
	}

	columns := uniqueColumns(padRow(nonBlank[0], width))
	rows := make([][]string, 0, len(nonBlank)-1)
	for _, row := range nonBlank[1:] {
		rows = append(rows, padRow(row, width))
	}
	return columns, rows, nil
}
