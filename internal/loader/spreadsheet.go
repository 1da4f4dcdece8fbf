package loader

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"github.com/vvka-141/tabwatch/pkg/tabwatch"
)

var errNoSheets = errors.New("workbook has no sheets")

// loadSpreadsheet reads the first sheet of an .xlsx or .xls workbook.
func (l *Loader) loadSpreadsheet(path string, format tabwatch.Format) (*tabwatch.Table, error) {
	data, err := l.fsProvider.ReadFile(path)
	if err != nil {
		return nil, tabwatch.NewLoadError(path, "read", err)
	}

	var grid [][]string
	switch format {
	case tabwatch.FormatXLSX:
		grid, err = readXLSX(data)
	case tabwatch.FormatXLS:
		grid, err = readXLS(data)
	default:
		return nil, fmt.Errorf("%w: %s is not a spreadsheet format", tabwatch.ErrUnsupportedOperation, format)
	}
	if err != nil {
		return nil, tabwatch.NewLoadError(path, "workbook", err)
	}

	columns, rows, err := gridToTable(grid)
	if err != nil {
		return nil, tabwatch.NewLoadError(path, "parse", err)
	}

	return &tabwatch.Table{
		Source:  path,
		Format:  format,
		Columns: columns,
		Rows:    rows,
	}, nil
}

func readXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errNoSheets
	}
	return f.GetRows(sheets[0])
}

// readXLS reads the first sheet of a BIFF workbook. The xls decoder panics on
// some malformed input, so panics are converted to errors.
func readXLS(data []byte) (grid [][]string, err error) {
	defer func() {
		if r := recover(); r != nil {
			grid = nil
			err = fmt.Errorf("corrupt workbook: %v", r)
		}
	}()

	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, err
	}
	if wb == nil {
		return nil, errors.New("no Workbook stream in container")
	}
	if wb.NumSheets() == 0 {
		return nil, errNoSheets
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, errNoSheets
	}

	// LastCol is one past the last cell, as stored in the ROW record.
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheetRow(sheet, i)
		if row == nil {
			grid = append(grid, nil)
			continue
		}
		last := row.LastCol()
		cells := make([]string, 0, last)
		for c := 0; c < last; c++ {
			if c < row.FirstCol() {
				cells = append(cells, "")
				continue
			}
			cells = append(cells, row.Col(c))
		}
		grid = append(grid, cells)
	}
	return grid, nil
}

// sheetRow returns row i, or nil when the sheet holds no record for it.
// WorkSheet.Row dereferences missing rows, so that panic is recovered here.
func sheetRow(sheet *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return sheet.Row(i)
}
