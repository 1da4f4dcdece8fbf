package persist

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/vvka-141/tabwatch/internal/files/filesystem"
	"github.com/vvka-141/tabwatch/internal/logging"
	"github.com/vvka-141/tabwatch/pkg/tabwatch"
)

const defaultSheet = "Sheet1"

// Saver serializes tables by the target file's extension.
type Saver struct {
	fsProvider filesystem.WritableFileSystem
	logger     tabwatch.Logger
}

// New creates a Saver.
// Panics if fsProvider or logger is nil.
func New(fsProvider filesystem.WritableFileSystem, logger tabwatch.Logger) *Saver {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Saver{
		fsProvider: fsProvider,
		logger:     logging.Named(logger, "saver"),
	}
}

// Save writes table to path.
//
// Returns:
//   - tabwatch.ErrUnsupportedOperation for .xls and unknown extensions
//   - an error matching tabwatch.ErrSave when encoding or writing fails
func (s *Saver) Save(table *tabwatch.Table, path string) error {
	if table == nil {
		return fmt.Errorf("%w: no table to save", tabwatch.ErrSave)
	}
	name := filepath.Base(path)

	var (
		data []byte
		err  error
	)
	switch format := tabwatch.FormatForExtension(tabwatch.Extension(path)); format {
	case tabwatch.FormatDelimited:
		data, err = encodeDelimited(table)
	case tabwatch.FormatXLSX:
		data, err = encodeXLSX(table, s.sheetName(path))
	case tabwatch.FormatXLS:
		s.logger.Error("cannot save %s: .xls files are read-only", name)
		return fmt.Errorf("%w: writing .xls files is not supported, save as .xlsx instead", tabwatch.ErrUnsupportedOperation)
	default:
		s.logger.Error("cannot save %s: unknown format", name)
		return fmt.Errorf("%w: no writer for %s", tabwatch.ErrUnsupportedOperation, name)
	}
	if err != nil {
		s.logger.Error("failed to encode %s: %v", name, err)
		return fmt.Errorf("%w: encoding %s: %w", tabwatch.ErrSave, name, err)
	}

	if err := s.fsProvider.WriteFile(path, data); err != nil {
		s.logger.Error("failed to write %s: %v", name, err)
		return fmt.Errorf("%w: writing %s: %w", tabwatch.ErrSave, name, err)
	}

	s.logger.Info("saved %d rows and %d columns to %s", table.NumRows(), table.NumColumns(), name)
	return nil
}

// sheetName keeps the first sheet's name of an existing workbook.
func (s *Saver) sheetName(path string) string {
	data, err := s.fsProvider.ReadFile(path)
	if err != nil {
		return defaultSheet
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		s.logger.Verbose("existing workbook unreadable, using %s: %v", defaultSheet, err)
		return defaultSheet
	}
	defer f.Close()

	if sheets := f.GetSheetList(); len(sheets) > 0 {
		return sheets[0]
	}
	return defaultSheet
}

func encodeDelimited(table *tabwatch.Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if table.Delimiter != 0 {
		w.Comma = table.Delimiter
	}

	if err := w.Write(table.Columns); err != nil {
		return nil, err
	}
	for _, row := range table.Rows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeXLSX(table *tabwatch.Table, sheet string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if sheet != defaultSheet {
		if err := f.SetSheetName(defaultSheet, sheet); err != nil {
			return nil, err
		}
	}

	header := make([]interface{}, len(table.Columns))
	for i, c := range table.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}

	for r, row := range table.Rows {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return nil, err
		}
		values := make([]interface{}, len(row))
		for i, v := range row {
			values[i] = cellValue(v)
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// cellValue stores numbers as numbers when the text round-trips unchanged.
func cellValue(s string) interface{} {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil && strconv.FormatInt(n, 10) == s {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && strconv.FormatFloat(f, 'f', -1, 64) == s {
		return f
	}
	return s
}

// Verify Saver implements the interface at compile time
var _ tabwatch.TableSaver = (*Saver)(nil)
