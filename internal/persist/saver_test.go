package persist

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/vvka-141/tabwatch/internal/files/filesystem"
	"github.com/vvka-141/tabwatch/internal/loader"
	"github.com/vvka-141/tabwatch/internal/logging"
	"github.com/vvka-141/tabwatch/pkg/tabwatch"
)

func newTestSaver() (*Saver, *filesystem.MemoryFileSystem) {
	mfs := filesystem.NewMemoryFileSystem("/data")
	return New(mfs, logging.NewNullLogger()), mfs
}

func sampleTable(delim rune) *tabwatch.Table {
	return &tabwatch.Table{
		Format:    tabwatch.FormatDelimited,
		Encoding:  "windows-1251",
		Delimiter: delim,
		Columns:   []string{"name", "comment"},
		Rows: [][]string{
			{"ann", "hello, world"},
			{"иван", "line\nbreak"},
		},
	}
}

func TestNew_NilArgs(t *testing.T) {
	assert.Panics(t, func() { New(nil, logging.NewNullLogger()) })
	assert.Panics(t, func() { New(filesystem.NewMemoryFileSystem("/"), nil) })
}

func TestSave_DelimitedKeepsDelimiter(t *testing.T) {
	tests := []struct {
		name  string
		delim rune
		want  string
	}{
		{"comma", ',', "name,comment\nann,\"hello, world\"\nиван,\"line\nbreak\"\n"},
		{"semicolon", ';', "name;comment\nann;hello, world\nиван;\"line\nbreak\"\n"},
		{"no delimiter", 0, "name,comment\nann,\"hello, world\"\nиван,\"line\nbreak\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mfs := newTestSaver()
			require.NoError(t, s.Save(sampleTable(tt.delim), "/data/out.csv"))

			data, err := mfs.ReadFile("/data/out.csv")
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))
		})
	}
}

func TestSave_RoundTripThroughLoader(t *testing.T) {
	s, mfs := newTestSaver()
	scope := tabwatch.DefaultScope()
	scope.DataDir = "/data"
	l := loader.New(scope, mfs, logging.NewNullLogger())

	mfs.AddFile("data.txt", "x\ty\tz\n7\t8\t9")
	table, err := l.Load("/data/data.txt")
	require.NoError(t, err)

	edited := table.Clone()
	edited.Rows[0][1] = "80"
	edited.Rows = append(edited.Rows, []string{"1", "2", "3"})
	require.NoError(t, s.Save(edited, "/data/data.txt"))

	reloaded, err := l.Load("/data/data.txt")
	require.NoError(t, err)
	assert.Equal(t, '\t', reloaded.Delimiter)
	assert.Equal(t, edited.Columns, reloaded.Columns)
	assert.Equal(t, [][]string{{"7", "80", "9"}, {"1", "2", "3"}}, reloaded.Rows)
	assert.Equal(t, [][]string{{"7", "8", "9"}}, table.Rows)
}

func TestSave_XLSX(t *testing.T) {
	s, mfs := newTestSaver()
	table := &tabwatch.Table{
		Format:  tabwatch.FormatXLSX,
		Columns: []string{"id", "name", "score"},
		Rows:    [][]string{{"1", "ann", "9.5"}, {"007", "bob", ""}},
	}

	require.NoError(t, s.Save(table, "/data/book.xlsx"))

	data, err := mfs.ReadFile("/data/book.xlsx")
	require.NoError(t, err)
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Sheet1"}, f.GetSheetList())
	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"id", "name", "score"}, rows[0])
	assert.Equal(t, []string{"1", "ann", "9.5"}, rows[1])
	assert.Equal(t, []string{"007", "bob"}, rows[2][:2])

	typ, err := f.GetCellType("Sheet1", "A2")
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeSharedString, typ)
	assert.NotEqual(t, excelize.CellTypeInlineString, typ)
}

func TestSave_XLSXKeepsFirstSheetName(t *testing.T) {
	s, mfs := newTestSaver()

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "People"))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())
	mfs.AddBytesWithTime("book.xlsx", buf.Bytes(), time.Now())

	table := &tabwatch.Table{Columns: []string{"a"}, Rows: [][]string{{"x"}}}
	require.NoError(t, s.Save(table, "/data/book.xlsx"))

	data, err := mfs.ReadFile("/data/book.xlsx")
	require.NoError(t, err)
	out, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer out.Close()
	assert.Equal(t, []string{"People"}, out.GetSheetList())
}

func TestSave_UnsupportedFormats(t *testing.T) {
	s, mfs := newTestSaver()
	mfs.AddFile("legacy.xls", "original")

	err := s.Save(sampleTable(','), "/data/legacy.xls")
	assert.ErrorIs(t, err, tabwatch.ErrUnsupportedOperation)
	assert.NotErrorIs(t, err, tabwatch.ErrSave)

	data, err := mfs.ReadFile("/data/legacy.xls")
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))

	assert.ErrorIs(t, s.Save(sampleTable(','), "/data/out.json"), tabwatch.ErrUnsupportedOperation)
}

func TestSave_Errors(t *testing.T) {
	s, _ := newTestSaver()

	assert.ErrorIs(t, s.Save(nil, "/data/out.csv"), tabwatch.ErrSave)

	err := s.Save(sampleTable(','), "/data/missing/out.csv")
	assert.ErrorIs(t, err, tabwatch.ErrSave)

	bad := sampleTable('"')
	assert.ErrorIs(t, s.Save(bad, "/data/out.csv"), tabwatch.ErrSave)
}

func TestSave_OSFileSystem(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(path, []byte("a;b\n1;2\n"), 0640))

	s := New(filesystem.NewOSFileSystem(), logging.NewNullLogger())
	table := &tabwatch.Table{Delimiter: ';', Columns: []string{"a", "b"}, Rows: [][]string{{"1", "3"}}}
	require.NoError(t, s.Save(table, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a;b\n1;3\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, "data.csv", strings.Join(names, ","))
}

func TestCellValue(t *testing.T) {
	assert.Equal(t, int64(42), cellValue("42"))
	assert.Equal(t, 9.5, cellValue("9.5"))
	assert.Equal(t, "007", cellValue("007"))
	assert.Equal(t, "1e3", cellValue("1e3"))
	assert.Equal(t, "", cellValue(""))
	assert.Equal(t, "ann", cellValue("ann"))
}
