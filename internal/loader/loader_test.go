package loader

import (
	"encoding/csv"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	"github.com/vvka-141/tabwatch/internal/detect"
	"github.com/vvka-141/tabwatch/internal/files/filesystem"
	"github.com/vvka-141/tabwatch/internal/logging"
	"github.com/vvka-141/tabwatch/pkg/tabwatch"
)

// fixedDetector always reports the same encoding and records the sample it saw.
type fixedDetector struct {
	encoding string
	sample   []byte
}

func (d *fixedDetector) DetectEncoding(sample []byte) string {
	d.sample = append([]byte(nil), sample...)
	return d.encoding
}

func testScope() tabwatch.Scope {
	scope := tabwatch.DefaultScope()
	scope.DataDir = "/data"
	return scope
}

func newTestLoader() (*Loader, *filesystem.MemoryFileSystem) {
	mfs := filesystem.NewMemoryFileSystem("/data")
	return New(testScope(), mfs, logging.NewNullLogger()), mfs
}

func newLoaderWithDetector(enc string) (*Loader, *filesystem.MemoryFileSystem, *fixedDetector) {
	mfs := filesystem.NewMemoryFileSystem("/data")
	d := &fixedDetector{encoding: enc}
	return NewWithDetector(testScope(), mfs, d, logging.NewNullLogger()), mfs, d
}

func TestNewWithDetector_NilArgs(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/")
	d := &fixedDetector{encoding: "UTF-8"}
	log := logging.NewNullLogger()

	assert.Panics(t, func() { NewWithDetector(testScope(), nil, d, log) })
	assert.Panics(t, func() { NewWithDetector(testScope(), mfs, nil, log) })
	assert.Panics(t, func() { NewWithDetector(testScope(), mfs, d, nil) })
}

func TestLoad_CommaSeparated(t *testing.T) {
	l, mfs := newTestLoader()
	mfs.AddFile("data.csv", "a,b,c\n1,2,3\n4,5,6")

	table, err := l.Load("/data/data.csv")
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, table.Columns)
	assert.Equal(t, [][]string{{"1", "2", "3"}, {"4", "5", "6"}}, table.Rows)
	assert.Equal(t, ',', table.Delimiter)
	assert.Equal(t, tabwatch.FormatDelimited, table.Format)
	assert.Equal(t, "/data/data.csv", table.Source)
	assert.NotEmpty(t, table.Encoding)
}

func TestLoad_TabSeparatedText(t *testing.T) {
	l, mfs := newTestLoader()
	mfs.AddFile("data.txt", "x\ty\tz\n7\t8\t9")

	table, err := l.Load("/data/data.txt")
	require.NoError(t, err)

	assert.Equal(t, []string{"x", "y", "z"}, table.Columns)
	assert.Equal(t, [][]string{{"7", "8", "9"}}, table.Rows)
	assert.Equal(t, '\t', table.Delimiter)
}

func TestLoad_UppercaseExtension(t *testing.T) {
	l, mfs := newTestLoader()
	mfs.AddFile("DATA.CSV", "a;b\n1;2\n")

	table, err := l.Load("/data/DATA.CSV")
	require.NoError(t, err)
	assert.Equal(t, ';', table.Delimiter)
	assert.Equal(t, []string{"a", "b"}, table.Columns)
}

func TestLoad_NonexistentPath(t *testing.T) {
	l, _ := newTestLoader()

	table, err := l.Load("/data/nofile.csv")
	assert.Nil(t, table)
	assert.ErrorIs(t, err, tabwatch.ErrLoad)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	l, mfs := newTestLoader()
	mfs.AddFile("data.json", `{"a":1}`)

	_, err := l.Load("/data/data.json")
	assert.ErrorIs(t, err, tabwatch.ErrUnsupportedExtension)
	assert.NotErrorIs(t, err, tabwatch.ErrLoad)
}

func TestLoad_AllowedExtensionWithoutReader(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/data")
	scope := testScope()
	scope.AllowedExtensions = append(scope.AllowedExtensions, ".json")
	l := New(scope, mfs, logging.NewNullLogger())
	mfs.AddFile("data.json", `{"a":1}`)

	_, err := l.Load("/data/data.json")
	assert.ErrorIs(t, err, tabwatch.ErrUnsupportedOperation)
	assert.NotErrorIs(t, err, tabwatch.ErrLoad)
}

func TestLoad_HeaderOnly(t *testing.T) {
	l, mfs := newTestLoader()
	mfs.AddFile("data.csv", "a,b,c\n")

	table, err := l.Load("/data/data.csv")
	require.NoError(t, err)
	assert.Equal(t, 3, table.NumColumns())
	assert.Equal(t, 0, table.NumRows())
}

func TestLoad_EmptyFileIsLoadError(t *testing.T) {
	l, mfs := newTestLoader()
	mfs.AddFile("data.csv", "")

	_, err := l.Load("/data/data.csv")
	assert.ErrorIs(t, err, tabwatch.ErrLoad)
}

func TestLoad_RaggedRows(t *testing.T) {
	l, mfs := newTestLoader()
	mfs.AddFile("short.csv", "a,b,c\n1,2\n\n4,5,6\n")
	mfs.AddFile("long.csv", "a,b\n1,2\n3,4,5\n")

	table, err := l.Load("/data/short.csv")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1", "2", ""}, {"4", "5", "6"}}, table.Rows)

	_, err = l.Load("/data/long.csv")
	require.ErrorIs(t, err, tabwatch.ErrLoad)
	assert.Contains(t, err.Error(), "expected 2 fields in line 3, saw 3")

	var parseErr *csv.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.ErrorIs(t, parseErr.Err, csv.ErrFieldCount)
	assert.Equal(t, 3, parseErr.Line)
}

func TestLoad_QuotedFields(t *testing.T) {
	l, mfs := newTestLoader()
	mfs.AddFile("data.csv", "name,comment\nann,\"hello, world\"\nbob,\"multi\nline\"\n")

	table, err := l.Load("/data/data.csv")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"ann", "hello, world"}, {"bob", "multi\nline"}}, table.Rows)
}

func TestLoad_DuplicateAndBlankHeaders(t *testing.T) {
	l, mfs := newTestLoader()
	mfs.AddFile("data.csv", "a,a,,a\n1,2,3,4\n")

	table, err := l.Load("/data/data.csv")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "a.1", "Unnamed: 2", "a.2"}, table.Columns)
}

func TestLoad_StripsUTF8BOM(t *testing.T) {
	l, mfs, _ := newLoaderWithDetector("UTF-8")
	mfs.AddFile("data.csv", "\xef\xbb\xbfid;name\n1;ann\n")

	table, err := l.Load("/data/data.csv")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name"}, table.Columns)
}

func TestLoad_DetectedSingleByteEncoding(t *testing.T) {
	l, mfs, _ := newLoaderWithDetector("windows-1251")
	raw, err := charmap.Windows1251.NewEncoder().String("имя;город\nАнна;Москва\n")
	require.NoError(t, err)
	mfs.AddFile("data.csv", raw)

	table, err := l.Load("/data/data.csv")
	require.NoError(t, err)
	assert.Equal(t, "windows-1251", table.Encoding)
	assert.Equal(t, []string{"имя", "город"}, table.Columns)
	assert.Equal(t, [][]string{{"Анна", "Москва"}}, table.Rows)
}

func TestLoad_StrictDecodeFailure(t *testing.T) {
	l, mfs, _ := newLoaderWithDetector("UTF-8")
	mfs.AddFile("data.csv", "a,b\n1,\xff\n")

	_, err := l.Load("/data/data.csv")
	require.ErrorIs(t, err, tabwatch.ErrLoad)

	var decodeErr *detect.DecodeError
	assert.ErrorAs(t, err, &decodeErr)

	var loadErr *tabwatch.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "decode", loadErr.Stage)
}

func TestLoad_UnknownEncodingIsLoadError(t *testing.T) {
	l, mfs, _ := newLoaderWithDetector("x-bogus")
	mfs.AddFile("data.csv", "a,b\n1,2\n")

	_, err := l.Load("/data/data.csv")
	assert.ErrorIs(t, err, tabwatch.ErrLoad)
	assert.ErrorIs(t, err, detect.ErrUnknownEncoding)
}

func TestLoad_EncodingSampleSize(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/data")
	d := &fixedDetector{encoding: "UTF-8"}
	scope := testScope()
	scope.EncodingDetectBytes = 4
	l := NewWithDetector(scope, mfs, d, logging.NewNullLogger())
	mfs.AddFile("data.csv", "a,b,c\n1,2,3\n")

	_, err := l.Load("/data/data.csv")
	require.NoError(t, err)
	assert.Equal(t, "a,b,", string(d.sample))
}

func TestLoad_BlankDetectorResultFallsBackToUTF8(t *testing.T) {
	l, mfs, _ := newLoaderWithDetector("")
	mfs.AddFile("data.csv", "a,b\n1,2\n")

	table, err := l.Load("/data/data.csv")
	require.NoError(t, err)
	assert.Equal(t, tabwatch.DefaultEncoding, table.Encoding)
}

func xlsxBytes(t *testing.T, sheets map[string][][]interface{}, order []string) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, name := range order {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", name))
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for r, row := range sheets[name] {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			values := row
			require.NoError(t, f.SetSheetRow(name, cell, &values))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestLoad_XLSXFirstSheetOnly(t *testing.T) {
	l, mfs := newTestLoader()
	data := xlsxBytes(t, map[string][][]interface{}{
		"People": {{"name", "age"}, {"ann", 31}, {"bob", 45}},
		"Other":  {{"ignored"}, {"x"}},
	}, []string{"People", "Other"})
	mfs.AddBytesWithTime("book.xlsx", data, time.Now())

	table, err := l.Load("/data/book.xlsx")
	require.NoError(t, err)
	assert.Equal(t, tabwatch.FormatXLSX, table.Format)
	assert.Equal(t, []string{"name", "age"}, table.Columns)
	assert.Equal(t, [][]string{{"ann", "31"}, {"bob", "45"}}, table.Rows)
	assert.Equal(t, rune(0), table.Delimiter)
	assert.Empty(t, table.Encoding)
}

func TestLoad_XLSXRaggedRows(t *testing.T) {
	l, mfs := newTestLoader()
	data := xlsxBytes(t, map[string][][]interface{}{
		"Sheet": {{"a", "b"}, {"1"}, {"2", "3", "4"}},
	}, []string{"Sheet"})
	mfs.AddBytesWithTime("book.xlsx", data, time.Now())

	table, err := l.Load("/data/book.xlsx")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "Unnamed: 2"}, table.Columns)
	assert.Equal(t, [][]string{{"1", "", ""}, {"2", "3", "4"}}, table.Rows)
}

// testdata/people.xls is a BIFF8 workbook with two sheets. The first one,
// "People", has a header, a short row, a missing row, a row starting at the
// second column and a row wider than the header.
func TestLoad_XLSFirstSheet(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "people.xls"))
	require.NoError(t, err)

	l, mfs := newTestLoader()
	mfs.AddBytesWithTime("people.xls", data, time.Now())

	table, err := l.Load("/data/people.xls")
	require.NoError(t, err)
	assert.Equal(t, tabwatch.FormatXLS, table.Format)
	assert.Equal(t, []string{"name", "age", "city", "Unnamed: 3"}, table.Columns)
	assert.Equal(t, [][]string{
		{"ann", "30", "", ""},
		{"", "41.5", "Oslo", ""},
		{"bob", "52", "Rome", "extra"},
	}, table.Rows)
}

func TestLoad_CorruptSpreadsheets(t *testing.T) {
	l, mfs := newTestLoader()
	mfs.AddFile("broken.xlsx", "this is not a zip archive")
	mfs.AddFile("broken.xls", "this is not an OLE2 container")

	for _, p := range []string{"/data/broken.xlsx", "/data/broken.xls"} {
		t.Run(filepath.Base(p), func(t *testing.T) {
			_, err := l.Load(p)
			require.ErrorIs(t, err, tabwatch.ErrLoad)

			var loadErr *tabwatch.LoadError
			require.ErrorAs(t, err, &loadErr)
			assert.Equal(t, "workbook", loadErr.Stage)
		})
	}
}

func TestLoad_OSFileSystem(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b,c\n1,2,3\n4,5,6"), 0644))

	scope := tabwatch.DefaultScope()
	scope.DataDir = dir
	l := New(scope, filesystem.NewOSFileSystem(), logging.NewNullLogger())

	table, err := l.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, table.Columns)
	assert.Equal(t, 2, table.NumRows())
}
