package tabwatch

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Scope is the unit of discovery: a data directory plus the rules that decide
// which files in it may be loaded. A Scope is built once at process start and
// must not be modified afterwards.
type Scope struct {
	DataDir             string
	MaxFileSizeMB       float64
	AllowedExtensions   []string
	EncodingDetectBytes int
}

// DefaultScope returns a Scope populated with the default settings.
func DefaultScope() Scope {
	return Scope{
		DataDir:             DefaultDataDir,
		MaxFileSizeMB:       DefaultMaxFileSizeMB,
		AllowedExtensions:   DefaultAllowedExtensions(),
		EncodingDetectBytes: DefaultEncodingDetectBytes,
	}
}

// Normalized returns a copy of the scope with extensions lower-cased,
// dot-prefixed and de-duplicated (first occurrence kept).
func (s Scope) Normalized() Scope {
	out := s
	out.AllowedExtensions = NormalizeExtensions(s.AllowedExtensions)
	return out
}

// Validate checks the scope for values the pipeline cannot work with.
func (s Scope) Validate() error {
	if strings.TrimSpace(s.DataDir) == "" {
		return fmt.Errorf("%w: data directory is required", ErrInvalidConfig)
	}
	if s.MaxFileSizeMB <= 0 {
		return fmt.Errorf("%w: max file size must be positive, got %g MB", ErrInvalidConfig, s.MaxFileSizeMB)
	}
	if s.EncodingDetectBytes <= 0 {
		return fmt.Errorf("%w: encoding detect bytes must be positive, got %d", ErrInvalidConfig, s.EncodingDetectBytes)
	}
	if len(NormalizeExtensions(s.AllowedExtensions)) == 0 {
		return fmt.Errorf("%w: at least one allowed extension is required", ErrInvalidConfig)
	}
	return nil
}

// Allows reports whether the path's extension is in the allow-list (case-insensitive).
func (s Scope) Allows(path string) bool {
	return ContainsExtension(s.AllowedExtensions, Extension(path))
}

// Extension returns the lower-cased, dot-prefixed extension of path ("" if none).
func Extension(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

// NormalizeExtension lower-cases ext and adds a leading dot when missing.
// Returns "" for blank input.
func NormalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" || ext == "." {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// NormalizeExtensions normalizes every extension and drops blanks and duplicates.
func NormalizeExtensions(exts []string) []string {
	seen := make(map[string]struct{}, len(exts))
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		n := NormalizeExtension(ext)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// ContainsExtension reports whether ext is in allowed, comparing normalized forms.
func ContainsExtension(allowed []string, ext string) bool {
	ext = NormalizeExtension(ext)
	if ext == "" {
		return false
	}
	for _, a := range allowed {
		if NormalizeExtension(a) == ext {
			return true
		}
	}
	return false
}

// CandidateFile is a file in the data directory whose extension is allowed.
// It is re-derived on every scan and never cached.
type CandidateFile struct {
	Path       string
	Extension  string
	SizeBytes  int64
	ModifiedAt time.Time
}

// SizeMB returns the file size in megabytes (bytes / 1,048,576).
func (c CandidateFile) SizeMB() float64 {
	return float64(c.SizeBytes) / BytesPerMB
}

// namespaceCandidate is the UUID v5 namespace for candidate fingerprints.
var namespaceCandidate = uuid.NewSHA1(uuid.NameSpaceURL, []byte("tabwatch/candidate-file/v1"))

// Fingerprint returns a deterministic identity for this exact version of the file.
// Two scans yield the same fingerprint only if path, modification time and size match.
func (c CandidateFile) Fingerprint() uuid.UUID {
	key := fmt.Sprintf("%s\x00%d\x00%d", filepath.ToSlash(c.Path), c.ModifiedAt.UnixNano(), c.SizeBytes)
	return uuid.NewSHA1(namespaceCandidate, []byte(key))
}

// Format identifies how a file is parsed.
type Format int

const (
	// FormatUnknown means no reader exists for the extension.
	FormatUnknown Format = iota
	// FormatDelimited is delimited text (.csv, .txt).
	FormatDelimited
	// FormatXLSX is an Office Open XML workbook (.xlsx).
	FormatXLSX
	// FormatXLS is a legacy BIFF workbook (.xls).
	FormatXLS
)

func (f Format) String() string {
	switch f {
	case FormatDelimited:
		return "delimited"
	case FormatXLSX:
		return "xlsx"
	case FormatXLS:
		return "xls"
	default:
		return "unknown"
	}
}

// IsSpreadsheet reports whether the format is a binary workbook.
func (f Format) IsSpreadsheet() bool {
	return f == FormatXLSX || f == FormatXLS
}

// FormatForExtension maps a file extension to its Format.
func FormatForExtension(ext string) Format {
	switch NormalizeExtension(ext) {
	case ".csv", ".txt":
		return FormatDelimited
	case ".xlsx":
		return FormatXLSX
	case ".xls":
		return FormatXLS
	default:
		return FormatUnknown
	}
}

// Table is the in-memory result of a load: named columns and rows of string cells.
// Column names are unique and every row has exactly len(Columns) cells.
// The loader never touches a Table after returning it; callers own it.
type Table struct {
	Source    string // Path the table was loaded from
	Format    Format
	Encoding  string // Detected encoding ("" for spreadsheets)
	Delimiter rune   // Detected delimiter (0 for spreadsheets)
	Columns   []string
	Rows      [][]string
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int { return len(t.Rows) }

// NumColumns returns the number of columns.
func (t *Table) NumColumns() int { return len(t.Columns) }

// ColumnIndex returns the index of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy, so editors can change cells without affecting the original.
func (t *Table) Clone() *Table {
	out := *t
	out.Columns = append([]string(nil), t.Columns...)
	out.Rows = make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		out.Rows[i] = append([]string(nil), row...)
	}
	return &out
}

// Snapshot is the outcome of one refresh: the file that was selected and its table.
type Snapshot struct {
	File        CandidateFile
	Fingerprint uuid.UUID
	Table       *Table
	LoadedAt    time.Time
}
