package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/vvka-141/tabwatch/internal/detect"
	"github.com/vvka-141/tabwatch/pkg/tabwatch"
)

// loadDelimited runs encoding detection, delimiter detection and the strict parse.
func (l *Loader) loadDelimited(path string) (*tabwatch.Table, error) {
	enc, err := l.detectEncoding(path)
	if err != nil {
		return nil, tabwatch.NewLoadError(path, "encoding", err)
	}

	delim, err := l.detectDelimiter(path, enc)
	if err != nil {
		return nil, tabwatch.NewLoadError(path, "delimiter", err)
	}

	data, err := l.fsProvider.ReadFile(path)
	if err != nil {
		return nil, tabwatch.NewLoadError(path, "read", err)
	}

	text, err := detect.DecodeStrict(data, enc)
	if err != nil {
		return nil, tabwatch.NewLoadError(path, "decode", err)
	}

	columns, rows, err := parseDelimited(text, delim)
	if err != nil {
		return nil, tabwatch.NewLoadError(path, "parse", err)
	}

	return &tabwatch.Table{
		Source:    path,
		Format:    tabwatch.FormatDelimited,
		Encoding:  enc,
		Delimiter: delim,
		Columns:   columns,
		Rows:      rows,
	}, nil
}

func (l *Loader) detectEncoding(path string) (string, error) {
	l.logger.Info("detecting encoding of %s", filepath.Base(path))

	f, err := l.fsProvider.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	sample, err := detect.ReadSample(f, l.sampleBytes)
	if err != nil {
		return "", fmt.Errorf("failed to read sample: %w", err)
	}

	enc := l.detector.DetectEncoding(sample)
	if enc == "" {
		enc = tabwatch.DefaultEncoding
	}
	l.logger.Info("detected encoding: %s", enc)
	return enc, nil
}

func (l *Loader) detectDelimiter(path, enc string) (rune, error) {
	l.logger.Info("detecting delimiter of %s", filepath.Base(path))

	f, err := l.fsProvider.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	r, err := detect.NewLenientReader(f, enc)
	if err != nil {
		return 0, err
	}

	delim, counts, err := detect.DetectDelimiter(r, l.sampleLines)
	if err != nil {
		return 0, fmt.Errorf("failed to read sample lines: %w", err)
	}

	l.logger.Info("chosen delimiter: '%s' (counts=%s)", detect.DelimiterName(delim), formatCounts(counts))
	return delim, nil
}

func formatCounts(counts map[rune]int) string {
	candidates := tabwatch.DelimiterCandidates()
	parts := make([]string, 0, len(candidates))
	for _, c := range candidates {
		parts = append(parts, fmt.Sprintf("'%s': %d", detect.DelimiterName(c), counts[c]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// errNoColumns matches a file with no header record.
var errNoColumns = errors.New("no columns to parse from file")

// parseDelimited splits text into a header and data rows. Blank lines are
// skipped. A row with more fields than the header is an error; shorter rows
// are padded with empty cells.
func parseDelimited(text string, delim rune) ([]string, [][]string, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, errNoColumns
	}
	if err != nil {
		return nil, nil, err
	}
	columns := uniqueColumns(header)

	var rows [][]string
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		if len(record) > len(columns) {
			line, _ := r.FieldPos(0)
			return nil, nil, fmt.Errorf("expected %d fields in line %d, saw %d: %w", len(columns), line, len(record),
				&csv.ParseError{StartLine: line, Line: line, Err: csv.ErrFieldCount})
		}
		rows = append(rows, padRow(record, len(columns)))
	}

	return columns, rows, nil
}
