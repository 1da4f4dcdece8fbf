package detect

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"

	"github.com/vvka-141/tabwatch/pkg/tabwatch"
)

// ErrUnknownEncoding is returned when a charset name has no decoder.
var ErrUnknownEncoding = errors.New("unknown encoding")

const byteOrderMark = '\uFEFF'

// EncodingDetector guesses the charset of a byte sample.
type EncodingDetector interface {
	// DetectEncoding returns a charset name; it never returns "".
	DetectEncoding(sample []byte) string
}

// CharsetDetector is an EncodingDetector backed by chardet's text detector.
type CharsetDetector struct {
	detector *chardet.Detector
}

// NewCharsetDetector creates a CharsetDetector.
func NewCharsetDetector() *CharsetDetector {
	return &CharsetDetector{detector: chardet.NewTextDetector()}
}

// DetectEncoding returns the detector's best guess, or UTF-8 when there is
// no result, the charset is blank, or the confidence is zero.
func (d *CharsetDetector) DetectEncoding(sample []byte) string {
	if len(sample) == 0 {
		return tabwatch.DefaultEncoding
	}
	result, err := d.detector.DetectBest(sample)
	if err != nil || result == nil || result.Charset == "" || result.Confidence <= 0 {
		return tabwatch.DefaultEncoding
	}
	return result.Charset
}

// ReadSample reads at most n bytes from r. A short file is not an error.
func ReadSample(r io.Reader, n int) ([]byte, error) {
	if n <= 0 {
		return nil, nil
	}
	buf := make([]byte, n)
	read, err := io.ReadFull(r, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return buf[:read], nil
}

// aliases maps detector spellings that the registries do not know.
var aliases = map[string]string{
	"gb-18030": "gb18030",
}

// IsUTF8 reports whether name denotes UTF-8 (or its ASCII subset).
func IsUTF8(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "utf-8", "utf8", "ascii", "us-ascii":
		return true
	}
	return false
}

// LookupEncoding resolves a charset name to a decoder.
// WHATWG names are tried first, then the IANA registry.
func LookupEncoding(name string) (encoding.Encoding, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := aliases[key]; ok {
		key = alias
	}

	switch key {
	case "":
		return nil, fmt.Errorf("%w: empty name", ErrUnknownEncoding)
	case "utf-8", "utf8", "ascii", "us-ascii":
		return unicode.UTF8, nil
	case "utf-32be":
		return utf32.UTF32(utf32.BigEndian, utf32.UseBOM), nil
	case "utf-32le":
		return utf32.UTF32(utf32.LittleEndian, utf32.UseBOM), nil
	}

	if enc, err := htmlindex.Get(key); err == nil && enc != nil {
		return enc, nil
	}
	if enc, err := ianaindex.IANA.Encoding(key); err == nil && enc != nil {
		return enc, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownEncoding, name)
}

func isReplacement(r rune) bool { return r == utf8.RuneError }

// NewLenientReader decodes r from the named charset into UTF-8, silently
// dropping byte sequences that cannot be decoded.
func NewLenientReader(r io.Reader, name string) (io.Reader, error) {
	enc, err := LookupEncoding(name)
	if err != nil {
		return nil, err
	}
	return transform.NewReader(r, transform.Chain(enc.NewDecoder(), runes.Remove(runes.Predicate(isReplacement)))), nil
}

// DecodeError reports input that is not valid in the detected charset.
type DecodeError struct {
	Encoding string
	Offset   int // Byte offset in the source (UTF-8) or decoded text (other charsets)
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid %s byte sequence at offset %d", e.Encoding, e.Offset)
}

// DecodeStrict decodes data from the named charset into UTF-8 text.
// Any undecodable input is a *DecodeError. A leading byte order mark is removed.
func DecodeStrict(data []byte, name string) (string, error) {
	enc, err := LookupEncoding(name)
	if err != nil {
		return "", err
	}

	if IsUTF8(name) {
		if !utf8.Valid(data) {
			return "", &DecodeError{Encoding: name, Offset: firstInvalidUTF8(data)}
		}
		return strings.TrimPrefix(string(data), string(byteOrderMark)), nil
	}

	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", name, err)
	}
	// Decoders substitute U+FFFD for input they cannot map.
	if i := bytes.IndexRune(decoded, utf8.RuneError); i >= 0 {
		return "", &DecodeError{Encoding: name, Offset: i}
	}
	return strings.TrimPrefix(string(decoded), string(byteOrderMark)), nil
}

func firstInvalidUTF8(data []byte) int {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}
