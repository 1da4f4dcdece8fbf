package detect

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/vvka-141/tabwatch/pkg/tabwatch"
)

func TestCharsetDetector_EmptySampleFallsBack(t *testing.T) {
	d := NewCharsetDetector()
	assert.Equal(t, tabwatch.DefaultEncoding, d.DetectEncoding(nil))
	assert.Equal(t, tabwatch.DefaultEncoding, d.DetectEncoding([]byte{}))
}

func TestCharsetDetector_MultibyteUTF8(t *testing.T) {
	sample := []byte(strings.Repeat("имя,город,возраст\nАнна,Москва,31\nПётр,Казань,45\n", 5))
	assert.Equal(t, "UTF-8", NewCharsetDetector().DetectEncoding(sample))
}

func TestCharsetDetector_ResultIsDecodable(t *testing.T) {
	samples := [][]byte{
		[]byte("a,b,c\n1,2,3\n4,5,6"),
		[]byte("name;city\nJosé;Málaga\n"),
	}
	d := NewCharsetDetector()
	for _, s := range samples {
		name := d.DetectEncoding(s)
		require.NotEmpty(t, name)
		_, err := LookupEncoding(name)
		assert.NoError(t, err, "detected %q should resolve", name)
	}
}

func TestReadSample(t *testing.T) {
	got, err := ReadSample(strings.NewReader("abcdef"), 4)
	require.NoError(t, err)
	assert.Equal(t, "abcd", string(got))

	got, err = ReadSample(strings.NewReader("ab"), 1000)
	require.NoError(t, err)
	assert.Equal(t, "ab", string(got))

	got, err = ReadSample(strings.NewReader(""), 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLookupEncoding(t *testing.T) {
	for _, name := range []string{"UTF-8", "utf8", "ascii", "windows-1251", "ISO-8859-1", "ISO-8859-5", "KOI8-R", "Shift_JIS", "EUC-JP", "EUC-KR", "Big5", "GB-18030", "UTF-16LE", "UTF-16BE", "UTF-32LE", "UTF-32BE"} {
		t.Run(name, func(t *testing.T) {
			enc, err := LookupEncoding(name)
			require.NoError(t, err)
			assert.NotNil(t, enc)
		})
	}

	_, err := LookupEncoding("x-definitely-not-a-charset")
	assert.ErrorIs(t, err, ErrUnknownEncoding)

	_, err = LookupEncoding("")
	assert.ErrorIs(t, err, ErrUnknownEncoding)
}

func TestDecodeStrict_UTF8(t *testing.T) {
	text, err := DecodeStrict([]byte("\xef\xbb\xbfa,b\n1,2"), "UTF-8")
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2", text)

	_, err = DecodeStrict([]byte("a,b\n1,\xff"), "UTF-8")
	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, 6, decodeErr.Offset)
}

func TestDecodeStrict_SingleByteCharset(t *testing.T) {
	raw, err := charmap.Windows1251.NewEncoder().String("имя;город\nАнна;Москва\n")
	require.NoError(t, err)

	text, err := DecodeStrict([]byte(raw), "windows-1251")
	require.NoError(t, err)
	assert.Equal(t, "имя;город\nАнна;Москва\n", text)
}

func TestDecodeStrict_UnknownEncoding(t *testing.T) {
	_, err := DecodeStrict([]byte("a"), "x-bogus")
	assert.ErrorIs(t, err, ErrUnknownEncoding)
}

func TestNewLenientReader_DropsInvalidBytes(t *testing.T) {
	r, err := NewLenientReader(strings.NewReader("a,\xffb\n\xfe1,2\n"), "UTF-8")
	require.NoError(t, err)

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", string(out))
}

func TestNewLenientReader_Charset(t *testing.T) {
	raw, err := charmap.Windows1251.NewEncoder().String("да|нет")
	require.NoError(t, err)

	r, err := NewLenientReader(strings.NewReader(raw), "windows-1251")
	require.NoError(t, err)
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "да|нет", string(out))
}
