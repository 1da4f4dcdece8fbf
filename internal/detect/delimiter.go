package detect

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/vvka-141/tabwatch/pkg/tabwatch"
)

// DetectDelimiter counts the candidate delimiters over the first maxLines
// lines of r and returns the winner together with every candidate's count.
// Lines end at "\n", "\r\n" or a lone "\r".
func DetectDelimiter(r io.Reader, maxLines int) (rune, map[rune]int, error) {
	candidates := tabwatch.DelimiterCandidates()
	counts := make(map[rune]int, len(candidates))
	for _, c := range candidates {
		counts[c] = 0
	}

	br := bufio.NewReader(r)
	for lines := 0; lines < maxLines; {
		ch, _, err := br.ReadRune()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, nil, err
		}

		switch ch {
		case '\n':
			lines++
		case '\r':
			lines++
			if next, _, err := br.ReadRune(); err == nil && next != '\n' {
				_ = br.UnreadRune()
			}
		default:
			if _, ok := counts[ch]; ok {
				counts[ch]++
			}
		}
	}

	return ChooseDelimiter(counts), counts, nil
}

// CountDelimiters counts each candidate delimiter in sample.
func CountDelimiters(sample string) map[rune]int {
	candidates := tabwatch.DelimiterCandidates()
	counts := make(map[rune]int, len(candidates))
	for _, c := range candidates {
		counts[c] = strings.Count(sample, string(c))
	}
	return counts
}

// ChooseDelimiter returns the candidate with the highest count. Equal counts
// resolve to the candidate that comes first in tabwatch.DelimiterCandidates(),
// so a sample without any candidate yields a comma.
func ChooseDelimiter(counts map[rune]int) rune {
	candidates := tabwatch.DelimiterCandidates()
	best := candidates[0]
	for _, c := range candidates[1:] {
		if counts[c] > counts[best] {
			best = c
		}
	}
	return best
}

// DelimiterName returns a printable name for a delimiter.
func DelimiterName(d rune) string {
	switch d {
	case '\t':
		return `\t`
	case 0:
		return "none"
	default:
		return string(d)
	}
}
