package differ

import (
	"strings"

	"github.com/aleister1102/redline/internal/models"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// TextDiffer computes token-level structural differences between two text
// strings. It is a pure function of its inputs plus the granularity flag:
// no side effects, and identical inputs always yield identical segment
// sequences.
type TextDiffer struct {
	dmp *diffmatchpatch.DiffMatchPatch
}

// NewTextDiffer creates a new text differ.
func NewTextDiffer() *TextDiffer {
	return &TextDiffer{
		dmp: diffmatchpatch.New(),
	}
}

// Diff compares original and modified at the given granularity and returns
// an ordered sequence of unchanged/added/removed runs. Within a replaced
// region, the removed run precedes the added run.
func (td *TextDiffer) Diff(original, modified string, granularity models.Granularity) []models.DiffSegment {
	var tokens1, tokens2 []string
	if granularity == models.GranularityLine {
		tokens1 = tokenizeLines(original)
		tokens2 = tokenizeLines(modified)
	} else {
		tokens1 = tokenizeWords(original)
		tokens2 = tokenizeWords(modified)
	}

	chars1, chars2, tokenIndex := tokensToChars(tokens1, tokens2)

	// Myers diff over the token alphabet. Semantic cleanup is deliberately
	// not applied: it can split runs mid-token and break the lossless
	// re-assembly invariant.
	diffs := td.dmp.DiffMain(chars1, chars2, false)

	return charsToSegments(diffs, tokenIndex)
}

// tokensToChars maps every distinct token to a single rune so the diff
// algorithm aligns whole tokens, the same trick diffmatchpatch uses for its
// line mode. Runes in the surrogate block are skipped since they cannot
// round-trip through a Go string.
func tokensToChars(tokens1, tokens2 []string) (string, string, []string) {
	tokenIndex := []string{""} // rune 0 is never produced
	seen := make(map[string]int)

	encode := func(tokens []string) string {
		var sb strings.Builder
		for _, tok := range tokens {
			idx, ok := seen[tok]
			if !ok {
				idx = len(tokenIndex)
				tokenIndex = append(tokenIndex, tok)
				seen[tok] = idx
			}
			sb.WriteRune(indexToRune(idx))
		}
		return sb.String()
	}

	chars1 := encode(tokens1)
	chars2 := encode(tokens2)
	return chars1, chars2, tokenIndex
}

const surrogateStart = 0xD800
const surrogateSize = 0x800

func indexToRune(idx int) rune {
	if idx >= surrogateStart {
		idx += surrogateSize
	}
	return rune(idx)
}

func runeToIndex(r rune) int {
	idx := int(r)
	if idx >= surrogateStart+surrogateSize {
		idx -= surrogateSize
	}
	return idx
}

// charsToSegments rehydrates token runs from the rune-alphabet diff and
// merges adjacent runs of the same type so each segment is the longest
// contiguous run.
func charsToSegments(diffs []diffmatchpatch.Diff, tokenIndex []string) []models.DiffSegment {
	var segments []models.DiffSegment

	for _, d := range diffs {
		var sb strings.Builder
		for _, r := range d.Text {
			sb.WriteString(tokenIndex[runeToIndex(r)])
		}
		value := sb.String()
		if value == "" {
			continue
		}

		seg := models.DiffSegment{
			Value:   value,
			Added:   d.Type == diffmatchpatch.DiffInsert,
			Removed: d.Type == diffmatchpatch.DiffDelete,
		}

		if n := len(segments); n > 0 &&
			segments[n-1].Added == seg.Added &&
			segments[n-1].Removed == seg.Removed {
			segments[n-1].Value += seg.Value
			continue
		}
		segments = append(segments, seg)
	}

	return segments
}

// AutoGranularity applies the caller-side policy of switching to line
// granularity once either input exceeds the threshold, bounding the cost of
// word-level alignment on large texts. The engine itself never switches.
func AutoGranularity(original, modified string, threshold int) models.Granularity {
	if len([]rune(original)) > threshold || len([]rune(modified)) > threshold {
		return models.GranularityLine
	}
	return models.GranularityWord
}
