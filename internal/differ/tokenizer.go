package differ

import (
	"strings"
	"unicode"
)

type tokenClass int

const (
	classWord tokenClass = iota
	classSpace
	classOther
)

func classify(r rune) tokenClass {
	switch {
	case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
		return classWord
	case unicode.IsSpace(r):
		return classSpace
	default:
		return classOther
	}
}

// tokenizeWords splits text into runs of word characters, runs of
// whitespace, and runs of punctuation. Concatenating the tokens reproduces
// the input exactly, so re-assembly of diff segments is lossless.
func tokenizeWords(text string) []string {
	if text == "" {
		return nil
	}

	var tokens []string
	var current strings.Builder
	currentClass := tokenClass(-1)

	for _, r := range text {
		class := classify(r)
		if current.Len() > 0 && class != currentClass {
			tokens = append(tokens, current.String())
			current.Reset()
		}
		current.WriteRune(r)
		currentClass = class
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}
	return tokens
}

// tokenizeLines splits text into lines, each keeping its trailing newline so
// concatenation is lossless. A final line without a newline is kept as-is.
func tokenizeLines(text string) []string {
	if text == "" {
		return nil
	}

	var tokens []string
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			tokens = append(tokens, text[start:i+1])
			start = i + 1
		}
	}
	if start < len(text) {
		tokens = append(tokens, text[start:])
	}
	return tokens
}
