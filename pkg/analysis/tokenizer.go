package analysis

import (
	"unicode"

	"github.com/rivo/uniseg"
)

// StandardTokenizer splits text on Unicode word boundaries (UAX #29).
// Han ideographs have no word-joining rules, so each ideograph is its own
// token; "3.14" and "don't" stay whole. Segments without a letter or digit
// (spaces, punctuation, symbols) are not emitted.
type StandardTokenizer struct{}

// NewStandardTokenizer creates a new StandardTokenizer.
func NewStandardTokenizer() *StandardTokenizer {
	return &StandardTokenizer{}
}

func (StandardTokenizer) Name() string { return "standard" }

// Tokenize splits text into ideograms and words.
func (StandardTokenizer) Tokenize(text string) []Token {
	var tokens []Token
	pos, state := 0, -1
	rest := text
	for len(rest) > 0 {
		var word string
		word, rest, state = uniseg.FirstWordInString(rest, state)
		start := pos
		pos += len(word)
		if hasWordRune(word) {
			tokens = append(tokens, Token{Text: word, Start: start, End: pos, PosInc: 1})
		}
	}
	return tokens
}

// WhitespaceTokenizer splits text on Unicode whitespace without any
// normalization.
type WhitespaceTokenizer struct{}

// NewWhitespaceTokenizer creates a new WhitespaceTokenizer.
func NewWhitespaceTokenizer() *WhitespaceTokenizer {
	return &WhitespaceTokenizer{}
}

func (WhitespaceTokenizer) Name() string { return "whitespace" }

// Tokenize splits the input on whitespace, preserving case.
func (WhitespaceTokenizer) Tokenize(text string) []Token {
	var tokens []Token
	start := -1
	for i, r := range text {
		if unicode.IsSpace(r) {
			if start >= 0 {
				tokens = append(tokens, Token{Text: text[start:i], Start: start, End: i, PosInc: 1})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		tokens = append(tokens, Token{Text: text[start:], Start: start, End: len(text), PosInc: 1})
	}
	return tokens
}

func isIdeograph(r rune) bool {
	return unicode.Is(unicode.Han, r)
}

func hasWordRune(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return true
		}
	}
	return false
}
