package analysis

import "github.com/hazyhaar/zhanalyzer/pkg/pinyin"

// RomanizeFilter replaces each ideogram with its strict Pinyin readings.
// A polyphone fans out into stacked tokens: the first reading keeps the
// increment, the others get 0. Readings are emitted in numbered form.
// Tokens without a reading pass through.
type RomanizeFilter struct {
	readings Table
}

// NewRomanizeFilter creates a romanizer over a readings table.
func NewRomanizeFilter(readings Table) *RomanizeFilter {
	return &RomanizeFilter{readings: readings}
}

func (f *RomanizeFilter) Name() string { return "romanize" }

func (f *RomanizeFilter) Apply(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Keyword {
			out = append(out, tok)
			continue
		}
		vals := f.readings.Values(tok.Text)
		if len(vals) == 0 {
			out = append(out, tok)
			continue
		}
		seen := make(map[string]bool, len(vals))
		inc := tok.PosInc
		for _, v := range vals {
			v = pinyin.MarkedToNumbered(v)
			if seen[v] {
				continue
			}
			seen[v] = true
			out = append(out, Token{Text: v, Start: tok.Start, End: tok.End, PosInc: inc})
			inc = 0
		}
	}
	return out
}
