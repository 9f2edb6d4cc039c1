package analysis

import "github.com/hazyhaar/zhanalyzer/pkg/pinyin"

// LazyFilter strips tone digits and tone marks from strict Pinyin tokens.
// Stacked tokens that become identical at the same position are collapsed.
// A token left empty is dropped and its increment goes to the next token.
type LazyFilter struct{}

// NewLazyFilter creates a new LazyFilter.
func NewLazyFilter() *LazyFilter {
	return &LazyFilter{}
}

func (LazyFilter) Name() string { return "lazy" }

func (LazyFilter) Apply(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	var atPos []string
	pending := 0
	for _, tok := range tokens {
		if !tok.Keyword {
			tok.Text = pinyin.StripTones(tok.Text)
		}
		if tok.Text == "" {
			pending += tok.PosInc
			continue
		}
		tok.PosInc += pending
		pending = 0
		if tok.PosInc > 0 || len(out) == 0 {
			atPos = atPos[:0]
		} else if containsString(atPos, tok.Text) {
			continue
		}
		atPos = append(atPos, tok.Text)
		out = append(out, tok)
	}
	return out
}

func containsString(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}
