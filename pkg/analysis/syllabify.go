package analysis

import "github.com/hazyhaar/zhanalyzer/pkg/pinyin"

// SyllabifyFilter splits whitespace-delimited Pinyin chunks into syllable
// tokens. The first syllable of a chunk keeps the chunk's increment, later
// ones advance by one.
type SyllabifyFilter struct {
	syl *pinyin.Syllabifier
}

// NewSyllabifyFilter creates a stage over a shared Syllabifier.
func NewSyllabifyFilter(syl *pinyin.Syllabifier) *SyllabifyFilter {
	return &SyllabifyFilter{syl: syl}
}

func (f *SyllabifyFilter) Name() string { return "syllabify" }

func (f *SyllabifyFilter) Apply(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	pending := 0
	for _, tok := range tokens {
		if tok.Keyword {
			tok.PosInc += pending
			pending = 0
			out = append(out, tok)
			continue
		}
		segs := f.syl.Segment(tok.Text)
		if len(segs) == 0 {
			pending += tok.PosInc
			continue
		}
		for i, seg := range segs {
			inc := 1
			if i == 0 {
				inc = tok.PosInc + pending
				pending = 0
			}
			out = append(out, Token{
				Text:   seg.Text,
				Start:  tok.Start + seg.Start,
				End:    tok.Start + seg.End,
				PosInc: inc,
			})
		}
	}
	return out
}
