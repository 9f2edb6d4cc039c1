// Package analysis turns raw Chinese text into canonical index tokens.
//
// A profile names the input encoding (Traditional, Simplified, strict or
// lazy Pinyin) and the index encoding; Assemble turns it into a Pipeline of
// character filters, a tokenizer and token stages. Pipelines are immutable and
// safe for concurrent use: every Analyze call owns its token slice.
package analysis

// Token is one unit of analyzed text. Start and End are byte offsets into
// the raw input. PosInc is the position increment relative to the previous
// token: 0 stacks the token on the previous position (synonyms, alternate
// readings). Keyword tokens are left untouched by rewriting stages.
type Token struct {
	Text    string `json:"text"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
	PosInc  int    `json:"position_increment"`
	Keyword bool   `json:"keyword,omitempty"`
}

// Analyzer processes text into a stream of tokens.
type Analyzer interface {
	// Analyze tokenizes the input text and returns tokens with positions.
	Analyze(field string, text string) []Token
}

// CharFilter rewrites raw text before tokenization. Implementations must
// keep the byte length of the text unchanged so offsets stay valid.
type CharFilter interface {
	Name() string
	Filter(text string) string
}

// Tokenizer splits raw text into tokens.
type Tokenizer interface {
	Name() string
	Tokenize(text string) []Token
}

// Stage transforms a token sequence. A stage may rewrite, drop, split or
// stack tokens; it must not retain the slice it is given.
type Stage interface {
	Name() string
	Apply(tokens []Token) []Token
}

// Table is the read side of a static lookup table.
type Table interface {
	Values(term string) []string
}

// Positions returns the absolute position of each token, starting at 0 for
// the first token with a positive increment.
func Positions(tokens []Token) []int {
	out := make([]int, len(tokens))
	pos := -1
	for i, tok := range tokens {
		pos += tok.PosInc
		if pos < 0 {
			pos = 0
		}
		out[i] = pos
	}
	return out
}
