package analysis

import "strings"

// Converter maps text from one ideographic script to another.
type Converter interface {
	Convert(text string) string
}

// TableConverter substitutes each rune through a table whose first value is
// the replacement (one or several runes). Runes absent from the table pass
// through unchanged.
type TableConverter struct {
	table Table
}

// NewTableConverter creates a converter backed by table.
func NewTableConverter(table Table) *TableConverter {
	return &TableConverter{table: table}
}

func (c *TableConverter) Convert(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if vals := c.table.Values(string(r)); len(vals) > 0 {
			b.WriteString(vals[0])
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ConvertFilter rewrites each token's text with a Converter.
type ConvertFilter struct {
	conv Converter
}

// NewConvertFilter creates a stage that applies conv to every token.
func NewConvertFilter(conv Converter) *ConvertFilter {
	return &ConvertFilter{conv: conv}
}

func (f *ConvertFilter) Name() string { return "tc2sc" }

func (f *ConvertFilter) Apply(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	for _, tok := range tokens {
		if !tok.Keyword {
			tok.Text = f.conv.Convert(tok.Text)
		}
		out = append(out, tok)
	}
	return out
}
