package analysis

// VariantLevel selects the variant expansion stages: bit 1 enables
// synonyms, bit 2 enables graphical alternates.
type VariantLevel int

const (
	VariantsNone       VariantLevel = 0
	VariantsSynonyms   VariantLevel = 1
	VariantsAlternates VariantLevel = 2
	VariantsBoth       VariantLevel = 3
)

func (v VariantLevel) Valid() bool      { return v >= VariantsNone && v <= VariantsBoth }
func (v VariantLevel) Synonyms() bool   { return v&VariantsSynonyms != 0 }
func (v VariantLevel) Alternates() bool { return v&VariantsAlternates != 0 }

// ExpandFilter stacks the table values of each token at the token's
// position, after the token itself. Tokens absent from the table pass
// through alone.
type ExpandFilter struct {
	name  string
	table Table
}

// NewSynonymFilter expands tokens with linguistically equivalent forms.
func NewSynonymFilter(table Table) *ExpandFilter {
	return &ExpandFilter{name: "synonyms", table: table}
}

// NewAlternatesFilter expands tokens with graphical variant glyphs.
func NewAlternatesFilter(table Table) *ExpandFilter {
	return &ExpandFilter{name: "alternates", table: table}
}

func (f *ExpandFilter) Name() string { return f.name }

func (f *ExpandFilter) Apply(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tok)
		if tok.Keyword {
			continue
		}
		emitted := []string{tok.Text}
		for _, v := range f.table.Values(tok.Text) {
			if containsString(emitted, v) {
				continue
			}
			emitted = append(emitted, v)
			out = append(out, Token{Text: v, Start: tok.Start, End: tok.End, PosInc: 0})
		}
	}
	return out
}
