package analysis

// ScriptFilter keeps only tokens made entirely of Han ideographs. The
// increments of dropped tokens carry over to the next kept token so phrase
// positions stay correct.
type ScriptFilter struct{}

// NewScriptFilter creates a new ScriptFilter.
func NewScriptFilter() *ScriptFilter {
	return &ScriptFilter{}
}

func (ScriptFilter) Name() string { return "script" }

func (ScriptFilter) Apply(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	pending := 0
	for _, tok := range tokens {
		if !IsIdeographic(tok.Text) {
			pending += tok.PosInc
			continue
		}
		tok.PosInc += pending
		pending = 0
		out = append(out, tok)
	}
	return out
}

// IsIdeographic reports whether s is non-empty and made only of Han
// ideographs.
func IsIdeographic(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isIdeograph(r) {
			return false
		}
	}
	return true
}
