package analysis

import (
	"fmt"
	"strings"
)

// Encoding names a script or romanization of Chinese text.
type Encoding string

const (
	EncodingTC       Encoding = "TC"
	EncodingSC       Encoding = "SC"
	EncodingPYstrict Encoding = "PYstrict"
	EncodingPYlazy   Encoding = "PYlazy"
)

// IsPinyin reports whether e is a romanized encoding.
func (e Encoding) IsPinyin() bool { return strings.HasPrefix(string(e), "PY") }

// IsIdeographic reports whether e is a character-based encoding.
func (e Encoding) IsIdeographic() bool { return e == EncodingTC || e == EncodingSC }

// Profile is a resolved analysis configuration.
type Profile struct {
	Name      string       `json:"name"`
	Input     Encoding     `json:"input"`
	Index     Encoding     `json:"index"`
	Stopwords bool         `json:"stopwords"`
	Variants  VariantLevel `json:"variants"`
}

func (p Profile) String() string {
	return fmt.Sprintf("%s(%s->%s stopwords=%t variants=%d)", p.Name, p.Input, p.Index, p.Stopwords, p.Variants)
}

type encodingPair struct {
	input, index Encoding
}

// ExactTC is the only profile without its own encoding pair: it indexes
// Traditional text as-is, without stopwords or variants.
const ExactTC = "exactTC"

var profileNames = []string{
	ExactTC, "TC", "TC2SC", "TC2PYstrict", "TC2PYlazy",
	"SC", "SC2PYstrict", "SC2PYlazy",
	"PYstrict", "PYstrict2PYlazy", "PYlazy",
}

var profileEncodings = map[string]encodingPair{
	ExactTC:           {EncodingTC, EncodingTC},
	"TC":              {EncodingTC, EncodingTC},
	"TC2SC":           {EncodingTC, EncodingSC},
	"TC2PYstrict":     {EncodingTC, EncodingPYstrict},
	"TC2PYlazy":       {EncodingTC, EncodingPYlazy},
	"SC":              {EncodingSC, EncodingSC},
	"SC2PYstrict":     {EncodingSC, EncodingPYstrict},
	"SC2PYlazy":       {EncodingSC, EncodingPYlazy},
	"PYstrict":        {EncodingPYstrict, EncodingPYstrict},
	"PYstrict2PYlazy": {EncodingPYstrict, EncodingPYlazy},
	"PYlazy":          {EncodingPYlazy, EncodingPYlazy},
}

// Names returns the supported profile names in canonical order.
func Names() []string {
	out := make([]string, len(profileNames))
	copy(out, profileNames)
	return out
}

// Resolve returns the profile with its default options: ideographic
// profiles get stopwords and every variant, Pinyin profiles and exactTC get
// neither.
func Resolve(name string) (Profile, error) {
	enc, ok := profileEncodings[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
	}
	p := Profile{Name: name, Input: enc.input, Index: enc.index}
	if name != ExactTC && enc.input.IsIdeographic() {
		p.Stopwords = true
		p.Variants = VariantsBoth
	}
	return p, nil
}

// ResolveWith returns the profile with caller-supplied options. exactTC is
// not accepted here. Pinyin profiles always report stopwords on and never
// expand variants, whatever the caller asked for.
func ResolveWith(name string, stopwords bool, variants int) (Profile, error) {
	enc, ok := profileEncodings[name]
	if !ok || name == ExactTC {
		return Profile{}, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
	}
	level := VariantLevel(variants)
	if !level.Valid() {
		return Profile{}, fmt.Errorf("%w: got %d", ErrInvalidVariants, variants)
	}
	p := Profile{Name: name, Input: enc.input, Index: enc.index, Stopwords: stopwords, Variants: level}
	if enc.input.IsPinyin() {
		p.Stopwords = true
		p.Variants = VariantsNone
	}
	return p, nil
}
