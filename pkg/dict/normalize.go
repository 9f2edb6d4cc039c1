package dict

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Normalizer transforms a term before lookup.
type Normalizer func(string) string

// NormalizeNFC composes the term to NFC. Ideographs are unaffected; this
// mainly unifies decomposed Pinyin vowels.
func NormalizeNFC(s string) string {
	return norm.NFC.String(s)
}

// NormalizeFoldWidth maps fullwidth Latin letters and digits to their
// narrow forms (ＡＢＣ１２３ -> ABC123), then composes to NFC.
func NormalizeFoldWidth(s string) string {
	return norm.NFC.String(width.Fold.String(s))
}

// NormalizeLowercaseASCII lowercases and strips accents (e.g. Élodie -> elodie).
func NormalizeLowercaseASCII(s string) string {
	stripAccents := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(stripAccents, strings.ToLower(s))
	return result
}

// NormalizeLowercaseUTF8 lowercases but preserves accents.
func NormalizeLowercaseUTF8(s string) string {
	return strings.ToLower(s)
}

// NormalizeNone returns the term unchanged.
func NormalizeNone(s string) string {
	return s
}

// GetNormalizer returns the normalizer for the given mode.
// Default is nfc.
func GetNormalizer(mode string) Normalizer {
	switch mode {
	case "fold_width":
		return NormalizeFoldWidth
	case "lowercase_ascii":
		return NormalizeLowercaseASCII
	case "lowercase_utf8":
		return NormalizeLowercaseUTF8
	case "none":
		return NormalizeNone
	default:
		return NormalizeNFC
	}
}
