package pinyin

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// toneMarkSet holds the combining macron, acute, caron and grave accents.
// The diaeresis of ü is not a tone mark and is kept.
var toneMarkSet = runes.Predicate(func(r rune) bool {
	switch r {
	case '\u0304', '\u0301', '\u030C', '\u0300':
		return true
	}
	return false
})

// StripTones returns the toneless (lazy) form of a strict syllable:
// "hao3" and "hǎo" both become "hao", "lǜ" becomes "lü". Only a single tone
// digit following a letter is removed, so numbers such as "2024" are kept.
func StripTones(s string) string {
	s = trimToneDigit(s)
	if isASCII(s) {
		return s
	}
	// transform.Chain keeps state, so it is built per call.
	t := transform.Chain(norm.NFD, runes.Remove(toneMarkSet), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return stripped
}

func trimToneDigit(s string) string {
	n := len(s)
	if n < 2 || s[n-1] < '0' || s[n-1] > '0'+MaxTone {
		return s
	}
	if r, _ := utf8.DecodeLastRuneInString(s[:n-1]); !unicode.IsLetter(r) {
		return s
	}
	return s[:n-1]
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
