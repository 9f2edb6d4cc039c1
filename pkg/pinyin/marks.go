package pinyin

import (
	"errors"
	"fmt"
	"strings"
)

// ErrToneMark is returned when a numbered syllable cannot be rendered with a
// diacritic tone mark.
var ErrToneMark = errors.New("pinyin: cannot place tone mark")

// toneMarks maps each vowel to its marked forms for tones 1 to 4.
var toneMarks = map[rune][4]rune{
	'a': {'ā', 'á', 'ǎ', 'à'},
	'e': {'ē', 'é', 'ě', 'è'},
	'i': {'ī', 'í', 'ǐ', 'ì'},
	'o': {'ō', 'ó', 'ǒ', 'ò'},
	'u': {'ū', 'ú', 'ǔ', 'ù'},
	'ü': {'ǖ', 'ǘ', 'ǚ', 'ǜ'},
}

// unmark is the reverse of toneMarks: marked vowel to (vowel, tone).
var unmark = func() map[rune]struct {
	vowel rune
	tone  int
} {
	m := make(map[rune]struct {
		vowel rune
		tone  int
	})
	for v, marks := range toneMarks {
		for i, r := range marks {
			m[r] = struct {
				vowel rune
				tone  int
			}{v, i + 1}
		}
	}
	return m
}()

func isVowel(r rune) bool {
	_, ok := toneMarks[r]
	return ok
}

// NumberedToMarked converts a numbered syllable such as "hao3" or "lv4" to
// its diacritic form ("hǎo", "lǜ"). Tones 0 and 5 are neutral and yield the
// bare syllable. The mark goes on a or e when present, on the o of "ou",
// and otherwise on the last vowel, which covers "iu" and "ui".
func NumberedToMarked(numbered string) (string, error) {
	if len(numbered) < 2 {
		return "", fmt.Errorf("%w: %q too short", ErrToneMark, numbered)
	}
	d := numbered[len(numbered)-1]
	if d < '0' || d > '0'+MaxTone {
		return "", fmt.Errorf("%w: %q has no tone digit", ErrToneMark, numbered)
	}
	tone := int(d - '0')
	base := []rune(strings.ReplaceAll(numbered[:len(numbered)-1], "v", "ü"))

	target := -1
	for i, r := range base {
		if r == 'a' || r == 'e' {
			target = i
			break
		}
	}
	if target < 0 {
		if i := strings.Index(string(base), "ou"); i >= 0 {
			target = len([]rune(string(base)[:i]))
		}
	}
	if target < 0 {
		for i := len(base) - 1; i >= 0; i-- {
			if isVowel(base[i]) {
				target = i
				break
			}
		}
	}
	if target < 0 {
		return "", fmt.Errorf("%w: %q has no vowel", ErrToneMark, numbered)
	}

	if tone == 0 || tone == MaxTone {
		return string(base), nil
	}
	base[target] = toneMarks[base[target]][tone-1]
	return string(base), nil
}

// MarkedToNumbered converts a diacritic syllable ("zhōng") to its numbered
// form ("zhong1"), spelling ü as v ("lǜ" -> "lv4"). A syllable without a
// mark is neutral and gets tone 5; input already ending in a tone digit is
// returned unchanged.
func MarkedToNumbered(marked string) string {
	if marked == "" {
		return ""
	}
	if d := marked[len(marked)-1]; d >= '0' && d <= '0'+MaxTone {
		return marked
	}
	var b strings.Builder
	tone := MaxTone
	for _, r := range marked {
		if u, ok := unmark[r]; ok {
			r = u.vowel
			tone = u.tone
		}
		if r == 'ü' {
			r = 'v'
		}
		b.WriteRune(r)
	}
	b.WriteByte(byte('0' + tone))
	return b.String()
}
