package analysis

import (
	"strings"
	"unicode/utf8"
)

// StopwordFilter blanks stopwords out of raw ideographic text before
// tokenization. Matching is longest-first at each rune; every matched rune
// is replaced by spaces of the same byte width so later offsets are
// unchanged.
type StopwordFilter struct {
	words  map[string]struct{}
	maxLen int // in runes
}

// NewStopwordFilter builds a filter over the given stopwords. Empty entries
// are ignored.
func NewStopwordFilter(words []string) *StopwordFilter {
	f := &StopwordFilter{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		f.words[w] = struct{}{}
		if n := utf8.RuneCountInString(w); n > f.maxLen {
			f.maxLen = n
		}
	}
	return f
}

func (f *StopwordFilter) Name() string { return "stopwords" }

// Len returns the number of stopwords.
func (f *StopwordFilter) Len() int { return len(f.words) }

func (f *StopwordFilter) Filter(text string) string {
	if len(f.words) == 0 || text == "" {
		return text
	}

	// Byte offset of every rune boundary, plus the end of the text.
	bounds := make([]int, 0, len(text)+1)
	for i := range text {
		bounds = append(bounds, i)
	}
	bounds = append(bounds, len(text))
	nRunes := len(bounds) - 1

	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < nRunes; {
		matched := 0
		for n := min(f.maxLen, nRunes-i); n > 0; n-- {
			if _, ok := f.words[text[bounds[i]:bounds[i+n]]]; ok {
				matched = n
				break
			}
		}
		if matched == 0 {
			b.WriteString(text[bounds[i]:bounds[i+1]])
			i++
			continue
		}
		b.WriteString(strings.Repeat(" ", bounds[i+matched]-bounds[i]))
		i += matched
	}
	return b.String()
}
