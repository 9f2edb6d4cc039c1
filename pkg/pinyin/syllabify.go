package pinyin

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/text/unicode/norm"
)

// DefaultCacheSize is the number of distinct chunks whose segmentation a
// Syllabifier remembers.
const DefaultCacheSize = 8192

// Policy decides what the Syllabifier does when no syllable starts at the
// current offset.
type Policy int

const (
	// PolicyEmitRune emits the next rune as its own segment and moves on.
	PolicyEmitRune Policy = iota
	// PolicyEmitRest emits the remainder of the chunk as one segment.
	PolicyEmitRest
	// PolicySkipRune drops the next rune and moves on.
	PolicySkipRune
)

var policyNames = map[Policy]string{
	PolicyEmitRune: "emit-rune",
	PolicyEmitRest: "emit-rest",
	PolicySkipRune: "skip-rune",
}

func (p Policy) String() string {
	if name, ok := policyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// ParsePolicy maps a configuration value to a Policy. The empty string
// selects PolicyEmitRune.
func ParsePolicy(s string) (Policy, error) {
	if s == "" {
		return PolicyEmitRune, nil
	}
	for p, name := range policyNames {
		if name == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown syllabify policy %q", s)
}

// Segment is one piece of a chunk. Start and End are byte offsets into the
// chunk.
type Segment struct {
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Syllabifier splits unspaced Pinyin into syllables by greedy longest
// match against a shared Trie. Matching runs on the NFC form of the chunk;
// segments report spans of the chunk as given. It never backtracks: a locally longest match
// is kept even when a shorter one would let the rest of the chunk parse.
// It is safe for concurrent use.
type Syllabifier struct {
	trie      *Trie
	policy    Policy
	cacheSize int
	cache     *lru.Cache[string, []Segment]
}

// Option configures a Syllabifier.
type Option func(*Syllabifier)

// WithPolicy sets the no-match policy.
func WithPolicy(p Policy) Option {
	return func(s *Syllabifier) { s.policy = p }
}

// WithCacheSize sets the segmentation cache size; 0 disables caching.
func WithCacheSize(n int) Option {
	return func(s *Syllabifier) { s.cacheSize = n }
}

// NewSyllabifier returns a Syllabifier over t.
func NewSyllabifier(t *Trie, opts ...Option) (*Syllabifier, error) {
	if t == nil {
		return nil, fmt.Errorf("syllabifier: nil trie")
	}
	s := &Syllabifier{trie: t, policy: PolicyEmitRune, cacheSize: DefaultCacheSize}
	for _, opt := range opts {
		opt(s)
	}
	if _, ok := policyNames[s.policy]; !ok {
		return nil, fmt.Errorf("syllabifier: %v", s.policy)
	}
	if s.cacheSize > 0 {
		cache, err := lru.New[string, []Segment](s.cacheSize)
		if err != nil {
			return nil, fmt.Errorf("syllabifier cache: %w", err)
		}
		s.cache = cache
	}
	return s, nil
}

// Policy returns the configured no-match policy.
func (s *Syllabifier) Policy() Policy {
	return s.policy
}

// Segment splits chunk into syllables. The returned slice may be shared
// with later calls and must not be modified.
func (s *Syllabifier) Segment(chunk string) []Segment {
	if chunk == "" {
		return nil
	}
	if s.cache != nil {
		if segs, ok := s.cache.Get(chunk); ok {
			return segs
		}
	}
	segs := s.segment(chunk)
	if s.cache != nil {
		s.cache.Add(chunk, segs)
	}
	return segs
}

func (s *Syllabifier) segment(chunk string) []Segment {
	text, offsets := chunk, []int(nil)
	if !norm.NFC.IsNormalString(chunk) {
		text, offsets = composeNFC(chunk)
	}

	var out []Segment
	emit := func(start, end int) {
		if offsets != nil {
			start, end = offsets[start], offsets[end]
			if start == end {
				return
			}
		}
		out = append(out, Segment{Text: chunk[start:end], Start: start, End: end})
	}

	pos := 0
	for pos < len(text) {
		if end := s.longest(text, pos); end > pos {
			emit(pos, end)
			pos = end
			continue
		}

		_, size := utf8.DecodeRuneInString(text[pos:])
		switch s.policy {
		case PolicyEmitRest:
			emit(pos, len(text))
			pos = len(text)
		case PolicySkipRune:
			pos += size
		default:
			emit(pos, pos+size)
			pos += size
		}
	}
	return out
}

// composeNFC returns the NFC form of s and, for every byte offset of it
// plus the end, the matching offset in s. An offset inside a composed
// character maps to the end of that character in s.
func composeNFC(s string) (string, []int) {
	var it norm.Iter
	it.InitString(norm.NFC, s)
	buf := make([]byte, 0, len(s))
	offsets := make([]int, 0, len(s)+1)
	for !it.Done() {
		start := it.Pos()
		seg := it.Next()
		end := it.Pos()
		for k := range seg {
			if k == 0 {
				offsets = append(offsets, start)
			} else {
				offsets = append(offsets, end)
			}
		}
		buf = append(buf, seg...)
	}
	offsets = append(offsets, len(s))
	return string(buf), offsets
}

// longest walks the trie from pos and returns the end offset of the longest
// complete syllable, or pos when there is none. Letters are matched
// case-insensitively.
func (s *Syllabifier) longest(chunk string, pos int) int {
	best := pos
	state := int32(0)
	for i := pos; i < len(chunk); {
		r, size := utf8.DecodeRuneInString(chunk[i:])
		next, ok := s.trie.Step(state, unicode.ToLower(r))
		if !ok {
			break
		}
		state = next
		i += size
		if s.trie.Final(state) {
			best = i
		}
	}
	return best
}
