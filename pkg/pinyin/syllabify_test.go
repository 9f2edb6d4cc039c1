package pinyin

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSyllabifier(t testing.TB, opts ...Option) *Syllabifier {
	t.Helper()
	trie, err := Build()
	require.NoError(t, err)
	s, err := NewSyllabifier(trie, opts...)
	require.NoError(t, err)
	return s
}

func segmentTexts(segs []Segment) []string {
	if len(segs) == 0 {
		return nil
	}
	out := make([]string, len(segs))
	for i, s := range segs {
		out[i] = s.Text
	}
	return out
}

func TestSyllabifier_Segment(t *testing.T) {
	s := newTestSyllabifier(t)

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"lazy", "nihao", []string{"ni", "hao"}},
		{"numbered", "ni3hao3", []string{"ni3", "hao3"}},
		{"marked", "nǐhǎo", []string{"nǐ", "hǎo"}},
		{"capitalized", "Zhongguo", []string{"Zhong", "guo"}},
		{"mixed forms", "zhong1guó", []string{"zhong1", "guó"}},
		{"v spelling", "lvse", []string{"lv", "se"}},
		{"longest wins", "xian", []string{"xian"}},
		{"greedy without backtracking", "fangan", []string{"fang", "an"}},
		{"single", "a", []string{"a"}},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, segmentTexts(s.Segment(tt.input)))
		})
	}
}

func TestSyllabifier_Offsets(t *testing.T) {
	s := newTestSyllabifier(t)
	segs := s.Segment("nǐhǎo")
	require.Len(t, segs, 2)
	assert.Equal(t, Segment{Text: "nǐ", Start: 0, End: 3}, segs[0])
	assert.Equal(t, Segment{Text: "hǎo", Start: 3, End: 7}, segs[1])
}

func TestSyllabifier_DecomposedMarks(t *testing.T) {
	s := newTestSyllabifier(t)

	segs := s.Segment("ni\u030Cha\u030Co")
	assert.Equal(t, []Segment{
		{Text: "ni\u030C", Start: 0, End: 4},
		{Text: "ha\u030Co", Start: 4, End: 9},
	}, segs)

	assert.Equal(t, []string{"ha\u030Co", "3"}, segmentTexts(s.Segment("ha\u030Co3")))

	// The dot below composes, the caron stays a separate mark of the same
	// character; the character is emitted whole.
	assert.Equal(t, []string{"a\u0323\u030C"}, segmentTexts(s.Segment("a\u0323\u030C")))
}

func TestSyllabifier_Policies(t *testing.T) {
	tests := []struct {
		policy Policy
		want   []string
	}{
		{PolicyEmitRune, []string{"ni", "#", "hao"}},
		{PolicyEmitRest, []string{"ni", "#hao"}},
		{PolicySkipRune, []string{"ni", "hao"}},
	}
	for _, tt := range tests {
		t.Run(tt.policy.String(), func(t *testing.T) {
			s := newTestSyllabifier(t, WithPolicy(tt.policy))
			assert.Equal(t, tt.want, segmentTexts(s.Segment("ni#hao")))
		})
	}
}

func TestSyllabifier_NoSyllableAtStart(t *testing.T) {
	s := newTestSyllabifier(t, WithPolicy(PolicyEmitRune))
	assert.Equal(t, []string{"v", "v"}, segmentTexts(s.Segment("vv")))

	s = newTestSyllabifier(t, WithPolicy(PolicyEmitRest))
	assert.Equal(t, []string{"vv"}, segmentTexts(s.Segment("vv")))

	s = newTestSyllabifier(t, WithPolicy(PolicySkipRune))
	assert.Nil(t, segmentTexts(s.Segment("vv")))
}

func TestSyllabifier_ConcatenationCount(t *testing.T) {
	s := newTestSyllabifier(t)
	parts := []string{"wo3", "men5", "xue2", "xi2", "zhong1", "wen2"}
	segs := s.Segment(strings.Join(parts, ""))
	assert.Equal(t, parts, segmentTexts(segs))
}

func TestSyllabifier_Cache(t *testing.T) {
	s := newTestSyllabifier(t, WithCacheSize(2))
	first := s.Segment("nihao")
	second := s.Segment("nihao")
	assert.Equal(t, first, second)

	uncached := newTestSyllabifier(t, WithCacheSize(0))
	assert.Equal(t, first, uncached.Segment("nihao"))
}

func TestNewSyllabifier_Errors(t *testing.T) {
	_, err := NewSyllabifier(nil)
	assert.Error(t, err)

	trie, err := Build()
	require.NoError(t, err)
	_, err = NewSyllabifier(trie, WithPolicy(Policy(42)))
	assert.Error(t, err)
}

func TestParsePolicy(t *testing.T) {
	for _, p := range []Policy{PolicyEmitRune, PolicyEmitRest, PolicySkipRune} {
		got, err := ParsePolicy(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	got, err := ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, PolicyEmitRune, got)

	_, err = ParsePolicy("backtrack")
	assert.Error(t, err)
}

func FuzzSyllabifier(f *testing.F) {
	f.Add("nihao")
	f.Add("ni3hao3")
	f.Add("zhōngguó")
	f.Add("qwrtz")
	f.Add("")
	f.Add("xi'an")
	f.Add("ha\u030Co3")

	trie, err := Build()
	if err != nil {
		f.Fatal(err)
	}
	s, err := NewSyllabifier(trie, WithCacheSize(0))
	if err != nil {
		f.Fatal(err)
	}

	f.Fuzz(func(t *testing.T, input string) {
		segs := s.Segment(input)
		var b strings.Builder
		pos := 0
		for _, seg := range segs {
			if seg.Start != pos || seg.End <= seg.Start || seg.End > len(input) {
				t.Fatalf("bad segment %+v at offset %d in %q", seg, pos, input)
			}
			if input[seg.Start:seg.End] != seg.Text {
				t.Fatalf("segment text %q does not match input span", seg.Text)
			}
			b.WriteString(seg.Text)
			pos = seg.End
		}
		if b.String() != input {
			t.Fatalf("reconstructed %q, want %q", b.String(), input)
		}
	})
}
