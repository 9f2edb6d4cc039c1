package pinyin

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberedToMarked(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hao3", "hǎo"},
		{"zhong1", "zhōng"},
		{"guo2", "guó"},
		{"liu2", "liú"},
		{"gui4", "guì"},
		{"you3", "yǒu"},
		{"jiong3", "jiǒng"},
		{"er4", "èr"},
		{"xue2", "xué"},
		{"lv4", "lǜ"},
		{"lve3", "lüě"},
		{"nü3", "nǚ"},
		{"a1", "ā"},
		{"ma0", "ma"},
		{"ma5", "ma"},
		{"nv5", "nü"},
	}
	for _, tt := range tests {
		got, err := NumberedToMarked(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestNumberedToMarked_Errors(t *testing.T) {
	for _, in := range []string{"", "m", "ma", "ma6", "ng3", "zh1"} {
		_, err := NumberedToMarked(in)
		assert.ErrorIs(t, err, ErrToneMark, in)
	}
}

func TestMarkedToNumbered(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"zhōng", "zhong1"},
		{"guó", "guo2"},
		{"hǎo", "hao3"},
		{"lǜ", "lv4"},
		{"nü", "nv5"},
		{"de", "de5"},
		{"hao3", "hao3"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MarkedToNumbered(tt.in), tt.in)
	}
}

func TestMarkedNumberedRoundTrip(t *testing.T) {
	for _, syl := range Syllables() {
		for _, d := range "1234" {
			numbered := syl + string(d)
			marked, err := NumberedToMarked(numbered)
			require.NoError(t, err)
			back := MarkedToNumbered(marked)
			assert.Equal(t, strings.ReplaceAll(numbered, "ü", "v"), back)
		}
	}
}

func TestStripTones(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hao3", "hao"},
		{"hǎo", "hao"},
		{"zhōng", "zhong"},
		{"lǜ", "lü"},
		{"nüè", "nüe"},
		{"lv4", "lv"},
		{"ma0", "ma"},
		{"ma", "ma"},
		{"", ""},
		{"2024", "2024"},
		{"3", "3"},
		{"hao33", "hao3"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StripTones(tt.in), tt.in)
	}
}

func TestStripTones_Idempotent(t *testing.T) {
	trie, err := Build()
	require.NoError(t, err)
	for _, s := range trie.Strings() {
		once := StripTones(s)
		assert.Equal(t, once, StripTones(once), s)
	}
}
