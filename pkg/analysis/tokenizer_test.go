package analysis

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestStandardTokenizer(t *testing.T) {
	got := NewStandardTokenizer().Tokenize("國語, abc12 中!")
	assert.Equal(t, []Token{
		tok("國", 0, 1),
		tok("語", 3, 1),
		tok("abc12", 8, 1),
		tok("中", 14, 1),
	}, got)
}

func TestStandardTokenizer_IdeographBreaksWord(t *testing.T) {
	got := NewStandardTokenizer().Tokenize("ab中cd")
	assert.Equal(t, []string{"ab", "中", "cd"}, texts(got))
}

func TestStandardTokenizer_WordBoundaries(t *testing.T) {
	got := NewStandardTokenizer().Tokenize("pi 3.14, don't U.S.A. 國語")
	assert.Equal(t, []string{"pi", "3.14", "don't", "U.S.A", "國", "語"}, texts(got))
}

func TestStandardTokenizer_Empty(t *testing.T) {
	assert.Empty(t, NewStandardTokenizer().Tokenize(""))
	assert.Empty(t, NewStandardTokenizer().Tokenize(" ,。 "))
}

func TestWhitespaceTokenizer(t *testing.T) {
	got := NewWhitespaceTokenizer().Tokenize("  ni3hao3\tZhongguo\n")
	assert.Equal(t, []Token{
		tok("ni3hao3", 2, 1),
		tok("Zhongguo", 10, 1),
	}, got)
}

func FuzzStandardTokenizer(f *testing.F) {
	f.Add("國語")
	f.Add("hello, 世界 42")
	f.Add("")
	f.Fuzz(func(t *testing.T, s string) {
		if !utf8.ValidString(s) {
			return
		}
		prev := 0
		for _, tk := range NewStandardTokenizer().Tokenize(s) {
			if tk.Start < prev || tk.End <= tk.Start || tk.End > len(s) {
				t.Fatalf("bad offsets %d..%d after %d in %q", tk.Start, tk.End, prev, s)
			}
			if s[tk.Start:tk.End] != tk.Text {
				t.Fatalf("token %q does not match source slice %q", tk.Text, s[tk.Start:tk.End])
			}
			if strings.TrimSpace(tk.Text) != tk.Text {
				t.Fatalf("token %q contains spaces", tk.Text)
			}
			prev = tk.End
		}
	})
}
