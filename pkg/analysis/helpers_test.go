package analysis

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hazyhaar/zhanalyzer/pkg/pinyin"
)

type mapTable map[string][]string

func (m mapTable) Values(term string) []string { return m[term] }

func texts(tokens []Token) []string {
	if len(tokens) == 0 {
		return nil
	}
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Text
	}
	return out
}

func incs(tokens []Token) []int {
	out := make([]int, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.PosInc
	}
	return out
}

func tok(text string, start, inc int) Token {
	return Token{Text: text, Start: start, End: start + len(text), PosInc: inc}
}

var testTC2SC = mapTable{
	"國": {"国"},
	"語": {"语"},
	"學": {"学"},
	"書": {"书"},
}

var testReadings = mapTable{
	"中": {"zhōng", "zhòng"},
	"国": {"guó"},
	"國": {"guó"},
	"語": {"yǔ", "yù"},
	"语": {"yǔ", "yù"},
	"行": {"xíng", "háng"},
	"好": {"hǎo", "hào"},
}

var testSynonyms = mapTable{
	"國": {"国"},
}

var testAlternates = mapTable{
	"國": {"囯", "國"},
	"語": {"语"},
}

func testResources(t testing.TB) *Resources {
	t.Helper()
	trie, err := pinyin.Build()
	require.NoError(t, err)
	syl, err := pinyin.NewSyllabifier(trie)
	require.NoError(t, err)
	return &Resources{
		Syllabifier: syl,
		Converter:   NewTableConverter(testTC2SC),
		Readings:    testReadings,
		Synonyms:    testSynonyms,
		Alternates:  testAlternates,
		Stopwords:   []string{"的", "之", "也"},
	}
}
