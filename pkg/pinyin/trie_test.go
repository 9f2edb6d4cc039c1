package pinyin

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_AllForms(t *testing.T) {
	trie, err := Build()
	require.NoError(t, err)

	for _, syl := range Syllables() {
		assert.True(t, trie.Contains(syl), syl)
		for tone := 0; tone <= MaxTone; tone++ {
			numbered := syl + strconv.Itoa(tone)
			marked, err := NumberedToMarked(numbered)
			require.NoError(t, err)
			assert.True(t, trie.Contains(numbered), numbered)
			assert.True(t, trie.Contains(marked), marked)
		}
	}
}

func TestBuild_OnlyListedForms(t *testing.T) {
	trie, err := Build()
	require.NoError(t, err)

	want := make(map[string]struct{})
	for _, syl := range Syllables() {
		want[syl] = struct{}{}
		for tone := 0; tone <= MaxTone; tone++ {
			numbered := syl + strconv.Itoa(tone)
			marked, _ := NumberedToMarked(numbered)
			want[numbered] = struct{}{}
			want[marked] = struct{}{}
		}
	}
	expected := make([]string, 0, len(want))
	for s := range want {
		expected = append(expected, s)
	}
	sort.Strings(expected)

	assert.Equal(t, expected, trie.Strings())
	assert.Equal(t, len(expected), trie.Len())
}

func TestBuild_PrefixesAreNotSyllables(t *testing.T) {
	trie, err := Build()
	require.NoError(t, err)

	for _, s := range []string{"zh", "zhon", "sh", "x", "q", "ch", "hao6", "nihao", "v"} {
		assert.False(t, trie.Contains(s), s)
	}
	// "zhan" is a prefix of "zhang" and a syllable in its own right.
	assert.True(t, trie.Contains("zhan"))
	assert.True(t, trie.Contains("zhang"))
}

func TestStoreLoadRoundTrip(t *testing.T) {
	trie, err := Build()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "zh_py.trie")
	require.NoError(t, Store(trie, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, trie.Nodes(), loaded.Nodes())
	assert.Equal(t, trie.Strings(), loaded.Strings())
	assert.True(t, loaded.Contains("lǜ"))
	assert.False(t, loaded.Contains("zhon"))
}

func TestStore_InvalidPath(t *testing.T) {
	trie, err := Build()
	require.NoError(t, err)
	err = Store(trie, filepath.Join(t.TempDir(), "missing", "zh_py.trie"))
	assert.Error(t, err)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "absent.trie"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	empty := filepath.Join(dir, "empty.trie")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	_, err = Load(empty)
	assert.ErrorIs(t, err, ErrTrieFormat)

	garbage := filepath.Join(dir, "garbage.trie")
	require.NoError(t, os.WriteFile(garbage, []byte("not a trie at all"), 0o644))
	_, err = Load(garbage)
	assert.ErrorIs(t, err, ErrTrieFormat)
}

func TestTrieFile_Validation(t *testing.T) {
	trie, err := Build()
	require.NoError(t, err)
	good := trieFile{
		Magic: trieMagic, Version: trieVersion,
		Labels: trie.labels, Targets: trie.targets, Offsets: trie.offsets, Final: trie.final,
	}
	_, err = good.trie()
	require.NoError(t, err)

	badMagic := good
	badMagic.Magic = "other"
	_, err = badMagic.trie()
	assert.Error(t, err)

	badVersion := good
	badVersion.Version = trieVersion + 1
	_, err = badVersion.trie()
	assert.Error(t, err)

	badTarget := good
	badTarget.Targets = append([]int32(nil), good.Targets...)
	badTarget.Targets[0] = int32(len(good.Final))
	_, err = badTarget.trie()
	assert.Error(t, err)
}

func TestLoadOrBuild(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zh_py.trie")

	built, err := LoadOrBuild(path, nil)
	require.NoError(t, err)
	_, err = os.Stat(path)
	require.NoError(t, err, "trie file should be written")

	loaded, err := LoadOrBuild(path, nil)
	require.NoError(t, err)
	assert.Equal(t, built.Strings(), loaded.Strings())
}

func TestLoadOrBuild_StoreFailurePropagates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "zh_py.trie")
	_, err := LoadOrBuild(path, nil)
	assert.Error(t, err)
}
