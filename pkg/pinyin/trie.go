package pinyin

import (
	"fmt"
	"sort"
	"strconv"
)

// Trie is an immutable prefix structure over syllable strings. Nodes are
// stored in compressed sparse row form: the edges of node n are
// labels[offsets[n]:offsets[n+1]], sorted, pointing at targets[...].
// The root is node 0. A Trie is safe for concurrent readers.
type Trie struct {
	labels  []rune
	targets []int32
	offsets []int32
	final   []bool
}

// Build compiles the trie of every valid syllable: the bare form, and for
// tones 0 to 5 the numbered and the diacritic-marked forms.
func Build() (*Trie, error) {
	b := newBuilder()
	for _, syl := range syllables {
		b.add(syl)
		for tone := 0; tone <= MaxTone; tone++ {
			numbered := syl + strconv.Itoa(tone)
			marked, err := NumberedToMarked(numbered)
			if err != nil {
				return nil, fmt.Errorf("build trie: %w", err)
			}
			b.add(numbered)
			b.add(marked)
		}
	}
	return b.freeze(), nil
}

// Contains reports whether s is a complete syllable form.
func (t *Trie) Contains(s string) bool {
	state := int32(0)
	for _, r := range s {
		next, ok := t.Step(state, r)
		if !ok {
			return false
		}
		state = next
	}
	return t.Final(state)
}

// Step follows the edge labelled r out of state.
func (t *Trie) Step(state int32, r rune) (int32, bool) {
	lo, hi := int(t.offsets[state]), int(t.offsets[state+1])
	edges := t.labels[lo:hi]
	i := sort.Search(len(edges), func(i int) bool { return edges[i] >= r })
	if i < len(edges) && edges[i] == r {
		return t.targets[lo+i], true
	}
	return 0, false
}

// Final reports whether the path to state spells a complete syllable.
func (t *Trie) Final(state int32) bool {
	return t.final[state]
}

// Nodes returns the number of nodes.
func (t *Trie) Nodes() int {
	return len(t.final)
}

// Len returns the number of complete forms the trie recognizes.
func (t *Trie) Len() int {
	n := 0
	for _, f := range t.final {
		if f {
			n++
		}
	}
	return n
}

// Strings returns every recognized form in sorted order.
func (t *Trie) Strings() []string {
	var out []string
	var walk func(state int32, prefix []rune)
	walk = func(state int32, prefix []rune) {
		if t.final[state] {
			out = append(out, string(prefix))
		}
		for i := t.offsets[state]; i < t.offsets[state+1]; i++ {
			walk(t.targets[i], append(prefix, t.labels[i]))
		}
	}
	walk(0, nil)
	sort.Strings(out)
	return out
}

// builder is the mutable form used while compiling.
type builder struct {
	children []map[rune]int32
	final    []bool
}

func newBuilder() *builder {
	b := &builder{}
	b.node()
	return b
}

func (b *builder) node() int32 {
	b.children = append(b.children, nil)
	b.final = append(b.final, false)
	return int32(len(b.final) - 1)
}

func (b *builder) add(s string) {
	state := int32(0)
	for _, r := range s {
		if b.children[state] == nil {
			b.children[state] = make(map[rune]int32)
		}
		next, ok := b.children[state][r]
		if !ok {
			next = b.node()
			b.children[state][r] = next
		}
		state = next
	}
	b.final[state] = true
}

func (b *builder) freeze() *Trie {
	t := &Trie{
		offsets: make([]int32, 0, len(b.final)+1),
		final:   b.final,
	}
	for _, kids := range b.children {
		t.offsets = append(t.offsets, int32(len(t.labels)))
		keys := make([]rune, 0, len(kids))
		for r := range kids {
			keys = append(keys, r)
		}
		sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
		for _, r := range keys {
			t.labels = append(t.labels, r)
			t.targets = append(t.targets, kids[r])
		}
	}
	t.offsets = append(t.offsets, int32(len(t.labels)))
	return t
}
