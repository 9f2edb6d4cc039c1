package pinyin

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/edsrzf/mmap-go"
)

const (
	trieMagic   = "zh-py-trie"
	trieVersion = 1
)

// ErrTrieFormat is returned when a stored trie is corrupt or from an
// unknown format version.
var ErrTrieFormat = errors.New("pinyin: invalid trie file")

// trieFile is the gob wire form of a Trie.
type trieFile struct {
	Magic   string
	Version int
	Labels  []rune
	Targets []int32
	Offsets []int32
	Final   []bool
}

// Store writes t to path. The file is written to a temporary sibling,
// synced, then renamed into place.
func Store(t *Trie, path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".trie-*")
	if err != nil {
		return fmt.Errorf("store trie: create temp: %w", err)
	}
	tmpPath := tmp.Name()
	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	tf := trieFile{
		Magic:   trieMagic,
		Version: trieVersion,
		Labels:  t.labels,
		Targets: t.targets,
		Offsets: t.offsets,
		Final:   t.final,
	}
	if err := gob.NewEncoder(tmp).Encode(&tf); err != nil {
		tmp.Close()
		return fmt.Errorf("store trie: encode: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("store trie: sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("store trie: close: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("store trie: rename to %s: %w", path, err)
	}
	success = true
	return nil
}

// Load reads a trie written by Store. The file is memory-mapped read-only
// for decoding and unmapped before returning.
func Load(path string) (*Trie, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load trie: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("load trie: stat: %w", err)
	}
	if info.Size() == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrTrieFormat, path)
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("load trie: mmap: %w", err)
	}
	defer m.Unmap()

	var tf trieFile
	if err := gob.NewDecoder(bytes.NewReader(m)).Decode(&tf); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrTrieFormat, path, err)
	}
	t, err := tf.trie()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTrieFormat, path, err)
	}
	return t, nil
}

func (tf *trieFile) trie() (*Trie, error) {
	if tf.Magic != trieMagic {
		return nil, fmt.Errorf("bad magic %q", tf.Magic)
	}
	if tf.Version != trieVersion {
		return nil, fmt.Errorf("unsupported version %d", tf.Version)
	}
	n := len(tf.Final)
	if n == 0 || len(tf.Offsets) != n+1 || len(tf.Labels) != len(tf.Targets) {
		return nil, fmt.Errorf("inconsistent table sizes")
	}
	if tf.Offsets[0] != 0 || int(tf.Offsets[n]) != len(tf.Labels) {
		return nil, fmt.Errorf("edge offsets out of range")
	}
	for i := 0; i < n; i++ {
		lo, hi := tf.Offsets[i], tf.Offsets[i+1]
		if lo > hi {
			return nil, fmt.Errorf("node %d: decreasing offsets", i)
		}
		for e := lo; e < hi; e++ {
			if tf.Targets[e] <= 0 || int(tf.Targets[e]) >= n {
				return nil, fmt.Errorf("node %d: edge target %d out of range", i, tf.Targets[e])
			}
			if e > lo && tf.Labels[e-1] >= tf.Labels[e] {
				return nil, fmt.Errorf("node %d: unsorted edges", i)
			}
		}
	}
	return &Trie{
		labels:  tf.Labels,
		targets: tf.Targets,
		offsets: tf.Offsets,
		final:   tf.Final,
	}, nil
}

// LoadOrBuild loads the trie at path, or compiles and stores it there when
// the file does not exist yet. Any other load error and any store error is
// returned.
func LoadOrBuild(path string, logger *slog.Logger) (*Trie, error) {
	if logger == nil {
		logger = slog.Default()
	}
	t, err := Load(path)
	if err == nil {
		logger.Info("trie loaded", "path", path, "nodes", t.Nodes())
		return t, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	t, err = Build()
	if err != nil {
		return nil, err
	}
	if err := Store(t, path); err != nil {
		return nil, err
	}
	logger.Info("trie compiled", "path", path, "nodes", t.Nodes(), "forms", t.Len())
	return t, nil
}
