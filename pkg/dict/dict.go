// Package dict loads the static lookup tables the analysis pipeline
// consults: script conversion, synonyms, graphical alternates, Pinyin
// readings and stopwords. Each table lives in its own directory with a
// manifest.yaml and a data file (gob, or delimited text).
package dict

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// Entry is the value side of one table key.
type Entry struct {
	Values   []string          `json:"values,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Dictionary is one loaded table with its manifest and in-memory hashmap.
// It is read-only after loading and safe for concurrent use.
type Dictionary struct {
	Manifest  *Manifest         `json:"manifest"`
	Entries   map[string]*Entry `json:"-"`
	normalize Normalizer
}

// New builds an in-memory Dictionary, mainly for callers that assemble
// tables programmatically.
func New(id, kind string, entries map[string]*Entry) *Dictionary {
	if entries == nil {
		entries = make(map[string]*Entry)
	}
	return &Dictionary{
		Manifest:  &Manifest{ID: id, Kind: kind},
		Entries:   entries,
		normalize: NormalizeNFC,
	}
}

// LoadDictionary reads a manifest.yaml and loads data from gob or delimited text.
func LoadDictionary(dir string) (*Dictionary, error) {
	manifestPath := filepath.Join(dir, "manifest.yaml")
	manifest, err := LoadManifest(manifestPath)
	if err != nil {
		return nil, err
	}

	d := &Dictionary{
		Manifest:  manifest,
		Entries:   make(map[string]*Entry),
		normalize: GetNormalizer(manifest.Format.Normalize),
	}

	// Gob takes priority over text.
	gobPath := filepath.Join(dir, "data.gob")
	if _, err := os.Stat(gobPath); err == nil {
		if err := d.loadGob(gobPath); err != nil {
			return nil, fmt.Errorf("dict %s: %w", manifest.ID, err)
		}
		return d, nil
	}

	dataPath := filepath.Join(dir, manifest.DataFile)
	if err := d.loadText(dataPath); err != nil {
		return nil, fmt.Errorf("dict %s: %w", manifest.ID, err)
	}
	return d, nil
}

func (d *Dictionary) loadText(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open data file: %w", err)
	}
	defer f.Close()

	// Transcode Big5, GB18030 and other encodings declared in the manifest.
	var reader io.Reader = f
	if enc := d.Manifest.Format.Encoding; enc != "" && !isUTF8(enc) {
		e, err := htmlindex.Get(enc)
		if err != nil {
			return fmt.Errorf("unsupported encoding %q: %w", enc, err)
		}
		reader = transform.NewReader(f, e.NewDecoder())
	}

	r := csv.NewReader(reader)
	r.Comma = '\t'
	if delim := d.Manifest.Format.Delimiter; delim != "" {
		r.Comma = []rune(delim)[0]
	}
	r.Comment = '#'
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	var header []string
	if d.Manifest.Format.HasHeader {
		header, err = r.Read()
		if err != nil {
			return fmt.Errorf("read header: %w", err)
		}
		for i := range header {
			header[i] = strings.TrimSpace(header[i])
		}
	}

	keyIdx, err := columnIndex(header, d.Manifest.Format.KeyColumn, 0)
	if err != nil {
		return err
	}
	valIdx := -1
	if d.Manifest.Kind != KindStopwords {
		valIdx, err = columnIndex(header, d.Manifest.Format.ValueColumn, 1)
		if err != nil {
			return err
		}
	}

	metaIdx := make(map[string]int)
	for _, mc := range d.Manifest.MetadataCols {
		if i, err := columnIndex(header, mc.Column, -1); err == nil && i >= 0 {
			metaIdx[mc.Name] = i
		}
	}

	var merged int
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read row: %w", err)
		}
		if keyIdx >= len(record) {
			continue
		}

		key := d.normalize(strings.TrimSpace(record[keyIdx]))
		if key == "" {
			continue
		}

		entry, exists := d.Entries[key]
		if exists {
			merged++
		} else {
			entry = &Entry{}
			d.Entries[key] = entry
		}
		if valIdx >= 0 && valIdx < len(record) {
			for _, v := range d.splitValues(record[valIdx]) {
				entry.Values = appendUnique(entry.Values, d.normalize(v))
			}
		}
		for name, idx := range metaIdx {
			if idx < len(record) {
				if entry.Metadata == nil {
					entry.Metadata = make(map[string]string, len(metaIdx))
				}
				entry.Metadata[name] = strings.TrimSpace(record[idx])
			}
		}
	}

	if merged > 0 {
		slog.Debug("duplicate keys merged", "dict", d.Manifest.ID, "rows", merged)
	}
	return nil
}

// columnIndex resolves a named column against header, falling back to def
// when no name is configured or the table has no header.
func columnIndex(header []string, name string, def int) (int, error) {
	if name == "" || header == nil {
		return def, nil
	}
	for i, h := range header {
		if h == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("column %q not found in header %v", name, header)
}

func (d *Dictionary) splitValues(field string) []string {
	sep := d.Manifest.Format.ValueSeparator
	if sep == "" || sep == " " {
		return strings.Fields(field)
	}
	var out []string
	for _, v := range strings.Split(field, sep) {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func appendUnique(values []string, v string) []string {
	if v == "" {
		return values
	}
	for _, existing := range values {
		if existing == v {
			return values
		}
	}
	return append(values, v)
}

// Lookup searches for a term in this dictionary after normalization.
func (d *Dictionary) Lookup(term string) (*Entry, bool) {
	e, ok := d.Entries[d.normalize(term)]
	return e, ok
}

// Values returns the values recorded for term, or nil.
func (d *Dictionary) Values(term string) []string {
	if e, ok := d.Lookup(term); ok {
		return e.Values
	}
	return nil
}

// Has reports whether term is a key of this dictionary.
func (d *Dictionary) Has(term string) bool {
	_, ok := d.Lookup(term)
	return ok
}

// Keys returns every key in sorted order.
func (d *Dictionary) Keys() []string {
	keys := make([]string, 0, len(d.Entries))
	for k := range d.Entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of keys.
func (d *Dictionary) Len() int {
	return len(d.Entries)
}

// NormalizeTerm applies this dictionary's normalizer to a term.
func (d *Dictionary) NormalizeTerm(term string) string {
	return d.normalize(term)
}

func isUTF8(enc string) bool {
	e := strings.ToLower(strings.ReplaceAll(enc, "-", ""))
	return e == "utf8" || e == ""
}
