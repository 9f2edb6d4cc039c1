package dict

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/encoding/traditionalchinese"
)

// writeTestDict writes a minimal manifest + TSV in a temp directory and returns the dir.
func writeTestDict(t *testing.T, id, kind, extra, data string) string {
	t.Helper()
	dir := t.TempDir()
	dictDir := filepath.Join(dir, id)
	os.MkdirAll(dictDir, 0o755)

	manifest := `id: ` + id + `
version: "1.0"
kind: ` + kind + `
source: unit test
data_file: data.tsv
` + extra
	os.WriteFile(filepath.Join(dictDir, "manifest.yaml"), []byte(manifest), 0o644)
	os.WriteFile(filepath.Join(dictDir, "data.tsv"), []byte(data), 0o644)
	return dir
}

func TestLoadDictionary(t *testing.T) {
	dir := writeTestDict(t, "tc2sc", KindTC2SC, "",
		"# traditional\tsimplified\n國\t国\n語\t语\n著\t着 著\n")

	d, err := LoadDictionary(filepath.Join(dir, "tc2sc"))
	if err != nil {
		t.Fatalf("LoadDictionary: %v", err)
	}
	if d.Manifest.ID != "tc2sc" {
		t.Errorf("ID = %q, want tc2sc", d.Manifest.ID)
	}
	if d.Len() != 3 {
		t.Errorf("entries = %d, want 3", d.Len())
	}
	if got := d.Values("國"); len(got) != 1 || got[0] != "国" {
		t.Errorf("Values(國) = %v, want [国]", got)
	}
	if got := d.Values("著"); len(got) != 2 || got[0] != "着" || got[1] != "著" {
		t.Errorf("Values(著) = %v, want [着 著]", got)
	}
	if d.Values("国") != nil {
		t.Error("Values(国) should be nil for a simplified key")
	}
}

func TestLoadDictionary_MergesDuplicateKeys(t *testing.T) {
	dir := writeTestDict(t, "readings", KindReadings, "",
		"中\tzhong1\n中\tzhong4\n中\tzhong1\n")

	d, err := LoadDictionary(filepath.Join(dir, "readings"))
	if err != nil {
		t.Fatalf("LoadDictionary: %v", err)
	}
	got := d.Values("中")
	if len(got) != 2 || got[0] != "zhong1" || got[1] != "zhong4" {
		t.Errorf("Values(中) = %v, want [zhong1 zhong4]", got)
	}
}

func TestLoadDictionary_HeaderAndMetadata(t *testing.T) {
	extra := `format:
  delimiter: ";"
  has_header: true
  key_column: "char"
  value_column: "syn"
  value_separator: ","
metadata_columns:
  - name: note
    column: "comment"
`
	dir := writeTestDict(t, "syn", KindSynonyms, extra,
		"comment;char;syn\narchaic;丘;坵,𠀉\n")

	d, err := LoadDictionary(filepath.Join(dir, "syn"))
	if err != nil {
		t.Fatalf("LoadDictionary: %v", err)
	}
	entry, ok := d.Lookup("丘")
	if !ok {
		t.Fatal("expected key 丘")
	}
	if len(entry.Values) != 2 || entry.Values[0] != "坵" {
		t.Errorf("values = %v, want [坵 𠀉]", entry.Values)
	}
	if entry.Metadata["note"] != "archaic" {
		t.Errorf("note = %q, want archaic", entry.Metadata["note"])
	}
}

func TestLoadDictionary_Stopwords(t *testing.T) {
	dir := writeTestDict(t, "stop", KindStopwords, "", "的\n了\n\n是\n")

	d, err := LoadDictionary(filepath.Join(dir, "stop"))
	if err != nil {
		t.Fatalf("LoadDictionary: %v", err)
	}
	keys := d.Keys()
	if len(keys) != 3 {
		t.Fatalf("keys = %v, want 3 stopwords", keys)
	}
	if !d.Has("的") || d.Has("國") {
		t.Error("Has mismatch for stopword table")
	}
}

func TestLoadDictionary_Big5(t *testing.T) {
	encoded, err := traditionalchinese.Big5.NewEncoder().String("國\tguo\n")
	if err != nil {
		t.Fatalf("encode big5: %v", err)
	}
	extra := "format:\n  encoding: big5\n"
	dir := writeTestDict(t, "big5", KindSynonyms, extra, encoded)

	d, err := LoadDictionary(filepath.Join(dir, "big5"))
	if err != nil {
		t.Fatalf("LoadDictionary: %v", err)
	}
	if !d.Has("國") {
		t.Error("expected Big5 key 國 to be decoded")
	}
}

func TestLoadDictionary_MissingKeyColumn(t *testing.T) {
	extra := `format:
  delimiter: ";"
  has_header: true
  key_column: "nonexistent"
`
	dir := writeTestDict(t, "bad", KindTC2SC, extra, "char;simp\n國;国\n")

	if _, err := LoadDictionary(filepath.Join(dir, "bad")); err == nil {
		t.Error("expected error for missing key column")
	}
}

func TestLoadManifest_UnknownKind(t *testing.T) {
	dir := writeTestDict(t, "odd", "surnames", "", "a\tb\n")
	if _, err := LoadDictionary(filepath.Join(dir, "odd")); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestLoadDictionary_MissingDataFile(t *testing.T) {
	dir := writeTestDict(t, "nodata", KindTC2SC, "", "")
	os.Remove(filepath.Join(dir, "nodata", "data.tsv"))
	if _, err := LoadDictionary(filepath.Join(dir, "nodata")); err == nil {
		t.Error("expected error for missing data file")
	}
}

func TestNew(t *testing.T) {
	d := New("mem", KindAlternates, map[string]*Entry{"為": {Values: []string{"爲"}}})
	if got := d.Values("為"); len(got) != 1 || got[0] != "爲" {
		t.Errorf("Values(為) = %v, want [爲]", got)
	}
	if New("empty", KindAlternates, nil).Len() != 0 {
		t.Error("nil entries should give an empty table")
	}
}
