package dict

import (
	"os"
	"path/filepath"
	"testing"
)

func setupRegistry(t *testing.T) (*Registry, string) {
	t.Helper()
	dir := t.TempDir()

	write := func(id, kind, data string) {
		d := filepath.Join(dir, id)
		os.MkdirAll(d, 0o755)
		os.WriteFile(filepath.Join(d, "manifest.yaml"), []byte("id: "+id+"\nversion: \"1.0\"\nkind: "+kind+"\nsource: test\n"), 0o644)
		os.WriteFile(filepath.Join(d, "data.tsv"), []byte(data), 0o644)
	}
	write("opencc-tsc", KindTC2SC, "國\t国\n語\t语\n")
	write("unihan-zvariants", KindAlternates, "國\t囯\n")
	write("unihan-readings", KindReadings, "中\tzhong1 zhong4\n国\tguo2\n")
	// A directory without manifest is ignored.
	os.MkdirAll(filepath.Join(dir, "_download"), 0o755)

	reg := NewRegistry(dir)
	if err := reg.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return reg, dir
}

func TestRegistryLoad(t *testing.T) {
	reg, _ := setupRegistry(t)

	if reg.TableCount() != 3 {
		t.Errorf("TableCount = %d, want 3", reg.TableCount())
	}
	if reg.TotalEntries() != 5 {
		t.Errorf("TotalEntries = %d, want 5", reg.TotalEntries())
	}
}

func TestRegistryLoad_MissingDir(t *testing.T) {
	reg := NewRegistry(filepath.Join(t.TempDir(), "absent"))
	if err := reg.Load(); err != nil {
		t.Fatalf("Load on missing dir: %v", err)
	}
	if reg.TableCount() != 0 {
		t.Errorf("TableCount = %d, want 0", reg.TableCount())
	}
}

func TestRegistryLoad_BadTable(t *testing.T) {
	dir := t.TempDir()
	d := filepath.Join(dir, "broken")
	os.MkdirAll(d, 0o755)
	os.WriteFile(filepath.Join(d, "manifest.yaml"), []byte("version: x\n"), 0o644)

	if err := NewRegistry(dir).Load(); err == nil {
		t.Error("expected error for manifest without id")
	}
}

func TestRegistry_ByKind(t *testing.T) {
	reg, _ := setupRegistry(t)

	d, ok := reg.ByKind(KindReadings)
	if !ok {
		t.Fatal("expected a readings table")
	}
	if d.Manifest.ID != "unihan-readings" {
		t.Errorf("ByKind(readings) = %q", d.Manifest.ID)
	}
	if _, ok := reg.ByKind(KindSynonyms); ok {
		t.Error("no synonyms table was loaded")
	}
}

func TestRegistry_AddAndGet(t *testing.T) {
	reg, _ := setupRegistry(t)
	reg.Add(New("mem-syn", KindSynonyms, map[string]*Entry{"国": {Values: []string{"國"}}}))

	if _, ok := reg.Get("mem-syn"); !ok {
		t.Error("Get(mem-syn) should find the added table")
	}
	if _, ok := reg.ByKind(KindSynonyms); !ok {
		t.Error("ByKind(synonyms) should find the added table")
	}
}

func TestRegistry_Lookup(t *testing.T) {
	reg, _ := setupRegistry(t)

	result := reg.Lookup("國", nil)
	if result.Term != "國" {
		t.Errorf("Term = %q, want 國", result.Term)
	}
	if len(result.Matches) != 2 {
		t.Fatalf("matches = %d, want 2", len(result.Matches))
	}
	if result.Matches[0].TableID != "opencc-tsc" || result.Matches[1].TableID != "unihan-zvariants" {
		t.Errorf("matches not in table order: %+v", result.Matches)
	}

	filtered := reg.Lookup("國", &LookupOptions{Kinds: []string{KindAlternates}})
	if len(filtered.Matches) != 1 || filtered.Matches[0].Values[0] != "囯" {
		t.Errorf("filtered matches = %+v", filtered.Matches)
	}

	byTable := reg.Lookup("國", &LookupOptions{Tables: []string{"unihan-readings"}})
	if len(byTable.Matches) != 0 {
		t.Errorf("expected no matches, got %+v", byTable.Matches)
	}
}

func TestRegistry_ListTables(t *testing.T) {
	reg, _ := setupRegistry(t)
	infos := reg.ListTables()
	if len(infos) != 3 {
		t.Fatalf("infos = %d, want 3", len(infos))
	}
	for i := 1; i < len(infos); i++ {
		if infos[i-1].ID >= infos[i].ID {
			t.Errorf("tables not sorted: %s before %s", infos[i-1].ID, infos[i].ID)
		}
	}
	if infos[1].Kind != KindReadings || infos[1].Entries != 2 {
		t.Errorf("readings info = %+v", infos[1])
	}
}
