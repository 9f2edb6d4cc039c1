package dict

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
)

// loadGob decodes a table written by SaveGob into d.Entries. Keys are
// re-normalized so a table saved under another form still matches.
func (d *Dictionary) loadGob(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open table data: %w", err)
	}
	defer f.Close()

	var raw map[string]*Entry
	if err := gob.NewDecoder(f).Decode(&raw); err != nil {
		return fmt.Errorf("decode table data %s: %w", path, err)
	}
	norm := d.normalize
	if norm == nil {
		norm = NormalizeNFC
	}
	for k, e := range raw {
		d.Entries[norm(k)] = e
	}
	return nil
}

// SaveGob writes entries to path. The data goes to a temporary sibling
// that is synced and renamed, so readers never see a partial table.
func SaveGob(entries map[string]*Entry, path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".table-*")
	if err != nil {
		return fmt.Errorf("save table data: %w", err)
	}
	tmpPath := tmp.Name()

	err = gob.NewEncoder(tmp).Encode(entries)
	if err == nil {
		err = tmp.Sync()
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(tmpPath, path)
	}
	if err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("save table data %s: %w", path, err)
	}
	return nil
}
