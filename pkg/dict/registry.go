package dict

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// Registry holds all loaded tables and serves lookups across them.
type Registry struct {
	mu        sync.RWMutex
	dicts     map[string]*Dictionary
	tablesDir string
}

// NewRegistry creates a new empty registry for the given directory.
func NewRegistry(tablesDir string) *Registry {
	return &Registry{
		dicts:     make(map[string]*Dictionary),
		tablesDir: tablesDir,
	}
}

// Load scans the tables directory and loads every table. A missing
// directory yields an empty registry.
func (r *Registry) Load() error {
	entries, err := os.ReadDir(r.tablesDir)
	if err != nil {
		if os.IsNotExist(err) {
			r.mu.Lock()
			r.dicts = make(map[string]*Dictionary)
			r.mu.Unlock()
			return nil
		}
		return fmt.Errorf("read tables dir %s: %w", r.tablesDir, err)
	}

	newDicts := make(map[string]*Dictionary)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(r.tablesDir, entry.Name())
		if _, err := os.Stat(filepath.Join(dir, "manifest.yaml")); err != nil {
			continue
		}
		d, err := LoadDictionary(dir)
		if err != nil {
			return fmt.Errorf("load table %s: %w", entry.Name(), err)
		}
		newDicts[d.Manifest.ID] = d
	}

	r.mu.Lock()
	r.dicts = newDicts
	r.mu.Unlock()
	return nil
}

// Add registers an already-built table, replacing any table with the same ID.
func (r *Registry) Add(d *Dictionary) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dicts[d.Manifest.ID] = d
}

// Get returns the table with the given ID.
func (r *Registry) Get(id string) (*Dictionary, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.dicts[id]
	return d, ok
}

// ByKind returns the first table of the given kind in ID order.
func (r *Registry) ByKind(kind string) (*Dictionary, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, id := range r.sortedIDs() {
		if d := r.dicts[id]; d.Manifest.Kind == kind {
			return d, true
		}
	}
	return nil, false
}

// Match is a single table hit for a looked-up term.
type Match struct {
	TableID string            `json:"table_id"`
	Kind    string            `json:"kind"`
	Values  []string          `json:"values,omitempty"`
	Meta    map[string]string `json:"metadata,omitempty"`
}

// LookupResult is the response for a single term lookup.
type LookupResult struct {
	Term    string  `json:"term"`
	Matches []Match `json:"matches"`
}

// LookupOptions are optional filters for Lookup.
type LookupOptions struct {
	Kinds  []string
	Tables []string
}

// Lookup searches a term across all (or filtered) tables.
// Tables are iterated in sorted ID order for deterministic results.
func (r *Registry) Lookup(term string, opts *LookupOptions) *LookupResult {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := &LookupResult{Term: term, Matches: []Match{}}
	for _, id := range r.sortedIDs() {
		d := r.dicts[id]
		if opts != nil {
			if len(opts.Kinds) > 0 && !contains(opts.Kinds, d.Manifest.Kind) {
				continue
			}
			if len(opts.Tables) > 0 && !contains(opts.Tables, d.Manifest.ID) {
				continue
			}
		}
		entry, ok := d.Lookup(term)
		if !ok {
			continue
		}
		result.Matches = append(result.Matches, Match{
			TableID: d.Manifest.ID,
			Kind:    d.Manifest.Kind,
			Values:  entry.Values,
			Meta:    entry.Metadata,
		})
	}
	return result
}

// TableInfo is the public metadata for a loaded table.
type TableInfo struct {
	ID        string `json:"id"`
	Version   string `json:"version"`
	Kind      string `json:"kind"`
	Source    string `json:"source"`
	SourceURL string `json:"source_url,omitempty"`
	License   string `json:"license"`
	Entries   int    `json:"entries"`
}

// ListTables returns metadata for all loaded tables, sorted by ID.
func (r *Registry) ListTables() []TableInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]TableInfo, 0, len(r.dicts))
	for _, id := range r.sortedIDs() {
		d := r.dicts[id]
		infos = append(infos, TableInfo{
			ID:        d.Manifest.ID,
			Version:   d.Manifest.Version,
			Kind:      d.Manifest.Kind,
			Source:    d.Manifest.Source,
			SourceURL: d.Manifest.SourceURL,
			License:   d.Manifest.License,
			Entries:   len(d.Entries),
		})
	}
	return infos
}

// TableCount returns the number of loaded tables.
func (r *Registry) TableCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.dicts)
}

// TotalEntries returns the total number of entries across all tables.
func (r *Registry) TotalEntries() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	total := 0
	for _, d := range r.dicts {
		total += len(d.Entries)
	}
	return total
}

// sortedIDs must be called with r.mu held.
func (r *Registry) sortedIDs() []string {
	ids := make([]string, 0, len(r.dicts))
	for id := range r.dicts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func contains(slice []string, s string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}
