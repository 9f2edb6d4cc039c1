package dict

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Table kinds understood by the analysis pipeline.
const (
	KindTC2SC      = "tc2sc"      // Traditional ideogram -> Simplified form(s)
	KindSynonyms   = "synonyms"   // ideogram -> linguistically equivalent forms
	KindAlternates = "alternates" // ideogram -> graphical variant glyphs
	KindReadings   = "readings"   // ideogram -> strict numbered Pinyin readings
	KindStopwords  = "stopwords"  // keys only
)

var knownKinds = map[string]bool{
	KindTC2SC:      true,
	KindSynonyms:   true,
	KindAlternates: true,
	KindReadings:   true,
	KindStopwords:  true,
}

// Manifest describes a table: its source, kind, and how to read its data.
type Manifest struct {
	ID           string           `yaml:"id" json:"id"`
	Version      string           `yaml:"version" json:"version"`
	Kind         string           `yaml:"kind" json:"kind"`
	Source       string           `yaml:"source" json:"source"`
	SourceURL    string           `yaml:"source_url" json:"source_url,omitempty"`
	License      string           `yaml:"license" json:"license"`
	DataFile     string           `yaml:"data_file" json:"data_file"`
	Format       FormatSpec       `yaml:"format" json:"-"`
	MetadataCols []MetadataColumn `yaml:"metadata_columns,omitempty" json:"-"`
}

// FormatSpec describes the delimited text layout.
type FormatSpec struct {
	Delimiter      string `yaml:"delimiter,omitempty"`
	Encoding       string `yaml:"encoding,omitempty"`
	HasHeader      bool   `yaml:"has_header,omitempty"`
	KeyColumn      string `yaml:"key_column,omitempty"`
	ValueColumn    string `yaml:"value_column,omitempty"`
	ValueSeparator string `yaml:"value_separator,omitempty"`
	Normalize      string `yaml:"normalize,omitempty"`
}

// MetadataColumn maps a logical name to a column.
type MetadataColumn struct {
	Name   string `yaml:"name"`
	Column string `yaml:"column"`
}

// LoadManifest reads and parses a manifest.yaml file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	if m.ID == "" {
		return nil, fmt.Errorf("manifest %s: missing id", path)
	}
	if !knownKinds[m.Kind] {
		return nil, fmt.Errorf("manifest %s: unknown kind %q", path, m.Kind)
	}
	if m.DataFile == "" {
		m.DataFile = "data.tsv"
	}
	return &m, nil
}
