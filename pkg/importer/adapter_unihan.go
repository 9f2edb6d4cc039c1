package importer

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hazyhaar/zhanalyzer/pkg/dict"
	"github.com/hazyhaar/zhanalyzer/pkg/pinyin"
)

const unihanURL = "https://www.unicode.org/Public/UCD/latest/ucd/Unihan.zip"

func init() {
	Register(&unihanAdapter{
		id:    "unihan-readings",
		kind:  dict.KindReadings,
		file:  "Unihan_Readings.txt",
		field: "kMandarin",
		desc:  "Unihan kMandarin readings (ideogram -> numbered Pinyin)",
		value: parseMandarin,
	})
	Register(&unihanAdapter{
		id:    "unihan-semantic",
		kind:  dict.KindSynonyms,
		file:  "Unihan_Variants.txt",
		field: "kSemanticVariant",
		desc:  "Unihan semantic variants (ideogram -> synonymous ideograms)",
		value: parseVariantRefs,
	})
	Register(&unihanAdapter{
		id:    "unihan-zvariants",
		kind:  dict.KindAlternates,
		file:  "Unihan_Variants.txt",
		field: "kZVariant",
		desc:  "Unihan z-variants (ideogram -> graphical alternates)",
		value: parseVariantRefs,
	})
}

// unihanAdapter extracts one field of one Unihan database file.
type unihanAdapter struct {
	id    string
	kind  string
	file  string
	field string
	desc  string
	value func(raw string) ([]string, error)
}

func (a *unihanAdapter) ID() string          { return a.id }
func (a *unihanAdapter) TableID() string     { return a.id }
func (a *unihanAdapter) Kind() string        { return a.kind }
func (a *unihanAdapter) Description() string { return a.desc }
func (a *unihanAdapter) DefaultURL() string  { return unihanURL }
func (a *unihanAdapter) License() string     { return "Unicode-3.0" }

func (a *unihanAdapter) Import(ctx context.Context, sourceURL, outputDir string, logger *slog.Logger) error {
	dlDir := filepath.Join(outputDir, "_download", a.id)
	if err := ensureDir(dlDir); err != nil {
		return err
	}
	defer os.RemoveAll(dlDir)

	zipPath := filepath.Join(dlDir, "Unihan.zip")
	logger.Info("downloading", "source", a.id, "url", sourceURL)
	if err := downloadFile(ctx, sourceURL, zipPath); err != nil {
		return fmt.Errorf("download: %w", err)
	}

	files, err := unzipFile(zipPath, dlDir, func(name string) bool { return name == a.file })
	if err != nil {
		return fmt.Errorf("unzip: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%s not found in archive", a.file)
	}

	f, err := os.Open(files[0])
	if err != nil {
		return err
	}
	defer f.Close()

	entries, err := a.parse(f)
	if err != nil {
		return fmt.Errorf("parse %s: %w", a.file, err)
	}
	logger.Info("parsed", "source", a.id, "field", a.field, "entries", len(entries))

	return writeTable(outputDir, &dict.Manifest{
		ID:        a.id,
		Version:   importVersion(),
		Kind:      a.kind,
		Source:    "Unicode Han Database (" + a.field + ")",
		SourceURL: sourceURL,
		License:   a.License(),
	}, entries)
}

// parse reads "U+4E2D<TAB>kMandarin<TAB>zhōng" records, keeping those of
// the adapter's field. kDefinition values hold unbalanced quotes, so the
// file is split by line instead of read as CSV.
func (a *unihanAdapter) parse(r io.Reader) (map[string]*dict.Entry, error) {
	entries := make(map[string]*dict.Entry)
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if text == "" || text[0] == '#' {
			continue
		}
		fields := strings.SplitN(text, "\t", 3)
		if len(fields) < 3 || fields[1] != a.field {
			continue
		}
		char, err := parseCodepoint(fields[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		values, err := a.value(fields[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		for _, v := range values {
			if v != char {
				addValue(entries, char, v)
			}
		}
	}
	return entries, sc.Err()
}

// parseCodepoint turns "U+570B" into "國".
func parseCodepoint(s string) (string, error) {
	hex, ok := strings.CutPrefix(strings.TrimSpace(s), "U+")
	if !ok {
		return "", fmt.Errorf("bad code point %q", s)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return "", fmt.Errorf("bad code point %q: %w", s, err)
	}
	return string(rune(n)), nil
}

// parseMandarin converts the space-separated kMandarin readings to numbered
// Pinyin.
func parseMandarin(raw string) ([]string, error) {
	var out []string
	for _, r := range strings.Fields(raw) {
		out = append(out, pinyin.MarkedToNumbered(r))
	}
	return out, nil
}

// parseVariantRefs reads "U+56EF<kMatthews U+56FD" into the referenced
// characters; source tags after '<' are dropped.
func parseVariantRefs(raw string) ([]string, error) {
	var out []string
	for _, ref := range strings.Fields(raw) {
		cp, _, _ := strings.Cut(ref, "<")
		char, err := parseCodepoint(cp)
		if err != nil {
			return nil, err
		}
		out = append(out, char)
	}
	return out, nil
}
