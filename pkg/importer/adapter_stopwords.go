package importer

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/hazyhaar/zhanalyzer/pkg/dict"
)

func init() {
	Register(&stopwordsAdapter{})
}

// stopwordsAdapter imports the stopwords-iso Chinese list. Only entries made
// of Han ideographs are kept: the stopword filter runs on ideographic text.
type stopwordsAdapter struct{}

func (a *stopwordsAdapter) ID() string          { return "stopwords-iso-zh" }
func (a *stopwordsAdapter) TableID() string     { return "stopwords-iso-zh" }
func (a *stopwordsAdapter) Kind() string        { return dict.KindStopwords }
func (a *stopwordsAdapter) Description() string { return "stopwords-iso Chinese stopword list" }
func (a *stopwordsAdapter) DefaultURL() string {
	return "https://raw.githubusercontent.com/stopwords-iso/stopwords-zh/master/stopwords-zh.txt"
}
func (a *stopwordsAdapter) License() string { return "MIT" }

func (a *stopwordsAdapter) Import(ctx context.Context, sourceURL, outputDir string, logger *slog.Logger) error {
	dlDir := filepath.Join(outputDir, "_download", a.ID())
	if err := ensureDir(dlDir); err != nil {
		return err
	}
	defer os.RemoveAll(dlDir)

	path := filepath.Join(dlDir, "stopwords-zh.txt")
	logger.Info("downloading", "source", a.ID(), "url", sourceURL)
	if err := downloadFile(ctx, sourceURL, path); err != nil {
		return fmt.Errorf("download: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	entries, err := parseStopwords(f)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	logger.Info("parsed", "source", a.ID(), "entries", len(entries))

	return writeTable(outputDir, &dict.Manifest{
		ID:        a.TableID(),
		Version:   importVersion(),
		Kind:      a.Kind(),
		Source:    "stopwords-iso",
		SourceURL: sourceURL,
		License:   a.License(),
	}, entries)
}

// parseStopwords reads one word per line. The list contains bare quote
// characters, so it is scanned by line rather than as CSV.
func parseStopwords(r io.Reader) (map[string]*dict.Entry, error) {
	entries := make(map[string]*dict.Entry)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		w := strings.TrimSpace(sc.Text())
		if w == "" || !allHan(w) {
			continue
		}
		entries[w] = &dict.Entry{}
	}
	return entries, sc.Err()
}

func allHan(s string) bool {
	for _, r := range s {
		if !unicode.Is(unicode.Han, r) {
			return false
		}
	}
	return true
}
