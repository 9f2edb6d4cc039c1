package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/hazyhaar/zhanalyzer/pkg/dict"
)

func init() {
	Register(&openccAdapter{})
}

// openccAdapter builds the tc2sc table from OpenCC's TSCharacters.txt
// ("國<TAB>国", several candidates separated by spaces).
type openccAdapter struct{}

func (a *openccAdapter) ID() string          { return "opencc-tsc" }
func (a *openccAdapter) TableID() string     { return "opencc-tsc" }
func (a *openccAdapter) Kind() string        { return dict.KindTC2SC }
func (a *openccAdapter) Description() string { return "OpenCC Traditional to Simplified characters" }
func (a *openccAdapter) DefaultURL() string {
	return "https://raw.githubusercontent.com/BYVoid/OpenCC/master/data/dictionary/TSCharacters.txt"
}
func (a *openccAdapter) License() string { return "Apache-2.0" }

func (a *openccAdapter) Import(ctx context.Context, sourceURL, outputDir string, logger *slog.Logger) error {
	dlDir := filepath.Join(outputDir, "_download", a.ID())
	if err := ensureDir(dlDir); err != nil {
		return err
	}
	defer os.RemoveAll(dlDir)

	path := filepath.Join(dlDir, "TSCharacters.txt")
	logger.Info("downloading", "source", a.ID(), "url", sourceURL)
	if err := downloadFile(ctx, sourceURL, path); err != nil {
		return fmt.Errorf("download: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	entries, err := parseOpenCC(f)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	logger.Info("parsed", "source", a.ID(), "entries", len(entries))

	return writeTable(outputDir, &dict.Manifest{
		ID:        a.TableID(),
		Version:   importVersion(),
		Kind:      a.Kind(),
		Source:    "OpenCC TSCharacters",
		SourceURL: sourceURL,
		License:   a.License(),
	}, entries)
}

// parseOpenCC keeps the candidates in file order; the converter uses the
// first one.
func parseOpenCC(r io.Reader) (map[string]*dict.Entry, error) {
	cr := newTSVReader(r)
	entries := make(map[string]*dict.Entry)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) < 2 {
			continue
		}
		for _, v := range strings.Fields(record[1]) {
			addValue(entries, record[0], v)
		}
	}
	return entries, nil
}
