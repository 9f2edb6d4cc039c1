package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hazyhaar/zhanalyzer/pkg/importer"
)

func cmdImport(args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	source := fs.String("source", "", "adapter ID to import (e.g. unihan-readings)")
	all := fs.Bool("all", false, "import all available sources")
	outputDir := fs.String("output-dir", "tables", "output directory for tables")
	setURL := fs.String("set-url", "", "override the source URL of --source before importing")
	fs.Parse(args)

	logger := newLogger("info")

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		return err
	}
	sdb, err := importer.OpenSourceDB(filepath.Join(*outputDir, "sources.db"))
	if err != nil {
		return err
	}
	defer sdb.Close()

	if err := sdb.Seed(importer.All()); err != nil {
		return err
	}

	if !*all && *source == "" {
		return listSources(sdb)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Hour)
	defer cancel()

	run := func(a importer.Adapter) error {
		url, err := sdb.GetURL(a.ID())
		if err != nil {
			return err
		}
		logger.Info("import started", "source", a.ID(), "table", a.TableID())
		importErr := a.Import(ctx, url, *outputDir, logger)
		if err := sdb.RecordImport(a.ID(), importErr); err != nil {
			logger.Warn("record import", "source", a.ID(), "error", err)
		}
		if importErr != nil {
			return fmt.Errorf("%s: %w", a.ID(), importErr)
		}
		logger.Info("import done", "source", a.ID(), "dir", filepath.Join(*outputDir, a.TableID()))
		return nil
	}

	if *all {
		var errs []error
		for _, a := range importer.All() {
			if err := run(a); err != nil {
				logger.Error("import failed", "error", err)
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}

	a, err := importer.Get(*source)
	if err != nil {
		return err
	}
	if *setURL != "" {
		if err := sdb.SetURL(a.ID(), *setURL); err != nil {
			return err
		}
	}
	return run(a)
}

func listSources(sdb *importer.SourceDB) error {
	sources, err := sdb.ListSources()
	if err != nil {
		return err
	}
	fmt.Println("Available sources:")
	fmt.Println()
	for _, src := range sources {
		status := ""
		if src.LastStatus != nil {
			status = fmt.Sprintf("  [%d]", *src.LastStatus)
		}
		if src.LastImportError != nil {
			status += "  last import failed"
		}
		fmt.Printf("  %-20s  %-10s  %s%s\n", src.AdapterID, src.Kind, src.Description, status)
	}
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  zhanalyzer import --source <id> [--output-dir <dir>] [--set-url <url>]")
	fmt.Println("  zhanalyzer import --all [--output-dir <dir>]")
	return nil
}
