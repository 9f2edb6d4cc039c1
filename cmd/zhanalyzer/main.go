package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/hazyhaar/zhanalyzer/pkg/analysis"
	"github.com/hazyhaar/zhanalyzer/pkg/api"
	"github.com/hazyhaar/zhanalyzer/pkg/dict"
	"github.com/hazyhaar/zhanalyzer/pkg/pinyin"
	"gopkg.in/yaml.v3"
)

var version = "dev"

type config struct {
	Addr            string        `yaml:"addr"`
	TablesDir       string        `yaml:"tables_dir"`
	TriePath        string        `yaml:"trie_path"`
	SyllabifyPolicy string        `yaml:"syllabify_policy"`
	SyllabifyCache  int           `yaml:"syllabify_cache"`
	CheckInterval   time.Duration `yaml:"check_interval"`
	Profiles        []string      `yaml:"profiles"`
	LogLevel        string        `yaml:"log_level"`
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "serve":
		err = cmdServe(os.Args[2:])
	case "mcp":
		err = cmdMCP(os.Args[2:])
	case "analyze":
		err = cmdAnalyze(os.Args[2:])
	case "compile-trie":
		err = cmdCompileTrie(os.Args[2:])
	case "import":
		err = cmdImport(os.Args[2:])
	case "version":
		fmt.Println(version)
	default:
		usage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "zhanalyzer %s: %v\n", os.Args[1], err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: zhanalyzer <command> [flags]

Commands:
  serve          Start the HTTP server
  mcp            Serve MCP tools on stdin/stdout
  analyze        Analyze text with a profile and print the tokens
  compile-trie   Build the Pinyin syllable trie and store it
  import         Download and build lookup tables
  version        Print the version

Profiles: %s
`, strings.Join(analysis.Names(), ", "))
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func defaultConfig() config {
	return config{
		Addr:            ":8421",
		TablesDir:       "tables",
		TriePath:        "pinyin.trie",
		SyllabifyPolicy: pinyin.PolicyEmitRune.String(),
		SyllabifyCache:  pinyin.DefaultCacheSize,
		CheckInterval:   24 * time.Hour,
		LogLevel:        "info",
	}
}

// loadConfig reads path over the defaults. A missing file is not an error.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// buildState loads the trie and the tables and assembles the configured
// profiles. Any missing piece is fatal.
func buildState(cfg config, logger *slog.Logger) (*api.State, error) {
	trie, err := pinyin.LoadOrBuild(cfg.TriePath, logger)
	if err != nil {
		return nil, err
	}
	policy, err := pinyin.ParsePolicy(cfg.SyllabifyPolicy)
	if err != nil {
		return nil, err
	}
	syl, err := pinyin.NewSyllabifier(trie,
		pinyin.WithPolicy(policy),
		pinyin.WithCacheSize(cfg.SyllabifyCache),
	)
	if err != nil {
		return nil, err
	}

	tables := dict.NewRegistry(cfg.TablesDir)
	if err := tables.Load(); err != nil {
		return nil, err
	}
	logger.Info("tables loaded", "dir", cfg.TablesDir, "count", tables.TableCount(), "entries", tables.TotalEntries())

	profiles, err := analysis.NewRegistry(analysis.ResourcesFromTables(tables, syl), cfg.Profiles...)
	if err != nil {
		if len(tables.ListTables()) == 0 {
			return nil, fmt.Errorf("%w (no tables in %s; run zhanalyzer import --all or restrict profiles)", err, cfg.TablesDir)
		}
		return nil, err
	}
	logger.Info("profiles assembled", "profiles", strings.Join(profiles.Names(), ","), "policy", policy)

	return &api.State{Tables: tables, Profiles: profiles, Syllabifier: syl}, nil
}
