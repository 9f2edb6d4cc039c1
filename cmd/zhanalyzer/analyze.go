package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hazyhaar/zhanalyzer/pkg/analysis"
	"github.com/hazyhaar/zhanalyzer/pkg/pinyin"
)

// cmdAnalyze prints one token per line: position, offsets, increment, text.
// Text comes from the arguments, or stdin when there are none.
func cmdAnalyze(args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	profile := fs.String("profile", "TC", "analysis profile")
	stopwords := fs.Bool("stopwords", false, "override stopword removal")
	variants := fs.Int("variants", 0, "override variant level (0-3)")
	fs.Parse(args)

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}
	cfg.Profiles = []string{*profile}
	logger := newLogger(cfg.LogLevel)

	st, err := buildState(cfg, logger)
	if err != nil {
		return err
	}

	pl, err := st.Profiles.Get(*profile)
	if err != nil {
		return err
	}
	if set["stopwords"] || set["variants"] {
		def := pl.Profile()
		sw, v := def.Stopwords, int(def.Variants)
		if set["stopwords"] {
			sw = *stopwords
		}
		if set["variants"] {
			v = *variants
		}
		if pl, err = st.Profiles.Custom(*profile, sw, v); err != nil {
			return err
		}
	}

	text := strings.Join(fs.Args(), " ")
	if text == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		text = string(data)
	}

	w := bufio.NewWriter(os.Stdout)
	tokens := pl.Analyze("", text)
	for i, pos := range analysis.Positions(tokens) {
		tok := tokens[i]
		fmt.Fprintf(w, "%d\t%d-%d\t+%d\t%s\n", pos, tok.Start, tok.End, tok.PosInc, tok.Text)
	}
	return w.Flush()
}

func cmdCompileTrie(args []string) error {
	fs := flag.NewFlagSet("compile-trie", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	out := fs.String("out", "", "output path (default: trie_path from config)")
	fs.Parse(args)

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}
	logger := newLogger(cfg.LogLevel)
	if *out == "" {
		*out = cfg.TriePath
	}

	t, err := pinyin.Build()
	if err != nil {
		return err
	}
	if err := pinyin.Store(t, *out); err != nil {
		return err
	}
	logger.Info("trie stored", "path", *out, "forms", t.Len(), "nodes", t.Nodes())
	return nil
}
