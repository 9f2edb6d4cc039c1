package analysis

import (
	"fmt"

	"github.com/hazyhaar/zhanalyzer/pkg/dict"
	"github.com/hazyhaar/zhanalyzer/pkg/pinyin"
)

// Resources holds the shared, read-only data a pipeline may need. Fields a
// profile does not use may be left nil.
type Resources struct {
	Syllabifier *pinyin.Syllabifier
	Converter   Converter
	Readings    Table
	Synonyms    Table
	Alternates  Table
	Stopwords   []string
}

// ResourcesFromTables picks the first table of each kind from reg. Missing
// kinds stay nil and only fail assembly for profiles that need them.
func ResourcesFromTables(reg *dict.Registry, syl *pinyin.Syllabifier) *Resources {
	res := &Resources{Syllabifier: syl}
	if d, ok := reg.ByKind(dict.KindTC2SC); ok {
		res.Converter = NewTableConverter(d)
	}
	if d, ok := reg.ByKind(dict.KindReadings); ok {
		res.Readings = d
	}
	if d, ok := reg.ByKind(dict.KindSynonyms); ok {
		res.Synonyms = d
	}
	if d, ok := reg.ByKind(dict.KindAlternates); ok {
		res.Alternates = d
	}
	if d, ok := reg.ByKind(dict.KindStopwords); ok {
		res.Stopwords = d.Keys()
	}
	return res
}

// Pipeline is an assembled analyzer for one profile.
type Pipeline struct {
	profile   Profile
	filters   []CharFilter
	tokenizer Tokenizer
	stages    []Stage
}

var _ Analyzer = (*Pipeline)(nil)

// Assemble builds the pipeline for p. Every resource the profile needs must
// be present in res.
func Assemble(p Profile, res *Resources) (*Pipeline, error) {
	if res == nil {
		res = &Resources{}
	}
	if !p.Variants.Valid() {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidVariants, p.Variants)
	}
	pl := &Pipeline{profile: p}

	if p.Input.IsIdeographic() {
		if p.Stopwords {
			if res.Stopwords == nil {
				return nil, missing(p, "stopwords")
			}
			pl.filters = append(pl.filters, NewStopwordFilter(res.Stopwords))
		}
		pl.tokenizer = NewStandardTokenizer()
		pl.stages = append(pl.stages, NewScriptFilter())

		if p.Variants.Synonyms() {
			if res.Synonyms == nil {
				return nil, missing(p, "synonyms table")
			}
			pl.stages = append(pl.stages, NewSynonymFilter(res.Synonyms))
		}
		if p.Variants.Alternates() {
			if res.Alternates == nil {
				return nil, missing(p, "alternates table")
			}
			pl.stages = append(pl.stages, NewAlternatesFilter(res.Alternates))
		}

		switch {
		case p.Input == EncodingTC && p.Index == EncodingSC:
			if res.Converter == nil {
				return nil, missing(p, "tc2sc table")
			}
			pl.stages = append(pl.stages, NewConvertFilter(res.Converter))
		case p.Index.IsPinyin():
			if res.Readings == nil {
				return nil, missing(p, "readings table")
			}
			pl.stages = append(pl.stages, NewRomanizeFilter(res.Readings))
			if p.Index == EncodingPYlazy {
				pl.stages = append(pl.stages, NewLazyFilter())
			}
		}
		return pl, nil
	}

	if res.Syllabifier == nil {
		return nil, missing(p, "syllabifier")
	}
	pl.tokenizer = NewWhitespaceTokenizer()
	pl.stages = append(pl.stages, NewSyllabifyFilter(res.Syllabifier))
	if p.Index == EncodingPYlazy && p.Input != EncodingPYlazy {
		pl.stages = append(pl.stages, NewLazyFilter())
	}
	return pl, nil
}

func missing(p Profile, what string) error {
	return fmt.Errorf("%w: profile %s needs %s", ErrMissingResource, p.Name, what)
}

// Profile returns the profile the pipeline was assembled for.
func (pl *Pipeline) Profile() Profile { return pl.profile }

// Stages lists the names of the pipeline steps in execution order.
func (pl *Pipeline) Stages() []string {
	names := make([]string, 0, len(pl.filters)+1+len(pl.stages))
	for _, f := range pl.filters {
		names = append(names, f.Name())
	}
	names = append(names, pl.tokenizer.Name())
	for _, s := range pl.stages {
		names = append(names, s.Name())
	}
	return names
}

// Analyze runs text through the pipeline. The field name is accepted for
// parity with per-field analyzers and does not change the output.
func (pl *Pipeline) Analyze(field, text string) []Token {
	for _, f := range pl.filters {
		text = f.Filter(text)
	}
	tokens := pl.tokenizer.Tokenize(text)
	for _, s := range pl.stages {
		if len(tokens) == 0 {
			break
		}
		tokens = s.Apply(tokens)
	}
	return tokens
}
