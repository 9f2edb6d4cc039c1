package api

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hazyhaar/zhanalyzer/pkg/analysis"
	"github.com/hazyhaar/zhanalyzer/pkg/dict"
	"github.com/hazyhaar/zhanalyzer/pkg/kit"
	"github.com/hazyhaar/zhanalyzer/pkg/pinyin"
)

// maxTextBytes bounds the text accepted by analyze and syllabify.
const maxTextBytes = 64 * 1024

// errBadRequest marks caller mistakes so transports can map them.
var errBadRequest = errors.New("bad request")

// Shared request/response types used by both HTTP and MCP transports.

type analyzeReq struct {
	Profile   string `json:"profile"`
	Field     string `json:"field,omitempty"`
	Text      string `json:"text"`
	Stopwords *bool  `json:"stopwords,omitempty"`
	Variants  *int   `json:"variants,omitempty"`
}

type positionedToken struct {
	analysis.Token
	Position int `json:"position"`
}

type analyzeResponse struct {
	Profile analysis.Profile  `json:"profile"`
	Stages  []string          `json:"stages"`
	Tokens  []positionedToken `json:"tokens"`
}

type syllabifyReq struct {
	Text string
}

type syllabifyResponse struct {
	Text      string           `json:"text"`
	Policy    string           `json:"policy"`
	Syllables []pinyin.Segment `json:"syllables"`
}

type profileInfo struct {
	analysis.Profile
	Stages []string `json:"stages"`
}

type profilesResponse struct {
	Profiles []profileInfo `json:"profiles"`
}

type tablesResponse struct {
	Tables []dict.TableInfo `json:"tables"`
}

type lookupReq struct {
	Term string
	Opts *dict.LookupOptions
}

// Endpoints backed by the service's current state.

func analyzeEndpoint(svc *Service) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*analyzeReq)
		if req.Profile == "" {
			return nil, fmt.Errorf("%w: missing profile", errBadRequest)
		}
		if len(req.Text) > maxTextBytes {
			return nil, fmt.Errorf("%w: text exceeds %d bytes", errBadRequest, maxTextBytes)
		}
		pl, err := pipelineFor(svc.State().Profiles, req)
		if err != nil {
			return nil, err
		}
		tokens := pl.Analyze(req.Field, req.Text)
		positions := analysis.Positions(tokens)
		out := make([]positionedToken, len(tokens))
		for i, tok := range tokens {
			out[i] = positionedToken{Token: tok, Position: positions[i]}
		}
		return analyzeResponse{Profile: pl.Profile(), Stages: pl.Stages(), Tokens: out}, nil
	}
}

// pipelineFor returns the default pipeline unless the request overrides
// stopwords or variants; a missing override takes the profile default.
func pipelineFor(reg *analysis.Registry, req *analyzeReq) (*analysis.Pipeline, error) {
	if req.Stopwords == nil && req.Variants == nil {
		return reg.Get(req.Profile)
	}
	def, err := analysis.Resolve(req.Profile)
	if err != nil {
		return nil, err
	}
	stopwords, variants := def.Stopwords, int(def.Variants)
	if req.Stopwords != nil {
		stopwords = *req.Stopwords
	}
	if req.Variants != nil {
		variants = *req.Variants
	}
	return reg.Custom(req.Profile, stopwords, variants)
}

func syllabifyEndpoint(svc *Service) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*syllabifyReq)
		text := req.Text
		if strings.TrimSpace(text) == "" {
			return nil, fmt.Errorf("%w: missing text", errBadRequest)
		}
		if len(text) > maxTextBytes {
			return nil, fmt.Errorf("%w: text exceeds %d bytes", errBadRequest, maxTextBytes)
		}
		syl := svc.State().Syllabifier
		resp := syllabifyResponse{Text: text, Policy: syl.Policy().String(), Syllables: []pinyin.Segment{}}
		// Chunks are syllabified separately; offsets refer to the text as sent.
		for _, tok := range analysis.NewWhitespaceTokenizer().Tokenize(text) {
			for _, seg := range syl.Segment(tok.Text) {
				seg.Start += tok.Start
				seg.End += tok.Start
				resp.Syllables = append(resp.Syllables, seg)
			}
		}
		return resp, nil
	}
}

func listProfilesEndpoint(svc *Service) kit.Endpoint {
	return func(_ context.Context, _ any) (any, error) {
		reg := svc.State().Profiles
		resp := profilesResponse{Profiles: []profileInfo{}}
		for _, name := range reg.Names() {
			pl, err := reg.Get(name)
			if err != nil {
				return nil, err
			}
			resp.Profiles = append(resp.Profiles, profileInfo{Profile: pl.Profile(), Stages: pl.Stages()})
		}
		return resp, nil
	}
}

func listTablesEndpoint(svc *Service) kit.Endpoint {
	return func(_ context.Context, _ any) (any, error) {
		return tablesResponse{Tables: svc.State().Tables.ListTables()}, nil
	}
}

func lookupEndpoint(svc *Service) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*lookupReq)
		if req.Term == "" {
			return nil, fmt.Errorf("%w: missing term", errBadRequest)
		}
		return svc.State().Tables.Lookup(req.Term, req.Opts), nil
	}
}
