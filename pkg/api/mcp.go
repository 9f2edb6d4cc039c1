package api

import (
	"fmt"

	"github.com/hazyhaar/zhanalyzer/pkg/kit"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterMCPTools registers the zhanalyzer MCP tools on the server.
func RegisterMCPTools(srv *server.MCPServer, svc *Service) {
	wrap := func(name string, ep kit.Endpoint) kit.Endpoint {
		return kit.Chain(kit.RequestID(), kit.Logging(svc.logger, name))(ep)
	}

	kit.RegisterMCPTool(srv, mcp.NewTool("analyze_text",
		mcp.WithDescription("Analyze Chinese text (Traditional, Simplified or Pinyin) into index tokens for a profile such as TC2SC or SC2PYlazy."),
		mcp.WithString("profile", mcp.Required(), mcp.Description("Profile name, e.g. TC, TC2SC, SC2PYlazy, PYstrict")),
		mcp.WithString("text", mcp.Required(), mcp.Description("The text to analyze")),
		mcp.WithBoolean("stopwords", mcp.Description("Override stopword removal")),
		mcp.WithNumber("variants", mcp.Description("Override variant expansion: 0 none, 1 synonyms, 2 alternates, 3 both")),
	), wrap("analyze", analyzeEndpoint(svc)), decodeAnalyze)

	kit.RegisterMCPTool(srv, mcp.NewTool("syllabify",
		mcp.WithDescription("Split unspaced Pinyin into syllables by longest match."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Pinyin text, e.g. nihao or ni3hao3")),
	), wrap("syllabify", syllabifyEndpoint(svc)), decodeSyllabify)

	kit.RegisterMCPTool(srv, mcp.NewTool("list_profiles",
		mcp.WithDescription("List the enabled analysis profiles with their encodings and stages."),
	), wrap("list_profiles", listProfilesEndpoint(svc)), decodeNone)

	kit.RegisterMCPTool(srv, mcp.NewTool("list_tables",
		mcp.WithDescription("List loaded lookup tables (script conversion, readings, variants, stopwords)."),
	), wrap("list_tables", listTablesEndpoint(svc)), decodeNone)

	kit.RegisterMCPTool(srv, mcp.NewTool("lookup_term",
		mcp.WithDescription("Look up a character or word in every loaded table."),
		mcp.WithString("term", mcp.Required(), mcp.Description("The character or word")),
	), wrap("lookup", lookupEndpoint(svc)), decodeLookup)
}

func decodeAnalyze(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
	args := req.GetArguments()
	out := &analyzeReq{
		Profile: kit.StringArg(args, "profile"),
		Text:    kit.RawStringArg(args, "text"),
	}
	if out.Profile == "" {
		return nil, fmt.Errorf("profile is required")
	}
	if v, ok := kit.BoolArg(args, "stopwords"); ok {
		out.Stopwords = &v
	}
	n, ok, err := kit.IntArg(args, "variants")
	if err != nil {
		return nil, err
	}
	if ok {
		out.Variants = &n
	}
	return &kit.MCPDecodeResult{Request: out}, nil
}

func decodeSyllabify(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
	return &kit.MCPDecodeResult{Request: &syllabifyReq{Text: kit.RawStringArg(req.GetArguments(), "text")}}, nil
}

func decodeLookup(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
	return &kit.MCPDecodeResult{Request: &lookupReq{Term: kit.StringArg(req.GetArguments(), "term")}}, nil
}

func decodeNone(_ mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
	return &kit.MCPDecodeResult{Request: nil}, nil
}
