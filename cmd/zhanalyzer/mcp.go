package main

import (
	"flag"

	"github.com/hazyhaar/zhanalyzer/pkg/api"
	"github.com/mark3labs/mcp-go/server"
)

// cmdMCP serves the tools over stdio. Logs go to stderr so stdout stays
// reserved for the protocol.
func cmdMCP(args []string) error {
	fs := flag.NewFlagSet("mcp", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	fs.Parse(args)

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}
	logger := newLogger(cfg.LogLevel)

	st, err := buildState(cfg, logger)
	if err != nil {
		return err
	}

	srv := server.NewMCPServer("zhanalyzer", version, server.WithToolCapabilities(false))
	api.RegisterMCPTools(srv, api.NewService(st, logger))
	return server.ServeStdio(srv)
}
