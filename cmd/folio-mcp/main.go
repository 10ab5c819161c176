package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "folio/internal/adapters/mcp"
	"folio/internal/bootstrap"
	"folio/internal/config"
	"folio/internal/logfields"
	"folio/internal/logging"
)

const version = "0.1.0"

func main() {
	cfgFile := flag.String("config", "", "config file (default ./folio.yaml)")
	content := flag.String("content", "", "content root (overrides content.root)")
	flag.Parse()

	cfg, err := config.Load(*cfgFile)
	if err != nil {
		log.Fatalf("folio-mcp: %v", err)
	}
	if *content != "" {
		cfg.Content.Root = config.ExpandHome(*content)
	}

	// stdout carries the protocol
	logger, err := logging.Setup(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("folio-mcp: %v", err)
	}

	ctx := context.Background()
	rt, err := bootstrap.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("folio-mcp: %v", err)
	}
	defer rt.Close()

	if _, err := rt.Sync(ctx, rt.Cache != nil && rt.Cache.NeedsFullRebuild()); err != nil {
		logger.Warn("initial sync failed", logfields.Error(err))
	}

	mcpServer := server.NewMCPServer(
		"folio-mcp",
		version,
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, mcpadapter.Deps{
		Repo:     rt.Repo,
		Authors:  rt.FS,
		Renderer: rt.Renderer,
		PageSize: cfg.Site.PostsPerPage,
	})

	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Error("server stopped", logfields.Error(err))
		rt.Close()
		os.Exit(1)
	}
}
