package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"folio/internal/adapters/browser"
	"folio/internal/adapters/editor"
	"folio/internal/adapters/tui"
	"folio/internal/bootstrap"
	"folio/internal/config"
	"folio/internal/logging"
)

func main() {
	cfgFile := flag.String("config", "", "config file (default ./folio.yaml)")
	content := flag.String("content", "", "content root (overrides content.root)")
	drafts := flag.Bool("drafts", false, "include draft posts")
	flag.Parse()

	if err := run(*cfgFile, *content, *drafts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfgFile, content string, drafts bool) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if content != "" {
		cfg.Content.Root = config.ExpandHome(content)
	}

	// The alternate screen owns the terminal, so logs go nowhere
	ctx := context.Background()
	rt, err := bootstrap.Open(ctx, cfg, logging.Discard())
	if err != nil {
		return err
	}
	defer rt.Close()

	if _, err := rt.Sync(ctx, rt.Cache != nil && rt.Cache.NeedsFullRebuild()); err != nil {
		return err
	}

	app := tui.NewApp(rt.Repo, rt.FS, rt.Renderer,
		editor.NewOpener(cfg.Editor),
		browser.NewOpener(cfg.Site.URL),
		tui.Options{
			Title:         cfg.Site.Title,
			PageSize:      cfg.Site.PostsPerPage,
			IncludeDrafts: drafts,
		},
	)

	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
