package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"folio/internal/bootstrap"
	"folio/internal/config"
	"folio/internal/logfields"
	"folio/internal/logging"
)

var (
	cfgFile     string
	contentRoot string
	logLevel    string
	jsonOutput  bool

	rt *bootstrap.Runtime
)

var rootCmd = &cobra.Command{
	Use:   "folio-cli",
	Short: "CLI for browsing a Markdown blog's post index",
	Long: `folio-cli indexes a directory of Markdown/MDX posts with front matter
and answers questions about it: listings, posts with their neighbours,
tags, and search. It can also serve the index as a JSON API.

Configuration is read from folio.yaml, a .env file and FOLIO_* variables.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "init" {
			return nil
		}

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if contentRoot != "" {
			cfg.Content.Root = config.ExpandHome(contentRoot)
		}
		if logLevel != "" {
			cfg.Log.Level = logLevel
		}

		logger, err := logging.Setup(os.Stderr, cfg.Log.Level, cfg.Log.Format)
		if err != nil {
			return err
		}
		if cfg.File != "" {
			logger.Debug("config loaded", logfields.Path(cfg.File))
		}

		rt, err = bootstrap.Open(cmd.Context(), cfg, logger, bootstrap.WithMetrics())
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if rt == nil {
			return nil
		}
		return rt.Close()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default ./folio.yaml)")
	rootCmd.PersistentFlags().StringVarP(&contentRoot, "content", "C", "", "content root (overrides content.root)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print results as JSON")
}

// GetRuntime returns the initialized content stack
func GetRuntime() *bootstrap.Runtime {
	return rt
}

// printJSON writes v indented when --json is set and reports whether it did
func printJSON(w io.Writer, v any) (bool, error) {
	if !jsonOutput {
		return false, nil
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return true, enc.Encode(v)
}
