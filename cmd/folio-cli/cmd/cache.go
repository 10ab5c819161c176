package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var cacheFull bool

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the SQLite index cache",
	Long: `The index cache stores parsed front matter keyed by file so unchanged
posts are not re-parsed. Enable it with cache.enabled in folio.yaml.`,
}

var cacheSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Bring the cache up to date with the content root",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r := GetRuntime()
		if r.Cache == nil {
			return errors.New("cache is disabled: set cache.enabled: true")
		}

		full := cacheFull || r.Cache.NeedsFullRebuild()
		stats, err := r.Sync(cmd.Context(), full)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if ok, err := printJSON(out, stats); ok {
			return err
		}
		kind := "incremental"
		if full {
			kind = "full"
		}
		fmt.Fprintf(out, "%s sync of %d files: %d added, %d updated, %d deleted, %d reused in %s\n",
			kind, stats.FilesScanned, stats.EntriesAdded, stats.EntriesUpdated,
			stats.EntriesDeleted, stats.EntriesReused, stats.Duration.Round(1e6))
		if stats.Skipped > 0 {
			fmt.Fprintf(out, "%d malformed files skipped\n", stats.Skipped)
		}
		return nil
	},
}

var cacheInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show where the cache lives and when it last synced",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r := GetRuntime()
		if r.Cache == nil {
			return errors.New("cache is disabled: set cache.enabled: true")
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "path:       %s\n", r.Cache.Path())
		fmt.Fprintf(out, "root:       %s\n", r.Cache.Root())
		if last := r.Cache.LastSync(); !last.IsZero() {
			fmt.Fprintf(out, "last sync:  %s\n", last.Format("2006-01-02 15:04:05"))
		} else {
			fmt.Fprintln(out, "last sync:  never")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheSyncCmd)
	cacheCmd.AddCommand(cacheInfoCmd)
	cacheSyncCmd.Flags().BoolVar(&cacheFull, "full", false, "clear and rebuild the cache")
}
