package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"folio/internal/adapters/watcher"
	"folio/internal/application/commands"
	"folio/internal/logfields"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rescan the content root whenever it changes",
	Long: `Watch the content root and print a scan report after every change.
Malformed files are reported without stopping the watch.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r := GetRuntime()
		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		out := cmd.OutOrStdout()
		scan := func(ctx context.Context) {
			report, err := commands.NewScanCommand(r.Repo).Execute(ctx)
			if err != nil {
				r.Logger.Error("scan failed", logfields.Error(err))
				fmt.Fprintf(out, "error: %v\n", err)
				return
			}
			if ok, err := printJSON(out, report); ok {
				if err != nil {
					r.Logger.Error("encode report", logfields.Error(err))
				}
				return
			}
			printScanReport(out, report)
			fmt.Fprintln(out)
		}

		scan(ctx)

		w, err := watcher.New(r.FS.Root(), func(ctx context.Context, changed []string) {
			r.Logger.Info("content changed", logfields.Count(len(changed)))
			scan(ctx)
		})
		if err != nil {
			return err
		}
		w.SetLogger(r.Logger)
		if watchDebounce > 0 {
			w.SetDebounce(watchDebounce)
		}

		fmt.Fprintf(out, "watching %s (ctrl+c to stop)\n", r.FS.Root())
		if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watcher.DefaultDebounce, "quiet period before rescanning")
}
