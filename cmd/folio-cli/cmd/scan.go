package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"folio/internal/application/commands"
)

var scanVerbose bool

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the content root and report what would be indexed",
	Long: `Scan the content root, build the full index (drafts included) and
print a summary. With the cache enabled the build is an incremental sync.
Exits non-zero if a file is malformed and content.on_malformed is fail.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := commands.NewScanCommand(GetRuntime().Repo).Execute(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if ok, err := printJSON(out, report); ok {
			return err
		}
		printScanReport(out, report)
		return nil
	},
}

func printScanReport(w io.Writer, r *commands.ScanReport) {
	if scanVerbose {
		for _, e := range r.Entries {
			printEntry(w, e)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "root:      %s\n", r.Root)
	fmt.Fprintf(w, "files:     %d\n", len(r.Paths))
	fmt.Fprintf(w, "indexed:   %d (%d published, %d drafts)\n", len(r.Entries), r.Published, r.Drafts)
	if skipped := len(r.Paths) - len(r.Entries); skipped > 0 {
		fmt.Fprintf(w, "skipped:   %d malformed\n", skipped)
	}
	fmt.Fprintf(w, "tags:      %d\n", r.Tags)
	if s := r.Stats; s != nil {
		if s.EntriesAdded+s.EntriesUpdated+s.EntriesDeleted+s.EntriesReused > 0 {
			fmt.Fprintf(w, "cache:     %d added, %d updated, %d deleted, %d reused\n",
				s.EntriesAdded, s.EntriesUpdated, s.EntriesDeleted, s.EntriesReused)
		}
		fmt.Fprintf(w, "duration:  %s\n", s.Duration.Round(1e6))
	}
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().BoolVarP(&scanVerbose, "verbose", "v", false, "list every indexed entry")
}
