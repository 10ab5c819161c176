package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"folio/internal/application/commands"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search published posts",
	Long: `Search published posts by title, summary and tags.

Results are ranked by relevance using fuzzy matching.

Examples:
  folio-cli search generics
  folio-cli search "hello world"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")

		results, err := commands.NewSearchCommand(GetRuntime().Repo, query).Execute(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if ok, err := printJSON(out, results); ok {
			return err
		}
		if len(results) == 0 {
			fmt.Fprintln(out, "No results found")
			return nil
		}

		for _, r := range results {
			fmt.Fprintf(out, "%s  %-40s  %s\n", r.Entry.Date, r.Entry.Slug, r.Entry.Title)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
