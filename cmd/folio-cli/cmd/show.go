package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"folio/internal/application/commands"
)

var (
	showDrafts bool
	showToc    bool
	showBody   bool
)

var showCmd = &cobra.Command{
	Use:   "show <slug>",
	Short: "Show a post with its previous and next posts",
	Long: `Show a post's metadata, authors and neighbours. The slug is the path
below the content root without extension; a pasted /blog/... URL works too.

Examples:
  folio-cli show 2024/hello-world
  folio-cli show /blog/2024/hello-world --toc`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r := GetRuntime()
		show := commands.NewShowPostCommand(r.Repo, r.FS, r.Renderer, args[0])
		show.IncludeDrafts = showDrafts
		show.WithBody = showBody

		detail, err := show.Execute(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if ok, err := printJSON(out, detail); ok {
			return err
		}

		e := detail.Entry
		fmt.Fprintln(out, e.Title)
		fmt.Fprintf(out, "%s · %s\n", e.Date.Long(), e.ReadingTime.Text)
		if e.LastMod != nil {
			fmt.Fprintf(out, "updated %s\n", e.LastMod.Long())
		}
		if e.Draft {
			fmt.Fprintln(out, "draft")
		}
		if len(detail.Authors) > 0 {
			names := make([]string, len(detail.Authors))
			for i, a := range detail.Authors {
				names[i] = a.Name
			}
			fmt.Fprintf(out, "by %s\n", strings.Join(names, ", "))
		}
		if len(e.Tags) > 0 {
			fmt.Fprintf(out, "tags: %s\n", strings.Join(e.Tags, ", "))
		}
		fmt.Fprintf(out, "url: %s/blog/%s\n", strings.TrimRight(r.Config.Site.URL, "/"), e.URL)
		fmt.Fprintf(out, "file: %s\n", e.FilePath)
		if e.Summary != "" {
			fmt.Fprintf(out, "\n%s\n", e.Summary)
		}

		if showToc && len(detail.Toc) > 0 {
			fmt.Fprintln(out, "\ncontents:")
			for _, h := range detail.Toc {
				fmt.Fprintf(out, "%s- %s (%s)\n", strings.Repeat("  ", max(h.Depth-2, 0)), h.Value, h.URL)
			}
		}

		fmt.Fprintln(out)
		if p := detail.Navigation.Prev; p != nil {
			fmt.Fprintf(out, "previous: %s  %s\n", p.Slug, p.Title)
		}
		if n := detail.Navigation.Next; n != nil {
			fmt.Fprintf(out, "next:     %s  %s\n", n.Slug, n.Title)
		}

		if showBody {
			fmt.Fprintf(out, "\n%s", detail.Body)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showDrafts, "drafts", false, "allow drafts and include them in navigation")
	showCmd.Flags().BoolVar(&showToc, "toc", false, "print the table of contents")
	showCmd.Flags().BoolVar(&showBody, "body", false, "print the markdown body")
}
