package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"folio/internal/application"
	"folio/internal/application/commands"
)

var (
	listPage   int
	listDrafts bool
	listAll    bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List posts, newest first",
	Long: `List posts newest first, one page at a time. The page size is
site.posts_per_page.

Examples:
  folio-cli list
  folio-cli list --page 2
  folio-cli list --all --drafts`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		if listAll {
			entries, err := commands.NewListAllCommand(GetRuntime().Repo, listDrafts).Execute(ctx)
			if err != nil {
				return err
			}
			if ok, err := printJSON(out, entries); ok {
				return err
			}
			for _, e := range entries {
				printEntry(out, e)
			}
			return nil
		}

		listPosts := commands.NewListPostsCommand(GetRuntime().Repo, listPage, GetRuntime().Config.Site.PostsPerPage)
		listPosts.IncludeDrafts = listDrafts
		page, err := listPosts.Execute(ctx)
		if err != nil {
			return err
		}
		if ok, err := printJSON(out, page); ok {
			return err
		}
		printPage(out, page)
		return nil
	},
}

func printEntry(w io.Writer, e application.Entry) {
	title := e.Title
	if e.Draft {
		title += " [draft]"
	}
	line := fmt.Sprintf("%s  %-40s  %s", e.Date, e.Slug, title)
	if len(e.Tags) > 0 {
		line += "  (" + strings.Join(e.Tags, ", ") + ")"
	}
	fmt.Fprintln(w, line)
}

func printPage(w io.Writer, p application.Page) {
	if p.TotalPosts == 0 {
		fmt.Fprintln(w, "No posts")
		return
	}
	for _, e := range p.Posts {
		printEntry(w, e)
	}
	fmt.Fprintf(w, "\npage %d of %d (%d posts)\n", p.CurrentPage, p.TotalPages, p.TotalPosts)
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().IntVarP(&listPage, "page", "p", 1, "page number")
	listCmd.Flags().BoolVar(&listDrafts, "drafts", false, "include drafts")
	listCmd.Flags().BoolVar(&listAll, "all", false, "list every post without paging")
}
