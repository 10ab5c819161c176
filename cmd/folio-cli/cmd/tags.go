package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"folio/internal/application"
	"folio/internal/application/commands"
)

var (
	tagsByCount bool
	tagPage     int
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List tags of published posts with their counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tags, err := commands.NewListTagsCommand(GetRuntime().Repo).Execute(cmd.Context())
		if err != nil {
			return err
		}
		if tagsByCount {
			application.ByCount(tags)
		}

		out := cmd.OutOrStdout()
		if ok, err := printJSON(out, tags); ok {
			return err
		}
		if len(tags) == 0 {
			fmt.Fprintln(out, "No tags")
			return nil
		}
		for _, t := range tags {
			fmt.Fprintf(out, "%-30s %4d\n", t.Tag, t.Count)
		}
		return nil
	},
}

var tagCmd = &cobra.Command{
	Use:   "tag <tag>",
	Short: "List published posts carrying a tag",
	Long: `List published posts carrying a tag, newest first. Tags match by
slug, so "Machine Learning" and "machine-learning" are the same tag.

Examples:
  folio-cli tag go
  folio-cli tag "Machine Learning" --page 2`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r := GetRuntime()
		view, err := commands.NewTagPostsCommand(r.Repo, args[0], tagPage, r.Config.Site.PostsPerPage).Execute(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if ok, err := printJSON(out, view); ok {
			return err
		}
		fmt.Fprintf(out, "#%s\n\n", view.Slug)
		printPage(out, view.Page)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tagsCmd)
	rootCmd.AddCommand(tagCmd)
	tagsCmd.Flags().BoolVar(&tagsByCount, "by-count", false, "sort by post count")
	tagCmd.Flags().IntVarP(&tagPage, "page", "p", 1, "page number")
}
