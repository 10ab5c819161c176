package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"folio/internal/application"
	"folio/internal/application/commands"
	"folio/internal/ports"
)

// Deps are the collaborators the read tools run against.
type Deps struct {
	Repo     ports.ContentRepository
	Authors  ports.AuthorResolver
	Renderer ports.MarkdownRenderer
	PageSize int
}

// RegisterReadTools adds all read-only blog tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, deps Deps) {
	if deps.PageSize <= 0 {
		deps.PageSize = application.PostsPerPage
	}
	s.AddTool(listPostsTool(), listPostsHandler(deps))
	s.AddTool(getPostTool(), getPostHandler(deps))
	s.AddTool(listTagsTool(), listTagsHandler(deps))
	s.AddTool(postsByTagTool(), postsByTagHandler(deps))
	s.AddTool(searchTool(), searchHandler(deps))
	s.AddTool(readPostTool(), readPostHandler(deps))
}

// --- list_posts ---

func listPostsTool() mcp.Tool {
	return mcp.NewTool("list_posts",
		mcp.WithDescription("List published posts, newest first, one page at a time."),
		mcp.WithNumber("page",
			mcp.Description("1-based page number (default 1)"),
		),
	)
}

func listPostsHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		page, err := commands.NewListPostsCommand(deps.Repo, req.GetInt("page", 1), deps.PageSize).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatPage(page), nil
	}
}

// --- get_post ---

func getPostTool() mcp.Tool {
	return mcp.NewTool("get_post",
		mcp.WithDescription("Show a published post's metadata, authors, table of contents and its previous/next posts."),
		mcp.WithString("slug",
			mcp.Description("Post slug (e.g. 2024/hello-world)"),
			mcp.Required(),
		),
	)
}

func getPostHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		slug := req.GetString("slug", "")
		if slug == "" {
			return toolError(fmt.Errorf("slug is required"))
		}

		detail, err := commands.NewShowPostCommand(deps.Repo, deps.Authors, deps.Renderer, slug).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		e := detail.Entry
		fmt.Fprintf(&sb, "%s\n", e.Title)
		fmt.Fprintf(&sb, "slug: %s\ndate: %s\nreading time: %s\n", e.Slug, e.Date.Long(), e.ReadingTime.Text)
		if len(e.Tags) > 0 {
			fmt.Fprintf(&sb, "tags: %s\n", strings.Join(e.Tags, ", "))
		}
		for _, a := range detail.Authors {
			fmt.Fprintf(&sb, "author: %s\n", a.Name)
		}
		if e.Summary != "" {
			fmt.Fprintf(&sb, "\n%s\n", e.Summary)
		}
		if len(detail.Toc) > 0 {
			sb.WriteString("\ncontents:\n")
			for _, h := range detail.Toc {
				fmt.Fprintf(&sb, "%s- %s\n", strings.Repeat("  ", max(h.Depth-2, 0)), h.Value)
			}
		}
		if p := detail.Navigation.Prev; p != nil {
			fmt.Fprintf(&sb, "\nprevious: %s  %s", p.Slug, p.Title)
		}
		if n := detail.Navigation.Next; n != nil {
			fmt.Fprintf(&sb, "\nnext: %s  %s", n.Slug, n.Title)
		}
		return mcp.NewToolResultText(strings.TrimRight(sb.String(), "\n")), nil
	}
}

// --- list_tags ---

func listTagsTool() mcp.Tool {
	return mcp.NewTool("list_tags",
		mcp.WithDescription("List the tags of published posts with how many posts carry each."),
	)
}

func listTagsHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tags, err := commands.NewListTagsCommand(deps.Repo).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(tags, func(t application.TagCount) string {
			return fmt.Sprintf("%s  %d", t.Tag, t.Count)
		})
	}
}

// --- posts_by_tag ---

func postsByTagTool() mcp.Tool {
	return mcp.NewTool("posts_by_tag",
		mcp.WithDescription("List published posts carrying a tag, newest first. Tags match case-insensitively by slug."),
		mcp.WithString("tag",
			mcp.Description("Tag name or slug"),
			mcp.Required(),
		),
		mcp.WithNumber("page",
			mcp.Description("1-based page number (default 1)"),
		),
	)
}

func postsByTagHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tag := req.GetString("tag", "")
		if tag == "" {
			return toolError(fmt.Errorf("tag is required"))
		}

		view, err := commands.NewTagPostsCommand(deps.Repo, tag, req.GetInt("page", 1), deps.PageSize).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatPage(view.Page), nil
	}
}

// --- search ---

func searchTool() mcp.Tool {
	return mcp.NewTool("search",
		mcp.WithDescription("Search published posts by title, summary and tags. Returns matching posts with their slugs."),
		mcp.WithString("query",
			mcp.Description("Search query (at least 2 characters)"),
			mcp.Required(),
		),
	)
}

func searchHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "")
		if query == "" {
			return toolError(fmt.Errorf("query is required"))
		}

		results, err := commands.NewSearchCommand(deps.Repo, query).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		if len(results) == 0 {
			return mcp.NewToolResultText("No results found."), nil
		}

		var sb strings.Builder
		for _, r := range results {
			fmt.Fprintf(&sb, "%s  %s  %s\n", r.Entry.Slug, r.Entry.Title, r.MatchedText)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- read_post ---

func readPostTool() mcp.Tool {
	return mcp.NewTool("read_post",
		mcp.WithDescription("Read the raw source of a published post, front matter included."),
		mcp.WithString("slug",
			mcp.Description("Post slug"),
			mcp.Required(),
		),
	)
}

func readPostHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		slug := req.GetString("slug", "")
		if slug == "" {
			return toolError(fmt.Errorf("slug is required"))
		}

		detail, err := commands.NewShowPostCommand(deps.Repo, nil, nil, slug).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		content, err := deps.Repo.ReadSource(ctx, detail.Entry.FilePath)
		if err != nil {
			return toolError(fmt.Errorf("reading post file: %w", err))
		}

		return mcp.NewToolResultText(string(content)), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatEntry(e application.Entry) string {
	return fmt.Sprintf("%s  %s  %s", e.Date, e.Slug, e.Title)
}

func formatPage(p application.Page) *mcp.CallToolResult {
	if p.TotalPosts == 0 {
		return mcp.NewToolResultText("No results.")
	}
	var sb strings.Builder
	for _, e := range p.Posts {
		sb.WriteString(formatEntry(e))
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "page %d of %d (%d posts)", p.CurrentPage, p.TotalPages, p.TotalPosts)
	return mcp.NewToolResultText(sb.String())
}
