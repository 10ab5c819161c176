package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"folio/internal/application"
	"folio/internal/application/commands"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"healthy"}`))
}

// pageParam reads ?page=N, defaulting to 1
func pageParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &application.ValidationError{Field: "page", Message: "must be a number"}
	}
	return n, nil
}

func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	page, err := pageParam(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	result, err := commands.NewListPostsCommand(s.repo, page, s.pageSize).Execute(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.Success(w, http.StatusOK, result)
}

func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "*")

	cmd := commands.NewShowPostCommand(s.repo, s.authors, s.renderer, slug)
	cmd.WithHTML = r.URL.Query().Get("html") == "true"

	detail, err := cmd.Execute(r.Context())
	if err != nil {
		// Only a missing post counts; a missing author profile is a content problem
		var nf *application.NotFoundError
		if errors.As(err, &nf) && nf.Kind == "slug" {
			s.recorder.IncNavigationNotFound()
		}
		s.fail(w, r, err)
		return
	}
	s.Success(w, http.StatusOK, detail)
}

func (s *Server) handleListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := commands.NewListTagsCommand(s.repo).Execute(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if tags == nil {
		tags = []application.TagCount{}
	}
	s.Success(w, http.StatusOK, tags)
}

func (s *Server) handleTagPosts(w http.ResponseWriter, r *http.Request) {
	page, err := pageParam(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	view, err := commands.NewTagPostsCommand(s.repo, chi.URLParam(r, "tag"), page, s.pageSize).Execute(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.Success(w, http.StatusOK, view)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		s.fail(w, r, &application.ValidationError{Field: "q", Message: "is required"})
		return
	}

	results, err := commands.NewSearchCommand(s.repo, query).Execute(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if results == nil {
		results = []commands.SearchResult{}
	}
	s.Success(w, http.StatusOK, results)
}
