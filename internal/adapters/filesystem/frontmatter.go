package filesystem

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"folio/internal/domain"
)

var knownKeys = []string{
	"title", "date", "lastmod", "tags", "draft", "summary", "images",
	"authors", "layout", "canonicalUrl",
}

// frontMatter is the typed schema a post's raw front matter is decoded into
type frontMatter struct {
	Title        string    `json:"title"`
	Date         time.Time `json:"date"`
	LastMod      time.Time `json:"lastmod"`
	Tags         []string  `json:"tags"`
	Draft        bool      `json:"draft"`
	Summary      string    `json:"summary"`
	Images       []string  `json:"images"`
	Authors      []string  `json:"authors"`
	Layout       string    `json:"layout"`
	CanonicalURL string    `json:"canonicalUrl"`
}

func (f frontMatter) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Title, validation.Required),
		validation.Field(&f.Date, validation.Required),
	)
}

// parsed is the result of splitting and decoding one content file
type parsed struct {
	meta    frontMatter
	body    []byte
	unknown []string
}

// splitSource separates front matter from the markdown body.
func splitSource(source []byte) (map[string]any, []byte, error) {
	raw := map[string]any{}
	body, err := frontmatter.MustParse(bytes.NewReader(source), &raw)
	if err != nil {
		return nil, nil, err
	}
	return raw, body, nil
}

// parseSource decodes and validates the front matter of one file. path is
// only used to name the file in errors.
func parseSource(path string, source []byte) (*parsed, error) {
	raw, body, err := splitSource(source)
	if err != nil {
		if errors.Is(err, frontmatter.ErrNotFound) {
			return nil, &domain.MalformedContentError{Path: path, Field: "title", Reason: "missing front matter"}
		}
		return nil, &domain.MalformedContentError{Path: path, Reason: err.Error()}
	}

	p := &parsed{body: body}
	for key := range raw {
		if !slices.Contains(knownKeys, key) {
			p.unknown = append(p.unknown, key)
		}
	}
	sort.Strings(p.unknown)

	m := &p.meta
	if m.Title, err = stringField(raw, "title"); err != nil {
		return nil, malformed(path, "title", err)
	}
	m.Title = strings.TrimSpace(m.Title)
	if m.Date, err = dateField(raw, "date"); err != nil {
		return nil, malformed(path, "date", err)
	}
	if m.LastMod, err = dateField(raw, "lastmod"); err != nil {
		return nil, malformed(path, "lastmod", err)
	}
	if m.Tags, err = listField(raw, "tags"); err != nil {
		return nil, malformed(path, "tags", err)
	}
	if m.Draft, err = boolField(raw, "draft"); err != nil {
		return nil, malformed(path, "draft", err)
	}
	if m.Summary, err = stringField(raw, "summary"); err != nil {
		return nil, malformed(path, "summary", err)
	}
	if m.Images, err = listField(raw, "images"); err != nil {
		return nil, malformed(path, "images", err)
	}
	if m.Authors, err = listField(raw, "authors"); err != nil {
		return nil, malformed(path, "authors", err)
	}
	if m.Layout, err = stringField(raw, "layout"); err != nil {
		return nil, malformed(path, "layout", err)
	}
	if m.CanonicalURL, err = stringField(raw, "canonicalUrl"); err != nil {
		return nil, malformed(path, "canonicalUrl", err)
	}

	if err := m.Validate(); err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for f := range verrs {
				fields = append(fields, f)
			}
			sort.Strings(fields)
			return nil, &domain.MalformedContentError{Path: path, Field: fields[0], Reason: verrs[fields[0]].Error()}
		}
		return nil, &domain.MalformedContentError{Path: path, Reason: err.Error()}
	}
	return p, nil
}

// toEntry derives the computed fields of an entry from its paths and body.
func (p *parsed) toEntry(abs, rel string) domain.Entry {
	slug := domain.SlugFromPath(rel)
	e := domain.Entry{
		Title:        p.meta.Title,
		Date:         domain.DateOf(p.meta.Date),
		Tags:         p.meta.Tags,
		Draft:        p.meta.Draft,
		Summary:      p.meta.Summary,
		Images:       p.meta.Images,
		Authors:      p.meta.Authors,
		Layout:       p.meta.Layout,
		CanonicalURL: p.meta.CanonicalURL,
		Slug:         slug,
		URL:          slug,
		FileName:     domain.FileNameFromPath(rel),
		FilePath:     abs,
		ReadingTime:  domain.EstimateReadingTime(string(p.body)),
	}
	if e.Tags == nil {
		e.Tags = []string{}
	}
	if !p.meta.LastMod.IsZero() {
		lm := domain.DateOf(p.meta.LastMod)
		e.LastMod = &lm
	}
	return e
}

func malformed(path, field string, err error) error {
	return &domain.MalformedContentError{Path: path, Field: field, Reason: err.Error()}
}

func stringField(raw map[string]any, key string) (string, error) {
	v, ok := raw[key]
	if !ok || v == nil {
		return "", nil
	}
	switch t := v.(type) {
	case string:
		return t, nil
	case int, int64, float64, bool:
		return fmt.Sprint(t), nil
	}
	return "", fmt.Errorf("must be a string, got %T", v)
}

func boolField(raw map[string]any, key string) (bool, error) {
	v, ok := raw[key]
	if !ok || v == nil {
		return false, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("must be a boolean, got %T", v)
	}
	return b, nil
}

// listField accepts a sequence of scalars or a single string.
func listField(raw map[string]any, key string) ([]string, error) {
	v, ok := raw[key]
	if !ok || v == nil {
		return nil, nil
	}
	switch t := v.(type) {
	case string:
		if strings.TrimSpace(t) == "" {
			return nil, nil
		}
		return []string{t}, nil
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			switch s := item.(type) {
			case string:
				out = append(out, s)
			case int, int64, float64:
				out = append(out, fmt.Sprint(s))
			default:
				return nil, fmt.Errorf("must contain only strings, got %T", item)
			}
		}
		return out, nil
	}
	return nil, fmt.Errorf("must be a list, got %T", v)
}

func dateField(raw map[string]any, key string) (time.Time, error) {
	v, ok := raw[key]
	if !ok || v == nil {
		return time.Time{}, nil
	}
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		if strings.TrimSpace(t) == "" {
			return time.Time{}, nil
		}
		d, err := domain.ParseDate(t)
		if err != nil {
			return time.Time{}, err
		}
		return d.Time, nil
	}
	return time.Time{}, fmt.Errorf("must be a date, got %T", v)
}
