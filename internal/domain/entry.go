package domain

import (
	"path"
	"path/filepath"
	"strings"
)

// ContentExtensions lists the file extensions recognized as blog content.
var ContentExtensions = []string{".md", ".mdx"}

// IsContentFile reports whether name carries a content extension (case-sensitive).
func IsContentFile(name string) bool {
	ext := filepath.Ext(name)
	for _, e := range ContentExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Entry is the indexed metadata of one post
type Entry struct {
	Title        string      `json:"title"`
	Date         Date        `json:"date"`
	LastMod      *Date       `json:"lastmod,omitempty"`
	Tags         []string    `json:"tags"`
	Draft        bool        `json:"draft"`
	Summary      string      `json:"summary,omitempty"`
	Images       []string    `json:"images,omitempty"`
	Authors      []string    `json:"authors,omitempty"`
	Layout       string      `json:"layout,omitempty"`
	CanonicalURL string      `json:"canonicalUrl,omitempty"`
	Slug         string      `json:"slug"`
	URL          string      `json:"url"`
	FileName     string      `json:"fileName"`
	FilePath     string      `json:"filePath"` // absolute path on disk
	ReadingTime  ReadingTime `json:"readingTime"`
}

// SlugFromPath strips the content extension from a root-relative path and
// normalizes separators to "/". The same value is used for Entry.URL.
func SlugFromPath(rel string) string {
	rel = filepath.ToSlash(rel)
	for _, ext := range ContentExtensions {
		if strings.HasSuffix(rel, ext) {
			return strings.TrimSuffix(rel, ext)
		}
	}
	return rel
}

// FileNameFromPath returns the base name of a root-relative path.
func FileNameFromPath(rel string) string {
	return path.Base(filepath.ToSlash(rel))
}

// HasTag reports whether the entry carries tag, comparing slug forms.
func (e Entry) HasTag(tag string) bool {
	want := TagSlug(tag)
	for _, t := range e.Tags {
		if TagSlug(t) == want {
			return true
		}
	}
	return false
}

// Author is the profile stored under the authors directory.
type Author struct {
	Key        string `json:"key"`
	Name       string `json:"name"`
	Avatar     string `json:"avatar,omitempty"`
	Occupation string `json:"occupation,omitempty"`
	Company    string `json:"company,omitempty"`
	Email      string `json:"email,omitempty"`
	LinkedIn   string `json:"linkedin,omitempty"`
	GitHub     string `json:"github,omitempty"`
}

// AuthorKey maps a display name to the file stem of its profile.
func AuthorKey(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

// Toc is one heading in a post's table of contents.
type Toc struct {
	Value string `json:"value"`
	Depth int    `json:"depth"`
	URL   string `json:"url"`
}
