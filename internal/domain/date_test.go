package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-05-01", "2024-05-01"},
		{"2024-05-01T10:30:00Z", "2024-05-01"},
		{"2024-05-01T23:30:00-05:00", "2024-05-01"},
		{"2024-05-01 08:00:00", "2024-05-01"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := ParseDate(tt.in)
			if err != nil {
				t.Fatalf("ParseDate failed: %v", err)
			}
			if d.String() != tt.want {
				t.Errorf("expected %s, got %s", tt.want, d.String())
			}
		})
	}

	for _, bad := range []string{"", "yesterday", "05/01/2024"} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("ParseDate(%q) should fail", bad)
		}
	}
}

func TestFormatDate(t *testing.T) {
	d := DateOf(time.Date(2021, time.August, 7, 0, 0, 0, 0, time.UTC))
	if got := FormatDate(d); got != "Saturday, August 7, 2021" {
		t.Errorf("unexpected long date %q", got)
	}
}

func TestDateTextRoundTrip(t *testing.T) {
	d := DateOf(time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC))
	b, _ := d.MarshalText()
	var back Date
	if err := back.UnmarshalText(b); err != nil {
		t.Fatalf("UnmarshalText failed: %v", err)
	}
	if !back.Equal(d.Time) {
		t.Errorf("expected %s, got %s", d, back)
	}
}

func TestDateJSON(t *testing.T) {
	d, err := ParseDate("2021-06-01")
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}
	lastmod := DateOf(time.Date(2021, time.July, 2, 15, 4, 5, 0, time.UTC))

	b, err := json.Marshal(Entry{Title: "A", Date: d, LastMod: &lastmod, Slug: "a"})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	got := string(b)
	for _, want := range []string{`"date":"2021-06-01"`, `"lastmod":"2021-07-02"`} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %s in %s", want, got)
		}
	}

	var back Entry
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !back.Date.Equal(d.Time) {
		t.Errorf("expected date %s, got %s", d, back.Date)
	}
	if back.LastMod == nil || !back.LastMod.Equal(lastmod.Time) {
		t.Errorf("expected lastmod %s, got %v", lastmod, back.LastMod)
	}

	// Payloads written with the full timestamp still decode
	var legacy Date
	if err := json.Unmarshal([]byte(`"2021-06-01T00:00:00Z"`), &legacy); err != nil {
		t.Fatalf("Unmarshal timestamp failed: %v", err)
	}
	if !legacy.Equal(d.Time) {
		t.Errorf("expected %s, got %s", d, legacy)
	}
}

func TestEstimateReadingTime(t *testing.T) {
	tests := []struct {
		name     string
		words    int
		wantText string
	}{
		{"empty body", 0, "0 min read"},
		{"one word rounds up", 1, "1 min read"},
		{"exactly one minute", 200, "1 min read"},
		{"just over one minute", 201, "2 min read"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := ""
			for i := 0; i < tt.words; i++ {
				body += "word "
			}
			rt := EstimateReadingTime(body)
			if rt.Words != tt.words {
				t.Errorf("expected %d words, got %d", tt.words, rt.Words)
			}
			if rt.Text != tt.wantText {
				t.Errorf("expected %q, got %q", tt.wantText, rt.Text)
			}
		})
	}
}

func TestSlugFromPath(t *testing.T) {
	tests := []struct {
		in, slug, file string
	}{
		{"hello.md", "hello", "hello.md"},
		{"guides/setup.mdx", "guides/setup", "setup.mdx"},
	}
	for _, tt := range tests {
		if got := SlugFromPath(tt.in); got != tt.slug {
			t.Errorf("SlugFromPath(%q) = %q, want %q", tt.in, got, tt.slug)
		}
		if got := FileNameFromPath(tt.in); got != tt.file {
			t.Errorf("FileNameFromPath(%q) = %q, want %q", tt.in, got, tt.file)
		}
	}

	if IsContentFile("notes.txt") || IsContentFile("README.MD") {
		t.Error("only .md and .mdx are content files")
	}
}

func TestAuthorKey(t *testing.T) {
	if got := AuthorKey("Jane Doe"); got != "jane_doe" {
		t.Errorf("expected jane_doe, got %s", got)
	}
}
