package logfields

import (
	"errors"
	"log/slog"
	"testing"
)

func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attr    slog.Attr
	}{
		{"Path", KeyPath, Path("posts/a.md")},
		{"Root", KeyRoot, Root("/blog")},
		{"Slug", KeySlug, Slug("a")},
		{"Field", KeyField, Field("title")},
		{"Tag", KeyTag, Tag("go")},
		{"Kind", KeyKind, Kind("full")},
		{"Method", KeyMethod, Method("GET")},
		{"URL", KeyURL, URL("/api/tags")},
		{"RequestID", KeyRequestID, RequestID("rid")},
		{"Addr", KeyAddr, Addr(":8080")},
	}

	for _, tc := range cases {
		if tc.attr.Key != tc.attrKey {
			t.Fatalf("%s: expected key %s, got %s", tc.name, tc.attrKey, tc.attr.Key)
		}
	}
}

func TestErrorNil(t *testing.T) {
	if a := Error(nil); a.Value.String() != "" {
		t.Errorf("expected empty error value, got %q", a.Value.String())
	}
	if a := Error(errors.New("boom")); a.Value.String() != "boom" {
		t.Errorf("expected boom, got %q", a.Value.String())
	}
}
