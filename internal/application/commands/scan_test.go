package commands

import (
	"context"
	"testing"

	"folio/internal/domain"
)

func TestScanCommand_Execute(t *testing.T) {
	repo := &fakeRepo{entries: []domain.Entry{
		entry(t, "a", "2024-01-01", "go"),
		entry(t, "b", "2024-02-01", "go", "web"),
		draft(entry(t, "c", "2024-03-01", "wip")),
	}}

	report, err := NewScanCommand(repo).Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(report.Paths) != 3 || len(report.Entries) != 3 {
		t.Errorf("expected 3 paths and entries, got %d and %d", len(report.Paths), len(report.Entries))
	}
	if report.Published != 2 || report.Drafts != 1 {
		t.Errorf("expected 2 published and 1 draft, got %d and %d", report.Published, report.Drafts)
	}
	if report.Tags != 2 {
		t.Errorf("expected 2 published tags, got %d", report.Tags)
	}
	if report.Stats == nil || report.Stats.FilesScanned != 3 {
		t.Errorf("unexpected stats %+v", report.Stats)
	}
}
