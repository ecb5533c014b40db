package posts

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

const today = "2026-10-17"

func TestNormalizeDropsRowsMissingRequiredFields(t *testing.T) {
	records := []Record{
		{ID: "rec1", Fields: map[string]any{"Title": "X"}},
		{ID: "rec2", Fields: map[string]any{"URL": "https://example.com"}},
		{ID: "rec3", Fields: map[string]any{"Title": "  ", "URL": "https://example.com"}},
		{ID: "rec4", Fields: map[string]any{"Title": "Kept", "URL": "https://kept.dev"}},
		{ID: "rec5", Fields: nil},
	}

	got := Normalize(records, today)
	if len(got) != 1 {
		t.Fatalf("expected 1 item, got %d: %v", len(got), got)
	}
	if got[0].ID != "rec4" {
		t.Errorf("expected rec4 to survive, got %s", got[0].ID)
	}
}

func TestNormalizeDefaults(t *testing.T) {
	records := []Record{
		{ID: "rec1", Fields: map[string]any{"Title": "A", "URL": "u"}},
		{ID: "rec2", Fields: map[string]any{
			"Title":    "B",
			"URL":      "https://b.dev",
			"Category": "Design",
			"Source":   "Are.na",
			"Date":     "2026-01-02",
		}},
	}

	want := []Item{
		{ID: "rec1", Title: "A", URL: "u", Category: "All", Source: "Unknown", Date: today},
		{ID: "rec2", Title: "B", URL: "https://b.dev", Category: "Design", Source: "Are.na", Date: "2026-01-02"},
	}
	if diff := cmp.Diff(want, Normalize(records, today)); diff != "" {
		t.Errorf("Normalize mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeFieldShapes(t *testing.T) {
	records := []Record{
		{ID: "rec1", Fields: map[string]any{
			"Title":    " Padded ",
			"URL":      "https://x.dev",
			"Category": []any{"", "AI", "Design"},
			"Source":   nil,
			"Date":     "",
		}},
		{ID: "rec2", Fields: map[string]any{
			"Title":    42.0,
			"URL":      "https://y.dev",
			"Category": []string{"Culture"},
		}},
	}

	got := Normalize(records, today)
	if len(got) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got))
	}
	if got[0].Title != "Padded" {
		t.Errorf("expected trimmed title, got %q", got[0].Title)
	}
	if got[0].Category != "AI" {
		t.Errorf("expected first non-blank category AI, got %q", got[0].Category)
	}
	if got[0].Source != UnknownSource || got[0].Date != today {
		t.Errorf("expected defaults for null/blank fields, got %+v", got[0])
	}
	if got[1].Title != "42" {
		t.Errorf("expected numeric title formatted, got %q", got[1].Title)
	}
	if got[1].Category != "Culture" {
		t.Errorf("expected Culture, got %q", got[1].Category)
	}
}

func TestNormalizeKeepsOrderAndNeverNil(t *testing.T) {
	if got := Normalize(nil, today); got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}

	records := []Record{
		{ID: "c", Fields: map[string]any{"Title": "C", "URL": "c", "Date": "2026-03-01"}},
		{ID: "b", Fields: map[string]any{"Title": "B", "URL": "b", "Date": "2026-02-01"}},
		{ID: "a", Fields: map[string]any{"Title": "A", "URL": "a", "Date": "2026-01-01"}},
	}
	got := Normalize(records, today)
	for i, id := range []string{"c", "b", "a"} {
		if got[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, got[i].ID)
		}
	}
}
