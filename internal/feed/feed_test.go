package feed

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/0wl93/ocean-road-archive/internal/classify"
	"github.com/0wl93/ocean-road-archive/internal/posts"
	"github.com/mmcdole/gofeed"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>Ocean Road Links</title>
  <item>
    <title>Older &lt;b&gt;post&lt;/b&gt;</title>
    <link>https://example.com/older</link>
    <category>Design</category>
    <pubDate>Mon, 02 Feb 2026 10:00:00 GMT</pubDate>
  </item>
  <item>
    <title>Newest post</title>
    <link>https://example.com/newest</link>
    <category>AI</category>
    <author>ana@example.com (Ana)</author>
    <pubDate>Tue, 10 Mar 2026 10:00:00 GMT</pubDate>
  </item>
  <item>
    <title>Undated post</title>
    <link>https://example.com/undated</link>
  </item>
</channel>
</rss>`

func TestListRecordsSortsByDateDesc(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, sampleRSS)
	}))
	defer srv.Close()

	s := NewStore(0)
	got, err := s.ListRecords(context.Background(), posts.Query{Table: srv.URL, SortField: posts.FieldDate, Descending: true})
	if err != nil {
		t.Fatalf("ListRecords: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 records, got %d", len(got))
	}

	wantTitles := []string{"Newest post", "Older post", "Undated post"}
	for i, want := range wantTitles {
		if got[i].Fields[posts.FieldTitle] != want {
			t.Errorf("position %d: expected %q, got %v", i, want, got[i].Fields[posts.FieldTitle])
		}
	}

	if got[1].Fields[posts.FieldDate] != "2026-02-02" {
		t.Errorf("expected date 2026-02-02, got %v", got[1].Fields[posts.FieldDate])
	}
	if got[1].Fields[posts.FieldSource] != "Ocean Road Links" {
		t.Errorf("expected feed title as source, got %v", got[1].Fields[posts.FieldSource])
	}
	if _, ok := got[2].Fields[posts.FieldDate]; ok {
		t.Error("expected undated item to carry no Date column")
	}

	items := posts.Normalize(got, "2026-10-17")
	if items[0].Category != "AI" || items[1].Category != "Design" || items[2].Category != posts.CategoryAll {
		t.Errorf("unexpected categories: %+v", items)
	}
}

func TestListRecordsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()

	if _, err := NewStore(0).ListRecords(context.Background(), posts.Query{Table: srv.URL}); err == nil {
		t.Error("expected error for non-200 feed")
	}
}

func TestRecordsWithClassifier(t *testing.T) {
	feed := &gofeed.Feed{
		Title: "Links",
		Items: []*gofeed.Item{
			{Title: "Notes on LLM inference", Link: "https://example.com/llm"},
			{Title: "Untagged", Link: "https://example.com/tagged", Categories: []string{"misc", "design"}},
			{Title: "Weekly roundup", Link: "https://example.com/roundup", Categories: []string{"misc"}},
		},
	}

	got := Records(feed, classify.New([]string{"All", "Design", "AI"}))
	want := []any{"AI", "Design", nil}
	for i, w := range want {
		if got[i].Fields[posts.FieldCategory] != w {
			t.Errorf("record %d: expected category %v, got %v", i, w, got[i].Fields[posts.FieldCategory])
		}
	}
}

func TestSortByDateAscending(t *testing.T) {
	records := []posts.Record{
		{ID: "b", Fields: map[string]any{posts.FieldDate: "2026-02-01"}},
		{ID: "none", Fields: map[string]any{}},
		{ID: "a", Fields: map[string]any{posts.FieldDate: "2026-01-01"}},
	}
	sortByDate(records, false)
	for i, id := range []string{"a", "b", "none"} {
		if records[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, records[i].ID)
		}
	}
}

func TestArticleID(t *testing.T) {
	id1 := articleID("https://example.com/post-1")
	id2 := articleID("https://example.com/post-2")
	id1again := articleID("https://example.com/post-1")

	if id1 == id2 {
		t.Error("different URLs should produce different IDs")
	}
	if id1 != id1again {
		t.Error("same URL should produce same ID")
	}
	if len(id1) != 32 {
		t.Errorf("expected 32-char hex string, got %d chars: %s", len(id1), id1)
	}
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"<p>Hello</p>", "Hello"},
		{"<b>Bold</b> and <i>italic</i>", "Bold and italic"},
		{"No tags here", "No tags here"},
		{"<div>  Multiple   spaces  </div>", "Multiple spaces"},
		{"", ""},
	}
	for _, tt := range tests {
		got := stripHTML(tt.input)
		if got != tt.want {
			t.Errorf("stripHTML(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
