package feed

import (
	"context"
	"crypto/sha256"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/0wl93/ocean-road-archive/internal/classify"
	"github.com/0wl93/ocean-road-archive/internal/posts"
	"github.com/mmcdole/gofeed"
)

// Store reads curated links from an RSS, Atom or JSON feed. The query table
// is the feed URL.
type Store struct {
	parser     *gofeed.Parser
	timeout    time.Duration
	classifier *classify.Classifier
}

type Option func(*Store)

// WithClassifier assigns categories from the classifier instead of taking
// the item's first feed tag.
func WithClassifier(c *classify.Classifier) Option {
	return func(s *Store) {
		s.classifier = c
	}
}

func NewStore(timeout time.Duration, opts ...Option) *Store {
	s := &Store{parser: gofeed.NewParser(), timeout: timeout}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) ListRecords(ctx context.Context, q posts.Query) ([]posts.Record, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	feed, err := s.parser.ParseURLWithContext(q.Table, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", q.Table, err)
	}

	records := Records(feed, s.classifier)
	if q.SortField == posts.FieldDate {
		sortByDate(records, q.Descending)
	}
	return records, nil
}

// Records maps feed items to store rows using the same column names as the
// Airtable table. c may be nil.
func Records(feed *gofeed.Feed, c *classify.Classifier) []posts.Record {
	records := make([]posts.Record, 0, len(feed.Items))
	for _, item := range feed.Items {
		fields := map[string]any{
			posts.FieldTitle: stripHTML(item.Title),
			posts.FieldURL:   item.Link,
		}
		switch {
		case c != nil:
			if cat := c.Classify(item.Categories, item.Title, stripHTML(item.Description)); cat != "" {
				fields[posts.FieldCategory] = cat
			}
		case len(item.Categories) > 0:
			fields[posts.FieldCategory] = item.Categories
		}
		if src := itemSource(feed, item); src != "" {
			fields[posts.FieldSource] = src
		}
		if pub := itemDate(item); !pub.IsZero() {
			fields[posts.FieldDate] = pub.UTC().Format(posts.DateLayout)
		}

		records = append(records, posts.Record{
			ID:     recordID(item),
			Fields: fields,
		})
	}
	return records
}

func itemSource(feed *gofeed.Feed, item *gofeed.Item) string {
	if item.Author != nil && item.Author.Name != "" {
		return item.Author.Name
	}
	for _, a := range item.Authors {
		if a != nil && a.Name != "" {
			return a.Name
		}
	}
	return strings.TrimSpace(feed.Title)
}

func itemDate(item *gofeed.Item) time.Time {
	if item.PublishedParsed != nil {
		return *item.PublishedParsed
	}
	if item.UpdatedParsed != nil {
		return *item.UpdatedParsed
	}
	return time.Time{}
}

// Undated rows sort last in either direction.
func sortByDate(records []posts.Record, desc bool) {
	date := func(r posts.Record) string {
		s, _ := r.Fields[posts.FieldDate].(string)
		return s
	}
	sort.SliceStable(records, func(i, j int) bool {
		di, dj := date(records[i]), date(records[j])
		if di == "" || dj == "" {
			return di != "" && dj == ""
		}
		if desc {
			return di > dj
		}
		return di < dj
	})
}

func recordID(item *gofeed.Item) string {
	key := item.Link
	if key == "" {
		key = item.GUID
	}
	return articleID(key)
}

func articleID(link string) string {
	h := sha256.Sum256([]byte(link))
	return fmt.Sprintf("%x", h[:16])
}

func stripHTML(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
