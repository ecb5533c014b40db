package posts

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Store backends.
const (
	BackendAirtable = "airtable"
	BackendFeed     = "feed"
)

// Config holds what the fetcher needs to reach its store.
type Config struct {
	Backend     string
	AccessToken string
	BaseID      string
	TableID     string
	FeedURL     string
	APIURL      string // empty means the public Airtable API
}

func (c Config) backend() string {
	if c.Backend == "" {
		return BackendAirtable
	}
	return c.Backend
}

// Missing lists the settings required by the configured backend that are
// empty.
func (c Config) Missing() []string {
	var missing []string
	check := func(name, v string) {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	switch c.backend() {
	case BackendFeed:
		check("feed url", c.FeedURL)
	default:
		check("access token", c.AccessToken)
		check("base id", c.BaseID)
		check("table id", c.TableID)
	}
	return missing
}

// Table is the identifier passed to the store: the table id for Airtable,
// the feed URL for feeds.
func (c Config) Table() string {
	if c.backend() == BackendFeed {
		return c.FeedURL
	}
	return c.TableID
}

// ConfigMessage is the descriptor returned when required settings are absent.
func (c Config) ConfigMessage() string {
	if c.backend() == BackendFeed {
		return "Feed not configured. Please set up environment variables."
	}
	return "Airtable not configured. Please set up environment variables."
}

// UpstreamMessage is the descriptor returned when the store call fails.
func (c Config) UpstreamMessage() string {
	if c.backend() == BackendFeed {
		return "Failed to fetch posts from feed"
	}
	return "Failed to fetch posts from Airtable"
}

// Opener builds a store for a validated config.
type Opener func(cfg Config) (Store, error)

// Fetcher retrieves and normalizes every item from the configured store. It
// holds no state between calls.
type Fetcher struct {
	cfg    Config
	open   Opener
	logger *zap.Logger
	now    func() time.Time
}

// Option customizes a Fetcher.
type Option func(*Fetcher)

// WithLogger sets the logger used for failure diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(f *Fetcher) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithClock overrides the clock used for the default date.
func WithClock(now func() time.Time) Option {
	return func(f *Fetcher) {
		if now != nil {
			f.now = now
		}
	}
}

func NewFetcher(cfg Config, open Opener, opts ...Option) *Fetcher {
	f := &Fetcher{
		cfg:    cfg,
		open:   open,
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

// Fetch returns all current items sorted by date, newest first. It never
// fails: missing settings and store errors yield an empty item list and an
// error descriptor.
func (f *Fetcher) Fetch(ctx context.Context) Result {
	if missing := f.cfg.Missing(); len(missing) > 0 {
		f.logger.Error("store not configured",
			zap.String("backend", f.cfg.backend()),
			zap.Strings("missing", missing))
		return Result{Items: []Item{}, Kind: ErrConfig, Message: f.cfg.ConfigMessage()}
	}

	records, err := f.list(ctx)
	if err != nil {
		f.logger.Error("fetching posts",
			zap.String("backend", f.cfg.backend()),
			zap.Error(err))
		return Result{Items: []Item{}, Kind: ErrUpstream, Message: f.cfg.UpstreamMessage()}
	}

	items := Normalize(records, f.now().UTC().Format(DateLayout))
	f.logger.Debug("fetched posts",
		zap.Int("records", len(records)),
		zap.Int("items", len(items)))
	return Result{Items: items}
}

// Load adapts Fetch to the wire form consumed by the view.
func (f *Fetcher) Load(ctx context.Context) (Response, error) {
	return f.Fetch(ctx).Response(), nil
}

func (f *Fetcher) list(ctx context.Context) (records []Record, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("store panicked: %v", r)
		}
	}()

	if f.open == nil {
		return nil, fmt.Errorf("no store for backend %q", f.cfg.backend())
	}
	store, err := f.open(f.cfg)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	return store.ListRecords(ctx, Query{
		Table:      f.cfg.Table(),
		SortField:  FieldDate,
		Descending: true,
	})
}
