// Package airtable lists table rows through the Airtable REST API.
package airtable

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/0wl93/ocean-road-archive/internal/posts"
	at "github.com/mehanizm/airtable"
)

// DefaultAPIURL is the public Airtable endpoint.
const DefaultAPIURL = "https://api.airtable.com"

// maxPages caps offset-following. At 100 records per page this is 100k rows.
const maxPages = 1000

// ListOptions narrows a table listing.
type ListOptions struct {
	SortField  string
	Descending bool
}

// Client talks to one Airtable base.
type Client struct {
	api    *at.Client
	baseID string
}

// Options configures a Client.
type Options struct {
	AccessToken string
	BaseID      string
	APIURL      string
	Timeout     time.Duration
	HTTPClient  *http.Client
}

func New(opts Options) (*Client, error) {
	token := strings.TrimSpace(opts.AccessToken)
	if token == "" {
		return nil, errors.New("airtable: access token is required")
	}
	baseID := strings.TrimSpace(opts.BaseID)
	if baseID == "" {
		return nil, errors.New("airtable: base id is required")
	}

	apiURL := strings.TrimRight(strings.TrimSpace(opts.APIURL), "/")
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	u, err := url.Parse(apiURL)
	if err != nil {
		return nil, fmt.Errorf("airtable: invalid api url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("airtable: api url scheme must be http or https, got %q", u.Scheme)
	}

	client := opts.HTTPClient
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}

	api := at.NewClient(token)
	if err := api.SetBaseURL(apiURL + "/v0"); err != nil {
		return nil, fmt.Errorf("airtable: invalid api url: %w", err)
	}
	api.SetCustomClient(client)

	return &Client{api: api, baseID: baseID}, nil
}

// List returns every record in table, following pagination offsets. The
// context is checked between pages.
func (c *Client) List(ctx context.Context, table string, opts ListOptions) ([]posts.Record, error) {
	if table == "" {
		return nil, errors.New("airtable: table is required")
	}

	tbl := c.api.GetTable(c.baseID, table)
	var (
		all    []posts.Record
		offset string
	)
	for page := 0; page < maxPages; page++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("airtable: listing %s: %w", table, err)
		}

		call := tbl.GetRecords()
		if opts.SortField != "" {
			dir := "asc"
			if opts.Descending {
				dir = "desc"
			}
			call = call.WithSort(struct {
				FieldName string
				Direction string
			}{FieldName: opts.SortField, Direction: dir})
		}
		if offset != "" {
			call = call.WithOffset(offset)
		}

		resp, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("airtable: listing %s: %w", table, err)
		}
		for _, r := range resp.Records {
			if r == nil {
				continue
			}
			all = append(all, posts.Record{ID: r.ID, Fields: r.Fields})
		}
		if resp.Offset == "" {
			return all, nil
		}
		offset = resp.Offset
	}
	return nil, fmt.Errorf("airtable: listing %s exceeded %d pages", table, maxPages)
}

// ListRecords lists q.Table as store rows.
func (c *Client) ListRecords(ctx context.Context, q posts.Query) ([]posts.Record, error) {
	return c.List(ctx, q.Table, ListOptions{SortField: q.SortField, Descending: q.Descending})
}
