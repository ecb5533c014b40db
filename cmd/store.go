package cmd

import (
	"github.com/0wl93/ocean-road-archive/internal/airtable"
	"github.com/0wl93/ocean-road-archive/internal/classify"
	"github.com/0wl93/ocean-road-archive/internal/config"
	"github.com/0wl93/ocean-road-archive/internal/feed"
	"github.com/0wl93/ocean-road-archive/internal/posts"
	"go.uber.org/zap"
)

// storeOpener picks the store adapter for the configured backend.
func storeOpener(c *config.Config) posts.Opener {
	return func(pc posts.Config) (posts.Store, error) {
		if pc.Backend == posts.BackendFeed {
			return feed.NewStore(c.StoreTimeout(), feed.WithClassifier(classify.New(c.CategoryList()))), nil
		}
		client, err := airtable.New(airtable.Options{
			AccessToken: pc.AccessToken,
			BaseID:      pc.BaseID,
			APIURL:      pc.APIURL,
			Timeout:     c.StoreTimeout(),
		})
		if err != nil {
			return nil, err
		}
		return client, nil
	}
}

func newFetcher(c *config.Config, l *zap.Logger) *posts.Fetcher {
	return posts.NewFetcher(c.Posts(), storeOpener(c), posts.WithLogger(l.Named("posts")))
}
