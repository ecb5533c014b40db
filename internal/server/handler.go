package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/0wl93/ocean-road-archive/internal/posts"
	"go.uber.org/zap"
)

// Fetcher produces the current item set. It reports failures through the
// result, never as an error.
type Fetcher interface {
	Fetch(ctx context.Context) posts.Result
}

// NewHandler routes the posts endpoint and a health check.
func NewHandler(fetcher Fetcher, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	mux := http.NewServeMux()
	mux.Handle("GET /api/posts", handlePosts(fetcher))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	return withRequestLog(mux, logger)
}

// handlePosts always answers 200; degraded results carry an error field.
func handlePosts(fetcher Fetcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := fetcher.Fetch(r.Context())
		writeJSON(w, http.StatusOK, res.Response())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func withRequestLog(next http.Handler, logger *zap.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)))
	})
}
