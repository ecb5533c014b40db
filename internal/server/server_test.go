package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/0wl93/ocean-road-archive/internal/posts"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type stubFetcher struct {
	res   posts.Result
	calls int
}

func (f *stubFetcher) Fetch(context.Context) posts.Result {
	f.calls++
	return f.res
}

func get(t *testing.T, h http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestPostsEndpoint(t *testing.T) {
	item := posts.Item{ID: "rec1", Title: "A", URL: "https://a.dev", Category: "AI", Source: "HN", Date: "2026-10-01"}
	tests := []struct {
		name     string
		res      posts.Result
		wantBody string
	}{
		{
			name:     "success",
			res:      posts.Result{Items: []posts.Item{item}},
			wantBody: `{"posts":[{"id":"rec1","title":"A","url":"https://a.dev","category":"AI","source":"HN","date":"2026-10-01"}]}`,
		},
		{
			name:     "missing config",
			res:      posts.Result{Items: []posts.Item{}, Kind: posts.ErrConfig, Message: "Airtable not configured. Please set up environment variables."},
			wantBody: `{"error":"Airtable not configured. Please set up environment variables.","posts":[]}`,
		},
		{
			name:     "upstream failure",
			res:      posts.Result{Kind: posts.ErrUpstream, Message: "Failed to fetch posts from Airtable"},
			wantBody: `{"error":"Failed to fetch posts from Airtable","posts":[]}`,
		},
		{
			name:     "empty table",
			res:      posts.Result{Items: []posts.Item{}},
			wantBody: `{"posts":[]}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := &stubFetcher{res: tt.res}
			rec := get(t, NewHandler(fetcher, zap.NewNop()), http.MethodGet, "/api/posts")

			if rec.Code != http.StatusOK {
				t.Errorf("expected 200, got %d", rec.Code)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("unexpected content type %q", ct)
			}
			if got := strings.TrimSpace(rec.Body.String()); got != tt.wantBody {
				t.Errorf("body = %s, want %s", got, tt.wantBody)
			}
			if fetcher.calls != 1 {
				t.Errorf("expected one fetch per request, got %d", fetcher.calls)
			}
		})
	}
}

func TestPostsEndpointRejectsOtherMethods(t *testing.T) {
	fetcher := &stubFetcher{}
	rec := get(t, NewHandler(fetcher, nil), http.MethodPost, "/api/posts")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
	if fetcher.calls != 0 {
		t.Error("fetcher should not run for rejected methods")
	}
}

func TestHealthz(t *testing.T) {
	rec := get(t, NewHandler(&stubFetcher{}, nil), http.MethodGet, "/healthz")
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Errorf("unexpected healthz response %d %q", rec.Code, rec.Body.String())
	}
}

func TestNewValidation(t *testing.T) {
	if _, err := New(Config{}, &stubFetcher{}, nil); err == nil {
		t.Error("expected error for empty addr")
	}
	if _, err := New(Config{Addr: ":0"}, nil, nil); err == nil {
		t.Error("expected error for nil fetcher")
	}
}

func TestServeAndShutdown(t *testing.T) {
	fetcher := &stubFetcher{res: posts.Result{Items: []posts.Item{{ID: "1", Title: "T", URL: "u", Category: "All", Source: "Unknown", Date: "2026-10-17"}}}}
	srv, err := New(Config{Addr: "127.0.0.1:0", ShutdownTimeout: time.Second}, fetcher, zap.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	resp, err := client.Get("http://" + ln.Addr().String() + "/api/posts")
	if err != nil {
		cancel()
		t.Fatalf("GET: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	var decoded posts.Response
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("decoding %s: %v", body, err)
	}
	if len(decoded.Posts) != 1 || decoded.Error != "" {
		t.Errorf("unexpected response %+v", decoded)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
	client.CloseIdleConnections()
}
