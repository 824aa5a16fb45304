package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/mazegen/pkg/cache"
	"github.com/matzehuels/mazegen/pkg/observability"
	"github.com/matzehuels/mazegen/pkg/pipeline"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	s := New(Config{
		Addr:     "127.0.0.1:0",
		MaxCells: 10_000,
		Defaults: pipeline.Options{Height: 8, Width: 12},
		Logger:   logger,
		Runner:   pipeline.NewRunner(logger),
	})
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, ts *httptest.Server, path string, header http.Header) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, ts.URL+path, nil)
	if err != nil {
		t.Fatal(err)
	}
	for k, v := range header {
		req.Header[k] = v
	}
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, body
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	resp, body := get(t, ts, "/healthz", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if strings.TrimSpace(string(body)) != "ok" {
		t.Errorf("body = %q", body)
	}
	if _, err := uuid.Parse(resp.Header.Get(HeaderRequestID)); err != nil {
		t.Errorf("X-Request-ID %q is not a UUID", resp.Header.Get(HeaderRequestID))
	}
}

func TestRequestIDPassthrough(t *testing.T) {
	ts := newTestServer(t)
	id := uuid.NewString()
	resp, _ := get(t, ts, "/healthz", http.Header{HeaderRequestID: {id}})
	if got := resp.Header.Get(HeaderRequestID); got != id {
		t.Errorf("X-Request-ID = %q, want %q", got, id)
	}

	resp, _ = get(t, ts, "/healthz", http.Header{HeaderRequestID: {"not-a-uuid"}})
	if got := resp.Header.Get(HeaderRequestID); got == "not-a-uuid" {
		t.Error("malformed request ID should be replaced")
	}
}

func TestMazeFormats(t *testing.T) {
	ts := newTestServer(t)
	tests := []struct {
		format      string
		contentType string
		prefix      string
	}{
		{"svg", "image/svg+xml", "<svg"},
		{"png", "image/png", "\x89PNG"},
		{"txt", "text/plain; charset=utf-8", "+"},
		{"dot", "text/vnd.graphviz; charset=utf-8", "graph maze"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			resp, body := get(t, ts, "/maze/"+tt.format+"?seed=7", nil)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d, body %s", resp.StatusCode, body)
			}
			if got := resp.Header.Get("Content-Type"); got != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", got, tt.contentType)
			}
			if got := resp.Header.Get(HeaderSeed); got != "7" {
				t.Errorf("X-Maze-Seed = %q, want 7", got)
			}
			if !bytes.HasPrefix(body, []byte(tt.prefix)) {
				t.Errorf("body starts with %q, want prefix %q", body[:min(len(body), 16)], tt.prefix)
			}
		})
	}
}

func TestMazeQueryParams(t *testing.T) {
	ts := newTestServer(t)
	resp, body := get(t, ts, "/maze/txt?height=3&width=5&seed=11&merge=unionfind", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.StatusCode, body)
	}
	lines := strings.Split(strings.TrimRight(string(body), "\n"), "\n")
	if len(lines) != 2*3+1 {
		t.Errorf("got %d lines, want %d", len(lines), 2*3+1)
	}
	if len(lines[0]) != 4*5+1 {
		t.Errorf("first line has %d chars, want %d", len(lines[0]), 4*5+1)
	}

	// Same seed, same maze.
	_, again := get(t, ts, "/maze/txt?height=3&width=5&seed=11", nil)
	if !bytes.Equal(body, again) {
		t.Error("equal seeds produced different mazes across merge strategies")
	}
}

func TestMazeRandomSeedIsReported(t *testing.T) {
	ts := newTestServer(t)
	resp, body := get(t, ts, "/maze/txt", nil)
	seed, err := strconv.ParseUint(resp.Header.Get(HeaderSeed), 10, 64)
	if err != nil || seed == 0 {
		t.Fatalf("X-Maze-Seed = %q", resp.Header.Get(HeaderSeed))
	}
	_, again := get(t, ts, "/maze/txt?seed="+resp.Header.Get(HeaderSeed), nil)
	if !bytes.Equal(body, again) {
		t.Error("replaying the reported seed produced a different maze")
	}
}

func TestMazeErrors(t *testing.T) {
	ts := newTestServer(t)
	tests := []struct {
		name   string
		path   string
		status int
		code   string
	}{
		{"bad format", "/maze/gif", http.StatusBadRequest, "INVALID_FORMAT"},
		{"zero height", "/maze/svg?height=0&width=4", http.StatusBadRequest, "INVALID_DIMENSIONS"},
		{"not a number", "/maze/svg?height=tall", http.StatusBadRequest, "INVALID_INPUT"},
		{"bad seed", "/maze/svg?seed=-1", http.StatusBadRequest, "INVALID_INPUT"},
		{"over limit", "/maze/txt?height=200&width=200", http.StatusBadRequest, "INVALID_DIMENSIONS"},
		{"bad merge", "/maze/svg?merge=prim", http.StatusBadRequest, "INVALID_MERGE"},
		{"bad colour", "/maze/svg?wall=nope", http.StatusBadRequest, "INVALID_COLOR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := get(t, ts, tt.path, nil)
			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d (body %s)", resp.StatusCode, tt.status, body)
			}
			var e errorResponse
			if err := json.Unmarshal(body, &e); err != nil {
				t.Fatalf("error body is not JSON: %v", err)
			}
			if e.Code != tt.code {
				t.Errorf("code = %q, want %q", e.Code, tt.code)
			}
			if e.RequestID == "" {
				t.Error("error body should carry the request ID")
			}
		})
	}
}

func TestMazeCache(t *testing.T) {
	store, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	logger := log.NewWithOptions(io.Discard, log.Options{})
	s := New(Config{
		Addr:     "127.0.0.1:0",
		MaxCells: 10_000,
		Defaults: pipeline.Options{Height: 8, Width: 12},
		Logger:   logger,
		Cache:    store,
		CacheTTL: time.Hour,
	})
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)

	first, body1 := get(t, ts, "/maze/txt?seed=5", nil)
	second, body2 := get(t, ts, "/maze/txt?seed=5", nil)
	if first.Header.Get(HeaderCache) != "miss" || second.Header.Get(HeaderCache) != "hit" {
		t.Errorf("X-Cache = %q then %q, want miss then hit", first.Header.Get(HeaderCache), second.Header.Get(HeaderCache))
	}
	if !bytes.Equal(body1, body2) {
		t.Error("cached body differs from the rendered one")
	}
	if second.Header.Get(HeaderSeed) != "5" {
		t.Errorf("cached seed header = %q", second.Header.Get(HeaderSeed))
	}

	other, _ := get(t, ts, "/maze/txt?seed=5&margin=2", nil)
	if other.Header.Get(HeaderCache) != "miss" {
		t.Error("different options must not share a cache entry")
	}

	// Both merge strategies carve the same maze.
	merged, body3 := get(t, ts, "/maze/txt?seed=5&merge=unionfind", nil)
	if merged.Header.Get(HeaderCache) != "hit" || !bytes.Equal(body1, body3) {
		t.Errorf("merge=unionfind X-Cache = %q, want hit", merged.Header.Get(HeaderCache))
	}

	// Equal colours in different spellings share an entry.
	short, _ := get(t, ts, "/maze/svg?seed=5&floor=%23FFF", nil)
	long, _ := get(t, ts, "/maze/svg?seed=5&floor=%23ffffff", nil)
	if short.Header.Get(HeaderCache) != "miss" || long.Header.Get(HeaderCache) != "hit" {
		t.Errorf("X-Cache = %q then %q for #FFF and #ffffff, want miss then hit",
			short.Header.Get(HeaderCache), long.Header.Get(HeaderCache))
	}

	for range 2 {
		resp, _ := get(t, ts, "/maze/txt", nil)
		if resp.Header.Get(HeaderCache) != "miss" {
			t.Error("random-seed requests must not be served from the cache")
		}
	}
}

func TestZeroMaxCellsUsesLibraryLimit(t *testing.T) {
	s := New(Config{Logger: log.NewWithOptions(io.Discard, log.Options{})})
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)

	resp, body := get(t, ts, "/maze/txt?height=2&width=2&seed=3", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.StatusCode, body)
	}
	if got := strings.Count(string(body), "\n"); got != 5 {
		t.Errorf("2x2 text maze has %d lines, want 5", got)
	}
}

func TestStatusFor(t *testing.T) {
	if got := statusFor(context.Canceled); got != http.StatusServiceUnavailable {
		t.Errorf("statusFor(Canceled) = %d", got)
	}
	if got := statusFor(io.EOF); got != http.StatusInternalServerError {
		t.Errorf("statusFor(EOF) = %d", got)
	}
}

func TestHTTPHooksFire(t *testing.T) {
	hooks := &countingHooks{}
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	ts := newTestServer(t)
	get(t, ts, "/healthz", nil)
	get(t, ts, "/maze/gif", nil)

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	if hooks.requests != 2 {
		t.Errorf("requests = %d, want 2", hooks.requests)
	}
	if len(hooks.statuses) != 2 || hooks.statuses[0] != 200 || hooks.statuses[1] != 400 {
		t.Errorf("statuses = %v, want [200 400]", hooks.statuses)
	}
}

type countingHooks struct {
	mu       sync.Mutex
	requests int
	statuses []int
}

func (h *countingHooks) OnRequest(context.Context, string, string, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.requests++
}

func (h *countingHooks) OnResponse(_ context.Context, _, _, _ string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.statuses = append(h.statuses, status)
}

func TestRunShutsDownOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := New(Config{Addr: "127.0.0.1:0", MaxCells: 100, Logger: log.NewWithOptions(io.Discard, log.Options{})})

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}
