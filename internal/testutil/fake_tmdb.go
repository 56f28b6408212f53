package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// FakeTMDB is an httptest server answering the search and find endpoints
// with canned payloads keyed by path and query text.
type FakeTMDB struct {
	*httptest.Server

	mu       sync.Mutex
	search   map[string]any
	find     map[string]any
	status   int
	requests []*http.Request
}

// NewFakeTMDB starts a fake provider that is closed when the test ends.
// Unknown queries answer with an empty result list.
func NewFakeTMDB(t *testing.T) *FakeTMDB {
	t.Helper()

	f := &FakeTMDB{
		search: make(map[string]any),
		find:   make(map[string]any),
	}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Close)
	return f
}

// SetSearch registers the results returned by endpoint (for example
// "search/tv") for query.
func (f *FakeTMDB) SetSearch(endpoint, query string, results ...map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.search[searchKey("/"+endpoint, query)] = map[string]any{"results": results}
}

// SetFind registers the /find payload for an IMDb id.
func (f *FakeTMDB) SetFind(imdbID string, movies, series []map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if movies == nil {
		movies = []map[string]any{}
	}
	if series == nil {
		series = []map[string]any{}
	}
	f.find[imdbID] = map[string]any{"movie_results": movies, "tv_results": series}
}

// FailWith makes every request answer with status.
func (f *FakeTMDB) FailWith(status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = status
}

// Requests returns the requests received so far.
func (f *FakeTMDB) Requests() []*http.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*http.Request(nil), f.requests...)
}

// Paths returns the request paths received so far.
func (f *FakeTMDB) Paths() []string {
	var paths []string
	for _, r := range f.Requests() {
		paths = append(paths, r.URL.Path)
	}
	return paths
}

func (f *FakeTMDB) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.requests = append(f.requests, r)
	status := f.status
	var payload any
	if id, ok := strings.CutPrefix(r.URL.Path, "/find/"); ok {
		payload = f.find[id]
		if payload == nil {
			payload = map[string]any{"movie_results": []any{}, "tv_results": []any{}}
		}
	} else {
		payload = f.search[searchKey(r.URL.Path, r.URL.Query().Get("query"))]
		if payload == nil {
			payload = map[string]any{"results": []any{}}
		}
	}
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]any{"status_message": http.StatusText(status)})
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func searchKey(path, query string) string {
	return path + "|" + strings.ToLower(strings.TrimSpace(query))
}
