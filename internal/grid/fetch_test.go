package grid

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestFetcherRevalidatesWithETag(t *testing.T) {
	var hits, conditional atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.Header.Get("If-None-Match") == `"v1"` {
			conditional.Add(1)
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", `"v1"`)
		_, _ = w.Write([]byte(gridYAML))
	}))
	defer srv.Close()

	f := NewFetcher(t.TempDir(), "termcal-test")
	src := Source{ID: "grid", URL: srv.URL + "/grid.yaml"}

	first, err := f.Fetch(context.Background(), src)
	if err != nil {
		t.Fatalf("first Fetch: %v", err)
	}
	if first.FromCache || string(first.Body) != gridYAML {
		t.Fatalf("first fetch = %+v", first)
	}

	second, err := f.Fetch(context.Background(), src)
	if err != nil {
		t.Fatalf("second Fetch: %v", err)
	}
	if !second.FromCache || string(second.Body) != gridYAML {
		t.Fatalf("second fetch not served from cache")
	}
	if hits.Load() != 2 || conditional.Load() != 1 {
		t.Fatalf("hits = %d, conditional = %d, want 2 and 1", hits.Load(), conditional.Load())
	}
}

func TestFetcherFallsBackToCache(t *testing.T) {
	var fail atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte("cached grid"))
	}))
	defer srv.Close()

	f := NewFetcher(t.TempDir(), "")
	src := Source{ID: "grid", URL: srv.URL}
	if _, err := f.Fetch(context.Background(), src); err != nil {
		t.Fatalf("warm Fetch: %v", err)
	}

	fail.Store(true)
	res, err := f.Fetch(context.Background(), src)
	if err != nil {
		t.Fatalf("Fetch with failing server: %v", err)
	}
	if !res.FromCache || string(res.Body) != "cached grid" {
		t.Fatalf("fallback = %+v", res)
	}
}

func TestFetcherErrorWithoutCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewFetcher(t.TempDir(), "")
	if _, err := f.Fetch(context.Background(), Source{ID: "grid", URL: srv.URL}); err == nil {
		t.Fatalf("Fetch succeeded without server or cache")
	}
	if _, err := f.Fetch(context.Background(), Source{ID: "grid"}); err == nil {
		t.Fatalf("Fetch accepted an empty URL")
	}
}

func TestRedactURL(t *testing.T) {
	if got := redactURL("https://edt.example.org/private/token?x=1"); got != "https://edt.example.org/...(redacted)" {
		t.Fatalf("redactURL = %q", got)
	}
	if got := redactURL("not a url"); got != "grid://...(redacted)" {
		t.Fatalf("redactURL = %q", got)
	}
}
