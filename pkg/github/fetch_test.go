package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFetchReleaseJSON(t *testing.T) {
	var gotPath, gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAgent = r.Header.Get("User-Agent")
		w.Write([]byte(`{"tag_name":"2026.08.01"}`))
	}))
	defer srv.Close()

	c := Client{BaseURL: srv.URL}
	data, err := c.FetchReleaseJSON(context.Background(), "yt-dlp", "yt-dlp")
	if err != nil {
		t.Fatalf("FetchReleaseJSON() error = %v", err)
	}

	if gotPath != "/repos/yt-dlp/yt-dlp/releases/latest" {
		t.Errorf("request path = %q; want /repos/yt-dlp/yt-dlp/releases/latest", gotPath)
	}
	if gotAgent != defaultUserAgent {
		t.Errorf("User-Agent = %q; want %q", gotAgent, defaultUserAgent)
	}
	if !strings.Contains(string(data), "2026.08.01") {
		t.Errorf("body = %q; want it to contain the tag name", data)
	}
}

func TestFetchReleaseJSONErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusForbidden)
	}))
	defer srv.Close()

	c := Client{BaseURL: srv.URL}
	if _, err := c.FetchReleaseJSON(context.Background(), "yt-dlp", "yt-dlp"); err == nil {
		t.Fatal("FetchReleaseJSON() expected an error on HTTP 403")
	}
}
