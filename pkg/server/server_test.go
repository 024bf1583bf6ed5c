package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gitlanes/gitlanes/pkg/commit"
	"github.com/gitlanes/gitlanes/pkg/graphio"
	"github.com/gitlanes/gitlanes/pkg/pipeline"
	"github.com/gitlanes/gitlanes/pkg/view"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	s := New(pipeline.NewRunner(nil, nil), nil)
	s.Load("example/repo", []commit.Commit{
		{Hash: "d", Parents: []string{"b", "c"}, IsHead: true, Branches: []string{"main"}},
		{Hash: "c", Parents: []string{"a"}, Branches: []string{"feature"}},
		{Hash: "b", Parents: []string{"a"}},
		{Hash: "a", Tags: []string{"v1.0"}},
	})
	return s
}

func get(t *testing.T, h http.Handler, path string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := get(t, testServer(t).Handler(), "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestCommitsEndpoint(t *testing.T) {
	rec := get(t, testServer(t).Handler(), "/api/commits", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var cl graphio.CommitList
	if err := json.Unmarshal(rec.Body.Bytes(), &cl); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if cl.Repo != "example/repo" || len(cl.Commits) != 4 {
		t.Errorf("got repo %q with %d commits", cl.Repo, len(cl.Commits))
	}
	if rec.Header().Get("ETag") == "" {
		t.Error("commits response should carry the snapshot ETag")
	}
}

func TestGraphEndpoint(t *testing.T) {
	rec := get(t, testServer(t).Handler(), "/api/graph", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var l graphio.Layout
	if err := json.Unmarshal(rec.Body.Bytes(), &l); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if l.Lanes != 2 {
		t.Errorf("Lanes = %d, want 2", l.Lanes)
	}
	if len(l.Nodes) != 4 || len(l.Edges) != 4 {
		t.Errorf("nodes/edges = %d/%d, want 4/4", len(l.Nodes), len(l.Edges))
	}
}

func TestDrawEndpoint(t *testing.T) {
	rec := get(t, testServer(t).Handler(), "/api/draw?zoom=1.5", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var dl struct {
		Nodes []struct {
			X float64 `json:"x"`
		} `json:"nodes"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &dl); err != nil {
		t.Fatalf("decoding draw list: %v", err)
	}
	if len(dl.Nodes) != 4 {
		t.Errorf("draw list has %d nodes, want 4", len(dl.Nodes))
	}
}

func TestSVGEndpoint(t *testing.T) {
	rec := get(t, testServer(t).Handler(), "/graph.svg", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.HasPrefix(rec.Body.String(), "<svg") {
		t.Error("body is not SVG")
	}
}

func TestDOTEndpoint(t *testing.T) {
	rec := get(t, testServer(t).Handler(), "/graph.dot", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.HasPrefix(rec.Body.String(), "digraph commits {") {
		t.Error("body is not DOT")
	}
}

func TestETagNotModified(t *testing.T) {
	s := testServer(t)
	h := s.Handler()

	first := get(t, h, "/api/graph", nil)
	etag := first.Header().Get("ETag")
	if etag == "" {
		t.Fatal("no ETag on first response")
	}

	second := get(t, h, "/api/graph", map[string]string{"If-None-Match": etag})
	if second.Code != http.StatusNotModified {
		t.Errorf("matching ETag should yield 304, got %d", second.Code)
	}

	// A reload invalidates the snapshot.
	s.Load("example/repo", []commit.Commit{{Hash: "x"}})
	third := get(t, h, "/api/graph", map[string]string{"If-None-Match": etag})
	if third.Code != http.StatusOK {
		t.Errorf("stale ETag after reload should yield 200, got %d", third.Code)
	}
	if third.Header().Get("ETag") == etag {
		t.Error("reload should rotate the ETag")
	}
}

func TestZoomParamClamping(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want float64
	}{
		{"missing", "/x", view.DefaultZoom},
		{"in range", "/x?zoom=1.5", 1.5},
		{"above max", "/x?zoom=99", view.MaxZoom},
		{"below min", "/x?zoom=0.1", view.MinZoom},
		{"garbage", "/x?zoom=abc", view.DefaultZoom},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			if got := zoomParam(req); got != tt.want {
				t.Errorf("zoomParam(%s) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}

func TestEmptyWindow(t *testing.T) {
	s := New(pipeline.NewRunner(nil, nil), nil)
	h := s.Handler()

	// No Load yet: endpoints still answer, with an empty graph.
	rec := get(t, h, "/api/graph", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var l graphio.Layout
	if err := json.Unmarshal(rec.Body.Bytes(), &l); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if len(l.Nodes) != 0 {
		t.Errorf("expected empty layout, got %d nodes", len(l.Nodes))
	}
}
