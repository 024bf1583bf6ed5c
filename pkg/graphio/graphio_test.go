package graphio

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/gitlanes/gitlanes/pkg/commit"
	"github.com/gitlanes/gitlanes/pkg/layout"
)

const wrappedJSON = `{
  "repo": "example/repo",
  "commits": [
    {"hash": "b", "parents": ["a"], "branches": ["main"], "is_head": true},
    {"hash": "a", "tags": ["v1.0"]}
  ]
}`

const bareJSON = `[
  {"hash": "b", "parents": ["a"]},
  {"hash": "a"}
]`

func TestReadCommitsWrapped(t *testing.T) {
	cl, err := ReadCommits(strings.NewReader(wrappedJSON))
	if err != nil {
		t.Fatalf("ReadCommits() error = %v", err)
	}
	if cl.Repo != "example/repo" {
		t.Errorf("Repo = %q, want example/repo", cl.Repo)
	}
	if len(cl.Commits) != 2 {
		t.Fatalf("expected 2 commits, got %d", len(cl.Commits))
	}
	if !cl.Commits[0].IsHead {
		t.Error("first commit should be HEAD")
	}
	if cl.Commits[1].Tags[0] != "v1.0" {
		t.Errorf("tag = %q, want v1.0", cl.Commits[1].Tags[0])
	}
}

func TestReadCommitsBareArray(t *testing.T) {
	cl, err := ReadCommits(strings.NewReader(bareJSON))
	if err != nil {
		t.Fatalf("ReadCommits() error = %v", err)
	}
	if cl.Repo != "" {
		t.Errorf("bare array carries no repo, got %q", cl.Repo)
	}
	if len(cl.Commits) != 2 {
		t.Errorf("expected 2 commits, got %d", len(cl.Commits))
	}
}

func TestReadCommitsInvalid(t *testing.T) {
	if _, err := ReadCommits(strings.NewReader("not json")); err == nil {
		t.Error("malformed input should error")
	}
}

func TestCommitsFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "commits.json")

	in := CommitList{
		Repo: "example/repo",
		Commits: []commit.Commit{
			{Hash: "b", Parents: []string{"a"}, IsHead: true},
			{Hash: "a"},
		},
	}

	var buf bytes.Buffer
	if err := WriteCommits(in, &buf); err != nil {
		t.Fatalf("WriteCommits() error = %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := ReadCommitsFile(path)
	if err != nil {
		t.Fatalf("ReadCommitsFile() error = %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("round trip mismatch:\nin  %+v\nout %+v", in, out)
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	g := layout.Compute([]commit.Commit{
		{Hash: "c", Parents: []string{"a"}},
		{Hash: "b", Parents: []string{"a"}},
		{Hash: "a"},
	})

	l := FromGraph("example/repo", g)
	if l.Lanes != g.Lanes() {
		t.Errorf("Lanes = %d, want %d", l.Lanes, g.Lanes())
	}

	data, err := MarshalLayout(l)
	if err != nil {
		t.Fatalf("MarshalLayout() error = %v", err)
	}
	back, err := UnmarshalLayout(data)
	if err != nil {
		t.Fatalf("UnmarshalLayout() error = %v", err)
	}

	if !reflect.DeepEqual(l.Graph(), back.Graph()) {
		t.Error("layout round trip changed the graph")
	}
}

func TestLayoutFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.json")

	g := layout.Compute([]commit.Commit{{Hash: "b", Parents: []string{"a"}}, {Hash: "a"}})
	if err := WriteLayoutFile(FromGraph("r", g), path); err != nil {
		t.Fatalf("WriteLayoutFile() error = %v", err)
	}

	l, err := ReadLayoutFile(path)
	if err != nil {
		t.Fatalf("ReadLayoutFile() error = %v", err)
	}
	if !reflect.DeepEqual(g, l.Graph()) {
		t.Error("file round trip changed the graph")
	}
}

func TestReadCommitsSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(wrappedJSON))
	}))
	defer srv.Close()

	cl, err := ReadCommitsSource(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("ReadCommitsSource(url) error = %v", err)
	}
	if len(cl.Commits) != 2 {
		t.Errorf("expected 2 commits from URL, got %d", len(cl.Commits))
	}

	path := filepath.Join(t.TempDir(), "commits.json")
	if err := os.WriteFile(path, []byte(bareJSON), 0644); err != nil {
		t.Fatal(err)
	}
	cl, err = ReadCommitsSource(context.Background(), path)
	if err != nil {
		t.Fatalf("ReadCommitsSource(path) error = %v", err)
	}
	if len(cl.Commits) != 2 {
		t.Errorf("expected 2 commits from file, got %d", len(cl.Commits))
	}
}
