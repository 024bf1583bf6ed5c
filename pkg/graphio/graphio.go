// Package graphio reads and writes the JSON formats the tool exchanges:
// raw commit lists (input boundary) and computed layouts (output).
//
// The commit list format matches the records the external repository-data
// service produces: a flat array of {hash, parents, branches, tags,
// is_head} objects, pre-ordered newest first. The layout format embeds the
// positioned nodes and derived edges and round-trips losslessly.
package graphio

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gitlanes/gitlanes/pkg/commit"
	"github.com/gitlanes/gitlanes/pkg/httputil"
	"github.com/gitlanes/gitlanes/pkg/layout"
)

// CommitList is the serialization wrapper for an input commit window.
type CommitList struct {
	Repo    string          `json:"repo,omitempty" bson:"repo,omitempty"`
	Commits []commit.Commit `json:"commits" bson:"commits"`
}

// Layout is the serialization wrapper for a computed layout.
type Layout struct {
	Repo  string        `json:"repo,omitempty" bson:"repo,omitempty"`
	Lanes int           `json:"lanes" bson:"lanes"`
	Nodes []layout.Node `json:"nodes" bson:"nodes"`
	Edges []layout.Edge `json:"edges" bson:"edges"`
}

// FromGraph wraps a computed layout for serialization.
func FromGraph(repo string, g layout.Graph) Layout {
	return Layout{Repo: repo, Lanes: g.Lanes(), Nodes: g.Nodes, Edges: g.Edges}
}

// Graph unwraps a serialized layout.
func (l Layout) Graph() layout.Graph {
	return layout.Graph{Nodes: l.Nodes, Edges: l.Edges}
}

// ReadCommits decodes a commit list from r. A bare JSON array of commits is
// accepted alongside the wrapped {repo, commits} object.
func ReadCommits(r io.Reader) (CommitList, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return CommitList{}, fmt.Errorf("read commits: %w", err)
	}
	return UnmarshalCommits(data)
}

// UnmarshalCommits decodes a commit list from JSON bytes.
func UnmarshalCommits(data []byte) (CommitList, error) {
	var cl CommitList
	if err := json.Unmarshal(data, &cl); err == nil && cl.Commits != nil {
		return cl, nil
	}
	var bare []commit.Commit
	if err := json.Unmarshal(data, &bare); err != nil {
		return CommitList{}, fmt.Errorf("decode commits: %w", err)
	}
	return CommitList{Commits: bare}, nil
}

// ReadCommitsFile reads a commit list from a JSON file.
func ReadCommitsFile(path string) (CommitList, error) {
	f, err := os.Open(path)
	if err != nil {
		return CommitList{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadCommits(f)
}

// ReadCommitsURL fetches a commit list from an HTTP(S) endpoint, retrying
// transient failures.
func ReadCommitsURL(ctx context.Context, url string) (CommitList, error) {
	data, err := httputil.Fetch(ctx, url)
	if err != nil {
		return CommitList{}, err
	}
	return UnmarshalCommits(data)
}

// ReadCommitsSource reads a commit list from src, which may be a local file
// path or an http(s) URL.
func ReadCommitsSource(ctx context.Context, src string) (CommitList, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return ReadCommitsURL(ctx, src)
	}
	return ReadCommitsFile(src)
}

// WriteCommits writes a commit list as indented JSON to w.
func WriteCommits(cl CommitList, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cl); err != nil {
		return fmt.Errorf("encode commits: %w", err)
	}
	return nil
}

// MarshalLayout serializes a layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	return l, nil
}

// WriteLayoutFile writes a layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
