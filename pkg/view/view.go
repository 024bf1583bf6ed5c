// Package view tracks the interactive state layered on top of a commit
// graph: which commit has focus, and the current zoom factor.
//
// The state machine is deliberately tiny. It has two states - no selection,
// or a selected hash - and every transition is total: selecting an unknown
// hash, navigating past either end of the list, or setting an out-of-range
// zoom all degrade to no-ops or clamping rather than errors, because the
// calls can legitimately race with an in-flight commit list update.
package view

import "github.com/gitlanes/gitlanes/pkg/commit"

// Zoom bounds. Mutations outside the range are clamped, never rejected.
const (
	MinZoom     = 0.5
	MaxZoom     = 2.0
	DefaultZoom = 1.0
)

// State is the process-local selection and zoom state for one rendered
// graph. The zero value is unusable; construct with New. State is owned by
// the interactive shell and survives layout recomputation as long as the
// selected hash does.
type State struct {
	commits  []commit.Commit
	rows     map[string]int
	selected string
	zoom     float64
}

// New creates the state for a commit list, selecting the HEAD commit, or
// the first commit when no HEAD is marked, or nothing for an empty list.
func New(commits []commit.Commit) *State {
	s := &State{zoom: DefaultZoom}
	s.Reset(commits)
	return s
}

// Reset installs a new commit list. The previous selection is kept when its
// hash is still present; otherwise selection falls back to HEAD, then the
// first commit, then none.
func (s *State) Reset(commits []commit.Commit) {
	s.commits = commits
	s.rows = commit.Index(commits)
	if _, ok := s.rows[s.selected]; ok {
		return
	}
	switch {
	case len(commits) == 0:
		s.selected = ""
	default:
		if head, ok := commit.Head(commits); ok {
			s.selected = head.Hash
		} else {
			s.selected = commits[0].Hash
		}
	}
}

// Selected returns the focused commit hash, or "" when nothing is selected.
func (s *State) Selected() string { return s.selected }

// SelectedRow returns the row of the focused commit and true, or false when
// nothing is selected.
func (s *State) SelectedRow() (int, bool) {
	row, ok := s.rows[s.selected]
	return row, ok
}

// Select focuses the given hash. Unknown hashes leave the state unchanged;
// this is a guard, not an error, since a selection click can race a list
// refresh.
func (s *State) Select(hash string) {
	if _, ok := s.rows[hash]; ok {
		s.selected = hash
	}
}

// Older moves the selection one row down (toward the oldest commit). At the
// oldest commit the call is inert.
func (s *State) Older() {
	row, ok := s.SelectedRow()
	if !ok || row+1 >= len(s.commits) {
		return
	}
	s.selected = s.commits[row+1].Hash
}

// Newer moves the selection one row up (toward the newest commit). At row 0
// the call is inert.
func (s *State) Newer() {
	row, ok := s.SelectedRow()
	if !ok || row == 0 {
		return
	}
	s.selected = s.commits[row-1].Hash
}

// Zoom returns the current zoom factor.
func (s *State) Zoom() float64 { return s.zoom }

// SetZoom sets the zoom factor, silently clamped to [MinZoom, MaxZoom].
func (s *State) SetZoom(z float64) {
	if z < MinZoom {
		z = MinZoom
	}
	if z > MaxZoom {
		z = MaxZoom
	}
	s.zoom = z
}

// AdjustZoom nudges the zoom by delta, clamped like SetZoom.
func (s *State) AdjustZoom(delta float64) { s.SetZoom(s.zoom + delta) }

// Len returns the number of commits under navigation.
func (s *State) Len() int { return len(s.commits) }
