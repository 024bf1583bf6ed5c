// Package commit defines the canonical commit model consumed by the layout
// engine.
//
// Commit records arrive from an external repository-data service as plain
// records (hash, parent hashes, refs). This package normalizes them into a
// single shape the rest of the tool agrees on: duplicates removed, at most
// one HEAD, caller order preserved. The adapter never re-sorts - row
// positions downstream are defined by the order the caller supplied.
package commit

import "time"

// Commit is one normalized commit record.
//
// Parents is ordered; the first entry is the first parent and drives lane
// inheritance during layout. A parent hash that does not resolve to another
// commit in the same list is a dangling parent and is valid input - partial
// or windowed histories produce them routinely.
type Commit struct {
	Hash     string    `json:"hash" bson:"hash"`
	Parents  []string  `json:"parents,omitempty" bson:"parents,omitempty"`
	Branches []string  `json:"branches,omitempty" bson:"branches,omitempty"`
	Tags     []string  `json:"tags,omitempty" bson:"tags,omitempty"`
	IsHead   bool      `json:"is_head,omitempty" bson:"is_head,omitempty"`
	Subject  string    `json:"subject,omitempty" bson:"subject,omitempty"`
	Author   string    `json:"author,omitempty" bson:"author,omitempty"`
	When     time.Time `json:"when,omitempty" bson:"when,omitempty"`
}

// IsMerge reports whether the commit has more than one parent.
func (c Commit) IsMerge() bool { return len(c.Parents) > 1 }

// HasRefs reports whether any branch or tag points at the commit.
func (c Commit) HasRefs() bool { return len(c.Branches) > 0 || len(c.Tags) > 0 }

// Normalize prepares a caller-supplied commit list for layout.
//
// Duplicate hashes keep their first occurrence; later duplicates are dropped
// so their layout contribution disappears silently. If several commits claim
// HEAD, only the first claim survives. Records with an empty hash are
// dropped - they cannot participate in layout or edge resolution.
//
// The input order is preserved exactly; Normalize never sorts.
func Normalize(records []Commit) []Commit {
	if len(records) == 0 {
		return nil
	}

	out := make([]Commit, 0, len(records))
	seen := make(map[string]bool, len(records))
	headTaken := false

	for _, r := range records {
		if r.Hash == "" || seen[r.Hash] {
			continue
		}
		seen[r.Hash] = true
		if r.IsHead {
			if headTaken {
				r.IsHead = false
			}
			headTaken = true
		}
		out = append(out, r)
	}
	return out
}

// Head returns the commit marked as HEAD, or false if the list has none.
func Head(commits []Commit) (Commit, bool) {
	for _, c := range commits {
		if c.IsHead {
			return c, true
		}
	}
	return Commit{}, false
}

// Index builds a hash -> position lookup for a normalized commit list.
// Positions are row numbers: index 0 is the newest commit by the caller's
// ordering convention.
func Index(commits []Commit) map[string]int {
	m := make(map[string]int, len(commits))
	for i, c := range commits {
		m[c.Hash] = i
	}
	return m
}
