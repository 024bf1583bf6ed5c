// Package pkg provides the core libraries for gitlanes commit-graph layout.
//
// # Overview
//
// Gitlanes turns a linear commit list into a lane-based graph layout, the
// kind of picture git log --graph draws. The pkg directory is organized
// into a pipeline of small, composable packages:
//
//  1. [commit] - The commit record model and input normalization
//  2. [layout] - Lane assignment, edge building, colors and labels
//  3. [view] - Selection, navigation and zoom state
//  4. [render] - Projection into abstract draw commands plus SVG/DOT sinks
//  5. [graphio] - JSON serialization of commit lists and layouts
//  6. [pipeline] - Orchestration with caching (layout → colors → artifacts)
//  7. [cache] - Cache backends (file, Redis, MongoDB)
//  8. [server] - HTTP API serving layouts and rendered artifacts
//
// # Architecture
//
// The typical data flow:
//
//	Commit list (JSON)
//	         ↓
//	commit.Normalize → layout.Compute → render.Project → svg/dot sink
//	                                  ↘ view.State (interactive browsing)
//
// Layout is pure and total: imperfect input (duplicate hashes, parents
// pointing outside the list, empty lists) degrades to a smaller valid
// layout instead of an error.
package pkg
