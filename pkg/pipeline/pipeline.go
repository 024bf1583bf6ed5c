// Package pipeline runs the complete commit-graph visualization pipeline:
// normalize -> assign lanes -> build edges -> resolve colors -> project ->
// render.
//
// Both the CLI and the HTTP server drive the same Runner, which keeps
// behavior identical across entry points. Layout results, color tables and
// rendered artifacts are cached keyed by content hash of the commit list,
// so polling the same repository re-serves identical bytes and branch
// colors never flicker across incremental updates.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/gitlanes/gitlanes/pkg/cache"
	"github.com/gitlanes/gitlanes/pkg/commit"
	apperrors "github.com/gitlanes/gitlanes/pkg/errors"
	"github.com/gitlanes/gitlanes/pkg/graphio"
	"github.com/gitlanes/gitlanes/pkg/layout"
	"github.com/gitlanes/gitlanes/pkg/observability"
	"github.com/gitlanes/gitlanes/pkg/render"
	"github.com/gitlanes/gitlanes/pkg/render/dot"
	"github.com/gitlanes/gitlanes/pkg/render/svg"
	"github.com/gitlanes/gitlanes/pkg/view"
)

// Output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatDOT:  true,
	FormatJSON: true,
}

// DefaultTTL is how long cached layouts and artifacts live.
const DefaultTTL = 24 * time.Hour

// Options configures a pipeline run.
type Options struct {
	Formats []string        `json:"formats,omitempty"`
	Zoom    float64         `json:"zoom,omitempty"`
	Geo     render.Geometry `json:"-"`
	Palette []string        `json:"palette,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// SetDefaults fills unset options in place.
func (o *Options) SetDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Zoom == 0 {
		o.Zoom = view.DefaultZoom
	}
	// Out-of-range zoom is clamped, never rejected, matching every other
	// zoom mutation. Clamping before the cache key is built also keeps
	// zoom 5 and zoom 2 from producing distinct entries for one image.
	if o.Zoom < view.MinZoom {
		o.Zoom = view.MinZoom
	}
	if o.Zoom > view.MaxZoom {
		o.Zoom = view.MaxZoom
	}
	if o.Geo == (render.Geometry{}) {
		o.Geo = render.DefaultGeometry
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateFormats checks that every requested format is supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if !ValidFormats[f] {
			return apperrors.New(apperrors.ErrCodeInvalidFormat,
				"invalid format: %q (must be one of: svg, png, dot, json)", f)
		}
	}
	return nil
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the computed layout.
	Graph layout.Graph

	// CommitsHash identifies the normalized commit list by content.
	CommitsHash string

	// Colors is the resolved branch color table.
	Colors *layout.ColorTable

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// LayoutHit and RenderHit track cache usage per stage.
	LayoutHit bool
	RenderHit bool
}

// Runner executes the pipeline with caching.
type Runner struct {
	cache  cache.Cache
	logger *log.Logger
}

// NewRunner creates a pipeline runner. A nil cache disables caching, a nil
// logger discards output.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{cache: c, logger: logger}
}

// Close releases the runner's cache.
func (r *Runner) Close() error { return r.cache.Close() }

// Execute runs layout and render over a raw commit list.
func (r *Runner) Execute(ctx context.Context, records []commit.Commit, opts Options) (*Result, error) {
	opts.SetDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, err
	}

	res, err := r.ComputeLayout(ctx, records)
	if err != nil {
		return nil, err
	}
	res.Colors = r.resolveColors(ctx, res.CommitsHash, res.Graph, opts)

	if err := r.renderInto(ctx, res, opts); err != nil {
		return nil, err
	}
	return res, nil
}

// ComputeLayout normalizes the commit list and computes (or re-reads from
// cache) the lane layout. Layout is deterministic for a given input, so a
// cached entry is always byte-equal to a recomputation.
func (r *Runner) ComputeLayout(ctx context.Context, records []commit.Commit) (*Result, error) {
	commits := commit.Normalize(records)
	hash, err := commitsHash(commits)
	if err != nil {
		return nil, err
	}

	res := &Result{CommitsHash: hash}
	key := cache.LayoutKey(hash)

	if data, hit, _ := r.cache.Get(ctx, key); hit {
		var l graphio.Layout
		if err := json.Unmarshal(data, &l); err == nil {
			observability.Cache().OnCacheHit(ctx, "layout")
			res.Graph = l.Graph()
			res.LayoutHit = true
			return res, nil
		}
		// Corrupt entry: fall through and recompute.
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	start := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, len(commits))

	nodes := layout.AssignLanes(commits)
	res.Graph = layout.Graph{Nodes: nodes, Edges: layout.BuildEdges(nodes)}

	observability.Pipeline().OnLayoutComplete(ctx, len(commits), res.Graph.Lanes(), time.Since(start))
	r.logger.Debug("layout computed",
		"commits", len(commits), "lanes", res.Graph.Lanes(), "edges", len(res.Graph.Edges))

	if data, err := json.Marshal(graphio.FromGraph("", res.Graph)); err == nil {
		if err := r.cache.Set(ctx, key, data, DefaultTTL); err == nil {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}
	return res, nil
}

// resolveColors returns the branch color table, reusing a cached assignment
// for the same commit list so colors stay put across polling updates.
func (r *Runner) resolveColors(ctx context.Context, hash string, g layout.Graph, opts Options) *layout.ColorTable {
	key := cache.ColorKey(hash)
	if data, hit, _ := r.cache.Get(ctx, key); hit {
		var order []string
		if err := json.Unmarshal(data, &order); err == nil {
			observability.Cache().OnCacheHit(ctx, "colors")
			return layout.ResolveColors(order, opts.Palette)
		}
	}
	observability.Cache().OnCacheMiss(ctx, "colors")

	table := layout.BranchColors(g.Commits(), opts.Palette)
	if data, err := json.Marshal(table.Branches()); err == nil {
		if err := r.cache.Set(ctx, key, data, DefaultTTL); err == nil {
			observability.Cache().OnCacheSet(ctx, "colors", len(data))
		}
	}
	return table
}

// renderInto produces every requested artifact, consulting the artifact
// cache per format.
func (r *Runner) renderInto(ctx context.Context, res *Result, opts Options) error {
	res.Artifacts = make(map[string][]byte, len(opts.Formats))
	res.RenderHit = true

	for _, format := range opts.Formats {
		key := cache.ArtifactCacheKey(res.CommitsHash, cache.ArtifactKeyOpts{
			Format:  format,
			Zoom:    opts.Zoom,
			Palette: opts.Palette,
			Geo:     opts.Geo,
		})
		if data, hit, _ := r.cache.Get(ctx, key); hit {
			observability.Cache().OnCacheHit(ctx, "artifact")
			res.Artifacts[format] = data
			continue
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
		res.RenderHit = false

		start := time.Now()
		observability.Pipeline().OnRenderStart(ctx, format)
		data, err := r.renderOne(ctx, res, format, opts)
		observability.Pipeline().OnRenderComplete(ctx, format, len(data), time.Since(start), err)
		if err != nil {
			return fmt.Errorf("render %s: %w", format, err)
		}

		res.Artifacts[format] = data
		if err := r.cache.Set(ctx, key, data, DefaultTTL); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return nil
}

func (r *Runner) renderOne(ctx context.Context, res *Result, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		dl := render.Project(res.Graph, res.Colors, opts.Zoom, opts.Geo)
		return svg.Render(dl), nil
	case FormatDOT:
		return []byte(dot.ToDOT(res.Graph, res.Colors)), nil
	case FormatPNG:
		return dot.RenderPNG(ctx, dot.ToDOT(res.Graph, res.Colors))
	case FormatJSON:
		dl := render.Project(res.Graph, res.Colors, opts.Zoom, opts.Geo)
		return json.MarshalIndent(dl, "", "  ")
	default:
		return nil, fmt.Errorf("invalid format: %q", format)
	}
}

// commitsHash computes the content identity of a normalized commit list.
func commitsHash(commits []commit.Commit) (string, error) {
	data, err := json.Marshal(commits)
	if err != nil {
		return "", fmt.Errorf("hash commits: %w", err)
	}
	return cache.Hash(data), nil
}
