package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gitlanes/gitlanes/pkg/render"
)

func TestFileCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	defer c.Close()

	key := LayoutKey("abc123")
	if err := c.Set(ctx, key, []byte("payload"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	data, hit, err := c.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !hit {
		t.Fatal("expected a cache hit")
	}
	if string(data) != "payload" {
		t.Errorf("Get() = %q, want payload", data)
	}
}

func TestFileCacheMiss(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if _, hit, err := c.Get(ctx, "never-set"); err != nil || hit {
		t.Errorf("Get() = hit %v, err %v; want miss, nil", hit, err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(10 * time.Millisecond)

	if _, hit, err := c.Get(ctx, "k"); err != nil || hit {
		t.Errorf("expired entry should be a miss, got hit %v, err %v", hit, err)
	}
}

func TestFileCacheDelete(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("deleted entry should be a miss")
	}

	// Deleting a missing key is not an error.
	if err := c.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete(missing) error = %v", err)
	}
}

func TestNullCacheNeverStores(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, hit, err := c.Get(ctx, "k"); err != nil || hit {
		t.Errorf("null cache should always miss, got hit %v, err %v", hit, err)
	}
}

func TestKeyNamespaces(t *testing.T) {
	layout := LayoutKey("h1")
	colors := ColorKey("h1")

	if !strings.HasPrefix(layout, "layout:") {
		t.Errorf("LayoutKey prefix wrong: %s", layout)
	}
	if !strings.HasPrefix(colors, "colors:") {
		t.Errorf("ColorKey prefix wrong: %s", colors)
	}
	if layout == colors {
		t.Error("layout and color keys for the same hash must differ")
	}
	if LayoutKey("h1") != layout {
		t.Error("keys must be deterministic")
	}
	if LayoutKey("h2") == layout {
		t.Error("different hashes must produce different keys")
	}
}

func TestArtifactCacheKey(t *testing.T) {
	base := ArtifactCacheKey("h1", ArtifactKeyOpts{Format: "svg", Zoom: 1.0})

	if !strings.HasPrefix(base, "artifact:") {
		t.Errorf("ArtifactCacheKey prefix wrong: %s", base)
	}
	if got := ArtifactCacheKey("h1", ArtifactKeyOpts{Format: "png", Zoom: 1.0}); got == base {
		t.Error("format must influence the artifact key")
	}
	if got := ArtifactCacheKey("h1", ArtifactKeyOpts{Format: "svg", Zoom: 2.0}); got == base {
		t.Error("zoom must influence the artifact key")
	}
	if got := ArtifactCacheKey("h1", ArtifactKeyOpts{
		Format: "svg", Zoom: 1.0, Palette: []string{"#111111"},
	}); got == base {
		t.Error("palette must influence the artifact key")
	}
	geo := render.DefaultGeometry
	geo.LaneSpacing = 80
	if got := ArtifactCacheKey("h1", ArtifactKeyOpts{
		Format: "svg", Zoom: 1.0, Geo: geo,
	}); got == base {
		t.Error("geometry must influence the artifact key")
	}
}

func TestHashDeterministic(t *testing.T) {
	a := Hash([]byte("content"))
	if len(a) != 64 {
		t.Errorf("Hash length = %d, want 64", len(a))
	}
	if a != Hash([]byte("content")) {
		t.Error("Hash must be deterministic")
	}
	if a == Hash([]byte("other")) {
		t.Error("different content must hash differently")
	}
}
