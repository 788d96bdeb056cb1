package cache

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	if _, hit, _ := c.Get(ctx, "missing"); hit {
		t.Error("fresh cache should miss")
	}

	if err := c.Set(ctx, "key", []byte("payload"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !hit || string(data) != "payload" {
		t.Errorf("Get = %q hit=%v, want payload hit", data, hit)
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("deleted key should miss")
	}

	// Deleting again is not an error.
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("double Delete error: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}

	if err := c.Set(ctx, "key", []byte("payload"), time.Nanosecond); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("expired entry should miss")
	}

	// A zero TTL never expires.
	if err := c.Set(ctx, "forever", []byte("payload"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("zero-TTL entry should not expire")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	// GraphKey should include query bounds in the hash.
	gk1 := k.GraphKey("https://backend", GraphKeyOpts{MaxNodes: 100})
	gk2 := k.GraphKey("https://backend", GraphKeyOpts{MaxNodes: 200})
	if gk1 == gk2 {
		t.Error("Different GraphKeyOpts should produce different keys")
	}

	// SnapshotKey varies with render options.
	sk1 := k.SnapshotKey("hash123", SnapshotKeyOpts{Format: "svg", Scale: 1})
	sk2 := k.SnapshotKey("hash123", SnapshotKeyOpts{Format: "png", Scale: 1})
	if sk1 == sk2 {
		t.Error("Different SnapshotKeyOpts should produce different keys")
	}
}

func TestViewKeyCoversFilterState(t *testing.T) {
	// Annotations are filter-relative: the same graph hash must key
	// differently for every distinct cluster/search/types combination.
	k := NewDefaultKeyer()
	base := k.ViewKey("hash123", ViewKeyOpts{})

	variants := []ViewKeyOpts{
		{Cluster: "c1"},
		{Search: "auth"},
		{Types: []string{"task"}},
		{Cluster: "c1", Search: "auth"},
	}
	seen := map[string]bool{base: true}
	for _, opts := range variants {
		key := k.ViewKey("hash123", opts)
		if seen[key] {
			t.Errorf("filter state %+v collides with another view key", opts)
		}
		seen[key] = true
	}

	// Same inputs, same key.
	if k.ViewKey("hash123", ViewKeyOpts{Cluster: "c1"}) != k.ViewKey("hash123", ViewKeyOpts{Cluster: "c1"}) {
		t.Error("ViewKey should be deterministic")
	}

	// A different graph hash changes the key even under an equal filter.
	if k.ViewKey("other", ViewKeyOpts{}) == base {
		t.Error("graph hash should participate in the view key")
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(), "ws:alpha:")

	key := scoped.ViewKey("hash123", ViewKeyOpts{})
	if !strings.HasPrefix(key, "ws:alpha:view:") {
		t.Errorf("ScopedKeyer ViewKey should be prefixed: %s", key)
	}

	// Nil inner falls back to the default keyer.
	fallback := NewScopedKeyer(nil, "p:")
	if !strings.HasPrefix(fallback.GraphKey("src", GraphKeyOpts{}), "p:graph:") {
		t.Error("nil inner should use DefaultKeyer")
	}
}
