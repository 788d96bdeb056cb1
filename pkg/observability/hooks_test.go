package observability

import (
	"context"
	"testing"
	"time"
)

type countingEngineHooks struct {
	NoopEngineHooks
	rebuilds int
}

func (h *countingEngineHooks) OnRebuildStart(context.Context, string, string) {
	h.rebuilds++
}

type countingCacheHooks struct {
	NoopCacheHooks
	hits int
}

func (h *countingCacheHooks) OnCacheHit(context.Context, string) {
	h.hits++
}

func TestDefaultsAreNoop(t *testing.T) {
	Reset()

	// No panic, no effect.
	Engine().OnRebuildStart(context.Background(), "c1", "term")
	Engine().OnRebuildComplete(context.Background(), 1, 2, 3, time.Second)
	Cache().OnCacheMiss(context.Background(), "graph")
	Source().OnFetchError(context.Background(), "host", nil)
}

func TestRegisterAndReset(t *testing.T) {
	defer Reset()

	eng := &countingEngineHooks{}
	SetEngineHooks(eng)
	Engine().OnRebuildStart(context.Background(), "", "")
	if eng.rebuilds != 1 {
		t.Errorf("rebuilds = %d, want 1", eng.rebuilds)
	}

	ch := &countingCacheHooks{}
	SetCacheHooks(ch)
	Cache().OnCacheHit(context.Background(), "snapshot")
	if ch.hits != 1 {
		t.Errorf("hits = %d, want 1", ch.hits)
	}

	Reset()
	Engine().OnRebuildStart(context.Background(), "", "")
	if eng.rebuilds != 1 {
		t.Error("Reset should detach registered hooks")
	}
}

func TestNilRegistrationIgnored(t *testing.T) {
	defer Reset()

	SetEngineHooks(nil)
	if Engine() == nil {
		t.Error("nil registration must not clear the active hooks")
	}
}
