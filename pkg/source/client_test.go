package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mkessler/graphlens/pkg/errors"
)

func TestFetchQueryParameters(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"max_nodes": r.URL.Query().Get("max_nodes"),
			"max_edges": r.URL.Query().Get("max_edges"),
			"project":   r.URL.Query().Get("project"),
			"types":     r.URL.Query().Get("types"),
		}
		_, _ = w.Write([]byte(`{"nodes": [{"id": "a", "type": "task"}], "edges": []}`))
	}))
	defer srv.Close()

	g, err := New(srv.URL).Fetch(context.Background(), Query{
		MaxNodes: 100,
		Project:  "p1",
		Types:    []string{"task", "project"},
	})
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}

	if gotQuery["max_nodes"] != "100" {
		t.Errorf("max_nodes = %q", gotQuery["max_nodes"])
	}
	// An unset edge bound falls back to the provider default.
	if gotQuery["max_edges"] != "2000" {
		t.Errorf("max_edges = %q, want default", gotQuery["max_edges"])
	}
	if gotQuery["project"] != "p1" || gotQuery["types"] != "task,project" {
		t.Errorf("filters = %q / %q", gotQuery["project"], gotQuery["types"])
	}
	if len(g.Nodes) != 1 || g.Nodes[0].ID != "a" {
		t.Errorf("graph = %+v", g)
	}
}

func TestFetchNullBodyYieldsEmptyGraph(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	g, err := New(srv.URL).Fetch(context.Background(), Query{})
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if !g.IsEmpty() {
		t.Error("missing body should degrade to an empty graph")
	}
}

func TestFetchClientErrorNotRetried(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Fetch(context.Background(), Query{})
	if !errors.Is(err, errors.ErrCodeNetwork) {
		t.Errorf("expected ErrCodeNetwork, got %v", err)
	}
	if calls != 1 {
		t.Errorf("4xx retried %d times, want 1 call", calls)
	}
}

func TestNewTrimsTrailingSlash(t *testing.T) {
	c := New("https://backend.local///")
	if c.baseURL != "https://backend.local" {
		t.Errorf("baseURL = %q", c.baseURL)
	}
}
