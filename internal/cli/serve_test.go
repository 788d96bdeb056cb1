package cli

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	charmlog "github.com/charmbracelet/log"

	"github.com/mkessler/graphlens/pkg/cache"
	"github.com/mkessler/graphlens/pkg/graph"
	"github.com/mkessler/graphlens/pkg/pipeline"
	"github.com/mkessler/graphlens/pkg/source"
	"github.com/mkessler/graphlens/pkg/view"
)

type stubFetcher struct{ graph graph.Graph }

func (f stubFetcher) Fetch(ctx context.Context, q source.Query) (graph.Graph, error) {
	return f.graph, nil
}

func testServer(t *testing.T) *server {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	fetcher := stubFetcher{graph: graph.Graph{
		Nodes: []graph.Node{
			{ID: "a", Type: graph.EntityTask, Name: "Alpha", Cluster: "c1"},
			{ID: "b", Type: graph.EntityProject, Name: "Beta", Cluster: "c1"},
		},
		Edges:    []graph.Edge{{Source: "a", Target: "b"}},
		Clusters: []graph.Cluster{{ID: "c1", MemberCount: 2}},
	}}
	logger := newLogger(io.Discard, charmlog.ErrorLevel)
	return &server{
		runner: pipeline.NewRunner(fetcher, c, logger),
		logger: logger,
	}
}

func TestHealthz(t *testing.T) {
	srv := httptest.NewServer(testServer(t).routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestViewModelEndpoint(t *testing.T) {
	srv := httptest.NewServer(testServer(t).routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/viewmodel?search=alpha")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var payload struct {
		Summary view.Summary         `json:"summary"`
		Nodes   []view.AnnotatedNode `json:"nodes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Summary.MatchCount != 1 {
		t.Errorf("MatchCount = %d, want 1", payload.Summary.MatchCount)
	}
	if len(payload.Nodes) != 2 {
		t.Errorf("nodes = %d, want 2", len(payload.Nodes))
	}
}

func TestSnapshotEndpointSVG(t *testing.T) {
	srv := httptest.NewServer(testServer(t).routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/snapshot?format=svg&width=400&height=300")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("content type = %q, want image/svg+xml", ct)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.HasPrefix(string(body), "<svg") {
		t.Error("body is not an SVG document")
	}
}

func TestSnapshotEndpointInvalidFormat(t *testing.T) {
	srv := httptest.NewServer(testServer(t).routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/snapshot?format=gif")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}

	var payload map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("error body should be JSON: %v", err)
	}
	if payload["code"] != "INVALID_FORMAT" {
		t.Errorf("code = %q, want INVALID_FORMAT", payload["code"])
	}
}

func TestSnapshotStoreUnconfigured(t *testing.T) {
	srv := httptest.NewServer(testServer(t).routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/snapshots/some-id")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotImplemented {
		t.Errorf("status = %d, want 501 without a snapshot store", resp.StatusCode)
	}
}

func TestOptionsFromQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet,
		"/api/viewmodel?cluster=c1&search=auth&types=task,project&max_nodes=50&scale=2.5&refresh=true", nil)

	opts := optionsFromQuery(req)
	if opts.Cluster != "c1" || opts.Search != "auth" {
		t.Errorf("filter = %q/%q", opts.Cluster, opts.Search)
	}
	if len(opts.Types) != 2 || opts.Types[0] != "task" {
		t.Errorf("types = %v", opts.Types)
	}
	if opts.MaxNodes != 50 {
		t.Errorf("max_nodes = %d", opts.MaxNodes)
	}
	if opts.Scale != 2.5 {
		t.Errorf("scale = %f", opts.Scale)
	}
	if !opts.Refresh {
		t.Error("refresh flag not parsed")
	}
}
