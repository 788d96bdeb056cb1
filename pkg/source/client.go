// Package source fetches knowledge graphs from the backend data provider.
//
// The engine treats the provider as an asynchronous collaborator that may be
// slow, may fail, or may return nothing. All of those degrade to an empty
// graph at this boundary; the engine itself never sees a fetch error it has
// to handle. A newer fetch supersedes any in-flight one - callers should
// simply discard stale results.
package source

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mkessler/graphlens/pkg/errors"
	"github.com/mkessler/graphlens/pkg/graph"
	"github.com/mkessler/graphlens/pkg/httputil"
	"github.com/mkessler/graphlens/pkg/observability"
)

// Default query bounds. The provider truncates beyond these and reports the
// true totals in total_nodes/total_edges.
const (
	DefaultMaxNodes = 500
	DefaultMaxEdges = 2000
)

// Query bounds and filters for a graph fetch.
type Query struct {
	MaxNodes int      // 0 = DefaultMaxNodes
	MaxEdges int      // 0 = DefaultMaxEdges
	Project  string   // Restrict to one project's subgraph
	Types    []string // Restrict to entity types
}

// Client is an HTTP client for the graph provider API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a provider client for the given base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Fetch retrieves a bounded graph from the provider. Transient failures are
// retried with backoff; a missing or null response body yields an empty
// graph, not an error.
func (c *Client) Fetch(ctx context.Context, q Query) (graph.Graph, error) {
	if q.MaxNodes == 0 {
		q.MaxNodes = DefaultMaxNodes
	}
	if q.MaxEdges == 0 {
		q.MaxEdges = DefaultMaxEdges
	}

	params := url.Values{}
	params.Set("max_nodes", strconv.Itoa(q.MaxNodes))
	params.Set("max_edges", strconv.Itoa(q.MaxEdges))
	if q.Project != "" {
		params.Set("project", q.Project)
	}
	if len(q.Types) > 0 {
		params.Set("types", strings.Join(q.Types, ","))
	}
	endpoint := c.baseURL + "/api/graph?" + params.Encode()

	observability.Source().OnFetchStart(ctx, c.baseURL)
	start := time.Now()

	var g graph.Graph
	err := httputil.RetryWithBackoff(ctx, func() error {
		return httputil.GetJSON(ctx, c.http, endpoint, &g)
	})
	if err != nil {
		observability.Source().OnFetchError(ctx, c.baseURL, err)
		return graph.Graph{}, errors.Wrap(errors.ErrCodeNetwork, err, "fetch graph from %s", c.baseURL)
	}

	observability.Source().OnFetchComplete(ctx, c.baseURL, len(g.Nodes), len(g.Edges), time.Since(start))
	return g, nil
}
