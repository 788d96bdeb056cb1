package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/mkessler/graphlens/pkg/errors"
	"github.com/mkessler/graphlens/pkg/pipeline"
	"github.com/mkessler/graphlens/pkg/source"
	"github.com/mkessler/graphlens/pkg/source/mongo"
)

// defaultServeAddr is the default HTTP listen address.
const defaultServeAddr = ":8460"

// contentTypes maps snapshot formats to response content types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatDOT:  "text/vnd.graphviz",
	pipeline.FormatJSON: "application/json",
}

// server holds the HTTP handler dependencies.
type server struct {
	runner *pipeline.Runner
	store  *mongo.Store // nil when no [mongo] section is configured
	logger *charmlog.Logger
}

// newServeCmd creates the serve command, which exposes view-models and
// snapshots over HTTP.
func newServeCmd() *cobra.Command {
	var (
		configPath string
		sourceURL  string
		addr       string
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve view-models and snapshots over HTTP",
		Long: `Serve starts an HTTP server exposing the view-model pipeline:

  GET /healthz                    liveness check
  GET /api/viewmodel              annotated view-model as JSON
  GET /api/snapshot               rendered frame (svg, png, dot or json)
  GET /api/snapshots/{id}         a previously persisted snapshot
  POST /api/snapshots             persist the current view as a snapshot

Query parameters on /api/viewmodel and /api/snapshot: cluster, search,
types (comma-separated), project, max_nodes, max_edges, format, width,
height, scale, refresh.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if sourceURL == "" {
				sourceURL = cfg.Source
			}
			if sourceURL == "" {
				return errors.New(errors.ErrCodeInvalidInput,
					"no graph source: pass --source or set source in the config file")
			}
			if addr == "" {
				addr = cfg.Serve.Addr
			}
			if addr == "" {
				addr = defaultServeAddr
			}

			c, err := openCache(ctx, cfg.Cache, noCache)
			if err != nil {
				return errors.Wrap(errors.ErrCodeCache, err, "open cache")
			}
			defer c.Close()

			srv := &server{
				runner: pipeline.NewRunner(source.New(sourceURL), c, logger),
				logger: logger,
			}
			if cfg.Mongo.URI != "" {
				store, err := mongo.NewStore(ctx, cfg.Mongo)
				if err != nil {
					return errors.Wrap(errors.ErrCodeStorage, err, "connect snapshot store")
				}
				defer store.Close(ctx)
				srv.store = store
			}

			httpSrv := &http.Server{
				Addr:              addr,
				Handler:           srv.routes(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = httpSrv.Shutdown(shutdownCtx)
			}()

			logger.Info("listening", "addr", addr, "source", sourceURL)
			if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config file (default ~/.config/graphlens/graphlens.toml)")
	cmd.Flags().StringVar(&sourceURL, "source", "", "data provider base URL")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :8460)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// routes builds the chi router.
func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/api/viewmodel", s.handleViewModel)
	r.Get("/api/snapshot", s.handleSnapshot)
	r.Get("/api/snapshots/{id}", s.handleLoadSnapshot)
	r.Post("/api/snapshots", s.handleSaveSnapshot)

	return r
}

// optionsFromQuery parses pipeline options from request query parameters.
func optionsFromQuery(r *http.Request) pipeline.Options {
	q := r.URL.Query()
	opts := pipeline.Options{
		Cluster: q.Get("cluster"),
		Search:  q.Get("search"),
		Project: q.Get("project"),
		Format:  q.Get("format"),
		Refresh: q.Get("refresh") == "true",
	}
	if t := q.Get("types"); t != "" {
		opts.Types = strings.Split(t, ",")
	}
	if v, err := strconv.Atoi(q.Get("max_nodes")); err == nil {
		opts.MaxNodes = v
	}
	if v, err := strconv.Atoi(q.Get("max_edges")); err == nil {
		opts.MaxEdges = v
	}
	if v, err := strconv.ParseFloat(q.Get("width"), 64); err == nil {
		opts.Width = v
	}
	if v, err := strconv.ParseFloat(q.Get("height"), 64); err == nil {
		opts.Height = v
	}
	if v, err := strconv.ParseFloat(q.Get("scale"), 64); err == nil {
		opts.Scale = v
	}
	return opts
}

// handleViewModel runs the pipeline in JSON format and returns the
// annotated view-model.
func (s *server) handleViewModel(w http.ResponseWriter, r *http.Request) {
	opts := optionsFromQuery(r)
	opts.Format = pipeline.FormatJSON
	opts.Logger = s.logger

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(result.Artifact)
}

// handleSnapshot runs the pipeline and returns the rendered artifact.
func (s *server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	opts := optionsFromQuery(r)
	opts.Logger = s.logger

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[opts.Format])
	_, _ = w.Write(result.Artifact)
}

// handleLoadSnapshot returns a persisted snapshot by ID.
func (s *server) handleLoadSnapshot(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, errors.New(errors.ErrCodeUnsupported, "snapshot store not configured"))
		return
	}
	snap, err := s.store.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(snap)
}

// handleSaveSnapshot runs the pipeline for the requested view and persists
// the result. Responds with the new snapshot ID.
func (s *server) handleSaveSnapshot(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, errors.New(errors.ErrCodeUnsupported, "snapshot store not configured"))
		return
	}

	opts := optionsFromQuery(r)
	opts.Format = pipeline.FormatSVG
	opts.Logger = s.logger

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	id, err := s.store.Save(r.Context(), snapshotRecord(opts, result))
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeStorage, err, "save snapshot"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]string{"id": id})
}

// writeError maps structured error codes to HTTP status codes.
func (s *server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFilter,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidConfig:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeGraphNotFound,
		errors.ErrCodeSnapshotNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeNetwork, errors.ErrCodeTimeout:
		status = http.StatusBadGateway
	case errors.ErrCodeUnsupported:
		status = http.StatusNotImplemented
	}

	s.logger.Error("request failed", "status", status, "error", err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"code":  string(errors.GetCode(err)),
		"error": errors.UserMessage(err),
	})
}
