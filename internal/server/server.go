// Package server exposes the detection engine over HTTP.
//
// The API mirrors the analysis pipeline: scenario and probe endpoints
// produce snapshots, the detect/predict/recover endpoints analyze them, and
// the graph endpoints turn them into renderable node-link documents. A
// websocket hub pushes live-feed updates to connected browsers.
//
// All routes are registered on a chi router in [New]; [Server.Run] serves
// them until the context is cancelled, then shuts down gracefully.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dhananjayyy09/Deadlock-Prevention/internal/config"
	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/cache"
	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/compare"
	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/detect"
	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/history"
	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/snapshot"
	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/source"
	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/sysinfo"
)

// Server wires the analysis packages behind the HTTP API.
type Server struct {
	cfg    config.Config
	logger *log.Logger

	cache   cache.Cache
	keys    cache.Keyer
	saved   *compare.Store
	history history.Store
	sys     *sysinfo.Reader

	hub    *hub
	state  *liveState
	router chi.Router
}

// Options are the injectable dependencies of a Server. Zero-value fields
// select defaults: a stderr logger, a null cache, in-memory history, and
// the host's procfs (absent on non-Linux systems, which disables the
// probe).
type Options struct {
	Logger  *log.Logger
	Cache   cache.Cache
	History history.Store
	Sys     *sysinfo.Reader
}

// New builds a Server and registers its routes.
func New(cfg config.Config, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	c := opts.Cache
	if c == nil {
		c = cache.NewNullCache()
	}

	hist := opts.History
	if hist == nil {
		hist = history.NewMemoryStore(cfg.History.Capacity)
	}

	sys := opts.Sys
	if sys == nil {
		if r, err := sysinfo.NewReader(); err == nil {
			sys = r
		} else {
			logger.Debug("system probe unavailable", "err", err)
		}
	}

	var keys cache.Keyer = cache.NewDefaultKeyer()
	if cfg.Cache.Scope != "" {
		keys = cache.NewScopedKeyer(keys, cfg.Cache.Scope)
	}

	s := &Server{
		cfg:     cfg,
		logger:  logger,
		cache:   cache.WithHooks(c),
		keys:    keys,
		saved:   compare.NewStore(),
		history: hist,
		sys:     sys,
		hub:     newHub(logger),
		state:   &liveState{},
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogger(s.logger))
	r.Use(corsMiddleware(s.cfg.Server.CORSOrigins))
	r.Use(metricsMiddleware)

	r.Get("/healthz", s.handleHealthz)
	r.Get("/readyz", s.handleReadyz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Get("/ws", s.handleWS)

	r.Route("/api", func(r chi.Router) {
		r.Get("/scenarios", s.handleScenarios)
		r.Get("/scenarios/{name}", s.handleScenario)
		r.Get("/demo-snapshot", s.handleDemoSnapshot)
		r.Get("/system-snapshot", s.handleSystemSnapshot)

		r.Post("/predict", s.handlePredict)
		r.Post("/detect", s.handleDetect)
		r.Post("/recover", s.handleRecover)

		r.Post("/graph/rag", s.handleGraphRAG)
		r.Post("/graph/wfg", s.handleGraphWFG)
		r.Post("/graph/neighbors", s.handleNeighbors)

		r.Get("/snapshots", s.handleListSnapshots)
		r.Post("/snapshots", s.handleSaveSnapshot)
		r.Get("/snapshots/{id}", s.handleGetSnapshot)
		r.Delete("/snapshots/{id}", s.handleDeleteSnapshot)
		r.Post("/diff", s.handleDiff)

		r.Get("/history", s.handleHistory)
		r.Get("/history/stats", s.handleHistoryStats)
	})

	return r
}

// Handler returns the root HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// AttachWatcher subscribes the server to a live snapshot feed: every change
// is analyzed, recorded, and pushed to websocket clients.
func (s *Server) AttachWatcher(w *source.Watcher) {
	w.OnChange(func(snap *snapshot.Snapshot) {
		s.publish(context.Background(), snap)
	})
	w.OnError(func(err error) {
		s.logger.Warn("snapshot feed", "err", err)
	})

	if snap := w.Snapshot(); snap != nil {
		s.publish(context.Background(), snap)
	}
}

// publish analyzes snap, updates the live state, logs a history event, and
// broadcasts the result.
func (s *Server) publish(ctx context.Context, snap *snapshot.Snapshot) {
	start := time.Now()
	res := detect.Analyze(ctx, snap)
	took := time.Since(start)

	s.state.set(snap, res)

	ev := history.NewEvent(snap, res.Cycles, nil, took, false)
	if err := s.history.Log(ctx, ev); err != nil {
		s.logger.Warn("history log failed", "err", err)
	}

	if res.HasDeadlock {
		s.logger.Warn("live feed deadlocked", "cycles", len(res.Cycles))
	} else {
		s.logger.Debug("live feed updated", "processes", len(snap.Processes))
	}

	s.hub.broadcast(wsMessage{Type: "snapshot", Snapshot: snap, Detection: res})
}

// Run serves the API until ctx is cancelled, then drains connections within
// the configured shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	s.hub.close()

	timeout := s.cfg.Server.ShutdownTimeout.Std()
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		return err
	}

	if err := s.history.Close(shutCtx); err != nil {
		s.logger.Warn("history close failed", "err", err)
	}
	return s.cache.Close()
}
