package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/buildinfo"
	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/cache"
	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/compare"
	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/detect"
	apperrors "github.com/dhananjayyy09/Deadlock-Prevention/pkg/errors"
	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/graph"
	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/history"
	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/scenario"
	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/snapshot"
	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/sysinfo"
)

// decodeSnapshot reads a snapshot from the request body. Malformed composite
// keys surface through the snapshot's unmarshaler and keep their own error;
// everything else is reported as invalid JSON.
func decodeSnapshot(r *http.Request) (*snapshot.Snapshot, error) {
	var s snapshot.Snapshot
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		var keyErr *snapshot.MalformedKeyError
		if errors.As(err, &keyErr) {
			return nil, keyErr
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidSnapshot, err, "invalid snapshot JSON: %v", err)
	}
	return &s, nil
}

// GET /healthz — liveness probe.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// GET /readyz — readiness probe.
func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "ready",
		"ws_clients": s.hub.count(),
	})
}

// GET /api/scenarios — the catalog in presentation order.
func (s *Server) handleScenarios(w http.ResponseWriter, r *http.Request) {
	infos := scenario.Describe()
	list := make([]scenario.Info, 0, len(infos))
	for _, name := range scenario.Catalog() {
		list = append(list, infos[name])
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"scenarios": list,
		"count":     len(list),
	})
}

// GET /api/scenarios/{name} — one scenario's snapshot.
func (s *Server) handleScenario(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := apperrors.ValidateScenarioName(name); err != nil {
		writeErr(w, err)
		return
	}
	snap, err := scenario.ByName(name)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// GET /api/demo-snapshot — the fixed demo state.
func (s *Server) handleDemoSnapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenario.Demo())
}

// GET /api/system-snapshot — a snapshot probed from the running host.
// ?source=locks maps the kernel lock table instead of the process list;
// ?limit=N caps the process count.
func (s *Server) handleSystemSnapshot(w http.ResponseWriter, r *http.Request) {
	if s.sys == nil {
		writeJSON(w, http.StatusOK, sysinfo.Empty())
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, apperrors.ErrCodeInvalidInput,
				fmt.Sprintf("invalid limit %q", v))
			return
		}
		limit = n
	}

	var (
		snap *snapshot.Snapshot
		err  error
	)
	switch src := r.URL.Query().Get("source"); src {
	case "", "procs":
		snap, err = s.sys.Snapshot(r.Context(), limit)
	case "locks":
		snap, err = s.sys.FileLocks(r.Context())
	default:
		writeError(w, http.StatusBadRequest, apperrors.ErrCodeInvalidInput,
			fmt.Sprintf("unsupported source %q (want procs or locks)", src))
		return
	}
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// POST /api/predict — Banker's safe-state check.
func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	snap, err := decodeSnapshot(r)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detect.Predict(r.Context(), snap))
}

// POST /api/detect — wait-for-graph cycle detection. Results are cached by
// the snapshot's content hash; only fresh runs are logged to history.
func (s *Server) handleDetect(w http.ResponseWriter, r *http.Request) {
	snap, err := decodeSnapshot(r)
	if err != nil {
		writeErr(w, err)
		return
	}

	raw, err := json.Marshal(snap)
	if err != nil {
		writeErr(w, err)
		return
	}
	key := s.keys.AnalysisKey(cache.Hash(raw))

	if data, ok, cerr := s.cache.Get(r.Context(), key); cerr == nil && ok {
		var res detect.Result
		if json.Unmarshal(data, &res) == nil {
			writeJSON(w, http.StatusOK, res)
			return
		}
	}

	start := time.Now()
	res := detect.Analyze(r.Context(), snap)
	took := time.Since(start)

	ev := history.NewEvent(snap, res.Cycles, nil, took, false)
	if err := s.history.Log(r.Context(), ev); err != nil {
		s.logger.Warn("history log failed", "err", err)
	}

	if data, err := json.Marshal(res); err == nil {
		if err := s.cache.Set(r.Context(), key, data, s.cfg.Cache.TTL.Std()); err != nil {
			s.logger.Debug("cache set failed", "err", err)
		}
	}

	writeJSON(w, http.StatusOK, res)
}

// POST /api/recover — victim selection and preemption.
func (s *Server) handleRecover(w http.ResponseWriter, r *http.Request) {
	snap, err := decodeSnapshot(r)
	if err != nil {
		writeErr(w, err)
		return
	}

	start := time.Now()
	rec := detect.Recover(r.Context(), snap)
	took := time.Since(start)

	if len(rec.Victims) > 0 {
		cycles := detect.FindCycles(detect.BuildWaitFor(snap))
		ev := history.NewEvent(snap, cycles, rec.Victims, took, true)
		if err := s.history.Log(r.Context(), ev); err != nil {
			s.logger.Warn("history log failed", "err", err)
		}
	}

	writeJSON(w, http.StatusOK, rec)
}

// POST /api/graph/rag — resource-allocation graph of the posted snapshot.
func (s *Server) handleGraphRAG(w http.ResponseWriter, r *http.Request) {
	snap, err := decodeSnapshot(r)
	if err != nil {
		writeErr(w, err)
		return
	}
	g, err := graph.BuildRAG(snap)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

// POST /api/graph/wfg — wait-for graph. A wfg field in the body is
// authoritative; otherwise the graph is derived from the posted snapshot.
func (s *Server) handleGraphWFG(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Snapshot *snapshot.Snapshot `json:"snapshot"`
		WFG      snapshot.WaitFor   `json:"wfg"`
		Cycles   snapshot.CycleSet  `json:"cycles"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var keyErr *snapshot.MalformedKeyError
		if errors.As(err, &keyErr) {
			writeErr(w, keyErr)
			return
		}
		writeError(w, http.StatusBadRequest, apperrors.ErrCodeInvalidInput,
			fmt.Sprintf("invalid JSON: %v", err))
		return
	}

	var g *graph.Graph
	switch {
	case req.WFG != nil:
		g = graph.BuildWFG(req.WFG, req.Cycles)
	case req.Snapshot != nil:
		var err error
		g, err = graph.DeriveWFG(req.Snapshot, req.Cycles)
		if err != nil {
			writeErr(w, err)
			return
		}
	default:
		writeError(w, http.StatusBadRequest, apperrors.ErrCodeInvalidInput,
			"either wfg or snapshot is required")
		return
	}
	writeJSON(w, http.StatusOK, g)
}

// POST /api/graph/neighbors — 1-hop neighborhood of a focus node.
func (s *Server) handleNeighbors(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Graph *graph.Graph `json:"graph"`
		Focus string       `json:"focus"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, apperrors.ErrCodeInvalidInput,
			fmt.Sprintf("invalid JSON: %v", err))
		return
	}
	if req.Graph == nil {
		writeError(w, http.StatusBadRequest, apperrors.ErrCodeInvalidInput, "graph is required")
		return
	}
	if req.Focus == "" {
		writeError(w, http.StatusBadRequest, apperrors.ErrCodeInvalidInput, "focus is required")
		return
	}
	writeJSON(w, http.StatusOK, graph.Neighbors(req.Graph, req.Focus))
}

// GET /api/snapshots — all saved snapshots in capture order.
func (s *Server) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	list := s.saved.List()
	writeJSON(w, http.StatusOK, map[string]any{
		"snapshots": list,
		"count":     len(list),
	})
}

// POST /api/snapshots — capture a named snapshot together with its
// detection result.
func (s *Server) handleSaveSnapshot(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string             `json:"name"`
		Snapshot *snapshot.Snapshot `json:"snapshot"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var keyErr *snapshot.MalformedKeyError
		if errors.As(err, &keyErr) {
			writeErr(w, keyErr)
			return
		}
		writeError(w, http.StatusBadRequest, apperrors.ErrCodeInvalidInput,
			fmt.Sprintf("invalid JSON: %v", err))
		return
	}
	if err := apperrors.ValidateSnapshotName(req.Name); err != nil {
		writeErr(w, err)
		return
	}
	if req.Snapshot == nil {
		writeError(w, http.StatusBadRequest, apperrors.ErrCodeInvalidInput, "snapshot is required")
		return
	}

	res := detect.Analyze(r.Context(), req.Snapshot)
	saved := s.saved.Save(req.Name, req.Snapshot, res.Cycles, res.WFG)
	writeJSON(w, http.StatusCreated, saved)
}

// GET /api/snapshots/{id} — one saved snapshot.
func (s *Server) handleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	saved, ok := s.saved.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, apperrors.ErrCodeSnapshotNotFound,
			fmt.Sprintf("snapshot %q not found", id))
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// DELETE /api/snapshots/{id} — drop a saved snapshot.
func (s *Server) handleDeleteSnapshot(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.saved.Delete(id) {
		writeError(w, http.StatusNotFound, apperrors.ErrCodeSnapshotNotFound,
			fmt.Sprintf("snapshot %q not found", id))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"deleted": id})
}

// POST /api/diff — ordered differences between two saved snapshots.
func (s *Server) handleDiff(w http.ResponseWriter, r *http.Request) {
	var req struct {
		A string `json:"a"`
		B string `json:"b"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, apperrors.ErrCodeInvalidInput,
			fmt.Sprintf("invalid JSON: %v", err))
		return
	}

	a, ok := s.saved.Get(req.A)
	if !ok {
		writeError(w, http.StatusNotFound, apperrors.ErrCodeSnapshotNotFound,
			fmt.Sprintf("snapshot %q not found", req.A))
		return
	}
	b, ok := s.saved.Get(req.B)
	if !ok {
		writeError(w, http.StatusNotFound, apperrors.ErrCodeSnapshotNotFound,
			fmt.Sprintf("snapshot %q not found", req.B))
		return
	}

	diffs := compare.Diff(a, b)
	writeJSON(w, http.StatusOK, map[string]any{
		"differences": diffs,
		"count":       len(diffs),
	})
}

// GET /api/history — recent detection events, newest first. ?limit=N caps
// the count.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, apperrors.ErrCodeInvalidInput,
				fmt.Sprintf("invalid limit %q", v))
			return
		}
		limit = n
	}

	events, err := s.history.Recent(r.Context(), limit)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"events": events,
		"count":  len(events),
	})
}

// GET /api/history/stats — aggregate detection statistics.
func (s *Server) handleHistoryStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.history.Stats(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// GET /ws — upgrade to a websocket and join the broadcast hub. The current
// live state, when present, is delivered as the first message.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the handshake error.
		s.logger.Debug("websocket upgrade failed", "err", err)
		return
	}

	var last *wsMessage
	if snap, res, ok := s.state.get(); ok {
		last = &wsMessage{Type: "snapshot", Snapshot: snap, Detection: res}
	}
	s.hub.register(conn, last)
}
