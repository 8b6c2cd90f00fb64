package server

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/observability"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "deadlock_http_requests_total",
		Help: "Total number of HTTP requests, labelled by route, method, and status.",
	}, []string{"route", "method", "status"})

	httpDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "deadlock_http_request_duration_ms",
		Help:    "HTTP request latency in milliseconds.",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
	})

	detectionsRun = promauto.NewCounter(prometheus.CounterOpts{
		Name: "deadlock_detections_total",
		Help: "Total number of wait-for-graph detection runs.",
	})

	deadlocksFound = promauto.NewCounter(prometheus.CounterOpts{
		Name: "deadlock_deadlocks_detected_total",
		Help: "Total number of detection runs that found at least one cycle.",
	})

	detectionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "deadlock_detection_duration_ms",
		Help:    "Cycle detection latency in milliseconds.",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
	})

	predictionsRun = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "deadlock_predictions_total",
		Help: "Total number of safety predictions, labelled by outcome.",
	}, []string{"outcome"})

	victimsPreempted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "deadlock_victims_preempted_total",
		Help: "Total number of processes preempted during recovery.",
	})

	cacheOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "deadlock_cache_operations_total",
		Help: "Total number of cache operations, labelled by key type and operation.",
	}, []string{"key_type", "op"})

	renderDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "deadlock_render_duration_ms",
		Help:    "Graph rendering latency in milliseconds, labelled by format.",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
	}, []string{"format"})

	wsClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "deadlock_ws_clients",
		Help: "Number of connected websocket clients.",
	})
)

// InstallHooks routes the observability hook points of the analysis, cache,
// and render packages into the prometheus metrics above. Call once at server
// startup.
func InstallHooks() {
	observability.SetAnalysisHooks(promAnalysisHooks{})
	observability.SetCacheHooks(promCacheHooks{})
	observability.SetRenderHooks(promRenderHooks{})
}

type promAnalysisHooks struct{}

func (promAnalysisHooks) OnDetectStart(context.Context, int) {}

func (promAnalysisHooks) OnDetectComplete(_ context.Context, _ int, deadlocked bool, d time.Duration) {
	detectionsRun.Inc()
	if deadlocked {
		deadlocksFound.Inc()
	}
	detectionDuration.Observe(float64(d.Milliseconds()))
}

func (promAnalysisHooks) OnPredictStart(context.Context, int) {}

func (promAnalysisHooks) OnPredictComplete(_ context.Context, safe bool, _ time.Duration) {
	predictionsRun.WithLabelValues(strconv.FormatBool(safe)).Inc()
}

func (promAnalysisHooks) OnRecoverComplete(_ context.Context, victimCount int, _ time.Duration) {
	victimsPreempted.Add(float64(victimCount))
}

type promCacheHooks struct{}

func (promCacheHooks) OnCacheHit(_ context.Context, keyType string) {
	cacheOps.WithLabelValues(keyType, "hit").Inc()
}

func (promCacheHooks) OnCacheMiss(_ context.Context, keyType string) {
	cacheOps.WithLabelValues(keyType, "miss").Inc()
}

func (promCacheHooks) OnCacheSet(_ context.Context, keyType string, _ int) {
	cacheOps.WithLabelValues(keyType, "set").Inc()
}

type promRenderHooks struct{}

func (promRenderHooks) OnRenderStart(context.Context, string, int) {}

func (promRenderHooks) OnRenderComplete(_ context.Context, format string, _ int, d time.Duration, err error) {
	if err != nil {
		return
	}
	renderDuration.WithLabelValues(format).Observe(float64(d.Milliseconds()))
}
