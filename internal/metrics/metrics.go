package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HintRequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "geoquiz_hint_requests_total",
		Help: "Total remote hint requests",
	})
	HintSuccessTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "geoquiz_hint_success_total",
		Help: "Total remote hints accepted",
	})
	HintFailTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "geoquiz_hint_fail_total",
		Help: "Total remote hint failures (transport, status or malformed body)",
	})
	HintFilteredTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "geoquiz_hint_filtered_total",
		Help: "Total remote hints rejected by the coordinate filter",
	})
	HintFallbackTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "geoquiz_hint_fallback_total",
		Help: "Total hints served from the local fallback",
	})
	HintCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "geoquiz_hint_cache_hits_total",
		Help: "Total hint cache hits",
	})
	HintDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "geoquiz_hint_duration_ms",
		Help:    "Remote hint call duration in milliseconds",
		Buckets: []float64{50, 100, 200, 500, 1000, 2000, 5000, 10000},
	})
	RoundsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "geoquiz_rounds_total",
		Help: "Total rounds started",
	})
	AnswersTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "geoquiz_answers_total",
		Help: "Total answers by outcome",
	}, []string{"outcome"})
	GeometryLoadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "geoquiz_geometry_loads_total",
		Help: "Geometry loads by source (cache, remote, file) and status",
	}, []string{"source", "status"})
)

func init() {
	prometheus.MustRegister(HintRequestsTotal)
	prometheus.MustRegister(HintSuccessTotal)
	prometheus.MustRegister(HintFailTotal)
	prometheus.MustRegister(HintFilteredTotal)
	prometheus.MustRegister(HintFallbackTotal)
	prometheus.MustRegister(HintCacheHitsTotal)
	prometheus.MustRegister(HintDurationMs)
	prometheus.MustRegister(RoundsTotal)
	prometheus.MustRegister(AnswersTotal)
	prometheus.MustRegister(GeometryLoadsTotal)
}

// Handler exposes the default registry.
func Handler() http.Handler { return promhttp.Handler() }

// Serve runs a /metrics listener on addr until ctx is done.
func Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
