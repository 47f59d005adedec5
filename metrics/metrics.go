// Package metrics exposes Prometheus instrumentation for indexing runs.
//
// A nil *Metrics is valid and records nothing, so components can take one
// unconditionally.
package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "corpora"

// Metrics holds the counters updated by the indexing pipeline.
type Metrics struct {
	registry *prometheus.Registry

	documentsParsed    prometheus.Counter
	documentsIndexed   prometheus.Counter
	documentsAnnotated prometheus.Counter
	annotationRetries  prometheus.Counter
	annotationFailures prometheus.Counter
	annotateLatency    prometheus.Histogram
	mergeDuration      prometheus.Gauge
	runsTotal          *prometheus.CounterVec
}

// New creates metrics registered on a fresh registry. When withRuntime is
// set, Go runtime and process collectors are registered too.
func New(withRuntime bool) *Metrics {
	reg := prometheus.NewRegistry()
	if withRuntime {
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	m := &Metrics{
		registry: reg,
		documentsParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_parsed_total",
			Help:      "Documents produced by the corpus parser",
		}),
		documentsIndexed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_indexed_total",
			Help:      "Documents committed to the index",
		}),
		documentsAnnotated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_annotated_total",
			Help:      "Documents enriched by the annotation engine",
		}),
		annotationRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "annotation_retries_total",
			Help:      "Annotation attempts repeated after a failure",
		}),
		annotationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "annotation_failures_total",
			Help:      "Documents whose annotation failed after all attempts",
		}),
		annotateLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "annotate_latency_seconds",
			Help:      "Latency of annotating one document",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
		}),
		mergeDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "merge_duration_seconds",
			Help:      "Duration of the last forced merge",
		}),
		runsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Indexing runs by outcome",
		}, []string{"outcome"}),
	}

	reg.MustRegister(
		m.documentsParsed,
		m.documentsIndexed,
		m.documentsAnnotated,
		m.annotationRetries,
		m.annotationFailures,
		m.annotateLatency,
		m.mergeDuration,
		m.runsTotal,
	)
	return m
}

// Registry returns the underlying Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) DocumentParsed() {
	if m != nil {
		m.documentsParsed.Inc()
	}
}

func (m *Metrics) DocumentIndexed() {
	if m != nil {
		m.documentsIndexed.Inc()
	}
}

// DocumentAnnotated records a successful annotation and its latency.
func (m *Metrics) DocumentAnnotated(latency time.Duration) {
	if m != nil {
		m.documentsAnnotated.Inc()
		m.annotateLatency.Observe(latency.Seconds())
	}
}

func (m *Metrics) AnnotationRetried() {
	if m != nil {
		m.annotationRetries.Inc()
	}
}

func (m *Metrics) AnnotationFailed() {
	if m != nil {
		m.annotationFailures.Inc()
	}
}

func (m *Metrics) Merged(d time.Duration) {
	if m != nil {
		m.mergeDuration.Set(d.Seconds())
	}
}

// RunFinished counts a run as "ok" or "error".
func (m *Metrics) RunFinished(err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.runsTotal.WithLabelValues(outcome).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// Serve exposes /metrics on addr until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string, logger *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("metrics server listening", "addr", addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}
