package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Outcome labels.
const (
	OutcomeSuccess    = "success"
	OutcomeValidation = "validation_error"
	OutcomeRemote     = "remote_error"
	OutcomeBusy       = "busy"
)

const namespace = "catalog"

// Recorder owns a private registry with the catalog client's metrics.
type Recorder struct {
	registry  *prometheus.Registry
	mutations *prometheus.CounterVec
	refetches *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

// NewRecorder creates a recorder with process and Go runtime collectors.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mutations_total",
			Help:      "Submitted add/save/remove operations by entity kind and outcome.",
		}, []string{"kind", "op", "outcome"}),
		refetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refetch_total",
			Help:      "Collection refetches by entity kind and outcome.",
		}, []string{"kind", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Wall time of mutations and refetches.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind", "op"}),
	}

	r.registry.MustRegister(
		r.mutations,
		r.refetches,
		r.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// ObserveMutation counts one add/save/remove outcome.
func (r *Recorder) ObserveMutation(kind, op, outcome string, d time.Duration) {
	if r == nil {
		return
	}
	r.mutations.WithLabelValues(kind, op, outcome).Inc()
	if outcome != OutcomeValidation && outcome != OutcomeBusy {
		r.duration.WithLabelValues(kind, op).Observe(d.Seconds())
	}
}

// ObserveRefetch counts one refetch outcome.
func (r *Recorder) ObserveRefetch(kind, outcome string, d time.Duration) {
	if r == nil {
		return
	}
	r.refetches.WithLabelValues(kind, outcome).Inc()
	r.duration.WithLabelValues(kind, "refetch").Observe(d.Seconds())
}

// Registry exposes the underlying registry, e.g. for tests.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (r *Recorder) Serve(ctx context.Context, addr string, logger *zap.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("metrics endpoint listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		<-errCh
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
