// Package metrics records mutation and refetch outcomes as Prometheus metrics.
//
// A nil *Recorder is valid and records nothing.
//
//	rec := metrics.NewRecorder()
//	go rec.Serve(ctx, ":9090", logger)
//
// Exposed series:
//   - catalog_mutations_total{kind,op,outcome}
//   - catalog_refetch_total{kind,outcome}
//   - catalog_operation_duration_seconds{kind,op}
package metrics
