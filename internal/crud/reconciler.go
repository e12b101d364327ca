package crud

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/handiism/music-catalog/internal/metrics"
	"github.com/handiism/music-catalog/internal/model"
)

// Metrics receives submission and refetch outcomes. *metrics.Recorder
// implements it.
type Metrics interface {
	ObserveMutation(kind, op, outcome string, d time.Duration)
	ObserveRefetch(kind, outcome string, d time.Duration)
}

// Collection is the locally rendered copy of one server collection. Only
// the Reconciler writes to it.
type Collection[T any] struct {
	mu     sync.RWMutex
	items  []T
	loaded bool
	err    error
}

// NewCollection returns an empty, not yet loaded collection.
func NewCollection[T any]() *Collection[T] {
	return &Collection[T]{}
}

// Items returns a copy of the current items.
func (c *Collection[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.items)
}

// Len returns the number of items.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Loaded reports whether a fetch has ever succeeded.
func (c *Collection[T]) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Err returns the load error blocking the collection, if any.
func (c *Collection[T]) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}

func (c *Collection[T]) replace(items []T) {
	c.mu.Lock()
	c.items = slices.Clone(items)
	c.loaded = true
	c.err = nil
	c.mu.Unlock()
}

func (c *Collection[T]) fail(err error) {
	c.mu.Lock()
	c.err = err
	c.mu.Unlock()
}

// source is one registered kind. Every fetch is tagged with the generation
// it started in; results from an older generation than the last applied one
// are dropped.
type source struct {
	fetch   func(ctx context.Context, fresh bool) (func(), error)
	fail    func(err error)
	gen     uint64
	applied uint64
}

// Reconciler refetches collections after mutations.
//
// Refetch starts a new generation and always goes to the network.
// Refresh and Load join a fetch already in flight for the current
// generation instead of issuing another one.
type Reconciler struct {
	mu      sync.Mutex
	sources map[model.Kind]*source
	group   singleflight.Group
	logger  *zap.Logger
	metrics Metrics
}

// NewReconciler creates a reconciler with no registered kinds. logger and
// m may be nil.
func NewReconciler(logger *zap.Logger, m Metrics) *Reconciler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reconciler{
		sources: make(map[model.Kind]*source),
		logger:  logger,
		metrics: m,
	}
}

// Register binds kind to coll. fetch lists the kind's collection; fresh
// requests a network round trip instead of a cached answer.
func Register[T any](r *Reconciler, kind model.Kind, coll *Collection[T], fetch func(ctx context.Context, fresh bool) ([]T, error)) {
	src := &source{
		fetch: func(ctx context.Context, fresh bool) (func(), error) {
			items, err := fetch(ctx, fresh)
			if err != nil {
				return nil, err
			}
			return func() { coll.replace(items) }, nil
		},
		fail: coll.fail,
	}

	r.mu.Lock()
	r.sources[kind] = src
	r.mu.Unlock()
}

// Load performs the initial, cache-first fetch of kind. On failure the
// collection keeps the error so its section can render an error state.
// A failure that a newer generation has already superseded is dropped.
func (r *Reconciler) Load(ctx context.Context, kind model.Kind) error {
	src, gen, err := r.current(kind, false)
	if err != nil {
		return err
	}
	err = r.run(ctx, kind, src, gen, "load", false)
	if err == nil {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if gen < src.applied {
		r.logger.Debug("dropping stale load failure",
			zap.Stringer("kind", kind),
			zap.Uint64("generation", gen),
			zap.Uint64("applied", src.applied),
			zap.Error(err))
		return nil
	}
	src.fail(err)
	return err
}

// Refetch reloads kind from the network after a mutation. On failure the
// previous collection stays in place and a *RefetchError is returned.
func (r *Reconciler) Refetch(ctx context.Context, kind model.Kind) error {
	src, gen, err := r.current(kind, true)
	if err != nil {
		return err
	}
	return r.refetch(ctx, kind, src, gen)
}

// Refresh reloads kind from the network, joining a refetch already in
// flight for the current generation.
func (r *Reconciler) Refresh(ctx context.Context, kind model.Kind) error {
	src, gen, err := r.current(kind, false)
	if err != nil {
		return err
	}
	return r.refetch(ctx, kind, src, gen)
}

func (r *Reconciler) refetch(ctx context.Context, kind model.Kind, src *source, gen uint64) error {
	start := time.Now()
	err := r.run(ctx, kind, src, gen, "refetch", true)
	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = metrics.OutcomeRemote
		err = &RefetchError{Kind: kind, Err: err}
		r.logger.Warn("refetch failed, keeping previous collection",
			zap.Stringer("kind", kind),
			zap.Error(err))
	}
	if r.metrics != nil {
		r.metrics.ObserveRefetch(kind.String(), outcome, time.Since(start))
	}
	return err
}

func (r *Reconciler) current(kind model.Kind, bump bool) (*source, uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	src, ok := r.sources[kind]
	if !ok {
		return nil, 0, fmt.Errorf("reconcile: %v is not registered", kind)
	}
	if bump {
		src.gen++
	}
	return src, src.gen, nil
}

func (r *Reconciler) run(ctx context.Context, kind model.Kind, src *source, gen uint64, mode string, fresh bool) error {
	key := fmt.Sprintf("%s/%s/%d", kind, mode, gen)
	_, err, shared := r.group.Do(key, func() (any, error) {
		apply, err := src.fetch(ctx, fresh)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		defer r.mu.Unlock()
		if gen < src.applied {
			r.logger.Debug("dropping stale fetch result",
				zap.Stringer("kind", kind),
				zap.Uint64("generation", gen),
				zap.Uint64("applied", src.applied))
			return nil, nil
		}
		src.applied = gen
		apply()
		return nil, nil
	})
	if shared {
		r.logger.Debug("joined in-flight fetch", zap.Stringer("kind", kind), zap.String("mode", mode))
	}
	return err
}
