package crud

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/handiism/music-catalog/internal/form"
	"github.com/handiism/music-catalog/internal/metrics"
	"github.com/handiism/music-catalog/internal/model"
)

// Mutations sends one kind's create, update and delete mutations.
// *catalog.Mutations implements it.
type Mutations interface {
	Create(ctx context.Context, values map[string]string) error
	Update(ctx context.Context, id string, values map[string]string) error
	Delete(ctx context.Context, id string) error
}

// Refresher reloads a kind's collection from the server. *Reconciler
// implements it.
type Refresher interface {
	Refetch(ctx context.Context, kind model.Kind) error
}

// Controller validates and submits the drafts of one entity kind.
//
// A controller runs at most one submission at a time; a call made while
// another is in flight returns ErrSubmissionInFlight and changes nothing.
type Controller struct {
	schema    Schema
	state     *form.State
	mutations Mutations
	refresher Refresher
	logger    *zap.Logger
	metrics   Metrics

	busy atomic.Bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the controller's logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics sets the outcome recorder.
func WithMetrics(m Metrics) Option {
	return func(c *Controller) {
		c.metrics = m
	}
}

// NewController creates a controller for schema.Kind.
func NewController(schema Schema, mutations Mutations, refresher Refresher, opts ...Option) *Controller {
	c := &Controller{
		schema:    schema,
		state:     schema.NewState(),
		mutations: mutations,
		refresher: refresher,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(zap.Stringer("kind", schema.Kind))
	return c
}

// Kind returns the controller's entity kind.
func (c *Controller) Kind() model.Kind {
	return c.schema.Kind
}

// Schema returns the controller's field schema.
func (c *Controller) Schema() Schema {
	return c.schema
}

// Form returns the controller's form state.
func (c *Controller) Form() *form.State {
	return c.state
}

// Add validates the create draft, sends the create mutation and, on
// success, resets the draft and refetches the collection.
func (c *Controller) Add(ctx context.Context) error {
	if !c.busy.CompareAndSwap(false, true) {
		c.observe(OpAdd, metrics.OutcomeBusy, 0)
		return ErrSubmissionInFlight
	}
	defer c.busy.Store(false)

	draft := c.state.New()
	if missing := draft.Missing(c.schema.CreateRequired); len(missing) > 0 {
		return c.invalid(OpAdd, missing)
	}

	start := time.Now()
	if err := c.mutations.Create(ctx, draft.Values()); err != nil {
		c.observe(OpAdd, metrics.OutcomeRemote, time.Since(start))
		c.logger.Warn("create failed, draft kept", zap.Error(err))
		return &RemoteError{Kind: c.schema.Kind, Op: OpAdd, Err: err}
	}
	c.observe(OpAdd, metrics.OutcomeSuccess, time.Since(start))
	c.logger.Info("created")

	c.state.ResetNew()
	return c.refresher.Refetch(ctx, c.schema.Kind)
}

// Save validates the edit draft, sends the update mutation with the id and
// the draft's fields and, on success, closes the edit and refetches.
func (c *Controller) Save(ctx context.Context) error {
	if !c.busy.CompareAndSwap(false, true) {
		c.observe(OpSave, metrics.OutcomeBusy, 0)
		return ErrSubmissionInFlight
	}
	defer c.busy.Store(false)

	draft := c.state.Edit()
	if draft == nil {
		return fmt.Errorf("%s %s: %w", c.schema.Kind, OpSave, form.ErrNotEditing)
	}
	if missing := draft.Missing(c.schema.EditRequired); len(missing) > 0 {
		return c.invalid(OpSave, missing)
	}

	id := draft.ID()
	start := time.Now()
	if err := c.mutations.Update(ctx, id, draft.Values()); err != nil {
		c.observe(OpSave, metrics.OutcomeRemote, time.Since(start))
		c.logger.Warn("update failed, edit kept open", zap.String("id", id), zap.Error(err))
		return &RemoteError{Kind: c.schema.Kind, Op: OpSave, ID: id, Err: err}
	}
	c.observe(OpSave, metrics.OutcomeSuccess, time.Since(start))
	c.logger.Info("updated", zap.String("id", id))

	c.state.FinishEdit(id)
	return c.refresher.Refetch(ctx, c.schema.Kind)
}

// Remove sends the delete mutation for id and refetches the collection
// whatever the outcome. A delete failure is returned, joined with any
// refetch failure.
func (c *Controller) Remove(ctx context.Context, id string) error {
	if !c.busy.CompareAndSwap(false, true) {
		c.observe(OpRemove, metrics.OutcomeBusy, 0)
		return ErrSubmissionInFlight
	}
	defer c.busy.Store(false)

	if id == "" {
		return c.invalid(OpRemove, []string{"id"})
	}

	start := time.Now()
	var delErr error
	if err := c.mutations.Delete(ctx, id); err != nil {
		c.observe(OpRemove, metrics.OutcomeRemote, time.Since(start))
		c.logger.Warn("delete failed, refetching anyway", zap.String("id", id), zap.Error(err))
		delErr = &RemoteError{Kind: c.schema.Kind, Op: OpRemove, ID: id, Err: err}
	} else {
		c.observe(OpRemove, metrics.OutcomeSuccess, time.Since(start))
		c.logger.Info("deleted", zap.String("id", id))
		c.state.FinishEdit(id)
	}

	return errors.Join(delErr, c.refresher.Refetch(ctx, c.schema.Kind))
}

// Busy reports whether a submission is in flight.
func (c *Controller) Busy() bool {
	return c.busy.Load()
}

func (c *Controller) invalid(op Op, missing []string) error {
	c.observe(op, metrics.OutcomeValidation, 0)
	c.logger.Debug("validation failed", zap.String("op", string(op)), zap.Strings("missing", missing))
	return &ValidationError{Kind: c.schema.Kind, Op: op, Missing: missing}
}

func (c *Controller) observe(op Op, outcome string, d time.Duration) {
	if c.metrics == nil {
		return
	}
	c.metrics.ObserveMutation(c.schema.Kind.String(), string(op), outcome, d)
}
