// Package governance implements savings-circle membership, contributions,
// funding-request voting and treasury disbursement.
//
// Every Engine method runs as one storage.Store.Atomic unit: a rejected
// call leaves no partial writes behind. The caller identity passed to each
// method is assumed to be authenticated already.
package governance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mmynk/daojo/internal/metrics"
	"github.com/mmynk/daojo/internal/models"
	"github.com/mmynk/daojo/internal/storage"
)

// Engine coordinates the circle registry, contribution ledger, request
// state machine and disbursement engine on top of a storage.Store.
type Engine struct {
	store   storage.Store
	now     func() time.Time
	logger  *slog.Logger
	metrics *metrics.Collector
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the time source used for created/updated timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithLogger sets the logger used for state transitions.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMetrics records operation outcomes on c.
func WithMetrics(c *metrics.Collector) Option {
	return func(e *Engine) {
		e.metrics = c
	}
}

// NewEngine creates an Engine backed by store.
func NewEngine(store storage.Store, opts ...Option) *Engine {
	e := &Engine{
		store:  store,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// atomic runs fn in a storage transaction and records the outcome.
func (e *Engine) atomic(ctx context.Context, operation string, fn func(tx storage.Tx) error) error {
	err := e.store.Atomic(ctx, fn)
	switch {
	case err == nil:
		e.metrics.Operation(operation, metrics.OutcomeOK)
	case isRejection(err):
		e.metrics.Operation(operation, metrics.OutcomeRejected)
	default:
		e.metrics.Operation(operation, metrics.OutcomeError)
	}
	return err
}

func isRejection(err error) bool {
	_, ok := AsError(err)
	return ok
}

func (e *Engine) timestamp() int64 {
	return e.now().Unix()
}

// notFound maps storage.ErrNotFound to the given governance error and
// wraps anything else.
func notFound(err error, gerr *Error, what string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return gerr
	}
	return fmt.Errorf("load %s: %w", what, err)
}

// loadCircle fetches a circle and re-checks that its ID is the one derived
// from its invite code.
func loadCircle(ctx context.Context, tx storage.Tx, circleID string) (*models.Circle, error) {
	circle, err := tx.GetCircle(ctx, circleID)
	if err != nil {
		return nil, notFound(err, ErrCircleNotFound, "circle")
	}
	if !verifyAddress(circle.ID, circle.Bump, seedCircle, circle.InviteCode) {
		return nil, fmt.Errorf("circle %s does not match its invite code derivation", circle.ID)
	}
	return circle, nil
}
