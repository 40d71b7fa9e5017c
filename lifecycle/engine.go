package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/loankit/loankit/pkg/logger"
)

// failureAuditTimeout bounds the out-of-band failure record write so a slow
// audit store cannot stall error reporting to the caller.
const failureAuditTimeout = 5 * time.Second

// Result reports a successful transition back to the caller.
type Result struct {
	TransitionID uuid.UUID
	From         State
	To           State
	Event        Event
	Guards       []GuardResult
	Duration     time.Duration
}

// Engine orchestrates guarded state transitions. It is safe for concurrent
// use: the catalog and registry are read-only, and same-entity calls
// serialize on the store's row lock.
type Engine struct {
	store   Store
	catalog *Catalog
	actions *Registry
	log     *slog.Logger
	metrics *engineMetrics
	now     func() time.Time
}

// Option configures an Engine during construction.
type Option func(*Engine)

// WithLogger sets the structured logger. Defaults to slog.Default.
func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithMetrics registers the engine's Prometheus instruments with reg.
// Metrics are disabled when this option is absent.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(e *Engine) {
		e.metrics = newEngineMetrics(reg)
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine builds a transition engine over the given store, catalog and
// action registry. Every action identifier referenced by the catalog must
// resolve in the registry; a dangling reference is a configuration error
// reported here rather than at first dispatch.
func NewEngine(store Store, catalog *Catalog, actions *Registry, opts ...Option) (*Engine, error) {
	if store == nil {
		return nil, ErrNilStore
	}
	if catalog == nil {
		return nil, ErrNilCatalog
	}
	if actions == nil {
		return nil, ErrNilRegistry
	}

	for _, d := range catalog.defs {
		for _, name := range d.Actions {
			if !actions.Has(name) {
				return nil, &UnknownActionError{Action: name, Event: d.Event}
			}
		}
	}

	e := &Engine{
		store:   store,
		catalog: catalog,
		actions: actions,
		log:     slog.Default(),
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e, nil
}

// MustNewEngine is like NewEngine but panics on configuration errors,
// following the toolkit's fail-fast initialization pattern.
func MustNewEngine(store Store, catalog *Catalog, actions *Registry, opts ...Option) *Engine {
	e, err := NewEngine(store, catalog, actions, opts...)
	if err != nil {
		panic(fmt.Sprintf("lifecycle: failed to create engine: %v", err))
	}
	return e
}

// Transition applies event to the entity inside one transactional unit of
// work: load under row lock, resolve the definition, evaluate guards, write a
// pending audit record, dispatch actions, update the entity and finalize the
// record, then commit. Any failure rolls the transaction back, leaves the
// entity untouched, and preserves the attempt through a best-effort
// out-of-band failure record.
//
// A second concurrent call for the same entity blocks on the row lock until
// this one commits or rolls back, then computes against the now-current
// state.
func (e *Engine) Transition(ctx context.Context, entityID uuid.UUID, event Event, overrides map[string]any, trig Trigger) (*Result, error) {
	startedAt := e.now()
	transitionID := uuid.New()

	log := e.log.With(
		logger.EntityID(entityID),
		logger.Event(event.String()),
		logger.TransitionID(transitionID),
	)

	rec := Record{
		ID:              transitionID,
		EntityID:        entityID,
		Event:           event,
		TriggeredBy:     trig.By,
		TriggeredByType: trig.Type,
		StartedAt:       startedAt,
	}

	fail := func(tx Tx, err error) (*Result, error) {
		if tx != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				log.ErrorContext(ctx, "transaction rollback failed", logger.Error(rbErr))
			}
		}

		rec.Success = false
		rec.Error = err.Error()
		rec.CompletedAt = e.now()
		rec.Duration = rec.CompletedAt.Sub(startedAt)
		e.recordFailure(ctx, rec, log)

		e.metrics.observe(event, failureStatus(err), rec.Duration)
		log.WarnContext(ctx, "transition failed", logger.Error(err), logger.Duration(rec.Duration))
		return nil, err
	}

	tx, err := e.store.Begin(ctx)
	if err != nil {
		return fail(nil, fmt.Errorf("begin transaction: %w", err))
	}

	entity, err := tx.EntityForUpdate(ctx, entityID)
	if err != nil {
		return fail(tx, err)
	}
	rec.FromState = entity.State

	tc := newContext(entity, event, overrides, trig)
	rec.Context = tc.Snapshot()

	def, err := e.catalog.Resolve(entity.State, event)
	if err != nil {
		return fail(tx, err)
	}
	rec.ToState = def.To
	tc.To = def.To

	trail, err := evaluateGuards(ctx, def.Guards, tc)
	rec.Guards = trail
	if err != nil {
		var gf *GuardFailedError
		if errors.As(err, &gf) {
			e.metrics.observeGuardFailure(gf.Guard)
		}
		return fail(tx, err)
	}

	// Pending record rides inside the transaction: if a later step fails the
	// record rolls back with it, and the out-of-band failure path takes over.
	if err := tx.InsertRecord(ctx, rec); err != nil {
		return fail(tx, fmt.Errorf("insert pending record: %w", err))
	}

	executed, err := dispatchActions(ctx, e.actions, def.Actions, tc, log)
	rec.Actions = executed
	if err != nil {
		return fail(tx, err)
	}

	entity.State = def.To
	entity.Meta = StateMetadata{
		ChangedAt:    e.now(),
		LastEvent:    event,
		LastActor:    trig.By,
		TransitionID: transitionID,
	}
	entity.UpdatedAt = entity.Meta.ChangedAt
	if err := tx.UpdateEntity(ctx, entity); err != nil {
		return fail(tx, fmt.Errorf("update entity state: %w", err))
	}

	rec.Success = true
	rec.CompletedAt = e.now()
	rec.Duration = rec.CompletedAt.Sub(startedAt)
	if err := tx.FinalizeRecord(ctx, rec); err != nil {
		return fail(tx, fmt.Errorf("finalize record: %w", err))
	}

	if err := tx.Commit(ctx); err != nil {
		return fail(tx, fmt.Errorf("commit transaction: %w", err))
	}

	e.metrics.observe(event, "success", rec.Duration)
	log.InfoContext(ctx, "transition applied",
		slog.String("from", rec.FromState.String()),
		slog.String("to", rec.ToState.String()),
		logger.Duration(rec.Duration),
	)

	return &Result{
		TransitionID: transitionID,
		From:         rec.FromState,
		To:           rec.ToState,
		Event:        event,
		Guards:       trail,
		Duration:     rec.Duration,
	}, nil
}

// History returns every transition record for the entity ordered by start
// time, oldest first. Read-only; takes no locks.
func (e *Engine) History(ctx context.Context, entityID uuid.UUID) ([]Record, error) {
	return e.store.History(ctx, entityID)
}

// PossibleTransitions returns the events that may fire from the given state
// and where each would lead, without executing anything.
func (e *Engine) PossibleTransitions(state State) []Transition {
	return e.catalog.PossibleTransitions(state)
}

// recordFailure preserves a failed attempt outside the rolled-back
// transaction. Fire-and-forget by design: audit completeness is a secondary
// guarantee, so a degraded write is logged and counted but never escalated
// over the caller's primary error.
func (e *Engine) recordFailure(ctx context.Context, rec Record, log *slog.Logger) {
	wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), failureAuditTimeout)
	defer cancel()

	if err := e.store.RecordFailure(wctx, rec); err != nil {
		e.metrics.observeAuditDropped()
		log.ErrorContext(ctx, "failure audit write degraded", logger.Error(err))
	}
}

// failureStatus maps an error to the metrics status label.
func failureStatus(err error) string {
	switch {
	case IsInvalidTransitionError(err):
		return "invalid_transition"
	case IsGuardFailedError(err):
		return "guard_failed"
	case IsActionFailedError(err):
		return "action_failed"
	default:
		return "error"
	}
}
