package mortgage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/loankit/loankit/lifecycle"
	"github.com/loankit/loankit/pkg/idempotency"
	"github.com/loankit/loankit/pkg/logger"
)

// ErrDuplicateRequest indicates an idempotency key was already claimed by an
// earlier delivery of the same request.
var ErrDuplicateRequest = errors.New("mortgage: duplicate transition request")

// TransitionRequest describes one caller-initiated lifecycle move.
type TransitionRequest struct {
	ContractID      uuid.UUID
	Event           lifecycle.Event
	Context         map[string]any
	TriggeredBy     string
	TriggeredByType string

	// IdempotencyKey, when set and an idempotency store is configured,
	// suppresses duplicate deliveries of the same request.
	IdempotencyKey string
}

// Service exposes the caller-facing mortgage lifecycle operations on top of
// the transition engine. It owns contract creation; after birth the contract
// state changes only through Transition.
type Service struct {
	engine *lifecycle.Engine
	store  lifecycle.EntityStore
	idem   *idempotency.Store
	log    *slog.Logger
}

// ServiceOption configures a Service during construction.
type ServiceOption func(*Service)

// WithIdempotencyStore enables duplicate suppression for requests carrying an
// idempotency key.
func WithIdempotencyStore(store *idempotency.Store) ServiceOption {
	return func(s *Service) { s.idem = store }
}

// WithLogger sets the structured logger. Defaults to slog.Default.
func WithLogger(log *slog.Logger) ServiceOption {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// NewService builds the mortgage service over a store and engine.
func NewService(store lifecycle.EntityStore, engine *lifecycle.Engine, opts ...ServiceOption) *Service {
	if store == nil {
		panic("mortgage: store cannot be nil")
	}
	if engine == nil {
		panic("mortgage: engine cannot be nil")
	}

	s := &Service{
		engine: engine,
		store:  store,
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateContract persists a new contract in DRAFT with the given domain
// fields (principal, term, property details and so on).
func (s *Service) CreateContract(ctx context.Context, fields map[string]any) (*lifecycle.Entity, error) {
	now := time.Now()
	entity := &lifecycle.Entity{
		ID:        uuid.New(),
		State:     StateDraft,
		Meta:      lifecycle.StateMetadata{ChangedAt: now},
		Fields:    fields,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.CreateEntity(ctx, entity); err != nil {
		return nil, fmt.Errorf("mortgage: create contract: %w", err)
	}

	s.log.InfoContext(ctx, "contract created", logger.EntityID(entity.ID))
	return entity, nil
}

// Contract returns the contract without locking.
func (s *Service) Contract(ctx context.Context, id uuid.UUID) (*lifecycle.Entity, error) {
	return s.store.Entity(ctx, id)
}

// Transition applies a lifecycle event to a contract. When the request
// carries an idempotency key and a store is configured, a duplicate delivery
// returns ErrDuplicateRequest without touching the engine; a failed attempt
// releases its claim so the caller may retry.
func (s *Service) Transition(ctx context.Context, req TransitionRequest) (*lifecycle.Result, error) {
	if req.IdempotencyKey != "" && s.idem != nil {
		claimed, err := s.idem.Claim(ctx, req.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		if !claimed {
			return nil, ErrDuplicateRequest
		}
	}

	res, err := s.engine.Transition(ctx, req.ContractID, req.Event, req.Context, lifecycle.Trigger{
		By:   req.TriggeredBy,
		Type: req.TriggeredByType,
	})
	if err != nil {
		if req.IdempotencyKey != "" && s.idem != nil {
			if relErr := s.idem.Release(ctx, req.IdempotencyKey); relErr != nil {
				s.log.ErrorContext(ctx, "failed to release idempotency claim",
					slog.String("key", req.IdempotencyKey),
					logger.Error(relErr),
				)
			}
		}
		return nil, err
	}

	return res, nil
}

// History returns the contract's full transition audit trail, oldest first.
func (s *Service) History(ctx context.Context, contractID uuid.UUID) ([]lifecycle.Record, error) {
	return s.engine.History(ctx, contractID)
}

// PossibleTransitions returns the events the contract can respond to in its
// current state, for UI affordances.
func (s *Service) PossibleTransitions(ctx context.Context, contractID uuid.UUID) ([]lifecycle.Transition, error) {
	entity, err := s.store.Entity(ctx, contractID)
	if err != nil {
		return nil, err
	}
	return s.engine.PossibleTransitions(entity.State), nil
}
