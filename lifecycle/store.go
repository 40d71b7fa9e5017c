package lifecycle

import (
	"context"

	"github.com/google/uuid"
)

// Store is the engine's persistence seam. Implementations must provide
// transactional units of work whose EntityForUpdate acquires an exclusive
// per-entity lock held until Commit or Rollback, so that concurrent
// transitions on the same entity serialize instead of interleaving.
type Store interface {
	// Begin opens a transactional unit of work.
	Begin(ctx context.Context) (Tx, error)

	// RecordFailure appends a failure audit record outside any transaction.
	// Called after the main transaction rolled back, so failed attempts stay
	// visible; best-effort by contract.
	RecordFailure(ctx context.Context, rec Record) error

	// History returns every transition record for the entity ordered by start
	// time, oldest first. Read-only, no locking.
	History(ctx context.Context, entityID uuid.UUID) ([]Record, error)
}

// Tx is one transactional unit of work. Either Commit or Rollback must be
// called exactly once; Rollback after Commit is a no-op so it can sit safely
// in a defer.
type Tx interface {
	// EntityForUpdate loads the entity under an exclusive write lock scoped
	// to this transaction. Returns ErrEntityNotFound when no such entity
	// exists.
	EntityForUpdate(ctx context.Context, id uuid.UUID) (*Entity, error)

	// UpdateEntity persists the entity's state and metadata.
	UpdateEntity(ctx context.Context, e *Entity) error

	// InsertRecord writes a transition record in pending shape.
	InsertRecord(ctx context.Context, rec Record) error

	// FinalizeRecord updates the pending record to its final shape.
	FinalizeRecord(ctx context.Context, rec Record) error

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// EntityStore extends Store with entity creation and unlocked reads, for
// service layers that own the entity's birth but must never touch its state
// directly afterwards.
type EntityStore interface {
	Store

	// CreateEntity persists a new entity in its initial state.
	CreateEntity(ctx context.Context, e *Entity) error

	// Entity returns the entity without locking. Returns ErrEntityNotFound
	// when no such entity exists.
	Entity(ctx context.Context, id uuid.UUID) (*Entity, error)
}
