package lifecycle

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore implements EntityStore in-process, for tests and local
// development. Per-entity mutexes reproduce the row-lock semantics of the
// PostgreSQL store: EntityForUpdate blocks while another transaction holds
// the same entity, and the lock is released on Commit or Rollback.
type MemoryStore struct {
	mu       sync.RWMutex
	entities map[uuid.UUID]*memoryRow
	records  []Record
}

type memoryRow struct {
	lock   sync.Mutex // held for the duration of a transaction touching this entity
	entity Entity
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entities: make(map[uuid.UUID]*memoryRow),
	}
}

// CreateEntity persists a new entity in its initial state.
func (ms *MemoryStore) CreateEntity(_ context.Context, e *Entity) error {
	if e == nil {
		return errors.New("lifecycle: entity cannot be nil")
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	if _, exists := ms.entities[e.ID]; exists {
		return errors.New("lifecycle: entity already exists")
	}

	ms.entities[e.ID] = &memoryRow{entity: cloneEntity(*e)}
	return nil
}

// Entity returns a copy of the entity without locking.
func (ms *MemoryStore) Entity(_ context.Context, id uuid.UUID) (*Entity, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	row, ok := ms.entities[id]
	if !ok {
		return nil, ErrEntityNotFound
	}

	e := cloneEntity(row.entity)
	return &e, nil
}

// Begin opens a transactional unit of work.
func (ms *MemoryStore) Begin(_ context.Context) (Tx, error) {
	return &memoryTx{store: ms}, nil
}

// RecordFailure appends a failure record outside any transaction.
func (ms *MemoryStore) RecordFailure(_ context.Context, rec Record) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.records = append(ms.records, rec)
	return nil
}

// History returns every record for the entity ordered by start time.
func (ms *MemoryStore) History(_ context.Context, entityID uuid.UUID) ([]Record, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	var out []Record
	for _, rec := range ms.records {
		if rec.EntityID == entityID {
			out = append(out, rec)
		}
	}
	slices.SortStableFunc(out, func(a, b Record) int {
		return a.StartedAt.Compare(b.StartedAt)
	})
	return out, nil
}

// memoryTx stages writes until Commit. It holds at most one entity row lock,
// acquired by EntityForUpdate and released on Commit or Rollback.
type memoryTx struct {
	store   *MemoryStore
	row     *memoryRow
	staged  *Entity
	pending []Record
	done    bool
}

func (tx *memoryTx) EntityForUpdate(_ context.Context, id uuid.UUID) (*Entity, error) {
	tx.store.mu.RLock()
	row, ok := tx.store.entities[id]
	tx.store.mu.RUnlock()
	if !ok {
		return nil, ErrEntityNotFound
	}

	// Blocks until any concurrent transaction on the same entity finishes,
	// mirroring SELECT ... FOR UPDATE.
	row.lock.Lock()
	tx.row = row

	tx.store.mu.RLock()
	e := cloneEntity(row.entity)
	tx.store.mu.RUnlock()

	tx.staged = &e
	return tx.staged, nil
}

func (tx *memoryTx) UpdateEntity(_ context.Context, e *Entity) error {
	if tx.row == nil {
		return errors.New("lifecycle: entity not loaded in this transaction")
	}
	staged := cloneEntity(*e)
	tx.staged = &staged
	return nil
}

func (tx *memoryTx) InsertRecord(_ context.Context, rec Record) error {
	tx.pending = append(tx.pending, rec)
	return nil
}

func (tx *memoryTx) FinalizeRecord(_ context.Context, rec Record) error {
	for i := range tx.pending {
		if tx.pending[i].ID == rec.ID {
			tx.pending[i] = rec
			return nil
		}
	}
	return errors.New("lifecycle: no pending record to finalize")
}

func (tx *memoryTx) Commit(_ context.Context) error {
	if tx.done {
		return errors.New("lifecycle: transaction already closed")
	}
	tx.done = true

	tx.store.mu.Lock()
	if tx.row != nil {
		tx.row.entity = cloneEntity(*tx.staged)
	}
	tx.store.records = append(tx.store.records, tx.pending...)
	tx.store.mu.Unlock()

	if tx.row != nil {
		tx.row.lock.Unlock()
	}
	return nil
}

func (tx *memoryTx) Rollback(_ context.Context) error {
	if tx.done {
		return nil // no-op after Commit, safe in a defer
	}
	tx.done = true

	if tx.row != nil {
		tx.row.lock.Unlock()
	}
	tx.pending = nil
	return nil
}

func cloneEntity(e Entity) Entity {
	e.Fields = maps.Clone(e.Fields)
	return e
}
