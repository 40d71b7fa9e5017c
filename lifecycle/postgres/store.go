package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/loankit/loankit/lifecycle"
)

// Store implements lifecycle.EntityStore on top of a pgx connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a store over the given pool.
func New(pool *pgxpool.Pool) *Store {
	if pool == nil {
		panic("postgres: pool cannot be nil")
	}
	return &Store{pool: pool}
}

// Begin opens a database transaction.
func (s *Store) Begin(ctx context.Context) (lifecycle.Tx, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("postgres: begin: %w", err)
	}
	return &storeTx{tx: tx}, nil
}

// CreateEntity persists a new entity in its initial state.
func (s *Store) CreateEntity(ctx context.Context, e *lifecycle.Entity) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO contracts (id, state, state_changed_at, last_event, last_actor, last_transition_id, fields, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())`,
		e.ID, e.State, e.Meta.ChangedAt, e.Meta.LastEvent, e.Meta.LastActor, e.Meta.TransitionID, e.Fields,
	)
	if err != nil {
		return fmt.Errorf("postgres: create entity: %w", err)
	}
	return nil
}

// Entity returns the entity without locking.
func (s *Store) Entity(ctx context.Context, id uuid.UUID) (*lifecycle.Entity, error) {
	return scanEntity(s.pool.QueryRow(ctx, selectEntity+` WHERE id = $1`, id))
}

// RecordFailure appends a failure audit record on the pool, outside any
// transaction, so the attempt survives the rolled-back unit of work.
func (s *Store) RecordFailure(ctx context.Context, rec lifecycle.Record) error {
	return insertRecord(ctx, s.pool, rec)
}

// History returns every transition record for the entity, oldest first.
func (s *Store) History(ctx context.Context, entityID uuid.UUID) ([]lifecycle.Record, error) {
	rows, err := s.pool.Query(ctx, selectRecord+` WHERE entity_id = $1 ORDER BY started_at ASC`, entityID)
	if err != nil {
		return nil, fmt.Errorf("postgres: history: %w", err)
	}
	defer rows.Close()

	var out []lifecycle.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: history: %w", err)
	}
	return out, nil
}

// storeTx adapts a pgx transaction to the engine's Tx seam.
type storeTx struct {
	tx pgx.Tx
}

// EntityForUpdate loads the entity under an exclusive row lock. A concurrent
// transaction holding the same row blocks here until it commits or rolls
// back.
func (t *storeTx) EntityForUpdate(ctx context.Context, id uuid.UUID) (*lifecycle.Entity, error) {
	return scanEntity(t.tx.QueryRow(ctx, selectEntity+` WHERE id = $1 FOR UPDATE`, id))
}

func (t *storeTx) UpdateEntity(ctx context.Context, e *lifecycle.Entity) error {
	tag, err := t.tx.Exec(ctx, `
		UPDATE contracts
		SET state = $2, state_changed_at = $3, last_event = $4, last_actor = $5, last_transition_id = $6, updated_at = now()
		WHERE id = $1`,
		e.ID, e.State, e.Meta.ChangedAt, e.Meta.LastEvent, e.Meta.LastActor, e.Meta.TransitionID,
	)
	if err != nil {
		return fmt.Errorf("postgres: update entity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return lifecycle.ErrEntityNotFound
	}
	return nil
}

func (t *storeTx) InsertRecord(ctx context.Context, rec lifecycle.Record) error {
	return insertRecord(ctx, t.tx, rec)
}

func (t *storeTx) FinalizeRecord(ctx context.Context, rec lifecycle.Record) error {
	tag, err := t.tx.Exec(ctx, `
		UPDATE transition_records
		SET success = $2, error = $3, actions_executed = $4, duration_ms = $5, completed_at = $6
		WHERE id = $1`,
		rec.ID, rec.Success, nullString(rec.Error), rec.Actions, rec.Duration.Milliseconds(), rec.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres: finalize record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errors.New("postgres: no pending record to finalize")
	}
	return nil
}

func (t *storeTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *storeTx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return err
	}
	return nil
}

const selectEntity = `
	SELECT id, state, state_changed_at, last_event, last_actor, last_transition_id, fields, created_at, updated_at
	FROM contracts`

const selectRecord = `
	SELECT id, entity_id, from_state, to_state, event, context, triggered_by, triggered_by_type,
	       guards_checked, actions_executed, success, error, duration_ms, started_at, completed_at
	FROM transition_records`

// execer covers both pool and transaction so the record insert is shared
// between the transactional pending write and the out-of-band failure write.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func insertRecord(ctx context.Context, db execer, rec lifecycle.Record) error {
	// Early failures (entity not found, begin errors) carry nil collections;
	// coalesce so they satisfy the NOT NULL audit columns.
	if rec.Context == nil {
		rec.Context = map[string]any{}
	}
	if rec.Guards == nil {
		rec.Guards = []lifecycle.GuardResult{}
	}
	if rec.Actions == nil {
		rec.Actions = []string{}
	}

	_, err := db.Exec(ctx, `
		INSERT INTO transition_records (
			id, entity_id, from_state, to_state, event, context, triggered_by, triggered_by_type,
			guards_checked, actions_executed, success, error, duration_ms, started_at, completed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		rec.ID, rec.EntityID, rec.FromState, rec.ToState, rec.Event, rec.Context,
		rec.TriggeredBy, rec.TriggeredByType, rec.Guards, rec.Actions,
		rec.Success, nullString(rec.Error), rec.Duration.Milliseconds(), rec.StartedAt, nullTime(rec.CompletedAt),
	)
	if err != nil {
		return fmt.Errorf("postgres: insert record: %w", err)
	}
	return nil
}

func scanEntity(row pgx.Row) (*lifecycle.Entity, error) {
	var e lifecycle.Entity
	err := row.Scan(
		&e.ID, &e.State, &e.Meta.ChangedAt, &e.Meta.LastEvent, &e.Meta.LastActor,
		&e.Meta.TransitionID, &e.Fields, &e.CreatedAt, &e.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, lifecycle.ErrEntityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: scan entity: %w", err)
	}
	return &e, nil
}

func scanRecord(row pgx.Row) (lifecycle.Record, error) {
	var (
		rec         lifecycle.Record
		errMsg      *string
		durationMS  int64
		completedAt *time.Time
	)
	err := row.Scan(
		&rec.ID, &rec.EntityID, &rec.FromState, &rec.ToState, &rec.Event, &rec.Context,
		&rec.TriggeredBy, &rec.TriggeredByType, &rec.Guards, &rec.Actions,
		&rec.Success, &errMsg, &durationMS, &rec.StartedAt, &completedAt,
	)
	if err != nil {
		return lifecycle.Record{}, fmt.Errorf("postgres: scan record: %w", err)
	}
	if errMsg != nil {
		rec.Error = *errMsg
	}
	rec.Duration = time.Duration(durationMS) * time.Millisecond
	if completedAt != nil {
		rec.CompletedAt = *completedAt
	}
	return rec, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
