// Package postgres provides the durable, row-locked implementation of the
// lifecycle engine's storage seam, backed by pgx/v5.
//
// Entities live in the contracts table; every transition attempt lands in the
// append-only transition_records table. EntityForUpdate issues
// SELECT ... FOR UPDATE so concurrent transitions on the same contract
// serialize at the database, which is the engine's load-bearing concurrency
// guarantee. Failure records are inserted on the pool, outside any
// transaction, so attempts whose transaction rolled back remain visible for
// compliance review.
//
// Schema migrations for both tables ship in the repository's migrations
// directory and run through pkg/pg's goose integration.
package postgres
