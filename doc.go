// Package loankit is a toolkit for building mortgage and property-purchase
// servicing applications in Go.
//
// The heart of the toolkit is the guarded lifecycle transition engine in the
// lifecycle package: a state/event/guard/action model that moves a financial
// contract between lifecycle states under business-rule guards, executes
// side-effecting actions atomically with the move, and persists an immutable
// audit trail of every attempt. The lifecycle/postgres package provides the
// durable, row-locked store the engine needs to stay correct under concurrent
// callers.
//
// The modules directory wires the engine to concrete domains; modules/mortgage
// ships the full mortgage contract vocabulary (application, review,
// downpayment, servicing, delinquency, default, foreclosure, payoff) together
// with representative guards and action handlers.
//
// The pkg directory contains the supporting building blocks the rest of the
// toolkit is assembled from: environment-driven configuration, a slog logger
// factory, PostgreSQL and Redis connection plumbing, and Redis-backed
// idempotency keys.
package loankit
