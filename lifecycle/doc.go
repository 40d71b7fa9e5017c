// Package lifecycle implements a guarded state-transition engine for
// long-lived financial contract entities.
//
// The package revolves around a small vocabulary of types: State and Event are
// opaque comparable tags, a Definition maps a set of source states plus an
// event to a target state together with an ordered guard and action pipeline,
// and a Catalog holds the full set of definitions for a domain. Guards are
// precondition predicates evaluated fail-fast; actions are side-effecting
// handlers resolved by identifier through an immutable Registry supplied by
// the embedding application.
//
// The Engine orchestrates a transition attempt inside one transactional unit
// of work: it loads the entity under an exclusive row lock, resolves the
// applicable definition, evaluates guards, writes a pending audit Record,
// dispatches actions, updates the entity state and finalizes the record before
// committing. Concurrent calls for the same entity serialize on the row lock,
// so two transitions can never compute against a stale source state. Every
// attempt, successful or not, produces exactly one Record; failed attempts are
// preserved through a best-effort out-of-band write after the main
// transaction rolls back.
//
// # Usage
//
//	catalog := lifecycle.MustNewCatalog(
//	    lifecycle.Definition{
//	        From:        []lifecycle.State{"DRAFT"},
//	        To:          "SUBMITTED",
//	        Event:       "SUBMIT_APPLICATION",
//	        Guards:      []lifecycle.Guard{hasRequiredFields},
//	        Actions:     []string{"NOTIFY_APPLICANT"},
//	        Description: "Borrower submits the application",
//	    },
//	)
//
//	registry := lifecycle.MustNewRegistry(
//	    lifecycle.Action{Name: "NOTIFY_APPLICANT", Execute: notifyApplicant},
//	)
//
//	engine := lifecycle.MustNewEngine(store, catalog, registry,
//	    lifecycle.WithLogger(log),
//	)
//
//	res, err := engine.Transition(ctx, contractID, "SUBMIT_APPLICATION",
//	    map[string]any{"principal": 250000.0},
//	    lifecycle.Trigger{By: "user-42", Type: "user"},
//	)
//
// # Error Handling
//
// Client errors (InvalidTransitionError, GuardFailedError) mean the caller
// asked for a move the entity cannot make; they are never retried by the
// engine. Operational errors (storage, action failures) roll the transaction
// back so the entity is never left partially updated. Helper predicates such
// as IsInvalidTransitionError and IsGuardFailedError allow callers to branch
// on the failure class.
//
// # Storage
//
// The Store and Tx interfaces are the engine's only persistence seam. The
// lifecycle/postgres package provides the production implementation backed by
// pgx with SELECT ... FOR UPDATE row locking; MemoryStore in this package
// offers the same semantics in-process for tests and prototyping.
package lifecycle
