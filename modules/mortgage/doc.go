// Package mortgage wires the lifecycle transition engine to the mortgage
// contract domain.
//
// It defines the state and event vocabulary covering the whole contract
// lifecycle, from application and review through downpayment, active
// servicing, delinquency, default, foreclosure and payoff. Alongside the
// vocabulary live the transition catalog, the guard predicates gating each
// move, and the action handlers that adapt
// external collaborators (escrow, notifications, credit bureau, legal, lien
// registry) into the engine's registry. The business systems behind those
// collaborators stay outside this package; only their contracts live here.
//
// Service layers the caller-facing operations on top of the engine: contract
// creation, transition requests with optional idempotency keys, history and
// possible-transitions queries.
package mortgage
