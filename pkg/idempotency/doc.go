// Package idempotency implements Redis-backed idempotency keys for
// at-least-once callers of the lifecycle engine.
//
// The engine itself is deliberately not idempotent: the same (entity, event)
// request fired twice is two legitimate transition attempts. Callers that
// receive duplicate deliveries (webhooks, queue redelivery) claim a key here
// before invoking the engine; the claim is a single SET NX with a TTL, so a
// duplicate request observes the existing claim and is dropped at the service
// layer instead of producing a second transition.
//
// Claims taken for attempts that fail are released so a retry after a
// transient failure is not mistaken for a duplicate.
package idempotency
