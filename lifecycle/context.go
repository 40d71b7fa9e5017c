package lifecycle

import (
	"maps"

	"github.com/google/uuid"
)

// Trigger identifies the actor requesting a transition.
type Trigger struct {
	By   string // actor identity: user id, system process name
	Type string // actor class: "user", "system", "scheduler"
}

// Context is the per-call data bag passed to guards and actions. It is
// assembled once per transition from the entity's fields overlaid with
// caller-supplied overrides. Guards must treat it as read-only even though
// the type permits mutation; actions may stash results for later actions in
// the same pipeline.
type Context struct {
	EntityID uuid.UUID
	From     State
	To       State // set once the definition is resolved; empty during resolution
	Event    Event
	Trigger  Trigger

	values map[string]any
}

func newContext(e *Entity, event Event, overrides map[string]any, trig Trigger) *Context {
	values := make(map[string]any, len(e.Fields)+len(overrides))
	maps.Copy(values, e.Fields)
	maps.Copy(values, overrides) // caller overrides win over entity fields

	return &Context{
		EntityID: e.ID,
		From:     e.State,
		Event:    event,
		Trigger:  trig,
		values:   values,
	}
}

// Value returns the named context field.
func (c *Context) Value(key string) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Has reports whether the named field is present and non-nil.
func (c *Context) Has(key string) bool {
	v, ok := c.values[key]
	return ok && v != nil
}

// String returns the named field as a string, or "" when absent or not a
// string.
func (c *Context) String(key string) string {
	if v, ok := c.values[key].(string); ok {
		return v
	}
	return ""
}

// Float returns the named field as a float64. Integers are widened so that
// amounts survive a round trip through JSON decoding.
func (c *Context) Float(key string) (float64, bool) {
	switch v := c.values[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

// Set stores a field on the context. Intended for actions passing results to
// later actions in the same pipeline.
func (c *Context) Set(key string, value any) {
	c.values[key] = value
}

// Snapshot returns a copy of the context fields for the audit record. The
// copy is taken so later mutation by actions cannot rewrite audit history.
func (c *Context) Snapshot() map[string]any {
	snap := make(map[string]any, len(c.values))
	maps.Copy(snap, c.values)
	return snap
}
