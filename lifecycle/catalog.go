package lifecycle

import (
	"fmt"
	"slices"
)

// Definition maps a set of source states plus an event to a target state,
// carrying the ordered guard and action pipeline executed with the move.
// Definitions are immutable and declared at process start.
type Definition struct {
	From        []State
	To          State
	Event       Event
	Guards      []Guard
	Actions     []string
	Description string
}

// matches reports whether the definition applies to the given current state
// and event.
func (d Definition) matches(state State, event Event) bool {
	return d.Event == event && slices.Contains(d.From, state)
}

// Transition is the read-only "what can happen next" view of a definition,
// exposed to callers for UI affordances without executing anything.
type Transition struct {
	Event       Event
	To          State
	Description string
}

// Catalog is the authoritative, read-only table of all legal
// (state, event) -> state mappings. Built once at startup and safely shared
// between goroutines without locking.
type Catalog struct {
	defs []Definition
}

// NewCatalog validates and builds a catalog. For any (state, event) pair at
// most one definition may match: overlapping source-state sets sharing an
// event are rejected with an AmbiguousTransitionError so that declaration
// order never becomes load-bearing.
func NewCatalog(defs ...Definition) (*Catalog, error) {
	seen := make(map[State]map[Event]bool)

	for i, d := range defs {
		if len(d.From) == 0 || d.To == "" || d.Event == "" {
			return nil, fmt.Errorf("%w: definition[%d]", ErrEmptyDefinition, i)
		}
		for _, g := range d.Guards {
			if g.Name == "" || g.Check == nil {
				return nil, fmt.Errorf("%w: definition[%d] on event %q", ErrIncompleteGuard, i, d.Event)
			}
		}
		for _, from := range d.From {
			if seen[from] == nil {
				seen[from] = make(map[Event]bool)
			}
			if seen[from][d.Event] {
				return nil, &AmbiguousTransitionError{State: from, Event: d.Event}
			}
			seen[from][d.Event] = true
		}
	}

	return &Catalog{defs: slices.Clone(defs)}, nil
}

// MustNewCatalog is like NewCatalog but panics on configuration errors,
// following the toolkit's fail-fast initialization pattern.
func MustNewCatalog(defs ...Definition) *Catalog {
	c, err := NewCatalog(defs...)
	if err != nil {
		panic(fmt.Sprintf("lifecycle: failed to build catalog: %v", err))
	}
	return c
}

// Resolve returns the definition applying to the current state and event, or
// an InvalidTransitionError when none matches. Build-time validation
// guarantees at most one definition can match.
func (c *Catalog) Resolve(state State, event Event) (Definition, error) {
	for _, d := range c.defs {
		if d.matches(state, event) {
			return d, nil
		}
	}
	return Definition{}, &InvalidTransitionError{From: state, Event: event}
}

// PossibleTransitions returns the events that may fire from the given state
// and where each would lead, in declaration order. No event appears twice for
// the same state.
func (c *Catalog) PossibleTransitions(state State) []Transition {
	var out []Transition
	for _, d := range c.defs {
		if slices.Contains(d.From, state) {
			out = append(out, Transition{Event: d.Event, To: d.To, Description: d.Description})
		}
	}
	return out
}

// States returns every state mentioned in the catalog, as source or target,
// without duplicates.
func (c *Catalog) States() []State {
	var out []State
	seen := make(map[State]bool)
	add := func(s State) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, d := range c.defs {
		for _, from := range d.From {
			add(from)
		}
		add(d.To)
	}
	return out
}
