package lifecycle

// State is an opaque comparable tag naming one lifecycle state. Exactly one
// state is current for an entity at any time.
type State string

func (s State) String() string {
	return string(s)
}

// Event is an opaque comparable tag naming a trigger requested by a caller.
// Distinct transitions may share an event name when their source-state sets
// differ; the engine disambiguates by the entity's current state.
type Event string

func (e Event) String() string {
	return string(e)
}
