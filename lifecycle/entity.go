package lifecycle

import (
	"time"

	"github.com/google/uuid"
)

// StateMetadata records how the entity arrived in its current state. Stamped
// by the engine on every successful transition.
type StateMetadata struct {
	ChangedAt    time.Time `json:"changed_at"`
	LastEvent    Event     `json:"last_event"`
	LastActor    string    `json:"last_actor"`
	TransitionID uuid.UUID `json:"transition_id"`
}

// Entity is the long-lived business object whose lifecycle the engine
// governs. Its State field is mutated exclusively by the engine; surrounding
// services must never write it directly. Fields carries the domain payload
// (principal, term, down payment and so on) that seeds the transition
// Context.
type Entity struct {
	ID        uuid.UUID
	State     State
	Meta      StateMetadata
	Fields    map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}
