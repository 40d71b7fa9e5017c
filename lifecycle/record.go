package lifecycle

import (
	"time"

	"github.com/google/uuid"
)

// Record is the immutable audit entry for one transition attempt. Exactly one
// Record exists per attempt, successful or not. A record is written in
// pending shape inside the transaction and finalized before commit; records
// for attempts that fail are preserved through the store's out-of-band
// failure write after the main transaction rolls back. Finalized records are
// never edited or deleted: they are the system of record for compliance
// review.
type Record struct {
	ID              uuid.UUID      `json:"id"`
	EntityID        uuid.UUID      `json:"entity_id"`
	FromState       State          `json:"from_state"`
	ToState         State          `json:"to_state"`
	Event           Event          `json:"event"`
	Context         map[string]any `json:"context"`
	TriggeredBy     string         `json:"triggered_by"`
	TriggeredByType string         `json:"triggered_by_type"`
	Guards          []GuardResult  `json:"guards_checked"`
	Actions         []string       `json:"actions_executed"`
	Success         bool           `json:"success"`
	Error           string         `json:"error,omitempty"`
	Duration        time.Duration  `json:"duration"`
	StartedAt       time.Time      `json:"started_at"`
	CompletedAt     time.Time      `json:"completed_at"`
}
