package lifecycle

import (
	"errors"
	"fmt"
)

var (
	ErrEntityNotFound   = errors.New("lifecycle: entity not found")
	ErrNilStore         = errors.New("lifecycle: store cannot be nil")
	ErrNilCatalog       = errors.New("lifecycle: catalog cannot be nil")
	ErrNilRegistry      = errors.New("lifecycle: action registry cannot be nil")
	ErrIncompleteGuard  = errors.New("lifecycle: guard requires a name and a check function")
	ErrIncompleteAction = errors.New("lifecycle: action requires a name and an execute function")
	ErrDuplicateAction  = errors.New("lifecycle: duplicate action name in registry")
	ErrEmptyDefinition  = errors.New("lifecycle: definition requires from states, a target state and an event")
)

// AmbiguousTransitionError indicates two catalog definitions match the same
// (state, event) pair. Declaration order never breaks ties; overlapping
// definitions are a configuration error caught at catalog build time.
type AmbiguousTransitionError struct {
	State State
	Event Event
}

func (e *AmbiguousTransitionError) Error() string {
	return fmt.Sprintf("ambiguous catalog: more than one definition matches state %q and event %q", e.State, e.Event)
}

// UnknownActionError indicates a catalog definition references an action
// identifier that the registry cannot resolve. Caught at engine construction.
type UnknownActionError struct {
	Action string
	Event  Event
}

func (e *UnknownActionError) Error() string {
	return fmt.Sprintf("unknown action %q referenced by transition on event %q", e.Action, e.Event)
}

// InvalidTransitionError indicates no catalog definition allows the requested
// event from the entity's current state. This is a client error and is never
// retried by the engine.
type InvalidTransitionError struct {
	From  State
	Event Event
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("no transition from state %q for event %q", e.From, e.Event)
}

// GuardFailedError indicates a guard rejected the transition. Trail contains
// the ordered results of every guard evaluated so far, including the failing
// one; guards declared after the failure are never evaluated.
type GuardFailedError struct {
	Guard   string
	Message string
	Trail   []GuardResult
}

func (e *GuardFailedError) Error() string {
	return fmt.Sprintf("guard %q rejected transition: %s", e.Guard, e.Message)
}

// ActionFailedError indicates a transition action failed during dispatch. The
// entity state is rolled back; the action's own rollback hook, if present, has
// already been invoked best-effort by the time the caller sees this error.
type ActionFailedError struct {
	Action string
	Err    error
}

func (e *ActionFailedError) Error() string {
	return fmt.Sprintf("action %q failed: %v", e.Action, e.Err)
}

func (e *ActionFailedError) Unwrap() error {
	return e.Err
}

func IsInvalidTransitionError(err error) bool {
	var e *InvalidTransitionError
	return errors.As(err, &e)
}

func IsGuardFailedError(err error) bool {
	var e *GuardFailedError
	return errors.As(err, &e)
}

func IsActionFailedError(err error) bool {
	var e *ActionFailedError
	return errors.As(err, &e)
}

func IsAmbiguousTransitionError(err error) bool {
	var e *AmbiguousTransitionError
	return errors.As(err, &e)
}
