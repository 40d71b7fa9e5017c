package lifecycle

import "context"

// GuardFunc evaluates whether a transition should be allowed. It must be
// side-effect-free with respect to the entity being transitioned and must
// treat the transition Context as read-only. It may call external services.
type GuardFunc func(ctx context.Context, tc *Context) (bool, error)

// Guard is a named precondition predicate gating a transition. ErrorMessage
// is surfaced to the caller when Check returns false; when Check returns an
// error, the guard is treated as failed and the error's own message is
// surfaced instead.
type Guard struct {
	Name         string
	Check        GuardFunc
	ErrorMessage string
}

// GuardResult is one entry in the ordered evaluation trail captured on the
// audit record.
type GuardResult struct {
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	Message string `json:"message,omitempty"`
}

// evaluateGuards runs the guards strictly in declaration order, stopping at
// the first failure. Sequential evaluation is deliberate: later guards may
// assume preconditions validated by earlier ones. The returned trail covers
// every guard evaluated so far, including the failing one.
func evaluateGuards(ctx context.Context, guards []Guard, tc *Context) ([]GuardResult, error) {
	trail := make([]GuardResult, 0, len(guards))

	for _, g := range guards {
		passed, err := g.Check(ctx, tc)
		if err != nil {
			trail = append(trail, GuardResult{Name: g.Name, Passed: false, Message: err.Error()})
			return trail, &GuardFailedError{Guard: g.Name, Message: err.Error(), Trail: trail}
		}
		if !passed {
			trail = append(trail, GuardResult{Name: g.Name, Passed: false, Message: g.ErrorMessage})
			return trail, &GuardFailedError{Guard: g.Name, Message: g.ErrorMessage, Trail: trail}
		}
		trail = append(trail, GuardResult{Name: g.Name, Passed: true})
	}

	return trail, nil
}
