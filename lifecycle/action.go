package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/loankit/loankit/pkg/logger"
)

// ActionFunc executes one side effect of a transition: notify, disburse,
// schedule. Returning an error aborts the transition.
type ActionFunc func(ctx context.Context, tc *Context) error

// Action is a registered side-effecting operation dispatched after guards
// pass. Rollback, when present, is invoked best-effort to undo any external
// effect already taken if Execute fails partway.
type Action struct {
	Name     string
	Execute  ActionFunc
	Rollback ActionFunc
}

// Registry is an immutable mapping from action identifiers to handlers. It is
// built once by the embedding application and passed into the engine by
// value, so tests can swap registries freely; there is no module-level
// singleton.
type Registry struct {
	actions map[string]Action
}

// NewRegistry builds an action registry. Every action needs a non-empty name
// and an Execute function; duplicate names are a configuration error.
func NewRegistry(actions ...Action) (*Registry, error) {
	reg := &Registry{actions: make(map[string]Action, len(actions))}

	for _, a := range actions {
		if a.Name == "" || a.Execute == nil {
			return nil, ErrIncompleteAction
		}
		if _, exists := reg.actions[a.Name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateAction, a.Name)
		}
		reg.actions[a.Name] = a
	}

	return reg, nil
}

// MustNewRegistry is like NewRegistry but panics on configuration errors,
// following the toolkit's fail-fast initialization pattern.
func MustNewRegistry(actions ...Action) *Registry {
	reg, err := NewRegistry(actions...)
	if err != nil {
		panic(fmt.Sprintf("lifecycle: failed to build action registry: %v", err))
	}
	return reg
}

// Resolve returns the action registered under name.
func (r *Registry) Resolve(name string) (Action, bool) {
	a, ok := r.actions[name]
	return a, ok
}

// Has reports whether an action is registered under name.
func (r *Registry) Has(name string) bool {
	_, ok := r.actions[name]
	return ok
}

// dispatchActions runs the named actions strictly in declared order. On
// failure it invokes the failing action's rollback hook best-effort, stops
// without touching subsequent actions, and propagates an ActionFailedError.
// The returned slice names every action that ran, including the failed one,
// for the audit record.
func dispatchActions(ctx context.Context, reg *Registry, names []string, tc *Context, log *slog.Logger) ([]string, error) {
	executed := make([]string, 0, len(names))

	for _, name := range names {
		action, ok := reg.Resolve(name)
		if !ok {
			// Engine construction validates catalog references, so this only
			// trips for identifiers injected at runtime.
			return executed, &ActionFailedError{Action: name, Err: errors.New("not registered")}
		}

		executed = append(executed, name)

		if err := action.Execute(ctx, tc); err != nil {
			if action.Rollback != nil {
				if rbErr := action.Rollback(ctx, tc); rbErr != nil {
					log.ErrorContext(ctx, "action rollback failed",
						slog.String("action", name),
						logger.Error(rbErr),
					)
				}
			}
			return executed, &ActionFailedError{Action: name, Err: err}
		}
	}

	return executed, nil
}
