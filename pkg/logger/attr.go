package logger

import "log/slog"

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// EntityID records the contract/entity identifier under the key "entity_id".
// If id is nil, it returns an empty Attr.
func EntityID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("entity_id", id)
}

// TransitionID records the transition identifier under the key
// "transition_id". If id is nil, it returns an empty Attr.
func TransitionID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("transition_id", id)
}

// Event records the lifecycle event name under the key "event".
func Event(name string) slog.Attr {
	return slog.String("event", name)
}

// State records a lifecycle state under the key "state".
func State(name string) slog.Attr {
	return slog.String("state", name)
}

// Actor records the triggering actor under the key "actor".
func Actor(id string) slog.Attr {
	return slog.String("actor", id)
}

// Duration records a duration under the key "duration".
func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}
