package logger_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/loankit/loankit/pkg/logger"
)

func TestError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.Attr{}, logger.Error(nil))

	err := errors.New("connection refused")
	attr := logger.Error(err)
	assert.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())
}

func TestEntityID(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.Attr{}, logger.EntityID(nil))

	id := uuid.New()
	attr := logger.EntityID(id)
	assert.Equal(t, "entity_id", attr.Key)
	assert.Equal(t, id, attr.Value.Any())
}

func TestTransitionID(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.Attr{}, logger.TransitionID(nil))

	id := uuid.New()
	attr := logger.TransitionID(id)
	assert.Equal(t, "transition_id", attr.Key)
	assert.Equal(t, id, attr.Value.Any())
}

func TestStringAttrs(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		attr  slog.Attr
		key   string
		value string
	}{
		{logger.Event("SUBMIT_APPLICATION"), "event", "SUBMIT_APPLICATION"},
		{logger.State("ACTIVE"), "state", "ACTIVE"},
		{logger.Actor("underwriter-3"), "actor", "underwriter-3"},
		{logger.Component("engine"), "component", "engine"},
	} {
		assert.Equal(t, tc.key, tc.attr.Key)
		assert.Equal(t, tc.value, tc.attr.Value.String())
	}
}

func TestDuration(t *testing.T) {
	t.Parallel()

	attr := logger.Duration(250 * time.Millisecond)
	assert.Equal(t, "duration", attr.Key)
	assert.Equal(t, 250*time.Millisecond, attr.Value.Any())
}
