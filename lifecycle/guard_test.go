package lifecycle

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext() *Context {
	e := &Entity{
		ID:     uuid.New(),
		State:  "DRAFT",
		Fields: map[string]any{"principal": 250000.0},
	}
	return newContext(e, "SUBMIT", nil, Trigger{By: "tester", Type: "user"})
}

func TestEvaluateGuards(t *testing.T) {
	t.Parallel()

	pass := func(name string) Guard {
		return Guard{
			Name:  name,
			Check: func(context.Context, *Context) (bool, error) { return true, nil },
		}
	}

	t.Run("all guards pass in order", func(t *testing.T) {
		t.Parallel()

		trail, err := evaluateGuards(context.Background(), []Guard{pass("a"), pass("b")}, testContext())
		require.NoError(t, err)
		require.Len(t, trail, 2)
		assert.Equal(t, GuardResult{Name: "a", Passed: true}, trail[0])
		assert.Equal(t, GuardResult{Name: "b", Passed: true}, trail[1])
	})

	t.Run("fails fast on first rejection", func(t *testing.T) {
		t.Parallel()

		secondRan := false
		guards := []Guard{
			{
				Name:         "rejects",
				ErrorMessage: "insufficient funds",
				Check:        func(context.Context, *Context) (bool, error) { return false, nil },
			},
			{
				Name: "never-reached",
				Check: func(context.Context, *Context) (bool, error) {
					secondRan = true
					return true, nil
				},
			},
		}

		trail, err := evaluateGuards(context.Background(), guards, testContext())
		require.Error(t, err)
		assert.False(t, secondRan, "guard after the failing one must never run")

		require.Len(t, trail, 1)
		assert.Equal(t, GuardResult{Name: "rejects", Passed: false, Message: "insufficient funds"}, trail[0])

		var gf *GuardFailedError
		require.ErrorAs(t, err, &gf)
		assert.Equal(t, "rejects", gf.Guard)
		assert.Equal(t, "insufficient funds", gf.Message)
		assert.Equal(t, trail, gf.Trail)
	})

	t.Run("guard error is treated as failure with its own message", func(t *testing.T) {
		t.Parallel()

		guards := []Guard{
			{
				Name:         "errors-out",
				ErrorMessage: "static message",
				Check: func(context.Context, *Context) (bool, error) {
					return false, errors.New("credit bureau unreachable")
				},
			},
		}

		trail, err := evaluateGuards(context.Background(), guards, testContext())
		require.Error(t, err)
		require.Len(t, trail, 1)
		assert.Equal(t, "credit bureau unreachable", trail[0].Message)

		var gf *GuardFailedError
		require.ErrorAs(t, err, &gf)
		assert.Equal(t, "credit bureau unreachable", gf.Message)
	})

	t.Run("empty guard list passes", func(t *testing.T) {
		t.Parallel()

		trail, err := evaluateGuards(context.Background(), nil, testContext())
		require.NoError(t, err)
		assert.Empty(t, trail)
	})
}
