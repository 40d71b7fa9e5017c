package mortgage_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loankit/loankit/lifecycle"
	"github.com/loankit/loankit/modules/mortgage"
)

func newTestService(t *testing.T) (*mortgage.Service, *recorder) {
	t.Helper()

	rec := &recorder{}
	store := lifecycle.NewMemoryStore()
	engine := lifecycle.MustNewEngine(store, mortgage.NewCatalog(), mortgage.NewRegistry(mortgage.Collaborators{
		Escrow:       rec,
		Notifier:     rec,
		CreditBureau: rec,
		Disburser:    rec,
		Legal:        rec,
		Liens:        rec,
	}))
	return mortgage.NewService(store, engine), rec
}

func TestServiceCreateContract(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newTestService(t)

	contract, err := svc.CreateContract(ctx, map[string]any{
		mortgage.FieldPrincipal:       250000.0,
		mortgage.FieldTermMonths:      240,
		mortgage.FieldPropertyAddress: "7 Mill Road",
	})
	require.NoError(t, err)
	assert.Equal(t, mortgage.StateDraft, contract.State)
	assert.NotEqual(t, uuid.Nil, contract.ID)

	got, err := svc.Contract(ctx, contract.ID)
	require.NoError(t, err)
	assert.Equal(t, mortgage.StateDraft, got.State)
	assert.Equal(t, 250000.0, got.Fields[mortgage.FieldPrincipal])
}

func TestServiceTransition(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, rec := newTestService(t)

	contract, err := svc.CreateContract(ctx, map[string]any{
		mortgage.FieldPrincipal:       250000.0,
		mortgage.FieldTermMonths:      240,
		mortgage.FieldPropertyAddress: "7 Mill Road",
	})
	require.NoError(t, err)

	res, err := svc.Transition(ctx, mortgage.TransitionRequest{
		ContractID:      contract.ID,
		Event:           mortgage.EventSubmitApplication,
		TriggeredBy:     "borrower-1",
		TriggeredByType: "user",
	})
	require.NoError(t, err)
	assert.Equal(t, mortgage.StateSubmitted, res.To)
	assert.Equal(t, []string{"notify.application-status"}, rec.log())

	history, err := svc.History(ctx, contract.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "borrower-1", history[0].TriggeredBy)

	t.Run("unknown contract", func(t *testing.T) {
		t.Parallel()

		_, err := svc.Transition(ctx, mortgage.TransitionRequest{
			ContractID: uuid.New(),
			Event:      mortgage.EventSubmitApplication,
		})
		require.ErrorIs(t, err, lifecycle.ErrEntityNotFound)
	})
}

func TestServicePossibleTransitions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newTestService(t)

	contract, err := svc.CreateContract(ctx, map[string]any{
		mortgage.FieldPrincipal:       250000.0,
		mortgage.FieldTermMonths:      240,
		mortgage.FieldPropertyAddress: "7 Mill Road",
	})
	require.NoError(t, err)

	transitions, err := svc.PossibleTransitions(ctx, contract.ID)
	require.NoError(t, err)

	events := make([]lifecycle.Event, 0, len(transitions))
	for _, tr := range transitions {
		events = append(events, tr.Event)
	}
	assert.ElementsMatch(t, []lifecycle.Event{mortgage.EventSubmitApplication, mortgage.EventWithdraw}, events)
}
