package mortgage_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loankit/loankit/lifecycle"
	"github.com/loankit/loankit/modules/mortgage"
)

// recorder implements every collaborator interface and keeps an ordered log
// of the external calls the action pipeline makes.
type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) record(call string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call)
}

func (r *recorder) log() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func (r *recorder) OpenAccount(_ context.Context, _ uuid.UUID, _ float64) error {
	r.record("escrow.OpenAccount")
	return nil
}

func (r *recorder) CloseAccount(context.Context, uuid.UUID) error {
	r.record("escrow.CloseAccount")
	return nil
}

func (r *recorder) Notify(_ context.Context, _ uuid.UUID, template string, _ map[string]any) error {
	r.record("notify." + template)
	return nil
}

func (r *recorder) Report(_ context.Context, _ uuid.UUID, status string) error {
	r.record("bureau.Report:" + status)
	return nil
}

func (r *recorder) Schedule(context.Context, uuid.UUID, float64) error {
	r.record("disburse.Schedule")
	return nil
}

func (r *recorder) Cancel(context.Context, uuid.UUID) error {
	r.record("disburse.Cancel")
	return nil
}

func (r *recorder) NotifyDefault(context.Context, uuid.UUID) error {
	r.record("legal.NotifyDefault")
	return nil
}

func (r *recorder) OpenForeclosureCase(context.Context, uuid.UUID) error {
	r.record("legal.OpenForeclosureCase")
	return nil
}

func (r *recorder) Release(context.Context, uuid.UUID) error {
	r.record("liens.Release")
	return nil
}

func newTestEngine(t *testing.T) (*lifecycle.Engine, *lifecycle.MemoryStore, *recorder) {
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
	return engine, store, rec
}

func seedContract(t *testing.T, store *lifecycle.MemoryStore, state lifecycle.State, fields map[string]any) uuid.UUID {
	t.Helper()

	id := uuid.New()
	require.NoError(t, store.CreateEntity(context.Background(), &lifecycle.Entity{
		ID:        id,
		State:     state,
		Fields:    fields,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}))
	return id
}

func TestSubmitApplicationRequiresFields(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	engine, store, rec := newTestEngine(t)

	id := seedContract(t, store, mortgage.StateDraft, map[string]any{
		mortgage.FieldTermMonths:      360,
		mortgage.FieldPropertyAddress: "12 Harbor Lane",
	})

	_, err := engine.Transition(ctx, id, mortgage.EventSubmitApplication, nil, lifecycle.Trigger{By: "borrower-1", Type: "user"})
	require.Error(t, err)
	assert.True(t, lifecycle.IsGuardFailedError(err))

	var gf *lifecycle.GuardFailedError
	require.ErrorAs(t, err, &gf)
	assert.Equal(t, "hasRequiredFields", gf.Guard)
	assert.Contains(t, gf.Message, "Missing required fields")

	contract, err := store.Entity(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, mortgage.StateDraft, contract.State)
	assert.Empty(t, rec.log(), "no notification goes out for a rejected submission")
}

func TestDownPaymentExactAmountCompletes(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	engine, store, rec := newTestEngine(t)

	id := seedContract(t, store, mortgage.StateAwaitingDownpayment, map[string]any{
		mortgage.FieldDownPayment: 500.0,
	})

	res, err := engine.Transition(ctx, id, mortgage.EventReceiveFullDownpayment, map[string]any{
		mortgage.FieldDownPaymentReceived: 500.0,
	}, lifecycle.Trigger{By: "payments", Type: "system"})
	require.NoError(t, err)
	assert.Equal(t, mortgage.StateDownpaymentComplete, res.To)
	assert.Equal(t, []string{"escrow.OpenAccount"}, rec.log())

	contract, err := store.Entity(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, mortgage.StateDownpaymentComplete, contract.State)
}

func TestDownPaymentShortfallRejected(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	engine, store, rec := newTestEngine(t)

	id := seedContract(t, store, mortgage.StateAwaitingDownpayment, map[string]any{
		mortgage.FieldDownPayment: 500.0,
	})

	_, err := engine.Transition(ctx, id, mortgage.EventReceiveFullDownpayment, map[string]any{
		mortgage.FieldDownPaymentReceived: 499.99,
	}, lifecycle.Trigger{By: "payments", Type: "system"})
	require.Error(t, err)
	assert.True(t, lifecycle.IsGuardFailedError(err))
	assert.Empty(t, rec.log(), "escrow must not open on a short payment")

	contract, err := store.Entity(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, mortgage.StateAwaitingDownpayment, contract.State)
}

func TestDeclareDefaultRunsActionsInOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	engine, store, rec := newTestEngine(t)

	id := seedContract(t, store, mortgage.StateDelinquent90, map[string]any{
		mortgage.FieldArrearsOutstanding: 4200.0,
	})

	res, err := engine.Transition(ctx, id, mortgage.EventDeclareDefault, nil, lifecycle.Trigger{By: "servicing", Type: "system"})
	require.NoError(t, err)
	assert.Equal(t, mortgage.StateDefault, res.To)
	assert.Equal(t, []string{"legal.NotifyDefault", "bureau.Report:DEFAULT"}, rec.log())

	history, err := engine.History(ctx, id)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.True(t, history[0].Success)
	assert.Equal(t, []string{mortgage.ActionNotifyLegal, mortgage.ActionUpdateCreditBureau}, history[0].Actions)
}

func TestLoanToValueGate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("within limit approves", func(t *testing.T) {
		t.Parallel()

		engine, store, _ := newTestEngine(t)
		id := seedContract(t, store, mortgage.StateUnderReview, map[string]any{
			mortgage.FieldPrincipal:     380000.0,
			mortgage.FieldPropertyValue: 400000.0,
		})

		res, err := engine.Transition(ctx, id, mortgage.EventApprove, nil, lifecycle.Trigger{By: "underwriter-3", Type: "user"})
		require.NoError(t, err)
		assert.Equal(t, mortgage.StateApproved, res.To)
	})

	t.Run("over limit rejects", func(t *testing.T) {
		t.Parallel()

		engine, store, _ := newTestEngine(t)
		id := seedContract(t, store, mortgage.StateUnderReview, map[string]any{
			mortgage.FieldPrincipal:     399000.0,
			mortgage.FieldPropertyValue: 400000.0,
		})

		_, err := engine.Transition(ctx, id, mortgage.EventApprove, nil, lifecycle.Trigger{By: "underwriter-3", Type: "user"})
		require.Error(t, err)
		assert.True(t, lifecycle.IsGuardFailedError(err))
	})
}

func TestDelinquencyEscalationAndCure(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	engine, store, rec := newTestEngine(t)

	id := seedContract(t, store, mortgage.StateActive, map[string]any{
		mortgage.FieldArrearsOutstanding: 1800.0,
	})

	for _, want := range []lifecycle.State{mortgage.StateDelinquent30, mortgage.StateDelinquent60, mortgage.StateDelinquent90} {
		res, err := engine.Transition(ctx, id, mortgage.EventMarkDelinquent, nil, lifecycle.Trigger{By: "servicing", Type: "scheduler"})
		require.NoError(t, err)
		assert.Equal(t, want, res.To)
	}

	// Cure from 90 days requires the arrears cleared in full.
	_, err := engine.Transition(ctx, id, mortgage.EventCure, map[string]any{
		mortgage.FieldPaymentReceived: 900.0,
	}, lifecycle.Trigger{By: "payments", Type: "system"})
	require.Error(t, err)
	assert.True(t, lifecycle.IsGuardFailedError(err))

	res, err := engine.Transition(ctx, id, mortgage.EventCure, map[string]any{
		mortgage.FieldPaymentReceived: 1800.0,
	}, lifecycle.Trigger{By: "payments", Type: "system"})
	require.NoError(t, err)
	assert.Equal(t, mortgage.StateActive, res.To)
	assert.Contains(t, rec.log(), "bureau.Report:ACTIVE")

	history, err := engine.History(ctx, id)
	require.NoError(t, err)
	require.Len(t, history, 5)
	assert.False(t, history[3].Success, "the short cure payment stays on the audit trail")
	assert.True(t, history[4].Success)
}

func TestFullLifecycleHappyPath(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	engine, store, rec := newTestEngine(t)

	id := seedContract(t, store, mortgage.StateDraft, map[string]any{
		mortgage.FieldPrincipal:       320000.0,
		mortgage.FieldTermMonths:      360,
		mortgage.FieldPropertyAddress: "12 Harbor Lane",
		mortgage.FieldPropertyValue:   400000.0,
		mortgage.FieldDownPayment:     80000.0,
	})

	steps := []struct {
		event     lifecycle.Event
		to        lifecycle.State
		overrides map[string]any
	}{
		{mortgage.EventSubmitApplication, mortgage.StateSubmitted, nil},
		{mortgage.EventBeginReview, mortgage.StateUnderReview, nil},
		{mortgage.EventApprove, mortgage.StateApproved, nil},
		{mortgage.EventRequestDownpayment, mortgage.StateAwaitingDownpayment, nil},
		{mortgage.EventReceiveFullDownpayment, mortgage.StateDownpaymentComplete, map[string]any{mortgage.FieldDownPaymentReceived: 80000.0}},
		{mortgage.EventActivate, mortgage.StateActive, nil},
		{mortgage.EventPayOff, mortgage.StatePaidOff, map[string]any{
			mortgage.FieldPayoffAmount:   310000.0,
			mortgage.FieldPayoffReceived: 310000.0,
		}},
	}

	for _, step := range steps {
		res, err := engine.Transition(ctx, id, step.event, step.overrides, lifecycle.Trigger{By: "ops", Type: "user"})
		require.NoError(t, err, "event %s", step.event)
		assert.Equal(t, step.to, res.To)
	}

	contract, err := store.Entity(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, mortgage.StatePaidOff, contract.State)

	history, err := engine.History(ctx, id)
	require.NoError(t, err)
	require.Len(t, history, len(steps))
	for i, r := range history {
		assert.True(t, r.Success, "step %d", i)
		assert.Equal(t, steps[i].to, r.ToState)
	}

	log := rec.log()
	assert.Contains(t, log, "escrow.OpenAccount")
	assert.Contains(t, log, "disburse.Schedule")
	assert.Contains(t, log, "liens.Release")
	assert.Contains(t, log, "bureau.Report:PAID_OFF")
}

// Every state must expose an unambiguous event menu: the same event never
// appears twice in one state's possible transitions.
func TestCatalogEventMenusAreUnambiguous(t *testing.T) {
	t.Parallel()

	catalog := mortgage.NewCatalog()

	for _, state := range catalog.States() {
		seen := make(map[lifecycle.Event]bool)
		for _, tr := range catalog.PossibleTransitions(state) {
			assert.False(t, seen[tr.Event], "state %s lists event %s twice", state, tr.Event)
			seen[tr.Event] = true
			assert.NotEmpty(t, tr.To)
		}
	}

	for _, terminal := range []lifecycle.State{mortgage.StateRejected, mortgage.StateWithdrawn, mortgage.StateForeclosed, mortgage.StatePaidOff} {
		assert.Empty(t, catalog.PossibleTransitions(terminal), "state %s must be terminal", terminal)
	}
}
