package mortgage

import (
	"context"

	"github.com/google/uuid"

	"github.com/loankit/loankit/lifecycle"
)

// Action identifiers referenced by the transition catalog.
const (
	ActionNotifyApplicant      = "NOTIFY_APPLICANT"
	ActionNotifyDelinquency    = "NOTIFY_DELINQUENCY"
	ActionNotifyLegal          = "NOTIFY_LEGAL"
	ActionCreateEscrowAccount  = "CREATE_ESCROW_ACCOUNT"
	ActionScheduleDisbursement = "SCHEDULE_DISBURSEMENT"
	ActionUpdateCreditBureau   = "UPDATE_CREDIT_BUREAU"
	ActionOpenForeclosureCase  = "OPEN_FORECLOSURE_CASE"
	ActionReleaseLien          = "RELEASE_LIEN"
)

// EscrowAgent opens and closes escrow accounts for contract down payments.
type EscrowAgent interface {
	OpenAccount(ctx context.Context, contractID uuid.UUID, amount float64) error
	CloseAccount(ctx context.Context, contractID uuid.UUID) error
}

// Notifier delivers lifecycle notifications to contract parties. Message
// composition and delivery channels are its business, not this package's.
type Notifier interface {
	Notify(ctx context.Context, contractID uuid.UUID, template string, data map[string]any) error
}

// CreditBureau reports contract status changes to external bureaus.
type CreditBureau interface {
	Report(ctx context.Context, contractID uuid.UUID, status string) error
}

// DisbursementScheduler schedules and cancels fund disbursements.
type DisbursementScheduler interface {
	Schedule(ctx context.Context, contractID uuid.UUID, amount float64) error
	Cancel(ctx context.Context, contractID uuid.UUID) error
}

// LegalDesk escalates contracts to the legal department.
type LegalDesk interface {
	NotifyDefault(ctx context.Context, contractID uuid.UUID) error
	OpenForeclosureCase(ctx context.Context, contractID uuid.UUID) error
}

// LienRegistry releases property liens after payoff.
type LienRegistry interface {
	Release(ctx context.Context, contractID uuid.UUID) error
}

// Collaborators bundles the external systems the mortgage actions delegate
// to. All fields are required by NewRegistry.
type Collaborators struct {
	Escrow       EscrowAgent
	Notifier     Notifier
	CreditBureau CreditBureau
	Disburser    DisbursementScheduler
	Legal        LegalDesk
	Liens        LienRegistry
}

// NewRegistry builds the action registry for the mortgage catalog. Each
// handler is a thin adapter from the transition context onto one
// collaborator call; rollback hooks undo external effects where the
// collaborator supports it.
func NewRegistry(c Collaborators) *lifecycle.Registry {
	return lifecycle.MustNewRegistry(
		lifecycle.Action{
			Name: ActionNotifyApplicant,
			Execute: func(ctx context.Context, tc *lifecycle.Context) error {
				return c.Notifier.Notify(ctx, tc.EntityID, "application-status", map[string]any{
					"state": tc.To.String(),
					"event": tc.Event.String(),
				})
			},
		},
		lifecycle.Action{
			Name: ActionNotifyDelinquency,
			Execute: func(ctx context.Context, tc *lifecycle.Context) error {
				outstanding, _ := tc.Float(FieldArrearsOutstanding)
				return c.Notifier.Notify(ctx, tc.EntityID, "delinquency-notice", map[string]any{
					"state":              tc.To.String(),
					"arrearsOutstanding": outstanding,
				})
			},
		},
		lifecycle.Action{
			Name: ActionNotifyLegal,
			Execute: func(ctx context.Context, tc *lifecycle.Context) error {
				return c.Legal.NotifyDefault(ctx, tc.EntityID)
			},
		},
		lifecycle.Action{
			Name: ActionCreateEscrowAccount,
			Execute: func(ctx context.Context, tc *lifecycle.Context) error {
				amount, _ := tc.Float(FieldDownPaymentReceived)
				return c.Escrow.OpenAccount(ctx, tc.EntityID, amount)
			},
			Rollback: func(ctx context.Context, tc *lifecycle.Context) error {
				return c.Escrow.CloseAccount(ctx, tc.EntityID)
			},
		},
		lifecycle.Action{
			Name: ActionScheduleDisbursement,
			Execute: func(ctx context.Context, tc *lifecycle.Context) error {
				amount, _ := tc.Float(FieldPrincipal)
				return c.Disburser.Schedule(ctx, tc.EntityID, amount)
			},
			Rollback: func(ctx context.Context, tc *lifecycle.Context) error {
				return c.Disburser.Cancel(ctx, tc.EntityID)
			},
		},
		lifecycle.Action{
			Name: ActionUpdateCreditBureau,
			Execute: func(ctx context.Context, tc *lifecycle.Context) error {
				return c.CreditBureau.Report(ctx, tc.EntityID, tc.To.String())
			},
		},
		lifecycle.Action{
			Name: ActionOpenForeclosureCase,
			Execute: func(ctx context.Context, tc *lifecycle.Context) error {
				return c.Legal.OpenForeclosureCase(ctx, tc.EntityID)
			},
		},
		lifecycle.Action{
			Name: ActionReleaseLien,
			Execute: func(ctx context.Context, tc *lifecycle.Context) error {
				return c.Liens.Release(ctx, tc.EntityID)
			},
		},
	)
}
