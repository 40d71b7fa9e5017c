package mortgage

import "github.com/loankit/loankit/lifecycle"

// NewCatalog builds the full mortgage transition catalog. The catalog is
// validated at construction: no (state, event) pair may match more than one
// definition, so adding an overlapping entry fails fast at startup.
func NewCatalog() *lifecycle.Catalog {
	return lifecycle.MustNewCatalog(
		lifecycle.Definition{
			From:        []lifecycle.State{StateDraft},
			To:          StateSubmitted,
			Event:       EventSubmitApplication,
			Guards:      []lifecycle.Guard{hasRequiredFields},
			Actions:     []string{ActionNotifyApplicant},
			Description: "Borrower submits a complete application",
		},
		lifecycle.Definition{
			From:        []lifecycle.State{StateSubmitted},
			To:          StateUnderReview,
			Event:       EventBeginReview,
			Description: "Underwriting picks up the application",
		},
		lifecycle.Definition{
			From:        []lifecycle.State{StateUnderReview},
			To:          StateApproved,
			Event:       EventApprove,
			Guards:      []lifecycle.Guard{loanToValueWithinLimit},
			Actions:     []string{ActionNotifyApplicant},
			Description: "Underwriting approves the application",
		},
		lifecycle.Definition{
			From:        []lifecycle.State{StateUnderReview},
			To:          StateRejected,
			Event:       EventReject,
			Actions:     []string{ActionNotifyApplicant},
			Description: "Underwriting rejects the application",
		},
		lifecycle.Definition{
			From:        []lifecycle.State{StateDraft, StateSubmitted, StateUnderReview},
			To:          StateWithdrawn,
			Event:       EventWithdraw,
			Description: "Applicant withdraws before closing",
		},
		lifecycle.Definition{
			From:        []lifecycle.State{StateApproved},
			To:          StateAwaitingDownpayment,
			Event:       EventRequestDownpayment,
			Actions:     []string{ActionNotifyApplicant},
			Description: "Down payment requested from the borrower",
		},
		lifecycle.Definition{
			From:        []lifecycle.State{StateAwaitingDownpayment},
			To:          StateDownpaymentComplete,
			Event:       EventReceiveFullDownpayment,
			Guards:      []lifecycle.Guard{downPaymentSufficient},
			Actions:     []string{ActionCreateEscrowAccount},
			Description: "Full down payment received and placed in escrow",
		},
		lifecycle.Definition{
			From:        []lifecycle.State{StateDownpaymentComplete},
			To:          StateActive,
			Event:       EventActivate,
			Actions:     []string{ActionScheduleDisbursement, ActionNotifyApplicant},
			Description: "Contract activates and funds are scheduled for disbursement",
		},
		lifecycle.Definition{
			From:        []lifecycle.State{StateActive},
			To:          StateDelinquent30,
			Event:       EventMarkDelinquent,
			Actions:     []string{ActionNotifyDelinquency},
			Description: "Payment missed for 30 days",
		},
		lifecycle.Definition{
			From:        []lifecycle.State{StateDelinquent30},
			To:          StateDelinquent60,
			Event:       EventMarkDelinquent,
			Actions:     []string{ActionNotifyDelinquency},
			Description: "Payment missed for 60 days",
		},
		lifecycle.Definition{
			From:        []lifecycle.State{StateDelinquent60},
			To:          StateDelinquent90,
			Event:       EventMarkDelinquent,
			Actions:     []string{ActionNotifyDelinquency, ActionUpdateCreditBureau},
			Description: "Payment missed for 90 days",
		},
		lifecycle.Definition{
			From:        []lifecycle.State{StateDelinquent30, StateDelinquent60, StateDelinquent90},
			To:          StateActive,
			Event:       EventCure,
			Guards:      []lifecycle.Guard{arrearsCleared},
			Actions:     []string{ActionUpdateCreditBureau},
			Description: "Borrower clears arrears and the contract returns to good standing",
		},
		lifecycle.Definition{
			From:        []lifecycle.State{StateDelinquent90},
			To:          StateDefault,
			Event:       EventDeclareDefault,
			Actions:     []string{ActionNotifyLegal, ActionUpdateCreditBureau},
			Description: "Contract declared in default after 90 days delinquent",
		},
		lifecycle.Definition{
			From:        []lifecycle.State{StateDefault},
			To:          StateForeclosed,
			Event:       EventStartForeclosure,
			Actions:     []string{ActionOpenForeclosureCase, ActionUpdateCreditBureau},
			Description: "Foreclosure proceedings begin",
		},
		lifecycle.Definition{
			From:        []lifecycle.State{StateActive, StateDelinquent30, StateDelinquent60, StateDelinquent90, StateDefault},
			To:          StatePaidOff,
			Event:       EventPayOff,
			Guards:      []lifecycle.Guard{payoffAmountCovered},
			Actions:     []string{ActionReleaseLien, ActionUpdateCreditBureau},
			Description: "Contract paid in full and the lien released",
		},
	)
}
