package mortgage

import "github.com/loankit/loankit/lifecycle"

// Contract lifecycle states. Exactly one is current for a contract at any
// time; only the transition engine moves a contract between them.
const (
	StateDraft               = lifecycle.State("DRAFT")
	StateSubmitted           = lifecycle.State("SUBMITTED")
	StateUnderReview         = lifecycle.State("UNDER_REVIEW")
	StateApproved            = lifecycle.State("APPROVED")
	StateRejected            = lifecycle.State("REJECTED")
	StateWithdrawn           = lifecycle.State("WITHDRAWN")
	StateAwaitingDownpayment = lifecycle.State("AWAITING_DOWNPAYMENT")
	StateDownpaymentComplete = lifecycle.State("DOWNPAYMENT_COMPLETE")
	StateActive              = lifecycle.State("ACTIVE")
	StateDelinquent30        = lifecycle.State("DELINQUENT_30")
	StateDelinquent60        = lifecycle.State("DELINQUENT_60")
	StateDelinquent90        = lifecycle.State("DELINQUENT_90")
	StateDefault             = lifecycle.State("DEFAULT")
	StateForeclosed          = lifecycle.State("FORECLOSED")
	StatePaidOff             = lifecycle.State("PAID_OFF")
)

// Contract lifecycle events.
const (
	EventSubmitApplication      = lifecycle.Event("SUBMIT_APPLICATION")
	EventBeginReview            = lifecycle.Event("BEGIN_REVIEW")
	EventApprove                = lifecycle.Event("APPROVE")
	EventReject                 = lifecycle.Event("REJECT")
	EventWithdraw               = lifecycle.Event("WITHDRAW")
	EventRequestDownpayment     = lifecycle.Event("REQUEST_DOWNPAYMENT")
	EventReceiveFullDownpayment = lifecycle.Event("RECEIVE_FULL_DOWNPAYMENT")
	EventActivate               = lifecycle.Event("ACTIVATE")
	EventMarkDelinquent         = lifecycle.Event("MARK_DELINQUENT")
	EventCure                   = lifecycle.Event("CURE")
	EventDeclareDefault         = lifecycle.Event("DECLARE_DEFAULT")
	EventStartForeclosure       = lifecycle.Event("START_FORECLOSURE")
	EventPayOff                 = lifecycle.Event("PAY_OFF")
)
