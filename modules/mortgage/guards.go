package mortgage

import (
	"context"

	"github.com/loankit/loankit/lifecycle"
)

// Context field names shared by guards, actions and callers. Amounts are
// float64 after a round trip through JSON.
const (
	FieldPrincipal           = "principal"
	FieldTermMonths          = "termMonths"
	FieldPropertyAddress     = "propertyAddress"
	FieldPropertyValue       = "propertyValue"
	FieldDownPayment         = "downPayment"
	FieldDownPaymentReceived = "downPaymentReceived"
	FieldArrearsOutstanding  = "arrearsOutstanding"
	FieldPaymentReceived     = "paymentReceived"
	FieldPayoffAmount        = "payoffAmount"
	FieldPayoffReceived      = "payoffReceived"
)

// maxLoanToValue caps the principal against the appraised property value.
const maxLoanToValue = 0.95

// hasRequiredFields gates application submission on the fields underwriting
// cannot proceed without.
var hasRequiredFields = lifecycle.Guard{
	Name:         "hasRequiredFields",
	ErrorMessage: "Missing required fields: principal, termMonths and propertyAddress are required to submit an application",
	Check: func(_ context.Context, tc *lifecycle.Context) (bool, error) {
		return tc.Has(FieldPrincipal) && tc.Has(FieldTermMonths) && tc.Has(FieldPropertyAddress), nil
	},
}

// loanToValueWithinLimit rejects approvals where the principal exceeds the
// allowed share of the appraised property value.
var loanToValueWithinLimit = lifecycle.Guard{
	Name:         "loanToValueWithinLimit",
	ErrorMessage: "Loan-to-value ratio exceeds the allowed maximum",
	Check: func(_ context.Context, tc *lifecycle.Context) (bool, error) {
		principal, ok := tc.Float(FieldPrincipal)
		if !ok {
			return false, nil
		}
		value, ok := tc.Float(FieldPropertyValue)
		if !ok || value <= 0 {
			return false, nil
		}
		return principal/value <= maxLoanToValue, nil
	},
}

// downPaymentSufficient verifies the received amount covers the required
// down payment in full.
var downPaymentSufficient = lifecycle.Guard{
	Name:         "downPaymentSufficient",
	ErrorMessage: "Down payment received does not cover the required amount",
	Check: func(_ context.Context, tc *lifecycle.Context) (bool, error) {
		required, ok := tc.Float(FieldDownPayment)
		if !ok {
			return false, nil
		}
		received, ok := tc.Float(FieldDownPaymentReceived)
		if !ok {
			return false, nil
		}
		return received >= required, nil
	},
}

// arrearsCleared verifies the cure payment covers everything outstanding.
var arrearsCleared = lifecycle.Guard{
	Name:         "arrearsCleared",
	ErrorMessage: "Payment received does not clear the outstanding arrears",
	Check: func(_ context.Context, tc *lifecycle.Context) (bool, error) {
		outstanding, ok := tc.Float(FieldArrearsOutstanding)
		if !ok || outstanding <= 0 {
			return true, nil
		}
		received, _ := tc.Float(FieldPaymentReceived)
		return received >= outstanding, nil
	},
}

// payoffAmountCovered verifies the payoff remittance covers the full payoff
// quote.
var payoffAmountCovered = lifecycle.Guard{
	Name:         "payoffAmountCovered",
	ErrorMessage: "Payoff received does not cover the payoff amount",
	Check: func(_ context.Context, tc *lifecycle.Context) (bool, error) {
		quote, ok := tc.Float(FieldPayoffAmount)
		if !ok {
			return false, nil
		}
		received, _ := tc.Float(FieldPayoffReceived)
		return received >= quote, nil
	},
}
