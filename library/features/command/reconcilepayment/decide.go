package reconcilepayment

import (
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

// Decide implements the business logic to reconcile a payment with the state of its checkout session.
// This is a pure function with no side effects. It returns the outcome to report to the payer
// and the status change to persist, if any.
//
// Business Rules:
//
//	GIVEN: A payment and whether the provider reports its session as paid
//	WHEN: ReconcilePayment command is received
//	THEN: a Pending payment of a paid session becomes Paid, the outcome is Successful
//	OUTCOME: Failed if the session is not paid, nothing changes
//	IDEMPOTENCY: If the payment is already Paid, the outcome is Successful and nothing changes (no-op)
func Decide(payment core.Payment, sessionPaid bool) (core.PaymentOutcome, core.DecisionResult[core.PaymentStatus]) {
	if payment.IsPaid() {
		return core.PaymentSuccessful, core.IdempotentDecision[core.PaymentStatus]()
	}

	if !sessionPaid {
		return core.PaymentFailed, core.IdempotentDecision[core.PaymentStatus]()
	}

	return core.PaymentSuccessful, core.SuccessDecision(core.PaymentPaid)
}
