// Package cancelpayment implements the Cancel Payment use case.
//
// The checkout provider redirects the payer to the cancel page when they abandon a session.
// Nothing changes: the payment stays Pending and can still be paid with the same session.
// The handler only acknowledges the cancellation with core.PaymentCancelled and a reminder text.
package cancelpayment
