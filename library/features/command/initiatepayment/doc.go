// Package initiatepayment implements the Initiate Payment use case.
//
// A borrower (or staff) asks for a checkout session to pay what a borrowing costs so far.
// For an open borrowing the amount is calculated with today as the provisional return date.
// A borrowing that costs nothing needs no session, the command is then a no-op.
//
// The checkout provider is called once, failures are reported as core.ErrPaymentProviderError
// and are not retried. The pending payment is stored afterward and announced to the Notifier.
package initiatepayment
