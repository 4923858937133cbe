// Package reconcilepayment implements the Reconcile Payment use case.
//
// The checkout provider redirects the payer to the success page with the session id.
// The CommandHandler finds the payment of that session, asks the provider whether the session
// was paid, and flips the payment from Pending to Paid with a guarded update.
// The outcome is core.PaymentSuccessful or core.PaymentFailed; a failed reconciliation writes nothing.
//
// A payment that is already Paid is reported as successful without asking the provider again.
package reconcilepayment
