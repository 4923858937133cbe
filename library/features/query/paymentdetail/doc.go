// Package paymentdetail implements the Payment Detail query use case.
//
// A payment of another user's borrowing is reported as core.ErrUnknownPayment to non-staff actors.
package paymentdetail
