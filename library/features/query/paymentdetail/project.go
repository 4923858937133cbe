package paymentdetail

import (
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

// Project returns the payment if the actor may see it.
func Project(payment core.Payment, query Query) (core.Payment, error) {
	if !query.Actor.CanAccess(payment.UserID) {
		return core.Payment{}, core.ErrUnknownPayment
	}

	return payment, nil
}
