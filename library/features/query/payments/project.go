package payments

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

// BuildFilter scopes the query to what the actor may see.
// Returns core.ErrUnauthorized for anonymous actors.
func BuildFilter(query Query) (circulation.PaymentFilter, error) {
	if !query.Actor.IsAuthenticated() {
		return circulation.PaymentFilter{}, core.ErrUnauthorized
	}

	builder := circulation.BuildPaymentFilter()

	if !query.Actor.IsStaff {
		builder = builder.ForUsers(query.Actor.UserID)
	}

	if query.BorrowingID != uuid.Nil {
		builder = builder.ForBorrowing(query.BorrowingID.String())
	}

	return builder.Finalize(), nil
}

// Project builds the query result from the payments read from the store.
func Project(payments []core.Payment) Payments {
	return Payments{
		Payments: payments,
		Count:    len(payments),
	}
}
