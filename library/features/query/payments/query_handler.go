package payments

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell"
)

// Store defines the interface needed by the QueryHandler.
type Store interface {
	ListPayments(ctx context.Context, filter circulation.PaymentFilter) (circulation.StorablePayments, error)
}

// QueryHandler orchestrates the complete query processing workflow.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler with the provided Store dependency.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{
		store: store,
	}
}

// Handle executes the complete query processing workflow: Filter -> Read -> Project.
func (h QueryHandler) Handle(ctx context.Context, query Query) (Payments, error) {
	filter, err := BuildFilter(query)
	if err != nil {
		return Payments{}, err
	}

	ctx = circulation.WithEventualConsistency(ctx)

	storables, err := h.store.ListPayments(ctx, filter)
	if err != nil {
		return Payments{}, err
	}

	payments, err := shell.PaymentsFrom(storables)
	if err != nil {
		return Payments{}, err
	}

	return Project(payments), nil
}
