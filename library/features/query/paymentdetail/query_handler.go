package paymentdetail

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell"
)

// Store defines the interface needed by the QueryHandler.
type Store interface {
	PaymentByID(ctx context.Context, paymentID string) (circulation.StorablePayment, error)
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

// Handle executes the complete query processing workflow: Read -> Project.
func (h QueryHandler) Handle(ctx context.Context, query Query) (core.Payment, error) {
	if !query.Actor.IsAuthenticated() {
		return core.Payment{}, core.ErrUnauthorized
	}

	ctx = circulation.WithEventualConsistency(ctx)

	storable, err := h.store.PaymentByID(ctx, query.PaymentID.String())
	if errors.Is(err, circulation.ErrRecordNotFound) {
		return core.Payment{}, errors.Join(core.ErrUnknownPayment, err)
	}

	if err != nil {
		return core.Payment{}, err
	}

	payment, err := shell.PaymentFrom(storable)
	if err != nil {
		return core.Payment{}, err
	}

	return Project(payment, query)
}
