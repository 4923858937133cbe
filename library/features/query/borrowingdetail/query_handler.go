package borrowingdetail

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell"
)

// Store defines the interface needed by the QueryHandler.
type Store interface {
	BorrowingByID(ctx context.Context, borrowingID string) (circulation.StorableBorrowing, error)
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
func (h QueryHandler) Handle(ctx context.Context, query Query) (core.Borrowing, error) {
	if !query.Actor.IsAuthenticated() {
		return core.Borrowing{}, core.ErrUnauthorized
	}

	ctx = circulation.WithEventualConsistency(ctx)

	storable, err := h.store.BorrowingByID(ctx, query.BorrowingID.String())
	if errors.Is(err, circulation.ErrRecordNotFound) {
		return core.Borrowing{}, errors.Join(core.ErrBorrowingNotFound, err)
	}

	if err != nil {
		return core.Borrowing{}, err
	}

	borrowing, err := shell.BorrowingFrom(storable)
	if err != nil {
		return core.Borrowing{}, err
	}

	return Project(borrowing, query)
}
