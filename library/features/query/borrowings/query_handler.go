package borrowings

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell"
)

// Store defines the interface needed by the QueryHandler.
type Store interface {
	ListBorrowings(ctx context.Context, filter circulation.BorrowingFilter) (circulation.StorableBorrowings, error)
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
func (h QueryHandler) Handle(ctx context.Context, query Query) (Borrowings, error) {
	filter, err := BuildFilter(query)
	if err != nil {
		return Borrowings{}, err
	}

	// Use eventual consistency for pure query handlers - they can tolerate slightly
	// stale data in exchange for better performance and reduced primary database load
	ctx = circulation.WithEventualConsistency(ctx)

	// Read phase
	storables, err := h.store.ListBorrowings(ctx, filter)
	if err != nil {
		return Borrowings{}, err
	}

	// Unmarshal phase
	borrowings, err := shell.BorrowingsFrom(storables)
	if err != nil {
		return Borrowings{}, err
	}

	// Projection phase
	return Project(borrowings), nil
}
