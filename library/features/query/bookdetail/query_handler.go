package bookdetail

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell"
)

// QueryHandler orchestrates the complete query processing workflow.
type QueryHandler struct {
	store shell.ReadsBooks
}

// NewQueryHandler creates a new QueryHandler with the provided Store dependency.
func NewQueryHandler(store shell.ReadsBooks) QueryHandler {
	return QueryHandler{
		store: store,
	}
}

// Handle reads the book. Any authenticated actor may see the catalog.
func (h QueryHandler) Handle(ctx context.Context, query Query) (core.Book, error) {
	if !query.Actor.IsAuthenticated() {
		return core.Book{}, core.ErrUnauthorized
	}

	return shell.ReadBook(circulation.WithEventualConsistency(ctx), h.store, query.BookID.String())
}
