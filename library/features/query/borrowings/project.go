package borrowings

import (
	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

// BuildFilter scopes the query to what the actor may see.
// Returns core.ErrUnauthorized for anonymous actors.
func BuildFilter(query Query) (circulation.BorrowingFilter, error) {
	if !query.Actor.IsAuthenticated() {
		return circulation.BorrowingFilter{}, core.ErrUnauthorized
	}

	builder := circulation.BuildBorrowingFilter()

	if query.Actor.IsStaff {
		builder = builder.ForUsers(query.UserIDs...)
	} else {
		builder = builder.ForUsers(query.Actor.UserID)
	}

	if query.IsActive != nil {
		if *query.IsActive {
			builder = builder.OnlyOpen()
		} else {
			builder = builder.OnlyReturned()
		}
	}

	return builder.Finalize(), nil
}

// Project builds the query result from the borrowings read from the store.
func Project(borrowings []core.Borrowing) Borrowings {
	return Borrowings{
		Borrowings: borrowings,
		Count:      len(borrowings),
	}
}
