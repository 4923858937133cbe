package borrowingdetail

import (
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

// Project returns the borrowing if the actor may see it.
func Project(borrowing core.Borrowing, query Query) (core.Borrowing, error) {
	if !query.Actor.IsAuthenticated() {
		return core.Borrowing{}, core.ErrUnauthorized
	}

	if !query.Actor.CanAccess(borrowing.UserID) {
		return core.Borrowing{}, core.ErrBorrowingNotFound
	}

	return borrowing, nil
}
