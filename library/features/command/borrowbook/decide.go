package borrowbook

import (
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

// Decide implements the business logic to determine whether a copy of the book may be lent.
// This is a pure function with no side effects. It takes the current book, the borrowing with the
// same id if one already exists, and the command, and returns the borrowing to open.
//
// Business Rules:
//
//	GIVEN: A book and an authenticated borrower
//	WHEN: BorrowBook command is received
//	THEN: an open Borrowing is created, carrying the book title
//	ERROR: core.ErrUnauthorized if the actor is anonymous
//	ERROR: core.ErrInvalidDateRange if the borrow date is after the expected return date
//	ERROR: core.ErrInventoryExhausted if no copy of the book is left
//	ERROR: core.ErrBorrowingIDTaken if the id already belongs to a borrowing of another user or book
//	IDEMPOTENCY: If the borrowing with this id already exists for this user and book, nothing happens (no-op)
func Decide(book core.Book, existing *core.Borrowing, command Command) core.DecisionResult[core.Borrowing] {
	if !command.Actor.IsAuthenticated() {
		return core.ErrorDecision[core.Borrowing](core.ErrUnauthorized)
	}

	if existing != nil && existing.UserID == command.Actor.UserID && existing.BookID == command.BookID {
		return core.IdempotentDecision[core.Borrowing]()
	}

	if existing != nil {
		return core.ErrorDecision[core.Borrowing](core.ErrBorrowingIDTaken)
	}

	if err := core.ValidateDateRange(command.BorrowDate, command.ExpectedReturnDate); err != nil {
		return core.ErrorDecision[core.Borrowing](err)
	}

	if !book.HasCopyAvailable() {
		return core.ErrorDecision[core.Borrowing](core.ErrInventoryExhausted)
	}

	return core.SuccessDecision(core.Borrowing{
		BorrowingID:        command.BorrowingID,
		BookID:             book.BookID,
		UserID:             command.Actor.UserID,
		BorrowDate:         command.BorrowDate,
		ExpectedReturnDate: command.ExpectedReturnDate,
		BookTitle:          book.Title,
	})
}
