package addbook

import (
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

// Decide implements the business logic to determine whether a book may be added to the catalog.
// This is a pure function with no side effects.
//
// Business Rules:
//
//	GIVEN: A staff member and a catalog entry
//	WHEN: AddBook command is received
//	THEN: the book is added with its inventory and daily fee
//	ERROR: core.ErrUnauthorized if the actor is anonymous
//	ERROR: core.ErrForbidden if the actor is not staff
//	ERROR: core.ErrInvalidBook if the entry violates the catalog invariants
//	IDEMPOTENCY: If a book with this id already exists, nothing happens (no-op)
func Decide(existing *core.Book, command Command) core.DecisionResult[core.Book] {
	if err := command.Actor.AuthorizeStaff(); err != nil {
		return core.ErrorDecision[core.Book](err)
	}

	if existing != nil {
		return core.IdempotentDecision[core.Book]()
	}

	book := core.Book{
		BookID:    command.BookID,
		Title:     command.Title,
		Author:    command.Author,
		Cover:     command.Cover,
		Inventory: command.Inventory,
		DailyFee:  command.DailyFee,
	}

	if err := core.ValidateBook(book); err != nil {
		return core.ErrorDecision[core.Book](err)
	}

	return core.SuccessDecision(book)
}
