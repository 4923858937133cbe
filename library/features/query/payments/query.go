package payments

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

const (
	queryType = "Payments"
)

// Query represents the input for listing payments. A zero BorrowingID lists the payments of all borrowings.
type Query struct {
	Actor       core.Actor
	BorrowingID uuid.UUID
}

// BuildQuery creates a new Query for all payments visible to the actor.
func BuildQuery(actor core.Actor) Query {
	return Query{
		Actor: actor,
	}
}

// ForBorrowing narrows the Query to the payments of one borrowing.
func (q Query) ForBorrowing(borrowingID uuid.UUID) Query {
	q.BorrowingID = borrowingID

	return q
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
