package borrowingdetail

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

const (
	queryType = "BorrowingDetail"
)

// Query represents the input for reading one borrowing.
type Query struct {
	Actor       core.Actor
	BorrowingID uuid.UUID
}

// BuildQuery creates a new Query.
func BuildQuery(actor core.Actor, borrowingID uuid.UUID) Query {
	return Query{
		Actor:       actor,
		BorrowingID: borrowingID,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
