package bookdetail

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

const (
	queryType = "BookDetail"
)

// Query represents the input for reading one book.
type Query struct {
	Actor  core.Actor
	BookID uuid.UUID
}

// BuildQuery creates a new Query.
func BuildQuery(actor core.Actor, bookID uuid.UUID) Query {
	return Query{
		Actor:  actor,
		BookID: bookID,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
