package borrowings

import (
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

const (
	queryType = "Borrowings"
)

// Query represents the input for listing borrowings.
// IsActive nil lists open and returned borrowings.
type Query struct {
	Actor    core.Actor
	IsActive *bool
	UserIDs  []core.UserIDString
}

// BuildQuery creates a new Query.
func BuildQuery(actor core.Actor, isActive *bool, userIDs ...core.UserIDString) Query {
	return Query{
		Actor:    actor,
		IsActive: isActive,
		UserIDs:  userIDs,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
