package paymentdetail

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

const (
	queryType = "PaymentDetail"
)

// Query represents the input for reading one payment.
type Query struct {
	Actor     core.Actor
	PaymentID uuid.UUID
}

// BuildQuery creates a new Query.
func BuildQuery(actor core.Actor, paymentID uuid.UUID) Query {
	return Query{
		Actor:     actor,
		PaymentID: paymentID,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
