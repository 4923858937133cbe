package initiatepayment

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

const (
	commandType = "InitiatePayment"
)

// Command represents the intent to pay for a borrowing.
// Today is the provisional return date for a borrowing that is still open.
type Command struct {
	BorrowingID uuid.UUID
	PaymentID   uuid.UUID
	Actor       core.Actor
	Today       core.Date
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(borrowingID uuid.UUID, paymentID uuid.UUID, actor core.Actor, today time.Time) Command {
	return Command{
		BorrowingID: borrowingID,
		PaymentID:   paymentID,
		Actor:       actor,
		Today:       core.ToDate(today),
	}
}
