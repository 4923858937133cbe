package returnborrowing

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

const (
	commandType = "ReturnBorrowing"
)

// Command represents the intent to return a borrowed book on ReturnDate.
// PaymentID is used for the payment if the return is not free of charge.
type Command struct {
	BorrowingID uuid.UUID
	PaymentID   uuid.UUID
	Actor       core.Actor
	ReturnDate  core.Date
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(borrowingID uuid.UUID, paymentID uuid.UUID, actor core.Actor, returnDate time.Time) Command {
	return Command{
		BorrowingID: borrowingID,
		PaymentID:   paymentID,
		Actor:       actor,
		ReturnDate:  core.ToDate(returnDate),
	}
}
