package borrowbook

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

const (
	commandType = "BorrowBook"
)

// Command represents the intent of a user to borrow one copy of a book.
// BorrowingID is generated by the caller, so a repeated command is recognized as the same borrowing.
type Command struct {
	BorrowingID        uuid.UUID
	BookID             uuid.UUID
	Actor              core.Actor
	BorrowDate         core.Date
	ExpectedReturnDate core.Date
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
// Both dates are truncated to calendar days.
func BuildCommand(
	borrowingID uuid.UUID,
	bookID uuid.UUID,
	actor core.Actor,
	borrowDate time.Time,
	expectedReturnDate time.Time,
) Command {

	return Command{
		BorrowingID:        borrowingID,
		BookID:             bookID,
		Actor:              actor,
		BorrowDate:         core.ToDate(borrowDate),
		ExpectedReturnDate: core.ToDate(expectedReturnDate),
	}
}
