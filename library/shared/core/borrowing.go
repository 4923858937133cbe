package core

import (
	"github.com/google/uuid"
)

// Borrowing is one book on loan to one user. It is Open while ActualReturnDate is nil,
// and Returned once it is set. Returned is terminal.
type Borrowing struct {
	BorrowingID        uuid.UUID
	BookID             uuid.UUID
	UserID             UserIDString
	BorrowDate         Date
	ExpectedReturnDate Date
	ActualReturnDate   *Date
	BookTitle          string
}

// IsOpen reports whether the book has not been returned yet.
func (b Borrowing) IsOpen() bool {
	return b.ActualReturnDate == nil
}

// IsReturned reports whether the borrowing reached its terminal state.
func (b Borrowing) IsReturned() bool {
	return b.ActualReturnDate != nil
}

// ReturnDateOr returns the actual return date, or fallback if the borrowing is still open.
func (b Borrowing) ReturnDateOr(fallback Date) Date {
	if b.ActualReturnDate != nil {
		return *b.ActualReturnDate
	}

	return ToDate(fallback)
}

// ValidateDateRange fails with ErrInvalidDateRange if from is after to.
func ValidateDateRange(from, to Date) error {
	if ToDate(from).After(ToDate(to)) {
		return ErrInvalidDateRange
	}

	return nil
}
