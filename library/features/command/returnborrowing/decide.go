package returnborrowing

import (
	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

// Return is the change a successful Decide asks the shell to persist.
type Return struct {
	Borrowing   core.Borrowing // with ActualReturnDate set
	AmountOwed  decimal.Decimal
	PaymentType core.PaymentType
}

// RequiresPayment reports whether a payment has to be created for the return.
func (r Return) RequiresPayment() bool {
	return r.AmountOwed.IsPositive()
}

// Decide implements the business logic to determine whether a borrowing may be returned and what is owed.
// This is a pure function with no side effects.
//
// Business Rules:
//
//	GIVEN: An open borrowing of a book with a daily fee
//	WHEN: ReturnBorrowing command is received
//	THEN: the borrowing gets the actual return date, and the fee is calculated
//	ERROR: core.ErrUnauthorized if the actor is anonymous
//	ERROR: core.ErrForbidden if the actor is neither staff nor the borrower
//	ERROR: core.ErrAlreadyReturned if the borrowing was returned before
//	ERROR: core.ErrInvalidDateRange if the return date is before the borrow date
func Decide(borrowing core.Borrowing, book core.Book, command Command) core.DecisionResult[Return] {
	if err := command.Actor.Authorize(borrowing.UserID); err != nil {
		return core.ErrorDecision[Return](err)
	}

	if borrowing.IsReturned() {
		return core.ErrorDecision[Return](core.ErrAlreadyReturned)
	}

	if err := core.ValidateDateRange(borrowing.BorrowDate, command.ReturnDate); err != nil {
		return core.ErrorDecision[Return](err)
	}

	returned := borrowing
	returnDate := command.ReturnDate
	returned.ActualReturnDate = &returnDate

	return core.SuccessDecision(Return{
		Borrowing:   returned,
		AmountOwed:  core.CalculateFine(borrowing.BorrowDate, borrowing.ExpectedReturnDate, returnDate, book.DailyFee),
		PaymentType: core.PaymentTypeFor(borrowing.ExpectedReturnDate, returnDate),
	})
}
