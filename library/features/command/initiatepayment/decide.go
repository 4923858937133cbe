package initiatepayment

import (
	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

// Due is what a borrowing costs and how the payment is classified.
type Due struct {
	Amount      decimal.Decimal
	PaymentType core.PaymentType
}

// Decide implements the business logic to determine what has to be paid for a borrowing.
// This is a pure function with no side effects.
//
// Business Rules:
//
//	GIVEN: A borrowing of a book with a daily fee
//	WHEN: InitiatePayment command is received
//	THEN: the amount is calculated up to the actual return date, or up to today if the borrowing is open
//	ERROR: core.ErrUnauthorized if the actor is anonymous
//	ERROR: core.ErrForbidden if the actor is neither staff nor the borrower
//	ERROR: core.ErrInvalidDateRange if today is before the borrow date of an open borrowing
//	IDEMPOTENCY: If nothing is owed, no payment is needed (no-op)
func Decide(borrowing core.Borrowing, book core.Book, command Command) core.DecisionResult[Due] {
	if err := command.Actor.Authorize(borrowing.UserID); err != nil {
		return core.ErrorDecision[Due](err)
	}

	returnDate := borrowing.ReturnDateOr(command.Today)

	if err := core.ValidateDateRange(borrowing.BorrowDate, returnDate); err != nil {
		return core.ErrorDecision[Due](err)
	}

	amount := core.CalculateFine(borrowing.BorrowDate, borrowing.ExpectedReturnDate, returnDate, book.DailyFee)

	if !amount.IsPositive() {
		return core.IdempotentDecision[Due]()
	}

	return core.SuccessDecision(Due{
		Amount:      amount,
		PaymentType: core.PaymentTypeFor(borrowing.ExpectedReturnDate, returnDate),
	})
}
