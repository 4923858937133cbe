package core

import "errors"

var (
	// ErrInvalidDateRange is returned when a borrow date lies after the expected or actual return date.
	ErrInvalidDateRange = errors.New("borrow date must not be after the return date")

	// ErrInventoryExhausted is returned when a book has no copy left to lend.
	ErrInventoryExhausted = errors.New("no copy of the book is available")

	// ErrAlreadyReturned is returned when a returned borrowing is returned again.
	ErrAlreadyReturned = errors.New("borrowing was already returned")

	// ErrPaymentProviderError wraps failures of the external checkout provider.
	ErrPaymentProviderError = errors.New("payment provider failed")

	// ErrPaymentNotFound is returned when no payment belongs to a checkout session.
	ErrPaymentNotFound = errors.New("no payment found for the checkout session")

	// ErrUnauthorized is returned when the acting identity is anonymous.
	ErrUnauthorized = errors.New("authentication required")

	// ErrForbidden is returned when the acting identity lacks the privilege for an operation.
	ErrForbidden = errors.New("operation not permitted")

	// ErrBookNotFound is returned when a referenced book does not exist.
	ErrBookNotFound = errors.New("book not found")

	// ErrBorrowingNotFound is returned when a referenced borrowing does not exist.
	ErrBorrowingNotFound = errors.New("borrowing not found")

	// ErrUnknownPayment is returned when a referenced payment does not exist or is not visible to the actor.
	ErrUnknownPayment = errors.New("payment not found")

	// ErrInvalidBook is returned when a catalog entry violates its invariants.
	ErrInvalidBook = errors.New("invalid book")

	// ErrBorrowingIDTaken is returned when a borrowing id is already used for another user or book.
	ErrBorrowingIDTaken = errors.New("borrowing id is already in use")
)
