package core

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus moves from Pending to Paid exactly once.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentPaid    PaymentStatus = "Paid"
)

// PaymentType tells a regular rental payment apart from one that includes an overdue fine.
type PaymentType string

const (
	PaymentTypePayment PaymentType = "Payment"
	PaymentTypeFine    PaymentType = "Fine"
)

// PaymentOutcome is the answer to a checkout provider callback.
type PaymentOutcome string

const (
	PaymentSuccessful PaymentOutcome = "Successful"
	PaymentFailed     PaymentOutcome = "Failed"
	PaymentCancelled  PaymentOutcome = "Cancelled"
)

// Payment is the amount owed for one borrowing, tied to one checkout session.
type Payment struct {
	PaymentID   uuid.UUID
	BorrowingID uuid.UUID
	Status      PaymentStatus
	Type        PaymentType
	SessionURL  string
	SessionID   SessionIDString
	MoneyToPay  decimal.Decimal
	UserID      UserIDString
}

// IsPaid reports whether the provider confirmed the payment.
func (p Payment) IsPaid() bool {
	return p.Status == PaymentPaid
}

// PaymentTypeFor returns PaymentTypeFine when the book came back after the expected return date.
func PaymentTypeFor(expectedReturnDate, returnDate Date) PaymentType {
	if ToDate(returnDate).After(ToDate(expectedReturnDate)) {
		return PaymentTypeFine
	}

	return PaymentTypePayment
}
