package shell

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

// ErrMappingToDomainFailed is returned when a storable record does not hold a valid domain value.
var ErrMappingToDomainFailed = errors.New("mapping to domain type failed")

// BookFrom converts a StorableBook to a Book.
func BookFrom(storable circulation.StorableBook) (core.Book, error) {
	bookID, err := uuid.Parse(storable.BookID)
	if err != nil {
		return core.Book{}, errors.Join(ErrMappingToDomainFailed, err)
	}

	dailyFee, err := decimal.NewFromString(storable.DailyFee)
	if err != nil {
		return core.Book{}, errors.Join(ErrMappingToDomainFailed, err)
	}

	return core.Book{
		BookID:    bookID,
		Title:     storable.Title,
		Author:    storable.Author,
		Cover:     core.CoverType(storable.Cover),
		Inventory: storable.Inventory,
		DailyFee:  dailyFee,
	}, nil
}

// BorrowingsFrom converts multiple StorableBorrowings to Borrowings.
func BorrowingsFrom(storables circulation.StorableBorrowings) ([]core.Borrowing, error) {
	borrowings := make([]core.Borrowing, 0, len(storables))

	for _, storable := range storables {
		borrowing, err := BorrowingFrom(storable)
		if err != nil {
			return nil, err
		}

		borrowings = append(borrowings, borrowing)
	}

	return borrowings, nil
}

// BorrowingFrom converts a StorableBorrowing to a Borrowing.
func BorrowingFrom(storable circulation.StorableBorrowing) (core.Borrowing, error) {
	borrowingID, err := uuid.Parse(storable.BorrowingID)
	if err != nil {
		return core.Borrowing{}, errors.Join(ErrMappingToDomainFailed, err)
	}

	bookID, err := uuid.Parse(storable.BookID)
	if err != nil {
		return core.Borrowing{}, errors.Join(ErrMappingToDomainFailed, err)
	}

	borrowing := core.Borrowing{
		BorrowingID:        borrowingID,
		BookID:             bookID,
		UserID:             storable.UserID,
		BorrowDate:         core.ToDate(storable.BorrowDate),
		ExpectedReturnDate: core.ToDate(storable.ExpectedReturnDate),
		BookTitle:          storable.BookTitle,
	}

	if storable.ActualReturnDate != nil {
		returnedAt := core.ToDate(*storable.ActualReturnDate)
		borrowing.ActualReturnDate = &returnedAt
	}

	return borrowing, nil
}

// PaymentsFrom converts multiple StorablePayments to Payments.
func PaymentsFrom(storables circulation.StorablePayments) ([]core.Payment, error) {
	payments := make([]core.Payment, 0, len(storables))

	for _, storable := range storables {
		payment, err := PaymentFrom(storable)
		if err != nil {
			return nil, err
		}

		payments = append(payments, payment)
	}

	return payments, nil
}

// PaymentFrom converts a StorablePayment to a Payment.
func PaymentFrom(storable circulation.StorablePayment) (core.Payment, error) {
	paymentID, err := uuid.Parse(storable.PaymentID)
	if err != nil {
		return core.Payment{}, errors.Join(ErrMappingToDomainFailed, err)
	}

	borrowingID, err := uuid.Parse(storable.BorrowingID)
	if err != nil {
		return core.Payment{}, errors.Join(ErrMappingToDomainFailed, err)
	}

	moneyToPay, err := decimal.NewFromString(storable.MoneyToPay)
	if err != nil {
		return core.Payment{}, errors.Join(ErrMappingToDomainFailed, err)
	}

	return core.Payment{
		PaymentID:   paymentID,
		BorrowingID: borrowingID,
		Status:      core.PaymentStatus(storable.Status),
		Type:        core.PaymentType(storable.Type),
		SessionURL:  storable.SessionURL,
		SessionID:   storable.SessionID,
		MoneyToPay:  moneyToPay,
		UserID:      storable.UserID,
	}, nil
}
