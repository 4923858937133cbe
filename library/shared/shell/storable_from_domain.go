package shell

import (
	"errors"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

// ErrMappingToStorableFailed is returned when a domain type can not be converted to its storable record.
var ErrMappingToStorableFailed = errors.New("mapping to storable record failed")

// StorableBookFrom converts a Book to a StorableBook. The daily fee is stored with two fraction digits.
func StorableBookFrom(book core.Book) (circulation.StorableBook, error) {
	storable, err := circulation.BuildStorableBook(
		book.BookID.String(),
		book.Title,
		book.Author,
		string(book.Cover),
		book.Inventory,
		book.DailyFee.StringFixed(2),
	)

	if err != nil {
		return circulation.StorableBook{}, errors.Join(ErrMappingToStorableFailed, err)
	}

	return storable, nil
}

// StorableBorrowingFrom converts an open Borrowing to a StorableBorrowing.
func StorableBorrowingFrom(borrowing core.Borrowing) (circulation.StorableBorrowing, error) {
	storable, err := circulation.BuildStorableBorrowing(
		borrowing.BorrowingID.String(),
		borrowing.BookID.String(),
		borrowing.UserID,
		core.ToDate(borrowing.BorrowDate),
		core.ToDate(borrowing.ExpectedReturnDate),
	)

	if err != nil {
		return circulation.StorableBorrowing{}, errors.Join(ErrMappingToStorableFailed, err)
	}

	return storable, nil
}

// StorablePaymentFrom converts a Payment to a StorablePayment. The amount is stored with two fraction digits.
func StorablePaymentFrom(payment core.Payment) (circulation.StorablePayment, error) {
	storable, err := circulation.BuildStorablePayment(
		payment.PaymentID.String(),
		payment.BorrowingID.String(),
		string(payment.Status),
		string(payment.Type),
		payment.SessionURL,
		payment.SessionID,
		payment.MoneyToPay.StringFixed(2),
	)

	if err != nil {
		return circulation.StorablePayment{}, errors.Join(ErrMappingToStorableFailed, err)
	}

	return storable, nil
}
