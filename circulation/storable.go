package circulation

import "time"

// StorableBooks is an alias type for a slice of StorableBook.
type StorableBooks = []StorableBook

// StorableBorrowings is an alias type for a slice of StorableBorrowing.
type StorableBorrowings = []StorableBorrowing

// StorablePayments is an alias type for a slice of StorablePayment.
type StorablePayments = []StorablePayment

// StorableBook is a DTO (data transfer object) used by the stores to persist books and read them back.
//
// It is built on scalars to stay agnostic of the domain types in the client code.
// DailyFee is the decimal string representation with two fraction digits, e.g. "1.15".
type StorableBook struct {
	BookID    string
	Title     string
	Author    string
	Cover     string
	Inventory int
	DailyFee  string
}

// StorableBorrowing is a DTO used by the stores to persist borrowings and read them back.
//
// ActualReturnDate is nil while the borrowing is open.
// BookTitle is only populated on reads, the stores join it from the books table.
type StorableBorrowing struct {
	BorrowingID        string
	BookID             string
	UserID             string
	BorrowDate         time.Time
	ExpectedReturnDate time.Time
	ActualReturnDate   *time.Time
	BookTitle          string
}

// StorablePayment is a DTO used by the stores to persist payments and read them back.
//
// UserID is only populated on reads, it is the borrower of the referenced borrowing.
type StorablePayment struct {
	PaymentID   string
	BorrowingID string
	Status      string
	Type        string
	SessionURL  string
	SessionID   string
	MoneyToPay  string
	UserID      string
}

// ReturnChange describes everything a return writes in one transaction:
// the actual return date on the borrowing, one copy back into the book's inventory,
// and optionally the payment that settles the borrowing.
type ReturnChange struct {
	BorrowingID      string
	BookID           string
	ActualReturnDate time.Time
	Payment          *StorablePayment
}

// BuildStorableBook is a factory method for StorableBook.
//
// Returns ErrInvalidStorableRecord if bookID, title or dailyFee is empty, or if inventory is negative.
func BuildStorableBook(
	bookID string,
	title string,
	author string,
	cover string,
	inventory int,
	dailyFee string,
) (StorableBook, error) {

	if bookID == "" || title == "" || inventory < 0 || dailyFee == "" {
		return StorableBook{}, ErrInvalidStorableRecord
	}

	return StorableBook{
		BookID:    bookID,
		Title:     title,
		Author:    author,
		Cover:     cover,
		Inventory: inventory,
		DailyFee:  dailyFee,
	}, nil
}

// BuildStorableBorrowing is a factory method for an open StorableBorrowing.
//
// Returns ErrInvalidStorableRecord if any id is empty or the expected return date is before the borrow date.
func BuildStorableBorrowing(
	borrowingID string,
	bookID string,
	userID string,
	borrowDate time.Time,
	expectedReturnDate time.Time,
) (StorableBorrowing, error) {

	if borrowingID == "" || bookID == "" || userID == "" {
		return StorableBorrowing{}, ErrInvalidStorableRecord
	}

	if expectedReturnDate.Before(borrowDate) {
		return StorableBorrowing{}, ErrInvalidStorableRecord
	}

	return StorableBorrowing{
		BorrowingID:        borrowingID,
		BookID:             bookID,
		UserID:             userID,
		BorrowDate:         borrowDate,
		ExpectedReturnDate: expectedReturnDate,
	}, nil
}

// BuildStorablePayment is a factory method for StorablePayment.
//
// Returns ErrInvalidStorableRecord if paymentID, borrowingID, status or moneyToPay is empty.
func BuildStorablePayment(
	paymentID string,
	borrowingID string,
	status string,
	paymentType string,
	sessionURL string,
	sessionID string,
	moneyToPay string,
) (StorablePayment, error) {

	if paymentID == "" || borrowingID == "" || status == "" || moneyToPay == "" {
		return StorablePayment{}, ErrInvalidStorableRecord
	}

	return StorablePayment{
		PaymentID:   paymentID,
		BorrowingID: borrowingID,
		Status:      status,
		Type:        paymentType,
		SessionURL:  sessionURL,
		SessionID:   sessionID,
		MoneyToPay:  moneyToPay,
	}, nil
}

// IsOpen reports whether the borrowing has not been returned yet.
func (b StorableBorrowing) IsOpen() bool {
	return b.ActualReturnDate == nil
}
