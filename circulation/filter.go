package circulation

import (
	"slices"
)

type FilterUserIDString = string

/***** ReturnState *****/

// ReturnState selects borrowings by whether they were returned.
type ReturnState int

const (
	// AnyReturnState matches open and returned borrowings.
	AnyReturnState ReturnState = iota

	// OnlyOpen matches borrowings without an actual return date.
	OnlyOpen

	// OnlyReturned matches borrowings with an actual return date.
	OnlyReturned
)

/***** BorrowingFilter *****/

// BorrowingFilter restricts ListBorrowings to a set of borrowers and a ReturnState.
// The zero value matches all borrowings.
type BorrowingFilter struct {
	userIDs     []FilterUserIDString
	returnState ReturnState
	bookID      string
}

func (f BorrowingFilter) UserIDs() []FilterUserIDString {
	return f.userIDs
}

func (f BorrowingFilter) ReturnState() ReturnState {
	return f.returnState
}

func (f BorrowingFilter) BookID() string {
	return f.bookID
}

// Matches reports whether the given borrowing satisfies the filter.
// Stores that cannot push the filter into a query language use it directly.
func (f BorrowingFilter) Matches(b StorableBorrowing) bool {
	if len(f.userIDs) > 0 && !slices.Contains(f.userIDs, b.UserID) {
		return false
	}

	if f.bookID != "" && f.bookID != b.BookID {
		return false
	}

	switch f.returnState {
	case OnlyOpen:
		return b.IsOpen()
	case OnlyReturned:
		return !b.IsOpen()
	default:
		return true
	}
}

/***** BorrowingFilterBuilder *****/

// BorrowingFilterBuilder builds a BorrowingFilter.
//
//	filter := circulation.BuildBorrowingFilter().ForUsers("4", "7").OnlyOpen().Finalize()
type BorrowingFilterBuilder struct {
	filter BorrowingFilter
}

// BuildBorrowingFilter creates a BorrowingFilterBuilder which must eventually be finalized with Finalize().
func BuildBorrowingFilter() BorrowingFilterBuilder {
	return BorrowingFilterBuilder{}
}

// ForUsers restricts the filter to borrowings of ANY of the given users.
//
// It sanitizes the input:
//   - removing empty user ids ("")
//   - sorting the user ids
//   - removing duplicate user ids
func (fb BorrowingFilterBuilder) ForUsers(userIDs ...FilterUserIDString) BorrowingFilterBuilder {
	fb.filter.userIDs = sanitizeUserIDs(append(slices.Clone(fb.filter.userIDs), userIDs...))

	return fb
}

// ForBook restricts the filter to borrowings of the given book.
func (fb BorrowingFilterBuilder) ForBook(bookID string) BorrowingFilterBuilder {
	fb.filter.bookID = bookID

	return fb
}

// OnlyOpen restricts the filter to borrowings that were not returned yet.
func (fb BorrowingFilterBuilder) OnlyOpen() BorrowingFilterBuilder {
	fb.filter.returnState = OnlyOpen

	return fb
}

// OnlyReturned restricts the filter to borrowings that were returned.
func (fb BorrowingFilterBuilder) OnlyReturned() BorrowingFilterBuilder {
	fb.filter.returnState = OnlyReturned

	return fb
}

// Finalize returns the BorrowingFilter.
func (fb BorrowingFilterBuilder) Finalize() BorrowingFilter {
	return fb.filter
}

/***** PaymentFilter *****/

// PaymentFilter restricts ListPayments to payments of borrowings owned by a set of users
// and optionally to one borrowing. The zero value matches all payments.
type PaymentFilter struct {
	userIDs     []FilterUserIDString
	borrowingID string
}

func (f PaymentFilter) UserIDs() []FilterUserIDString {
	return f.userIDs
}

func (f PaymentFilter) BorrowingID() string {
	return f.borrowingID
}

// Matches reports whether the given payment satisfies the filter.
// The payment must carry the UserID of its borrowing.
func (f PaymentFilter) Matches(p StorablePayment) bool {
	if len(f.userIDs) > 0 && !slices.Contains(f.userIDs, p.UserID) {
		return false
	}

	if f.borrowingID != "" && f.borrowingID != p.BorrowingID {
		return false
	}

	return true
}

/***** PaymentFilterBuilder *****/

// PaymentFilterBuilder builds a PaymentFilter.
type PaymentFilterBuilder struct {
	filter PaymentFilter
}

// BuildPaymentFilter creates a PaymentFilterBuilder which must eventually be finalized with Finalize().
func BuildPaymentFilter() PaymentFilterBuilder {
	return PaymentFilterBuilder{}
}

// ForUsers restricts the filter to payments of borrowings owned by ANY of the given users.
// The input is sanitized the same way as in BorrowingFilterBuilder.ForUsers.
func (fb PaymentFilterBuilder) ForUsers(userIDs ...FilterUserIDString) PaymentFilterBuilder {
	fb.filter.userIDs = sanitizeUserIDs(append(slices.Clone(fb.filter.userIDs), userIDs...))

	return fb
}

// ForBorrowing restricts the filter to payments of the given borrowing.
func (fb PaymentFilterBuilder) ForBorrowing(borrowingID string) PaymentFilterBuilder {
	fb.filter.borrowingID = borrowingID

	return fb
}

// Finalize returns the PaymentFilter.
func (fb PaymentFilterBuilder) Finalize() PaymentFilter {
	return fb.filter
}

func sanitizeUserIDs(userIDs []FilterUserIDString) []FilterUserIDString {
	userIDs = slices.DeleteFunc(
		userIDs,
		func(id FilterUserIDString) bool {
			return id == ""
		})
	slices.Sort(userIDs)
	userIDs = slices.Compact(userIDs)
	userIDs = slices.Clip(userIDs)

	if len(userIDs) == 0 {
		return nil
	}

	return userIDs
}
