package returnborrowing_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-circulation-go/library/features/command/returnborrowing"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

var (
	borrowDate = time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	expected   = time.Date(2022, 1, 27, 0, 0, 0, 0, time.UTC)
	borrower   = core.Actor{UserID: "4"}
	staff      = core.Actor{UserID: "1", IsStaff: true}
)

func givenBookAndBorrowing() (core.Book, core.Borrowing) {
	book := core.Book{
		BookID:    uuid.New(),
		Title:     "Dune",
		Cover:     core.CoverSoft,
		Inventory: 0,
		DailyFee:  decimal.RequireFromString("1.15"),
	}

	borrowing := core.Borrowing{
		BorrowingID:        uuid.New(),
		BookID:             book.BookID,
		UserID:             borrower.UserID,
		BorrowDate:         borrowDate,
		ExpectedReturnDate: expected,
		BookTitle:          book.Title,
	}

	return book, borrowing
}

func Test_Decide_Success_OneDayOverdue_IsAFine(t *testing.T) {
	// arrange
	book, borrowing := givenBookAndBorrowing()
	command := returnborrowing.BuildCommand(borrowing.BorrowingID, uuid.New(), staff, expected.AddDate(0, 0, 1))

	// act
	result := returnborrowing.Decide(borrowing, book, command)

	// assert
	assert.True(t, result.HasChangeToApply())
	assert.True(t, decimal.RequireFromString("33.35").Equal(result.Change.AmountOwed), "got %s", result.Change.AmountOwed)
	assert.Equal(t, core.PaymentTypeFine, result.Change.PaymentType)
	assert.True(t, result.Change.RequiresPayment())
	assert.True(t, result.Change.Borrowing.IsReturned())
	assert.Equal(t, expected.AddDate(0, 0, 1), *result.Change.Borrowing.ActualReturnDate)
	assert.True(t, borrowing.IsOpen(), "the input borrowing must not be mutated")
}

func Test_Decide_Success_OnTime_IsARegularPayment(t *testing.T) {
	// arrange
	book, borrowing := givenBookAndBorrowing()
	command := returnborrowing.BuildCommand(borrowing.BorrowingID, uuid.New(), borrower, expected)

	// act
	result := returnborrowing.Decide(borrowing, book, command)

	// assert
	assert.True(t, decimal.RequireFromString("29.90").Equal(result.Change.AmountOwed))
	assert.Equal(t, core.PaymentTypePayment, result.Change.PaymentType)
}

func Test_Decide_Success_SameDayReturn_IsFree(t *testing.T) {
	// arrange
	book, borrowing := givenBookAndBorrowing()
	command := returnborrowing.BuildCommand(borrowing.BorrowingID, uuid.New(), borrower, borrowDate)

	// act
	result := returnborrowing.Decide(borrowing, book, command)

	// assert
	assert.True(t, result.HasChangeToApply())
	assert.False(t, result.Change.RequiresPayment())
}

func Test_Decide_Error(t *testing.T) {
	returnedAt := expected

	testCases := []struct {
		name       string
		actor      core.Actor
		returnDate time.Time
		returned   bool
		wantErr    error
	}{
		{name: "anonymous", actor: core.Actor{}, returnDate: expected, wantErr: core.ErrUnauthorized},
		{name: "other user", actor: core.Actor{UserID: "7"}, returnDate: expected, wantErr: core.ErrForbidden},
		{name: "already returned", actor: staff, returnDate: expected, returned: true, wantErr: core.ErrAlreadyReturned},
		{name: "return before borrow date", actor: staff, returnDate: borrowDate.AddDate(0, 0, -1), wantErr: core.ErrInvalidDateRange},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			book, borrowing := givenBookAndBorrowing()
			if tc.returned {
				borrowing.ActualReturnDate = &returnedAt
			}

			command := returnborrowing.BuildCommand(borrowing.BorrowingID, uuid.New(), tc.actor, tc.returnDate)

			// act
			result := returnborrowing.Decide(borrowing, book, command)

			// assert
			assert.False(t, result.HasChangeToApply())
			assert.ErrorIs(t, result.HasError(), tc.wantErr)
		})
	}
}
