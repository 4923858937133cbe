package shell_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell"
)

func Test_StorableBookFrom_StoresFeeWithTwoDecimals(t *testing.T) {
	// arrange
	book := core.Book{
		BookID:    uuid.New(),
		Title:     "Dune",
		Author:    "Frank Herbert",
		Cover:     core.CoverHard,
		Inventory: 2,
		DailyFee:  decimal.RequireFromString("1.5"),
	}

	// act
	storable, err := shell.StorableBookFrom(book)

	// assert
	require.NoError(t, err)
	assert.Equal(t, "1.50", storable.DailyFee)
	assert.Equal(t, book.BookID.String(), storable.BookID)

	back, err := shell.BookFrom(storable)
	require.NoError(t, err)
	assert.True(t, book.DailyFee.Equal(back.DailyFee))
	assert.Equal(t, book.Cover, back.Cover)
}

func Test_StorableBookFrom_RejectsEmptyTitle(t *testing.T) {
	// act
	_, err := shell.StorableBookFrom(core.Book{BookID: uuid.New(), DailyFee: decimal.Zero})

	// assert
	assert.ErrorIs(t, err, shell.ErrMappingToStorableFailed)
	assert.ErrorIs(t, err, circulation.ErrInvalidStorableRecord)
}

func Test_BorrowingFrom_ConvertsReturnDate(t *testing.T) {
	// arrange
	returnedAt := time.Date(2022, 1, 28, 0, 0, 0, 0, time.UTC)
	storable := circulation.StorableBorrowing{
		BorrowingID:        uuid.NewString(),
		BookID:             uuid.NewString(),
		UserID:             "4",
		BorrowDate:         time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
		ExpectedReturnDate: time.Date(2022, 1, 27, 0, 0, 0, 0, time.UTC),
		ActualReturnDate:   &returnedAt,
		BookTitle:          "Dune",
	}

	// act
	borrowing, err := shell.BorrowingFrom(storable)

	// assert
	require.NoError(t, err)
	assert.True(t, borrowing.IsReturned())
	assert.Equal(t, returnedAt, *borrowing.ActualReturnDate)
	assert.Equal(t, "Dune", borrowing.BookTitle)
}

func Test_PaymentFrom_RejectsMalformedRecords(t *testing.T) {
	testCases := []struct {
		name     string
		storable circulation.StorablePayment
	}{
		{"payment id", circulation.StorablePayment{PaymentID: "x", BorrowingID: uuid.NewString(), MoneyToPay: "1.00"}},
		{"borrowing id", circulation.StorablePayment{PaymentID: uuid.NewString(), BorrowingID: "x", MoneyToPay: "1.00"}},
		{"amount", circulation.StorablePayment{PaymentID: uuid.NewString(), BorrowingID: uuid.NewString(), MoneyToPay: "abc"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			_, err := shell.PaymentFrom(tc.storable)

			// assert
			assert.ErrorIs(t, err, shell.ErrMappingToDomainFailed)
		})
	}
}

func Test_NotificationMessages(t *testing.T) {
	// arrange
	borrowingID := uuid.MustParse("0190a7e4-0000-7000-8000-000000000001")
	paymentID := uuid.MustParse("0190a7e4-0000-7000-8000-000000000002")

	borrowing := core.Borrowing{
		BorrowingID:        borrowingID,
		UserID:             "4",
		BorrowDate:         time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
		ExpectedReturnDate: time.Date(2022, 1, 27, 0, 0, 0, 0, time.UTC),
		BookTitle:          "Dune",
	}

	payment := core.Payment{
		PaymentID:  paymentID,
		Status:     core.PaymentPending,
		Type:       core.PaymentTypeFine,
		SessionURL: "https://checkout.example/cs_1",
		MoneyToPay: decimal.RequireFromString("33.35"),
	}

	// act
	borrowingText := shell.BorrowingCreatedMessage(borrowing, 1)
	paymentText := shell.PaymentCreatedMessage(payment)

	// assert
	assert.Equal(t,
		":: New borrowing created ::\nid: 0190a7e4-0000-7000-8000-000000000001\nbook: Dune\n"+
			"borrow date: 2022-01-01\nborrow by: 4\nreturn date: 2022-01-27\nbooks left: 1",
		borrowingText,
	)
	assert.Equal(t,
		"Payment created :\npayment id: 0190a7e4-0000-7000-8000-000000000002\ntype: Fine\nstatus: Pending\n"+
			"URL: https://checkout.example/cs_1\nmoney to pay: 33.35",
		paymentText,
	)
}
