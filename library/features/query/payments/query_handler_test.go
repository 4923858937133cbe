package payments_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/circulation/memoryengine"
	"github.com/AntonStoeckl/library-circulation-go/library/features/query/payments"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
	. "github.com/AntonStoeckl/library-circulation-go/testutil/helper" //nolint:revive
)

var day = time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)

type testPayments struct {
	borrowingOf4           uuid.UUID
	paymentOf4, paymentOf7 string
	secondPaymentOf4       string
}

func givenPayments(t *testing.T, store *memoryengine.Store) testPayments {
	t.Helper()

	bookID := GivenBook(t, store, "Dune", 2, "1.15")
	borrowingOf4 := GivenOpenBorrowing(t, store, bookID, "4", day, day.AddDate(0, 0, 7))
	borrowingOf7 := GivenOpenBorrowing(t, store, bookID, "7", day, day.AddDate(0, 0, 7))

	given := testPayments{
		borrowingOf4:     borrowingOf4,
		paymentOf4:       uuid.NewString(),
		paymentOf7:       uuid.NewString(),
		secondPaymentOf4: uuid.NewString(),
	}

	for _, p := range []circulation.StorablePayment{
		{PaymentID: given.paymentOf4, BorrowingID: borrowingOf4.String(), Status: "Pending", Type: "Payment", SessionID: "cs_1", MoneyToPay: "1.15"},
		{PaymentID: given.paymentOf7, BorrowingID: borrowingOf7.String(), Status: "Paid", Type: "Fine", SessionID: "cs_2", MoneyToPay: "9.20"},
		{PaymentID: given.secondPaymentOf4, BorrowingID: borrowingOf4.String(), Status: "Paid", Type: "Payment", SessionID: "cs_3", MoneyToPay: "2.30"},
	} {
		require.NoError(t, store.AddPayment(t.Context(), p), "error in arranging test data")
	}

	return given
}

func idsOf(result payments.Payments) []string {
	ids := make([]string, 0, len(result.Payments))
	for _, p := range result.Payments {
		ids = append(ids, p.PaymentID.String())
	}

	return ids
}

func Test_QueryHandler_Handle_StaffSeeAllPayments(t *testing.T) {
	// arrange
	store := memoryengine.NewStore()
	given := givenPayments(t, store)
	handler := payments.NewQueryHandler(store)

	// act
	result, err := handler.Handle(t.Context(), payments.BuildQuery(core.Actor{UserID: "1", IsStaff: true}))

	// assert
	require.NoError(t, err)
	assert.Equal(t, []string{given.paymentOf4, given.paymentOf7, given.secondPaymentOf4}, idsOf(result))
	assert.Equal(t, 3, result.Count)
}

func Test_QueryHandler_Handle_UsersSeeTheirOwnPayments(t *testing.T) {
	// arrange
	store := memoryengine.NewStore()
	given := givenPayments(t, store)
	handler := payments.NewQueryHandler(store)

	// act
	result, err := handler.Handle(t.Context(), payments.BuildQuery(core.Actor{UserID: "4"}))

	// assert
	require.NoError(t, err)
	assert.Equal(t, []string{given.paymentOf4, given.secondPaymentOf4}, idsOf(result))
	assert.Equal(t, "4", result.Payments[0].UserID)
}

func Test_QueryHandler_Handle_ForOneBorrowing(t *testing.T) {
	// arrange
	store := memoryengine.NewStore()
	given := givenPayments(t, store)
	handler := payments.NewQueryHandler(store)

	// act
	result, err := handler.Handle(
		t.Context(),
		payments.BuildQuery(core.Actor{UserID: "7"}).ForBorrowing(given.borrowingOf4),
	)

	// assert
	require.NoError(t, err)
	assert.Empty(t, result.Payments, "the borrowing of another user must stay hidden")
}

func Test_QueryHandler_Handle_Error_Anonymous(t *testing.T) {
	// arrange
	handler := payments.NewQueryHandler(memoryengine.NewStore())

	// act
	_, err := handler.Handle(t.Context(), payments.BuildQuery(core.Actor{}))

	// assert
	assert.ErrorIs(t, err, core.ErrUnauthorized)
}
