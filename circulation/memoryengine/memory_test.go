package memoryengine_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/circulation/memoryengine"
)

var day = time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)

func givenBook(t *testing.T, store *memoryengine.Store, bookID string, inventory int) {
	t.Helper()

	book, err := circulation.BuildStorableBook(bookID, "Dune", "Frank Herbert", "Hard", inventory, "1.15")
	require.NoError(t, err, "error in arranging test data")
	require.NoError(t, store.AddBook(t.Context(), book), "error in arranging test data")
}

func borrowing(t *testing.T, borrowingID, bookID, userID string) circulation.StorableBorrowing {
	t.Helper()

	b, err := circulation.BuildStorableBorrowing(borrowingID, bookID, userID, day, day.AddDate(0, 0, 14))
	require.NoError(t, err, "error in arranging test data")

	return b
}

func Test_OpenBorrowing_DecrementsInventory(t *testing.T) {
	// arrange
	store := memoryengine.NewStore()
	givenBook(t, store, "b-1", 2)

	// act
	remaining, err := store.OpenBorrowing(t.Context(), borrowing(t, "br-1", "b-1", "4"))

	// assert
	require.NoError(t, err)
	assert.Equal(t, 1, remaining)

	book, err := store.BookByID(t.Context(), "b-1")
	require.NoError(t, err)
	assert.Equal(t, 1, book.Inventory)

	stored, err := store.BorrowingByID(t.Context(), "br-1")
	require.NoError(t, err)
	assert.True(t, stored.IsOpen())
	assert.Equal(t, "Dune", stored.BookTitle)
}

func Test_OpenBorrowing_ReportsConflict_WhenNoCopyIsLeft(t *testing.T) {
	// arrange
	store := memoryengine.NewStore()
	givenBook(t, store, "b-1", 0)

	// act
	_, err := store.OpenBorrowing(t.Context(), borrowing(t, "br-1", "b-1", "4"))

	// assert
	assert.ErrorIs(t, err, circulation.ErrConcurrencyConflict)

	_, lookupErr := store.BorrowingByID(t.Context(), "br-1")
	assert.ErrorIs(t, lookupErr, circulation.ErrRecordNotFound, "nothing must be written on conflict")
}

func Test_OpenBorrowing_Concurrently_OnLastCopy_ExactlyOneWins(t *testing.T) {
	// arrange
	store := memoryengine.NewStore()
	givenBook(t, store, "b-1", 1)

	const contenders = 8

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)

	// act
	for i := range contenders {
		wg.Add(1)

		go func() {
			defer wg.Done()

			b := circulation.StorableBorrowing{
				BorrowingID:        string(rune('a' + i)),
				BookID:             "b-1",
				UserID:             "4",
				BorrowDate:         day,
				ExpectedReturnDate: day,
			}

			_, err := store.OpenBorrowing(t.Context(), b)

			mu.Lock()
			defer mu.Unlock()

			if err == nil {
				successes++
			} else if assert.ErrorIs(t, err, circulation.ErrConcurrencyConflict) {
				conflicts++
			}
		}()
	}

	wg.Wait()

	// assert
	assert.Equal(t, 1, successes)
	assert.Equal(t, contenders-1, conflicts)

	book, err := store.BookByID(t.Context(), "b-1")
	require.NoError(t, err)
	assert.Equal(t, 0, book.Inventory)
}

func Test_CloseBorrowing_IncrementsInventory_AndStoresPayment(t *testing.T) {
	// arrange
	store := memoryengine.NewStore()
	givenBook(t, store, "b-1", 1)
	_, err := store.OpenBorrowing(t.Context(), borrowing(t, "br-1", "b-1", "4"))
	require.NoError(t, err, "error in arranging test data")

	payment, err := circulation.BuildStorablePayment("p-1", "br-1", "Pending", "Fine", "https://pay/cs_1", "cs_1", "33.35")
	require.NoError(t, err, "error in arranging test data")

	// act
	remaining, err := store.CloseBorrowing(t.Context(), circulation.ReturnChange{
		BorrowingID:      "br-1",
		BookID:           "b-1",
		ActualReturnDate: day.AddDate(0, 0, 27),
		Payment:          &payment,
	})

	// assert
	require.NoError(t, err)
	assert.Equal(t, 1, remaining)

	stored, err := store.PaymentBySessionID(t.Context(), "cs_1")
	require.NoError(t, err)
	assert.Equal(t, "p-1", stored.PaymentID)
	assert.Equal(t, "4", stored.UserID)

	returned, err := store.BorrowingByID(t.Context(), "br-1")
	require.NoError(t, err)
	require.NotNil(t, returned.ActualReturnDate)
	assert.Equal(t, day.AddDate(0, 0, 27), *returned.ActualReturnDate)
}

func Test_CloseBorrowing_Twice_ReportsConflict_AndLeavesStateUnchanged(t *testing.T) {
	// arrange
	store := memoryengine.NewStore()
	givenBook(t, store, "b-1", 1)
	_, err := store.OpenBorrowing(t.Context(), borrowing(t, "br-1", "b-1", "4"))
	require.NoError(t, err, "error in arranging test data")

	change := circulation.ReturnChange{BorrowingID: "br-1", BookID: "b-1", ActualReturnDate: day}
	_, err = store.CloseBorrowing(t.Context(), change)
	require.NoError(t, err, "error in arranging test data")

	// act
	_, err = store.CloseBorrowing(t.Context(), change)

	// assert
	assert.ErrorIs(t, err, circulation.ErrConcurrencyConflict)

	book, err := store.BookByID(t.Context(), "b-1")
	require.NoError(t, err)
	assert.Equal(t, 1, book.Inventory)
}

func Test_TransitionPaymentStatus_IsGuardedByCurrentStatus(t *testing.T) {
	// arrange
	store := memoryengine.NewStore()
	givenBook(t, store, "b-1", 1)
	_, err := store.OpenBorrowing(t.Context(), borrowing(t, "br-1", "b-1", "4"))
	require.NoError(t, err, "error in arranging test data")
	require.NoError(t, store.AddPayment(t.Context(), circulation.StorablePayment{
		PaymentID: "p-1", BorrowingID: "br-1", Status: "Pending", Type: "Payment", SessionID: "cs_1", MoneyToPay: "1.15",
	}))

	// act
	firstErr := store.TransitionPaymentStatus(t.Context(), "p-1", "Pending", "Paid")
	secondErr := store.TransitionPaymentStatus(t.Context(), "p-1", "Pending", "Paid")

	// assert
	assert.NoError(t, firstErr)
	assert.ErrorIs(t, secondErr, circulation.ErrConcurrencyConflict)

	payment, err := store.PaymentByID(t.Context(), "p-1")
	require.NoError(t, err)
	assert.Equal(t, "Paid", payment.Status)
}

func Test_ListBorrowings_AndPayments_RespectFilters(t *testing.T) {
	// arrange
	store := memoryengine.NewStore()
	givenBook(t, store, "b-1", 3)

	for _, b := range []circulation.StorableBorrowing{
		borrowing(t, "br-1", "b-1", "4"),
		borrowing(t, "br-2", "b-1", "7"),
		borrowing(t, "br-3", "b-1", "4"),
	} {
		_, err := store.OpenBorrowing(t.Context(), b)
		require.NoError(t, err, "error in arranging test data")
	}

	_, err := store.CloseBorrowing(t.Context(), circulation.ReturnChange{
		BorrowingID:      "br-3",
		BookID:           "b-1",
		ActualReturnDate: day,
		Payment:          &circulation.StorablePayment{PaymentID: "p-1", BorrowingID: "br-3", Status: "Pending", Type: "Payment", MoneyToPay: "0.50"},
	})
	require.NoError(t, err, "error in arranging test data")

	// act
	openOfUser4, err := store.ListBorrowings(t.Context(), circulation.BuildBorrowingFilter().ForUsers("4").OnlyOpen().Finalize())
	require.NoError(t, err)
	all, err := store.ListBorrowings(t.Context(), circulation.BuildBorrowingFilter().Finalize())
	require.NoError(t, err)
	paymentsOfUser7, err := store.ListPayments(t.Context(), circulation.BuildPaymentFilter().ForUsers("7").Finalize())
	require.NoError(t, err)
	paymentsOfUser4, err := store.ListPayments(t.Context(), circulation.BuildPaymentFilter().ForUsers("4").Finalize())
	require.NoError(t, err)

	// assert
	require.Len(t, openOfUser4, 1)
	assert.Equal(t, "br-1", openOfUser4[0].BorrowingID)
	assert.Len(t, all, 3)
	assert.Empty(t, paymentsOfUser7)
	require.Len(t, paymentsOfUser4, 1)
	assert.Equal(t, "p-1", paymentsOfUser4[0].PaymentID)
}

func Test_Inventory_NeverGoesNegative(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		store := memoryengine.NewStore()
		initial := rapid.IntRange(0, 3).Draw(rt, "initial")

		book, err := circulation.BuildStorableBook("b-1", "Dune", "Frank Herbert", "Soft", initial, "0.50")
		require.NoError(rt, err)
		require.NoError(rt, store.AddBook(t.Context(), book))

		open := make([]string, 0)
		steps := rapid.IntRange(1, 40).Draw(rt, "steps")

		for i := range steps {
			if len(open) > 0 && rapid.Bool().Draw(rt, "return") {
				idx := rapid.IntRange(0, len(open)-1).Draw(rt, "which")
				_, closeErr := store.CloseBorrowing(t.Context(), circulation.ReturnChange{
					BorrowingID:      open[idx],
					BookID:           "b-1",
					ActualReturnDate: day,
				})
				require.NoError(rt, closeErr)
				open = append(open[:idx], open[idx+1:]...)
			} else {
				id := string(rune('A' + i))
				_, openErr := store.OpenBorrowing(t.Context(), circulation.StorableBorrowing{
					BorrowingID: id, BookID: "b-1", UserID: "4", BorrowDate: day, ExpectedReturnDate: day,
				})

				if openErr == nil {
					open = append(open, id)
				} else {
					require.ErrorIs(rt, openErr, circulation.ErrConcurrencyConflict)
				}
			}

			current, lookupErr := store.BookByID(t.Context(), "b-1")
			require.NoError(rt, lookupErr)
			require.GreaterOrEqual(rt, current.Inventory, 0)
			require.Equal(rt, initial, current.Inventory+len(open), "copies must be conserved")
		}
	})
}
