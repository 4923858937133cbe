package borrowbook_test

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/circulation/memoryengine"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/borrowbook"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell"
	. "github.com/AntonStoeckl/library-circulation-go/testutil/helper" //nolint:revive
)

func Test_CommandHandler_Handle_Success_DecrementsInventory_AndNotifies(t *testing.T) {
	// arrange
	store := memoryengine.NewStore()
	notifier := NewNotifierSpy()
	handler := borrowbook.NewCommandHandler(store, borrowbook.WithNotifier(notifier))
	bookID := GivenBook(t, store, "Dune", 2, "1.15")
	borrowingID := uuid.New()

	// act
	result, handlerResult, err := handler.Handle(
		t.Context(),
		borrowbook.BuildCommand(borrowingID, bookID, borrower, today, MustParseDate(t, "2022-01-27")),
	)

	// assert
	require.NoError(t, err)
	assert.False(t, handlerResult.Idempotent)
	assert.Equal(t, 1, handlerResult.RetryAttempts)
	assert.Equal(t, 1, result.BooksLeft)

	book, err := store.BookByID(t.Context(), bookID.String())
	require.NoError(t, err)
	assert.Equal(t, 1, book.Inventory)

	stored, err := store.BorrowingByID(t.Context(), borrowingID.String())
	require.NoError(t, err)
	assert.True(t, stored.IsOpen())

	require.Equal(t, 1, notifier.Count())
	assert.Equal(t,
		":: New borrowing created ::\n"+
			"id: "+borrowingID.String()+"\n"+
			"book: Dune\n"+
			"borrow date: 2022-01-01\n"+
			"borrow by: 4\n"+
			"return date: 2022-01-27\n"+
			"books left: 1",
		notifier.Texts()[0],
	)
}

func Test_CommandHandler_Handle_Error_InventoryExhausted_LeavesStateUnchanged(t *testing.T) {
	// arrange
	store := memoryengine.NewStore()
	notifier := NewNotifierSpy()
	handler := borrowbook.NewCommandHandler(store, borrowbook.WithNotifier(notifier))
	bookID := GivenBook(t, store, "Dune", 0, "1.15")
	borrowingID := uuid.New()

	// act
	_, _, err := handler.Handle(t.Context(), borrowbook.BuildCommand(borrowingID, bookID, borrower, today, today))

	// assert
	assert.ErrorIs(t, err, core.ErrInventoryExhausted)
	assert.Zero(t, notifier.Count(), "nothing must be notified for a rejected borrowing")

	book, err := store.BookByID(t.Context(), bookID.String())
	require.NoError(t, err)
	assert.Equal(t, 0, book.Inventory)

	borrowings, err := store.ListBorrowings(t.Context(), circulationFilterAll())
	require.NoError(t, err)
	assert.Empty(t, borrowings)
}

func Test_CommandHandler_Handle_Error_BookNotFound(t *testing.T) {
	// arrange
	store := memoryengine.NewStore()
	handler := borrowbook.NewCommandHandler(store)

	// act
	_, _, err := handler.Handle(t.Context(), borrowbook.BuildCommand(uuid.New(), uuid.New(), borrower, today, today))

	// assert
	assert.ErrorIs(t, err, core.ErrBookNotFound)
}

func Test_CommandHandler_Handle_Idempotent_WhenTheSameCommandIsRepeated(t *testing.T) {
	// arrange
	store := memoryengine.NewStore()
	notifier := NewNotifierSpy()
	handler := borrowbook.NewCommandHandler(store, borrowbook.WithNotifier(notifier))
	bookID := GivenBook(t, store, "Dune", 2, "1.15")
	command := borrowbook.BuildCommand(uuid.New(), bookID, borrower, today, today.AddDate(0, 0, 7))

	_, _, err := handler.Handle(t.Context(), command)
	require.NoError(t, err, "error in arranging test data")

	// act
	result, handlerResult, err := handler.Handle(t.Context(), command)

	// assert
	require.NoError(t, err)
	assert.True(t, handlerResult.Idempotent)
	assert.Equal(t, command.BorrowingID, result.Borrowing.BorrowingID)
	assert.Equal(t, 1, result.BooksLeft)
	assert.Equal(t, 1, notifier.Count(), "a repeated command must not notify again")
}

func Test_CommandHandler_Handle_ConcurrentBorrowsOfTheLastCopy(t *testing.T) {
	// arrange
	store := memoryengine.NewStore()
	handler := borrowbook.NewCommandHandler(
		store,
		borrowbook.WithRetryOptions(shell.WithBaseDelay(time.Millisecond)),
	)
	bookID := GivenBook(t, store, "Dune", 1, "1.15")

	const contenders = 2

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	// act
	for i := range contenders {
		wg.Add(1)

		go func() {
			defer wg.Done()

			actor := core.Actor{UserID: string(rune('4' + i))}
			_, _, err := handler.Handle(t.Context(), borrowbook.BuildCommand(uuid.New(), bookID, actor, today, today))

			mu.Lock()
			defer mu.Unlock()

			errs = append(errs, err)
		}()
	}

	wg.Wait()

	// assert
	successes, exhausted := 0, 0

	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case assert.ErrorIs(t, err, core.ErrInventoryExhausted):
			exhausted++
		}
	}

	assert.Equal(t, 1, successes, "exactly one borrow must win the last copy")
	assert.Equal(t, 1, exhausted, "the other borrow must be told the book is exhausted")

	book, err := store.BookByID(t.Context(), bookID.String())
	require.NoError(t, err)
	assert.Equal(t, 0, book.Inventory)
}

func circulationFilterAll() circulation.BorrowingFilter {
	return circulation.BuildBorrowingFilter().Finalize()
}
