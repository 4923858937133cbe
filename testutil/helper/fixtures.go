package helper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

// FixtureStore is the part of a circulation store the fixtures need to arrange test data.
type FixtureStore interface {
	AddBook(ctx context.Context, book circulation.StorableBook) error
	OpenBorrowing(ctx context.Context, borrowing circulation.StorableBorrowing) (int, error)
}

// GivenBook adds a hardcover book with the given inventory and daily fee and returns its id.
func GivenBook(t testing.TB, store FixtureStore, title string, inventory int, dailyFee string) uuid.UUID {
	t.Helper()

	bookID := uuid.New()

	book, err := circulation.BuildStorableBook(bookID.String(), title, "Frank Herbert", "Hard", inventory, dailyFee)
	require.NoError(t, err, "error in arranging test data")
	require.NoError(t, store.AddBook(context.Background(), book), "error in arranging test data")

	return bookID
}

// GivenOpenBorrowing lends one copy of the book to userID and returns the borrowing id.
func GivenOpenBorrowing(
	t testing.TB,
	store FixtureStore,
	bookID uuid.UUID,
	userID string,
	borrowDate time.Time,
	expectedReturnDate time.Time,
) uuid.UUID {

	t.Helper()

	borrowingID := uuid.New()

	borrowing, err := circulation.BuildStorableBorrowing(
		borrowingID.String(),
		bookID.String(),
		userID,
		borrowDate,
		expectedReturnDate,
	)
	require.NoError(t, err, "error in arranging test data")

	_, err = store.OpenBorrowing(context.Background(), borrowing)
	require.NoError(t, err, "error in arranging test data")

	return borrowingID
}

// MustParseDate parses YYYY-MM-DD as midnight UTC and fails the test otherwise.
func MustParseDate(t testing.TB, value string) time.Time {
	t.Helper()

	d, err := time.ParseInLocation(time.DateOnly, value, time.UTC)
	require.NoError(t, err, "invalid date in test")

	return d
}
