package circulation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

func Test_BuildStorableBook_ErrorCases(t *testing.T) {
	tests := []struct {
		name      string
		bookID    string
		title     string
		inventory int
		dailyFee  string
	}{
		{name: "empty book id", bookID: "", title: "Dune", inventory: 1, dailyFee: "1.15"},
		{name: "empty title", bookID: "b-1", title: "", inventory: 1, dailyFee: "1.15"},
		{name: "negative inventory", bookID: "b-1", title: "Dune", inventory: -1, dailyFee: "1.15"},
		{name: "empty daily fee", bookID: "b-1", title: "Dune", inventory: 1, dailyFee: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := circulation.BuildStorableBook(tt.bookID, tt.title, "Herbert", "Hard", tt.inventory, tt.dailyFee)
			assert.ErrorIs(t, err, circulation.ErrInvalidStorableRecord)
		})
	}
}

func Test_BuildStorableBook_Success(t *testing.T) {
	// act
	book, err := circulation.BuildStorableBook("b-1", "Dune", "Herbert", "Soft", 0, "0.00")

	// assert
	require.NoError(t, err)
	assert.Equal(t, "b-1", book.BookID)
	assert.Equal(t, 0, book.Inventory)
	assert.Equal(t, "0.00", book.DailyFee)
}

func Test_BuildStorableBorrowing(t *testing.T) {
	borrowDate := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("expected return before borrow date", func(t *testing.T) {
		_, err := circulation.BuildStorableBorrowing("1", "b-1", "4", borrowDate, borrowDate.AddDate(0, 0, -1))
		assert.ErrorIs(t, err, circulation.ErrInvalidStorableRecord)
	})

	t.Run("missing user id", func(t *testing.T) {
		_, err := circulation.BuildStorableBorrowing("1", "b-1", "", borrowDate, borrowDate)
		assert.ErrorIs(t, err, circulation.ErrInvalidStorableRecord)
	})

	t.Run("same day is open and valid", func(t *testing.T) {
		borrowing, err := circulation.BuildStorableBorrowing("1", "b-1", "4", borrowDate, borrowDate)
		require.NoError(t, err)
		assert.True(t, borrowing.IsOpen())
		assert.Nil(t, borrowing.ActualReturnDate)
	})
}

func Test_BuildStorablePayment(t *testing.T) {
	_, err := circulation.BuildStorablePayment("p-1", "1", "Pending", "Fine", "https://pay", "cs_1", "")
	assert.ErrorIs(t, err, circulation.ErrInvalidStorableRecord)

	payment, err := circulation.BuildStorablePayment("p-1", "1", "Pending", "Fine", "https://pay", "cs_1", "33.35")
	require.NoError(t, err)
	assert.Equal(t, "cs_1", payment.SessionID)
	assert.Equal(t, "33.35", payment.MoneyToPay)
	assert.Empty(t, payment.UserID)
}

func Test_ConsistencyLevel_FromContext(t *testing.T) {
	ctx := t.Context()

	assert.Equal(t, circulation.StrongConsistency, circulation.GetConsistencyLevel(ctx))
	assert.Equal(t, circulation.EventualConsistency, circulation.GetConsistencyLevel(circulation.WithEventualConsistency(ctx)))
	assert.Equal(t, circulation.StrongConsistency, circulation.GetConsistencyLevel(circulation.WithStrongConsistency(ctx)))
	assert.Equal(t, "eventual", circulation.EventualConsistency.String())
}
