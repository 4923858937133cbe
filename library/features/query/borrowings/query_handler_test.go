package borrowings_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/circulation/memoryengine"
	"github.com/AntonStoeckl/library-circulation-go/library/features/query/borrowings"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
	. "github.com/AntonStoeckl/library-circulation-go/testutil/helper" //nolint:revive
)

var day = time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)

type testBorrowings struct {
	openOf4, returnedOf4, openOf7 uuid.UUID
}

func givenBorrowings(t *testing.T, store *memoryengine.Store) testBorrowings {
	t.Helper()

	bookID := GivenBook(t, store, "Dune", 3, "1.15")

	b := testBorrowings{
		openOf4:     GivenOpenBorrowing(t, store, bookID, "4", day, day.AddDate(0, 0, 7)),
		returnedOf4: GivenOpenBorrowing(t, store, bookID, "4", day.AddDate(0, 0, 1), day.AddDate(0, 0, 7)),
		openOf7:     GivenOpenBorrowing(t, store, bookID, "7", day.AddDate(0, 0, 2), day.AddDate(0, 0, 7)),
	}

	_, err := store.CloseBorrowing(t.Context(), circulation.ReturnChange{
		BorrowingID:      b.returnedOf4.String(),
		BookID:           bookID.String(),
		ActualReturnDate: day.AddDate(0, 0, 3),
	})
	require.NoError(t, err, "error in arranging test data")

	return b
}

func idsOf(result borrowings.Borrowings) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(result.Borrowings))
	for _, b := range result.Borrowings {
		ids = append(ids, b.BorrowingID)
	}

	return ids
}

func Test_QueryHandler_Handle(t *testing.T) {
	active, inactive := true, false
	staff := core.Actor{UserID: "1", IsStaff: true}
	user4 := core.Actor{UserID: "4"}

	testCases := []struct {
		name  string
		query func() borrowings.Query
		want  func(b testBorrowings) []uuid.UUID
	}{
		{
			name:  "staff see all",
			query: func() borrowings.Query { return borrowings.BuildQuery(staff, nil) },
			want:  func(b testBorrowings) []uuid.UUID { return []uuid.UUID{b.openOf4, b.returnedOf4, b.openOf7} },
		},
		{
			name:  "staff filter by user",
			query: func() borrowings.Query { return borrowings.BuildQuery(staff, nil, "7") },
			want:  func(b testBorrowings) []uuid.UUID { return []uuid.UUID{b.openOf7} },
		},
		{
			name:  "staff filter active",
			query: func() borrowings.Query { return borrowings.BuildQuery(staff, &active) },
			want:  func(b testBorrowings) []uuid.UUID { return []uuid.UUID{b.openOf4, b.openOf7} },
		},
		{
			name:  "user sees own only",
			query: func() borrowings.Query { return borrowings.BuildQuery(user4, nil) },
			want:  func(b testBorrowings) []uuid.UUID { return []uuid.UUID{b.openOf4, b.returnedOf4} },
		},
		{
			name:  "user filter by other user is ignored",
			query: func() borrowings.Query { return borrowings.BuildQuery(user4, nil, "7") },
			want:  func(b testBorrowings) []uuid.UUID { return []uuid.UUID{b.openOf4, b.returnedOf4} },
		},
		{
			name:  "user filter returned",
			query: func() borrowings.Query { return borrowings.BuildQuery(user4, &inactive) },
			want:  func(b testBorrowings) []uuid.UUID { return []uuid.UUID{b.returnedOf4} },
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			store := memoryengine.NewStore()
			given := givenBorrowings(t, store)
			handler := borrowings.NewQueryHandler(store)

			// act
			result, err := handler.Handle(t.Context(), tc.query())

			// assert
			require.NoError(t, err)
			assert.Equal(t, tc.want(given), idsOf(result))
			assert.Equal(t, len(result.Borrowings), result.Count)
		})
	}
}

func Test_QueryHandler_Handle_IncludesTheBookTitle(t *testing.T) {
	// arrange
	store := memoryengine.NewStore()
	givenBorrowings(t, store)
	handler := borrowings.NewQueryHandler(store)

	// act
	result, err := handler.Handle(t.Context(), borrowings.BuildQuery(core.Actor{UserID: "7"}, nil))

	// assert
	require.NoError(t, err)
	require.Len(t, result.Borrowings, 1)
	assert.Equal(t, "Dune", result.Borrowings[0].BookTitle)
}

func Test_QueryHandler_Handle_Error_Anonymous(t *testing.T) {
	// arrange
	handler := borrowings.NewQueryHandler(memoryengine.NewStore())

	// act
	_, err := handler.Handle(t.Context(), borrowings.BuildQuery(core.Actor{}, nil))

	// assert
	assert.ErrorIs(t, err, core.ErrUnauthorized)
}
