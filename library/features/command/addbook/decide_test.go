package addbook_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-circulation-go/library/features/command/addbook"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

var staff = core.Actor{UserID: "1", IsStaff: true}

func Test_Decide_Success(t *testing.T) {
	// arrange
	command := addbook.BuildCommand(uuid.New(), staff, "Dune", "Frank Herbert", "Hard", 3, decimal.RequireFromString("1.15"))

	// act
	result := addbook.Decide(nil, command)

	// assert
	assert.True(t, result.HasChangeToApply())
	assert.Equal(t, command.BookID, result.Change.BookID)
	assert.Equal(t, core.CoverHard, result.Change.Cover)
	assert.Equal(t, 3, result.Change.Inventory)
}

func Test_Decide_Idempotent_WhenTheBookExists(t *testing.T) {
	// arrange
	command := addbook.BuildCommand(uuid.New(), staff, "Dune", "Frank Herbert", "Hard", 3, decimal.RequireFromString("1.15"))
	existing := core.Book{BookID: command.BookID, Title: "Dune", Cover: core.CoverHard}

	// act
	result := addbook.Decide(&existing, command)

	// assert
	assert.True(t, result.IsIdempotent())
}

func Test_Decide_Error(t *testing.T) {
	testCases := []struct {
		name    string
		actor   core.Actor
		title   string
		cover   string
		fee     string
		wantErr error
	}{
		{name: "anonymous", actor: core.Actor{}, title: "Dune", cover: "Hard", fee: "1.15", wantErr: core.ErrUnauthorized},
		{name: "not staff", actor: core.Actor{UserID: "4"}, title: "Dune", cover: "Hard", fee: "1.15", wantErr: core.ErrForbidden},
		{name: "no title", actor: staff, title: "", cover: "Hard", fee: "1.15", wantErr: core.ErrInvalidBook},
		{name: "unknown cover", actor: staff, title: "Dune", cover: "Paper", fee: "1.15", wantErr: core.ErrInvalidBook},
		{name: "negative fee", actor: staff, title: "Dune", cover: "Soft", fee: "-1", wantErr: core.ErrInvalidBook},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			command := addbook.BuildCommand(uuid.New(), tc.actor, tc.title, "", tc.cover, 1, decimal.RequireFromString(tc.fee))

			// act
			result := addbook.Decide(nil, command)

			// assert
			assert.ErrorIs(t, result.HasError(), tc.wantErr)
		})
	}
}
