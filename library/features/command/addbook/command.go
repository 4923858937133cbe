package addbook

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

const (
	commandType = "AddBook"
)

// Command represents the intent to add a book to the catalog.
type Command struct {
	BookID    uuid.UUID
	Actor     core.Actor
	Title     string
	Author    string
	Cover     core.CoverType
	Inventory int
	DailyFee  decimal.Decimal
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(
	bookID uuid.UUID,
	actor core.Actor,
	title string,
	author string,
	cover string,
	inventory int,
	dailyFee decimal.Decimal,
) Command {

	return Command{
		BookID:    bookID,
		Actor:     actor,
		Title:     title,
		Author:    author,
		Cover:     core.CoverType(cover),
		Inventory: inventory,
		DailyFee:  dailyFee,
	}
}
