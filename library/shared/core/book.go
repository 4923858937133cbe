package core

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CoverType is the binding of a book.
type CoverType string

const (
	CoverHard CoverType = "Hard"
	CoverSoft CoverType = "Soft"
)

// MaxDailyFee is the largest daily fee the catalog can store.
var MaxDailyFee = decimal.RequireFromString("999.99")

// Book is a catalog entry together with the number of copies currently on the shelf.
type Book struct {
	BookID    uuid.UUID
	Title     string
	Author    string
	Cover     CoverType
	Inventory int
	DailyFee  decimal.Decimal
}

// HasCopyAvailable reports whether at least one copy can be lent out.
func (b Book) HasCopyAvailable() bool {
	return b.Inventory > 0
}

// ParseCoverType accepts "Hard" and "Soft".
func ParseCoverType(value string) (CoverType, error) {
	switch CoverType(value) {
	case CoverHard, CoverSoft:
		return CoverType(value), nil
	default:
		return "", fmt.Errorf("%w: unknown cover type %q", ErrInvalidBook, value)
	}
}

// ValidateBook checks the catalog invariants: a title, a known cover, a non-negative inventory,
// and a daily fee between zero and MaxDailyFee with at most two decimal places.
func ValidateBook(b Book) error {
	switch {
	case b.Title == "":
		return fmt.Errorf("%w: title must not be empty", ErrInvalidBook)
	case b.Cover != CoverHard && b.Cover != CoverSoft:
		return fmt.Errorf("%w: unknown cover type %q", ErrInvalidBook, b.Cover)
	case b.Inventory < 0:
		return fmt.Errorf("%w: inventory must not be negative", ErrInvalidBook)
	case b.DailyFee.IsNegative():
		return fmt.Errorf("%w: daily fee must not be negative", ErrInvalidBook)
	case b.DailyFee.GreaterThan(MaxDailyFee):
		return fmt.Errorf("%w: daily fee must not exceed %s", ErrInvalidBook, MaxDailyFee.StringFixed(2))
	case !b.DailyFee.Equal(b.DailyFee.Truncate(2)):
		return fmt.Errorf("%w: daily fee must not have more than two decimal places", ErrInvalidBook)
	}

	return nil
}
