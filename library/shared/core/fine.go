package core

import (
	"github.com/shopspring/decimal"
)

// FineMultiplier is the surcharge factor applied to the daily fee for every overdue day.
const FineMultiplier = 2

var (
	fineMultiplier   = decimal.NewFromInt(FineMultiplier)
	minorUnitsFactor = decimal.NewFromInt(100)
)

// CalculateFine computes the amount owed for a borrowing returned on returnDate.
//
// Every elapsed day from borrowDate to returnDate is charged with dailyFee. If returnDate is after
// expectedReturnDate, each overdue day is charged again with dailyFee * FineMultiplier on top.
// Overdue days therefore cost (1 + FineMultiplier) times the daily fee in total.
//
// Example: borrowed 2022-01-01, expected 2022-01-27, returned 2022-01-28, fee 1.15
// gives 27 * 1.15 + 1 * 1.15 * 2 = 33.35.
func CalculateFine(borrowDate, expectedReturnDate, returnDate Date, dailyFee decimal.Decimal) decimal.Decimal {
	elapsedDays := DaysBetween(borrowDate, returnDate)
	amount := dailyFee.Mul(decimal.NewFromInt(int64(elapsedDays)))

	if ToDate(returnDate).After(ToDate(expectedReturnDate)) {
		overdueDays := DaysBetween(expectedReturnDate, returnDate)
		amount = amount.Add(dailyFee.Mul(decimal.NewFromInt(int64(overdueDays))).Mul(fineMultiplier))
	}

	return amount
}

// ToMinorUnits converts an amount to cents, truncating fractions of a cent.
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(minorUnitsFactor).Truncate(0).IntPart()
}
