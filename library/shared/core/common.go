package core

import (
	"time"
)

// Alias types instead of full value objects ...

// UserIDString is the opaque identifier of a borrower as provided by the access control.
type UserIDString = string

// SessionIDString identifies a checkout session at the payment provider.
type SessionIDString = string

// Date is a calendar day, represented as midnight UTC.
type Date = time.Time

// ToDate truncates t to the calendar day it falls on in its own location and returns it as midnight UTC.
func ToDate(t time.Time) Date {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of whole days from from to to, negative if to is before from.
func DaysBetween(from, to Date) int {
	return int(ToDate(to).Sub(ToDate(from)).Hours() / 24)
}

// FormatDate renders a Date as YYYY-MM-DD.
func FormatDate(d Date) string {
	return d.Format(time.DateOnly)
}

// ParseDate parses YYYY-MM-DD into a Date.
func ParseDate(value string) (Date, error) {
	return time.ParseInLocation(time.DateOnly, value, time.UTC)
}
