// Package payments implements the Payments list query use case.
//
// Staff see all payments, everybody else only the payments of their own borrowings.
// The list can be narrowed to the payments of one borrowing.
package payments
