// Package returnborrowing implements the Return Borrowing use case.
//
// Returning a book closes the borrowing, puts the copy back on the shelf and settles the fee.
// Decide computes the amount with core.CalculateFine. If something is owed, the CommandHandler
// opens a checkout session at the provider before anything is written; a provider failure
// leaves the borrowing open and the inventory untouched.
//
// The store then sets the actual return date, increments the inventory and inserts the
// pending payment in one transaction. After the commit, a payment notification is sent.
package returnborrowing
