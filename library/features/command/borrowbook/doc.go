// Package borrowbook implements the Borrow Book use case.
//
// An authenticated user borrows one copy of a book until an expected return date.
// The CommandHandler reads the book, the pure Decide function checks the business rules,
// and the store takes one copy out of the inventory and inserts the open borrowing in one transaction.
//
// Two users racing for the last copy both pass Decide, but only one compare-and-decrement succeeds.
// The loser gets a concurrency conflict, the retry re-reads the book and Decide then reports
// core.ErrInventoryExhausted.
//
// After the commit, a notification about the new borrowing is handed to the Notifier.
package borrowbook
