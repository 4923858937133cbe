// Package circulation provides the core abstractions and types of the library circulation store.
//
// This package defines the storage-level records, filters, consistency hints, observability
// interfaces and common error definitions shared by the store engines (postgresengine, memoryengine).
// It knows nothing about business rules; those live in the application packages which convert
// between these storable records and their domain types.
//
// The store supports filtering borrowings by:
//   - Borrowers (a set of user IDs)
//   - Return state (open or returned)
//   - Book
//
// Key types:
//   - StorableBook, StorableBorrowing, StorablePayment: records as they are persisted
//   - BorrowingFilter, PaymentFilter: criteria for list queries
//   - ReturnChange: the atomic unit of a book return
//
// Common usage pattern:
//
//	filter := BuildBorrowingFilter().
//		ForUsers("4", "7").
//		OnlyOpen().
//		Finalize()
//
//	borrowings, err := store.ListBorrowings(ctx, filter)
//	if err != nil {
//		// handle error
//	}
//
// Optimistic writes report ErrConcurrencyConflict when the guarded row did not match, e.g. a
// compare-and-decrement of a book's inventory that found no copy left. Callers re-read and decide again.
package circulation
