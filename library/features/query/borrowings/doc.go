// Package borrowings implements the Borrowings list query use case.
//
// Staff see all borrowings and may narrow them to a set of borrowers.
// Everybody else sees only their own borrowings; a requested user filter is ignored for them.
// Both can restrict the list to open (is_active=true) or returned (is_active=false) borrowings.
//
// The list is read with eventual consistency and carries the title of each book.
package borrowings
