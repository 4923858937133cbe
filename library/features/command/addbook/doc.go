// Package addbook implements the Add Book use case.
//
// Staff add a catalog entry together with the number of copies on the shelf and the daily fee.
// Adding a book with an id that already exists is a no-op.
package addbook
