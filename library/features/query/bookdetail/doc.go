// Package bookdetail implements the Book Detail query use case: a catalog entry with its current inventory.
package bookdetail
