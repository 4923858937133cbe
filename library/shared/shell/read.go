package shell

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

// ReadsBorrowingsAndBooks is the part of a store needed by ReadBorrowingAndBook.
type ReadsBorrowingsAndBooks interface {
	BorrowingByID(ctx context.Context, borrowingID string) (circulation.StorableBorrowing, error)
	BookByID(ctx context.Context, bookID string) (circulation.StorableBook, error)
}

// ReadBorrowingAndBook reads a borrowing and the book it refers to and converts both to domain types.
// Missing records are reported as core.ErrBorrowingNotFound or core.ErrBookNotFound.
func ReadBorrowingAndBook(
	ctx context.Context,
	store ReadsBorrowingsAndBooks,
	borrowingID string,
) (core.Borrowing, core.Book, error) {

	storableBorrowing, err := store.BorrowingByID(ctx, borrowingID)
	if errors.Is(err, circulation.ErrRecordNotFound) {
		return core.Borrowing{}, core.Book{}, errors.Join(core.ErrBorrowingNotFound, err)
	}

	if err != nil {
		return core.Borrowing{}, core.Book{}, err
	}

	borrowing, err := BorrowingFrom(storableBorrowing)
	if err != nil {
		return core.Borrowing{}, core.Book{}, err
	}

	book, err := ReadBook(ctx, store, storableBorrowing.BookID)
	if err != nil {
		return core.Borrowing{}, core.Book{}, err
	}

	return borrowing, book, nil
}

// ReadsBooks is the part of a store needed by ReadBook.
type ReadsBooks interface {
	BookByID(ctx context.Context, bookID string) (circulation.StorableBook, error)
}

// ReadBook reads a book and converts it to the domain type. A missing book is reported as core.ErrBookNotFound.
func ReadBook(ctx context.Context, store ReadsBooks, bookID string) (core.Book, error) {
	storableBook, err := store.BookByID(ctx, bookID)
	if errors.Is(err, circulation.ErrRecordNotFound) {
		return core.Book{}, errors.Join(core.ErrBookNotFound, err)
	}

	if err != nil {
		return core.Book{}, err
	}

	return BookFrom(storableBook)
}
