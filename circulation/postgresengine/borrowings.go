package postgresengine

import (
	"context"
	"errors"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/circulation/postgresengine/internal/adapters"
)

// OpenBorrowing atomically takes one copy of the book out of the inventory and inserts the open borrowing.
// It returns the inventory left after the decrement.
//
// The decrement is guarded by inventory > 0. If no copy is left, nothing is written and
// circulation.ErrConcurrencyConflict is returned, so the caller can re-read the book and decide again.
func (s *Store) OpenBorrowing(ctx context.Context, borrowing circulation.StorableBorrowing) (int, error) {
	observer, ctx := s.startObserving(ctx, operationOpenBorrowing, borrowing.BorrowingID)

	var remaining remainingInt

	err := s.inTransaction(ctx, func(tx adapters.DBTx) error {
		var decrementErr error

		remaining, decrementErr = s.decrementInventory(ctx, tx, borrowing.BookID)
		if decrementErr != nil {
			return decrementErr
		}

		return s.insertBorrowing(ctx, tx, borrowing)
	})

	if err != nil {
		observer.finishError(err)
		return 0, err
	}

	observer.finishSuccess(1)

	return remaining, nil
}

// CloseBorrowing atomically sets the actual return date, puts one copy back into the inventory,
// and inserts the payment of the ReturnChange if there is one. It returns the inventory after the increment.
//
// The return date is only set while the borrowing is still open. If it was returned in the meantime,
// nothing is written and circulation.ErrConcurrencyConflict is returned.
func (s *Store) CloseBorrowing(ctx context.Context, change circulation.ReturnChange) (int, error) {
	observer, ctx := s.startObserving(ctx, operationCloseBorrowing, change.BorrowingID)

	var remaining remainingInt

	err := s.inTransaction(ctx, func(tx adapters.DBTx) error {
		if markErr := s.markReturned(ctx, tx, change); markErr != nil {
			return markErr
		}

		var incrementErr error

		remaining, incrementErr = s.incrementInventory(ctx, tx, change.BookID)
		if incrementErr != nil {
			return incrementErr
		}

		if change.Payment == nil {
			return nil
		}

		return s.insertPayment(ctx, tx, *change.Payment)
	})

	if err != nil {
		observer.finishError(err)
		return 0, err
	}

	rowCount := 2
	if change.Payment != nil {
		rowCount++
	}

	observer.finishSuccess(rowCount)

	return remaining, nil
}

// BorrowingByID reads one borrowing including the title of its book.
// Returns circulation.ErrRecordNotFound if it does not exist.
func (s *Store) BorrowingByID(ctx context.Context, borrowingID string) (circulation.StorableBorrowing, error) {
	observer, ctx := s.startObserving(ctx, operationBorrowingByID, borrowingID)

	borrowings, err := s.selectBorrowings(
		ctx,
		operationBorrowingByID,
		goqu.I(aliasBorrowing+"."+colID).Eq(borrowingID),
	)

	if err == nil && len(borrowings) == 0 {
		err = circulation.ErrRecordNotFound
	}

	if err != nil {
		observer.finishError(err)
		return circulation.StorableBorrowing{}, err
	}

	observer.finishSuccess(1)

	return borrowings[0], nil
}

// ListBorrowings reads all borrowings matching the filter, oldest first.
func (s *Store) ListBorrowings(
	ctx context.Context,
	filter circulation.BorrowingFilter,
) (circulation.StorableBorrowings, error) {

	observer, ctx := s.startObserving(ctx, operationListBorrowings, "")

	borrowings, err := s.selectBorrowings(ctx, operationListBorrowings, s.borrowingFilterExpressions(filter)...)
	if err != nil {
		observer.finishError(err)
		return nil, err
	}

	observer.finishSuccess(len(borrowings))

	return borrowings, nil
}

func (s *Store) decrementInventory(ctx context.Context, tx adapters.DBTx, bookID string) (remainingInt, error) {
	updateStmt := goqu.Dialect(dialectPostgres).
		Update(s.booksTable).
		Set(goqu.Record{colInventory: goqu.L(exprDecrement, goqu.C(colInventory))}).
		Where(
			goqu.C(colID).Eq(bookID),
			goqu.C(colInventory).Gt(0),
		).
		Returning(colInventory)

	sqlQuery, err := s.toSQL(ctx, updateStmt)
	if err != nil {
		return 0, err
	}

	remaining, err := s.queryRemaining(ctx, tx, sqlQuery, operationOpenBorrowing, circulation.ErrConcurrencyConflict)
	if errors.Is(err, circulation.ErrConcurrencyConflict) {
		s.logOperation(ctx, logMsgConcurrencyConflict, logAttrOperation, operationOpenBorrowing, logAttrRecordID, bookID)
	}

	return remaining, err
}

func (s *Store) incrementInventory(ctx context.Context, tx adapters.DBTx, bookID string) (remainingInt, error) {
	updateStmt := goqu.Dialect(dialectPostgres).
		Update(s.booksTable).
		Set(goqu.Record{colInventory: goqu.L(exprIncrement, goqu.C(colInventory))}).
		Where(goqu.C(colID).Eq(bookID)).
		Returning(colInventory)

	sqlQuery, err := s.toSQL(ctx, updateStmt)
	if err != nil {
		return 0, err
	}

	return s.queryRemaining(ctx, tx, sqlQuery, operationCloseBorrowing, circulation.ErrRecordNotFound)
}

func (s *Store) insertBorrowing(ctx context.Context, tx adapters.DBTx, borrowing circulation.StorableBorrowing) error {
	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(s.borrowingsTable).
		Rows(goqu.Record{
			colID:                 borrowing.BorrowingID,
			colBookID:             borrowing.BookID,
			colUserID:             borrowing.UserID,
			colBorrowDate:         formatDate(borrowing.BorrowDate),
			colExpectedReturnDate: formatDate(borrowing.ExpectedReturnDate),
		})

	sqlQuery, err := s.toSQL(ctx, insertStmt)
	if err != nil {
		return err
	}

	_, err = s.executeStatement(ctx, tx, sqlQuery, operationOpenBorrowing)

	return err
}

func (s *Store) markReturned(ctx context.Context, tx adapters.DBTx, change circulation.ReturnChange) error {
	updateStmt := goqu.Dialect(dialectPostgres).
		Update(s.borrowingsTable).
		Set(goqu.Record{colActualReturnDate: formatDate(change.ActualReturnDate)}).
		Where(
			goqu.C(colID).Eq(change.BorrowingID),
			goqu.C(colActualReturnDate).IsNull(),
		)

	sqlQuery, err := s.toSQL(ctx, updateStmt)
	if err != nil {
		return err
	}

	rowsAffected, err := s.executeStatement(ctx, tx, sqlQuery, operationCloseBorrowing)
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		s.logOperation(ctx, logMsgConcurrencyConflict, logAttrOperation, operationCloseBorrowing, logAttrRecordID, change.BorrowingID)
		return circulation.ErrConcurrencyConflict
	}

	return nil
}

func (s *Store) borrowingFilterExpressions(filter circulation.BorrowingFilter) []goqu.Expression {
	expressions := make([]goqu.Expression, 0)

	if len(filter.UserIDs()) > 0 {
		expressions = append(expressions, goqu.I(aliasBorrowing+"."+colUserID).In(filter.UserIDs()))
	}

	if filter.BookID() != "" {
		expressions = append(expressions, goqu.I(aliasBorrowing+"."+colBookID).Eq(filter.BookID()))
	}

	switch filter.ReturnState() {
	case circulation.OnlyOpen:
		expressions = append(expressions, goqu.I(aliasBorrowing+"."+colActualReturnDate).IsNull())
	case circulation.OnlyReturned:
		expressions = append(expressions, goqu.I(aliasBorrowing+"."+colActualReturnDate).IsNotNull())
	case circulation.AnyReturnState:
	}

	return expressions
}

func (s *Store) selectBorrowings(
	ctx context.Context,
	action string,
	where ...goqu.Expression,
) (circulation.StorableBorrowings, error) {

	col := func(name string) exp.IdentifierExpression {
		return goqu.I(aliasBorrowing + "." + name)
	}

	selectStmt := goqu.Dialect(dialectPostgres).
		From(goqu.T(s.borrowingsTable).As(aliasBorrowing)).
		Join(
			goqu.T(s.booksTable).As(aliasBook),
			goqu.On(goqu.I(aliasBorrowing+"."+colBookID).Eq(goqu.I(aliasBook+"."+colID))),
		).
		Select(
			goqu.Cast(col(colID), castTypeText),
			goqu.Cast(col(colBookID), castTypeText),
			col(colUserID),
			goqu.Cast(col(colBorrowDate), castTypeText),
			goqu.Cast(col(colExpectedReturnDate), castTypeText),
			goqu.Cast(col(colActualReturnDate), castTypeText),
			goqu.I(aliasBook+"."+colTitle),
		).
		Where(where...).
		Order(goqu.I(aliasBorrowing+"."+colBorrowDate).Asc(), goqu.I(aliasBorrowing+"."+colID).Asc())

	sqlQuery, err := s.toSQL(ctx, selectStmt)
	if err != nil {
		return nil, err
	}

	rows, err := s.executeQuery(ctx, s.db, sqlQuery, action)
	if err != nil {
		return nil, err
	}
	defer s.closeRows(ctx, rows)

	borrowings := make(circulation.StorableBorrowings, 0)

	for rows.Next() {
		borrowing, scanErr := s.scanBorrowing(ctx, rows)
		if scanErr != nil {
			return nil, scanErr
		}

		borrowings = append(borrowings, borrowing)
	}

	if iterErr := rows.Err(); iterErr != nil {
		s.logError(ctx, logMsgDBQueryFailed, iterErr, logAttrQuery, sqlQuery)
		return nil, errors.Join(circulation.ErrQueryingFailed, iterErr)
	}

	return borrowings, nil
}

func (s *Store) scanBorrowing(ctx context.Context, rows adapters.DBRows) (circulation.StorableBorrowing, error) {
	var (
		borrowing          circulation.StorableBorrowing
		borrowDate         string
		expectedReturnDate string
		actualReturnDate   *string
	)

	scanErr := rows.Scan(
		&borrowing.BorrowingID,
		&borrowing.BookID,
		&borrowing.UserID,
		&borrowDate,
		&expectedReturnDate,
		&actualReturnDate,
		&borrowing.BookTitle,
	)

	if scanErr == nil {
		borrowing.BorrowDate, scanErr = parseDate(borrowDate)
	}

	if scanErr == nil {
		borrowing.ExpectedReturnDate, scanErr = parseDate(expectedReturnDate)
	}

	if scanErr == nil && actualReturnDate != nil {
		returnedAt, parseErr := parseDate(*actualReturnDate)
		borrowing.ActualReturnDate, scanErr = &returnedAt, parseErr
	}

	if scanErr != nil {
		s.logError(ctx, logMsgScanRowFailed, scanErr)
		return circulation.StorableBorrowing{}, errors.Join(circulation.ErrScanningDBRowFailed, scanErr)
	}

	return borrowing, nil
}
