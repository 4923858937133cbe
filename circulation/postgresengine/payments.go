package postgresengine

import (
	"context"
	"errors"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

// AddPayment inserts a payment for an existing borrowing.
func (s *Store) AddPayment(ctx context.Context, payment circulation.StorablePayment) error {
	observer, ctx := s.startObserving(ctx, operationAddPayment, payment.PaymentID)

	err := s.insertPayment(ctx, s.db, payment)
	if err != nil {
		observer.finishError(err)
		return err
	}

	observer.finishSuccess(1)

	return nil
}

// PaymentByID reads one payment. Returns circulation.ErrRecordNotFound if it does not exist.
func (s *Store) PaymentByID(ctx context.Context, paymentID string) (circulation.StorablePayment, error) {
	return s.singlePayment(ctx, operationPaymentByID, paymentID, goqu.I(aliasPayment+"."+colID).Eq(paymentID))
}

// PaymentBySessionID reads the payment created for a checkout session.
// Returns circulation.ErrRecordNotFound if no payment carries the session id.
func (s *Store) PaymentBySessionID(ctx context.Context, sessionID string) (circulation.StorablePayment, error) {
	return s.singlePayment(ctx, operationPaymentBySessionID, sessionID, goqu.I(aliasPayment+"."+colSessionID).Eq(sessionID))
}

// TransitionPaymentStatus sets the status of a payment to the given value, but only if it currently has fromStatus.
// Returns circulation.ErrConcurrencyConflict if the payment does not have fromStatus (anymore).
func (s *Store) TransitionPaymentStatus(ctx context.Context, paymentID, fromStatus, toStatus string) error {
	observer, ctx := s.startObserving(ctx, operationTransitionPayment, paymentID)

	err := s.transitionPaymentStatus(ctx, paymentID, fromStatus, toStatus)
	if err != nil {
		observer.finishError(err)
		return err
	}

	observer.finishSuccess(1)

	return nil
}

// ListPayments reads all payments matching the filter.
func (s *Store) ListPayments(ctx context.Context, filter circulation.PaymentFilter) (circulation.StorablePayments, error) {
	observer, ctx := s.startObserving(ctx, operationListPayments, "")

	expressions := make([]goqu.Expression, 0)

	if len(filter.UserIDs()) > 0 {
		expressions = append(expressions, goqu.I(aliasBorrowing+"."+colUserID).In(filter.UserIDs()))
	}

	if filter.BorrowingID() != "" {
		expressions = append(expressions, goqu.I(aliasPayment+"."+colBorrowingID).Eq(filter.BorrowingID()))
	}

	payments, err := s.selectPayments(ctx, operationListPayments, expressions...)
	if err != nil {
		observer.finishError(err)
		return nil, err
	}

	observer.finishSuccess(len(payments))

	return payments, nil
}

func (s *Store) singlePayment(
	ctx context.Context,
	operation string,
	recordID string,
	where goqu.Expression,
) (circulation.StorablePayment, error) {

	observer, ctx := s.startObserving(ctx, operation, recordID)

	payments, err := s.selectPayments(ctx, operation, where)
	if err == nil && len(payments) == 0 {
		err = circulation.ErrRecordNotFound
	}

	if err != nil {
		observer.finishError(err)
		return circulation.StorablePayment{}, err
	}

	observer.finishSuccess(1)

	return payments[0], nil
}

func (s *Store) insertPayment(ctx context.Context, runner sqlRunner, payment circulation.StorablePayment) error {
	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(s.paymentsTable).
		Rows(goqu.Record{
			colID:          payment.PaymentID,
			colBorrowingID: payment.BorrowingID,
			colStatus:      payment.Status,
			colType:        payment.Type,
			colSessionURL:  payment.SessionURL,
			colSessionID:   payment.SessionID,
			colMoneyToPay:  payment.MoneyToPay,
		})

	sqlQuery, err := s.toSQL(ctx, insertStmt)
	if err != nil {
		return err
	}

	_, err = s.executeStatement(ctx, runner, sqlQuery, operationAddPayment)

	return err
}

func (s *Store) transitionPaymentStatus(ctx context.Context, paymentID, fromStatus, toStatus string) error {
	updateStmt := goqu.Dialect(dialectPostgres).
		Update(s.paymentsTable).
		Set(goqu.Record{colStatus: toStatus}).
		Where(
			goqu.C(colID).Eq(paymentID),
			goqu.C(colStatus).Eq(fromStatus),
		)

	sqlQuery, err := s.toSQL(ctx, updateStmt)
	if err != nil {
		return err
	}

	rowsAffected, err := s.executeStatement(ctx, s.db, sqlQuery, operationTransitionPayment)
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		s.logOperation(ctx, logMsgConcurrencyConflict, logAttrOperation, operationTransitionPayment, logAttrRecordID, paymentID)
		return circulation.ErrConcurrencyConflict
	}

	return nil
}

func (s *Store) selectPayments(
	ctx context.Context,
	action string,
	where ...goqu.Expression,
) (circulation.StorablePayments, error) {

	col := func(name string) exp.IdentifierExpression {
		return goqu.I(aliasPayment + "." + name)
	}

	selectStmt := goqu.Dialect(dialectPostgres).
		From(goqu.T(s.paymentsTable).As(aliasPayment)).
		Join(
			goqu.T(s.borrowingsTable).As(aliasBorrowing),
			goqu.On(col(colBorrowingID).Eq(goqu.I(aliasBorrowing+"."+colID))),
		).
		Select(
			goqu.Cast(col(colID), castTypeText),
			goqu.Cast(col(colBorrowingID), castTypeText),
			col(colStatus),
			col(colType),
			col(colSessionURL),
			col(colSessionID),
			goqu.Cast(col(colMoneyToPay), castTypeText),
			goqu.I(aliasBorrowing+"."+colUserID),
		).
		Where(where...).
		Order(goqu.I(aliasPayment + "." + colID).Asc())

	sqlQuery, err := s.toSQL(ctx, selectStmt)
	if err != nil {
		return nil, err
	}

	rows, err := s.executeQuery(ctx, s.db, sqlQuery, action)
	if err != nil {
		return nil, err
	}
	defer s.closeRows(ctx, rows)

	payments := make(circulation.StorablePayments, 0)

	for rows.Next() {
		var p circulation.StorablePayment

		scanErr := rows.Scan(&p.PaymentID, &p.BorrowingID, &p.Status, &p.Type, &p.SessionURL, &p.SessionID, &p.MoneyToPay, &p.UserID)
		if scanErr != nil {
			s.logError(ctx, logMsgScanRowFailed, scanErr)
			return nil, errors.Join(circulation.ErrScanningDBRowFailed, scanErr)
		}

		payments = append(payments, p)
	}

	if iterErr := rows.Err(); iterErr != nil {
		s.logError(ctx, logMsgDBQueryFailed, iterErr, logAttrQuery, sqlQuery)
		return nil, errors.Join(circulation.ErrQueryingFailed, iterErr)
	}

	return payments, nil
}
