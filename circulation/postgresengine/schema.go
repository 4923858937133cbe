package postgresengine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

const (
	operationCreateSchema = "create_schema"

	ddlBooks = `CREATE TABLE IF NOT EXISTS %[1]s (
	id uuid PRIMARY KEY,
	title text NOT NULL,
	author text NOT NULL DEFAULT '',
	cover text NOT NULL CHECK (cover IN ('Hard', 'Soft')),
	inventory integer NOT NULL CHECK (inventory >= 0),
	daily_fee numeric(5,2) NOT NULL CHECK (daily_fee >= 0)
)`

	ddlBorrowings = `CREATE TABLE IF NOT EXISTS %[1]s (
	id uuid PRIMARY KEY,
	book_id uuid NOT NULL REFERENCES %[2]s (id) ON DELETE CASCADE,
	user_id text NOT NULL,
	borrow_date date NOT NULL,
	expected_return_date date NOT NULL,
	actual_return_date date NULL,
	CHECK (borrow_date <= expected_return_date),
	CHECK (actual_return_date IS NULL OR borrow_date <= actual_return_date)
)`

	ddlBorrowingsUserIndex = `CREATE INDEX IF NOT EXISTS %[1]s_user_id_idx ON %[1]s (user_id)`

	ddlPayments = `CREATE TABLE IF NOT EXISTS %[1]s (
	id uuid PRIMARY KEY,
	borrowing_id uuid NOT NULL REFERENCES %[2]s (id) ON DELETE CASCADE,
	status text NOT NULL CHECK (status IN ('Pending', 'Paid')),
	type text NOT NULL CHECK (type IN ('Payment', 'Fine')),
	session_url text NOT NULL DEFAULT '',
	session_id text NOT NULL DEFAULT '',
	money_to_pay numeric(10,2) NOT NULL
)`

	ddlPaymentsSessionIndex = `CREATE INDEX IF NOT EXISTS %[1]s_session_id_idx ON %[1]s (session_id)`
)

// CreateSchema creates the tables and indexes of the store if they do not exist yet.
// The table names follow the configured options; they are not quoted, so they must be plain identifiers.
func (s *Store) CreateSchema(ctx context.Context) error {
	observer, ctx := s.startObserving(ctx, operationCreateSchema, "")

	statements := []string{
		fmt.Sprintf(ddlBooks, s.booksTable),
		fmt.Sprintf(ddlBorrowings, s.borrowingsTable, s.booksTable),
		fmt.Sprintf(ddlBorrowingsUserIndex, s.borrowingsTable),
		fmt.Sprintf(ddlPayments, s.paymentsTable, s.borrowingsTable),
		fmt.Sprintf(ddlPaymentsSessionIndex, s.paymentsTable),
	}

	for _, statement := range statements {
		start := time.Now()
		_, execErr := s.db.Exec(ctx, statement)
		s.logQueryWithDuration(ctx, statement, operationCreateSchema, time.Since(start))

		if execErr != nil {
			s.logError(ctx, logMsgDBExecFailed, execErr, logAttrQuery, statement)
			err := errors.Join(circulation.ErrExecutingStatementFailed, execErr)
			observer.finishError(err)

			return err
		}
	}

	observer.finishSuccess(0)

	return nil
}
