package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // driver import
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/circulation/postgresengine/internal/adapters"
)

const (
	defaultBooksTableName        = "books"
	defaultBorrowingsTableName   = "borrowings"
	defaultPaymentsTableName     = "payments"
	logMsgBuildQueryFailed       = "failed to build sql statement"
	logMsgDBQueryFailed          = "database query execution failed"
	logMsgDBExecFailed           = "database statement execution failed"
	logMsgCloseRowsFailed        = "failed to close database rows"
	logMsgScanRowFailed          = "failed to scan database row"
	logMsgRowsAffectedFailed     = "failed to get rows affected count"
	logMsgBeginTxFailed          = "failed to begin transaction"
	logMsgCommitTxFailed         = "failed to commit transaction"
	logMsgRollbackTxFailed       = "failed to roll back transaction"
	logMsgOperationCompleted     = " completed"
	logMsgConcurrencyConflict    = "concurrency conflict detected"
	logMsgSQLExecuted            = "executed sql for: "
	logMsgOperation              = "circulationstore operation: "
	logAttrError                 = "error"
	logAttrQuery                 = "query"
	logAttrDurationMS            = "duration_ms"
	logAttrRowCount              = "row_count"
	logAttrOperation             = "operation"
	logAttrRecordID              = "record_id"
	colID                        = "id"
	colTitle                     = "title"
	colAuthor                    = "author"
	colCover                     = "cover"
	colInventory                 = "inventory"
	colDailyFee                  = "daily_fee"
	colBookID                    = "book_id"
	colUserID                    = "user_id"
	colBorrowDate                = "borrow_date"
	colExpectedReturnDate        = "expected_return_date"
	colActualReturnDate          = "actual_return_date"
	colBorrowingID               = "borrowing_id"
	colStatus                    = "status"
	colType                      = "type"
	colSessionURL                = "session_url"
	colSessionID                 = "session_id"
	colMoneyToPay                = "money_to_pay"
	aliasBook                    = "bk"
	aliasBorrowing               = "br"
	aliasPayment                 = "p"
	dialectPostgres              = "postgres"
	castTypeText                 = "TEXT"
	exprDecrement                = "? - 1"
	exprIncrement                = "? + 1"
	dateLayout                   = time.DateOnly
)

type (
	sqlQueryString    = string
	rowsAffectedInt64 = int64
	remainingInt      = int
)

// sqlRunner is satisfied by the adapters as well as by their transactions.
type sqlRunner interface {
	Query(ctx context.Context, query string) (adapters.DBRows, error)
	Exec(ctx context.Context, query string) (adapters.DBResult, error)
}

// Store persists books, borrowings and payments in PostgreSQL.
// It leverages a database adapter and supports customizable table names and observability.
type Store struct {
	db               adapters.DBAdapter
	booksTable       string
	borrowingsTable  string
	paymentsTable    string
	logger           circulation.Logger
	metricsCollector circulation.MetricsCollector
	tracingCollector circulation.TracingCollector
	contextualLogger circulation.ContextualLogger
}

// NewStoreFromPGXPool creates a new Store using a pgx Pool with optional configuration.
func NewStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (*Store, error) {
	if db == nil {
		return nil, circulation.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewPGXAdapter(db), options...)
}

// NewStoreFromPGXPoolAndReplica creates a new Store using a primary pgx Pool and a replica pool.
// Reads run on the replica when the context carries circulation.WithEventualConsistency.
func NewStoreFromPGXPoolAndReplica(primary *pgxpool.Pool, replica *pgxpool.Pool, options ...Option) (*Store, error) {
	if primary == nil || replica == nil {
		return nil, circulation.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewPGXAdapterWithReplica(primary, replica), options...)
}

// NewStoreFromSQLDB creates a new Store using a sql.DB with optional configuration.
func NewStoreFromSQLDB(db *sql.DB, options ...Option) (*Store, error) {
	if db == nil {
		return nil, circulation.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLAdapter(db), options...)
}

// NewStoreFromSQLX creates a new Store using a sqlx.DB with optional configuration.
func NewStoreFromSQLX(db *sqlx.DB, options ...Option) (*Store, error) {
	if db == nil {
		return nil, circulation.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLXAdapter(db), options...)
}

func newStore(db adapters.DBAdapter, options ...Option) (*Store, error) {
	s := &Store{
		db:              db,
		booksTable:      defaultBooksTableName,
		borrowingsTable: defaultBorrowingsTableName,
		paymentsTable:   defaultPaymentsTableName,
	}

	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// AddBook inserts a book into the catalog.
func (s *Store) AddBook(ctx context.Context, book circulation.StorableBook) error {
	observer, ctx := s.startObserving(ctx, operationAddBook, book.BookID)

	err := s.addBook(ctx, book)
	if err != nil {
		observer.finishError(err)
		return err
	}

	observer.finishSuccess(1)

	return nil
}

func (s *Store) addBook(ctx context.Context, book circulation.StorableBook) error {
	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(s.booksTable).
		Rows(goqu.Record{
			colID:        book.BookID,
			colTitle:     book.Title,
			colAuthor:    book.Author,
			colCover:     book.Cover,
			colInventory: book.Inventory,
			colDailyFee:  book.DailyFee,
		})

	sqlQuery, err := s.toSQL(ctx, insertStmt)
	if err != nil {
		return err
	}

	_, err = s.executeStatement(ctx, s.db, sqlQuery, operationAddBook)

	return err
}

// BookByID reads one book. Returns circulation.ErrRecordNotFound if it does not exist.
func (s *Store) BookByID(ctx context.Context, bookID string) (circulation.StorableBook, error) {
	observer, ctx := s.startObserving(ctx, operationBookByID, bookID)

	book, err := s.bookByID(ctx, bookID)
	if err != nil {
		observer.finishError(err)
		return circulation.StorableBook{}, err
	}

	observer.finishSuccess(1)

	return book, nil
}

func (s *Store) bookByID(ctx context.Context, bookID string) (circulation.StorableBook, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(s.booksTable).
		Select(
			goqu.Cast(goqu.C(colID), castTypeText),
			goqu.C(colTitle),
			goqu.C(colAuthor),
			goqu.C(colCover),
			goqu.C(colInventory),
			goqu.Cast(goqu.C(colDailyFee), castTypeText),
		).
		Where(goqu.C(colID).Eq(bookID))

	sqlQuery, err := s.toSQL(ctx, selectStmt)
	if err != nil {
		return circulation.StorableBook{}, err
	}

	rows, err := s.executeQuery(ctx, s.db, sqlQuery, operationBookByID)
	if err != nil {
		return circulation.StorableBook{}, err
	}
	defer s.closeRows(ctx, rows)

	if !rows.Next() {
		return circulation.StorableBook{}, s.noRowError(ctx, rows)
	}

	var book circulation.StorableBook
	if scanErr := rows.Scan(&book.BookID, &book.Title, &book.Author, &book.Cover, &book.Inventory, &book.DailyFee); scanErr != nil {
		s.logError(ctx, logMsgScanRowFailed, scanErr)
		return circulation.StorableBook{}, errors.Join(circulation.ErrScanningDBRowFailed, scanErr)
	}

	return book, nil
}

// toSQL renders a goqu statement with interpolated values.
func (s *Store) toSQL(ctx context.Context, stmt interface {
	ToSQL() (string, []any, error)
}) (sqlQueryString, error) {

	sqlQuery, _, toSQLErr := stmt.ToSQL()
	if toSQLErr != nil {
		s.logError(ctx, logMsgBuildQueryFailed, toSQLErr)
		return "", errors.Join(circulation.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

// executeQuery runs a query and logs it with its duration.
func (s *Store) executeQuery(
	ctx context.Context,
	runner sqlRunner,
	sqlQuery sqlQueryString,
	action string,
) (adapters.DBRows, error) {

	start := time.Now()
	rows, queryErr := runner.Query(ctx, sqlQuery)
	s.logQueryWithDuration(ctx, sqlQuery, action, time.Since(start))

	if queryErr != nil {
		s.logError(ctx, logMsgDBQueryFailed, queryErr, logAttrQuery, sqlQuery)
		return nil, errors.Join(circulation.ErrQueryingFailed, queryErr)
	}

	return rows, nil
}

// executeStatement runs a statement and returns the number of affected rows.
func (s *Store) executeStatement(
	ctx context.Context,
	runner sqlRunner,
	sqlQuery sqlQueryString,
	action string,
) (rowsAffectedInt64, error) {

	start := time.Now()
	result, execErr := runner.Exec(ctx, sqlQuery)
	s.logQueryWithDuration(ctx, sqlQuery, action, time.Since(start))

	if execErr != nil {
		s.logError(ctx, logMsgDBExecFailed, execErr, logAttrQuery, sqlQuery)
		return 0, errors.Join(circulation.ErrExecutingStatementFailed, execErr)
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		s.logError(ctx, logMsgRowsAffectedFailed, rowsAffectedErr)
		return 0, errors.Join(circulation.ErrGettingRowsAffectedFailed, rowsAffectedErr)
	}

	return rowsAffected, nil
}

// queryRemaining runs an UPDATE ... RETURNING inventory and scans the single returned value.
// A statement that matched no row yields noMatchErr.
func (s *Store) queryRemaining(
	ctx context.Context,
	runner sqlRunner,
	sqlQuery sqlQueryString,
	action string,
	noMatchErr error,
) (remainingInt, error) {

	rows, err := s.executeQuery(ctx, runner, sqlQuery, action)
	if err != nil {
		return 0, err
	}
	defer s.closeRows(ctx, rows)

	if !rows.Next() {
		if iterErr := rows.Err(); iterErr != nil {
			s.logError(ctx, logMsgDBQueryFailed, iterErr, logAttrQuery, sqlQuery)
			return 0, errors.Join(circulation.ErrQueryingFailed, iterErr)
		}

		return 0, noMatchErr
	}

	var remaining remainingInt
	if scanErr := rows.Scan(&remaining); scanErr != nil {
		s.logError(ctx, logMsgScanRowFailed, scanErr)
		return 0, errors.Join(circulation.ErrScanningDBRowFailed, scanErr)
	}

	return remaining, nil
}

// inTransaction runs fn inside one transaction and commits when fn succeeds.
func (s *Store) inTransaction(ctx context.Context, fn func(tx adapters.DBTx) error) error {
	tx, beginErr := s.db.BeginTx(ctx)
	if beginErr != nil {
		s.logError(ctx, logMsgBeginTxFailed, beginErr)
		return errors.Join(circulation.ErrBeginningTransactionFailed, beginErr)
	}

	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
			s.logWarn(ctx, logMsgRollbackTxFailed, rollbackErr)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if commitErr := tx.Commit(ctx); commitErr != nil {
		s.logError(ctx, logMsgCommitTxFailed, commitErr)
		return errors.Join(circulation.ErrCommittingTransactionFailed, commitErr)
	}

	return nil
}

// closeRows safely closes database rows and logs any errors.
func (s *Store) closeRows(ctx context.Context, rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		s.logWarn(ctx, logMsgCloseRowsFailed, closeErr)
	}
}

// noRowError distinguishes an iteration failure from an empty result.
func (s *Store) noRowError(ctx context.Context, rows adapters.DBRows) error {
	if iterErr := rows.Err(); iterErr != nil {
		s.logError(ctx, logMsgDBQueryFailed, iterErr)
		return errors.Join(circulation.ErrQueryingFailed, iterErr)
	}

	return circulation.ErrRecordNotFound
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func parseDate(value string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, value, time.UTC)
}
