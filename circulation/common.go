package circulation

import (
	"errors"
)

var (
	ErrEmptyTableNameSupplied      = errors.New("empty table name supplied")
	ErrNilDatabaseConnection       = errors.New("database connection must not be nil")
	ErrConcurrencyConflict         = errors.New("concurrency error, no rows were affected")
	ErrRecordNotFound              = errors.New("record not found")
	ErrBuildingQueryFailed         = errors.New("building the query failed")
	ErrQueryingFailed              = errors.New("querying the database failed")
	ErrScanningDBRowFailed         = errors.New("scanning the database row failed")
	ErrExecutingStatementFailed    = errors.New("executing the database statement failed")
	ErrGettingRowsAffectedFailed   = errors.New("getting rows affected failed")
	ErrBeginningTransactionFailed  = errors.New("beginning the transaction failed")
	ErrCommittingTransactionFailed = errors.New("committing the transaction failed")
	ErrInvalidStorableRecord       = errors.New("invalid storable record")
)
