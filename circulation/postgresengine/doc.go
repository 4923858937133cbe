// Package postgresengine provides a PostgreSQL implementation of the circulation store.
//
// It persists books, borrowings and payments in three tables and supports multiple
// database adapters (pgx, sql.DB, sqlx). All state changes of one business operation
// run in one transaction.
//
// Key features:
//   - Multiple database adapter support (PGX, SQL, SQLX), optional pgx read replica
//   - Compare-and-decrement of a book's inventory with conflict detection
//   - Guarded return and payment status transitions
//   - Configurable table names, logging, metrics and tracing
//
// Usage examples:
//
//	db, _ := pgxpool.New(context.Background(), dsn)
//	store, _ := postgresengine.NewStoreFromPGXPool(db)
//
//	store, _ := postgresengine.NewStoreFromPGXPool(
//		db,
//		postgresengine.WithLogger(logger),
//		postgresengine.WithMetrics(metricsCollector),
//	)
//
//	remaining, err := store.OpenBorrowing(ctx, borrowing)
//	if errors.Is(err, circulation.ErrConcurrencyConflict) {
//		// no copy was left when the decrement ran
//	}
package postgresengine
