package postgresengine

import (
	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

// Option defines a functional option for configuring the Store.
type Option func(*Store) error

// WithBooksTableName sets the table name for books.
func WithBooksTableName(tableName string) Option {
	return func(s *Store) error {
		if tableName == "" {
			return circulation.ErrEmptyTableNameSupplied
		}

		s.booksTable = tableName

		return nil
	}
}

// WithBorrowingsTableName sets the table name for borrowings.
func WithBorrowingsTableName(tableName string) Option {
	return func(s *Store) error {
		if tableName == "" {
			return circulation.ErrEmptyTableNameSupplied
		}

		s.borrowingsTable = tableName

		return nil
	}
}

// WithPaymentsTableName sets the table name for payments.
func WithPaymentsTableName(tableName string) Option {
	return func(s *Store) error {
		if tableName == "" {
			return circulation.ErrEmptyTableNameSupplied
		}

		s.paymentsTable = tableName

		return nil
	}
}

// WithLogger sets the logger for the Store.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: SQL statements with execution timing (development use)
// Info level: Operation results, durations, concurrency conflicts (production-safe)
// Warn level: Non-critical issues like rollback or cleanup failures
// Error level: Critical failures that cause operation failures.
func WithLogger(logger circulation.Logger) Option {
	return func(s *Store) error {
		s.logger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Store.
// It receives operation durations, returned row counts, concurrency conflicts and database errors.
// A circulation.ContextualMetricsCollector is used with context for trace correlation.
func WithMetrics(collector circulation.MetricsCollector) Option {
	return func(s *Store) error {
		s.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the Store.
// Every public operation is wrapped in one span.
func WithTracing(collector circulation.TracingCollector) Option {
	return func(s *Store) error {
		s.tracingCollector = collector
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the Store.
// It receives the same messages as the Logger, with the context for automatic trace/span correlation.
func WithContextualLogger(logger circulation.ContextualLogger) Option {
	return func(s *Store) error {
		s.contextualLogger = logger
		return nil
	}
}
