package postgresengine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

const (
	operationAddBook             = "add_book"
	operationBookByID            = "book_by_id"
	operationOpenBorrowing       = "open_borrowing"
	operationCloseBorrowing      = "close_borrowing"
	operationBorrowingByID       = "borrowing_by_id"
	operationListBorrowings      = "list_borrowings"
	operationAddPayment          = "add_payment"
	operationPaymentByID         = "payment_by_id"
	operationPaymentBySessionID  = "payment_by_session_id"
	operationListPayments        = "list_payments"
	operationTransitionPayment   = "transition_payment_status"
	metricOperationDuration      = "circulationstore_operation_duration_seconds"
	metricRowsTotal              = "circulationstore_rows_total"
	metricConcurrencyConflicts   = "circulationstore_concurrency_conflicts_total"
	metricDatabaseErrors         = "circulationstore_database_errors_total"
	spanNamePrefix               = "circulationstore."
	spanAttrOperation            = "operation"
	spanAttrRecordID             = "record_id"
	spanAttrRowCount             = "row_count"
	spanAttrErrorType            = "error_type"
	spanAttrDurationMS           = "duration_ms"
	labelStatus                  = "status"
	labelConflictType            = "conflict_type"
	conflictTypeOptimistic       = "optimistic"
	statusSuccess                = "success"
	statusError                  = "error"
	errorTypeConcurrencyConflict = "concurrency_conflict"
	errorTypeNotFound            = "not_found"
	errorTypeBuildQuery          = "build_query"
	errorTypeDatabaseQuery       = "database_query"
	errorTypeDatabaseExec        = "database_exec"
	errorTypeRowScan             = "row_scan"
	errorTypeTransaction         = "transaction"
	errorTypeUnknown             = "unknown"
)

// classifyError maps a store error to the error_type label used in metrics and spans.
func classifyError(err error) string {
	switch {
	case errors.Is(err, circulation.ErrConcurrencyConflict):
		return errorTypeConcurrencyConflict
	case errors.Is(err, circulation.ErrRecordNotFound):
		return errorTypeNotFound
	case errors.Is(err, circulation.ErrBuildingQueryFailed):
		return errorTypeBuildQuery
	case errors.Is(err, circulation.ErrQueryingFailed):
		return errorTypeDatabaseQuery
	case errors.Is(err, circulation.ErrExecutingStatementFailed),
		errors.Is(err, circulation.ErrGettingRowsAffectedFailed):
		return errorTypeDatabaseExec
	case errors.Is(err, circulation.ErrScanningDBRowFailed):
		return errorTypeRowScan
	case errors.Is(err, circulation.ErrBeginningTransactionFailed),
		errors.Is(err, circulation.ErrCommittingTransactionFailed):
		return errorTypeTransaction
	default:
		return errorTypeUnknown
	}
}

// logQueryWithDuration logs SQL statements with execution time at debug level if a logger is configured.
func (s *Store) logQueryWithDuration(
	ctx context.Context,
	sqlQuery string,
	action string,
	duration time.Duration,
) {

	if s.logger != nil {
		s.logger.Debug(logMsgSQLExecuted+action, logAttrDurationMS, s.toMilliseconds(duration), logAttrQuery, sqlQuery)
	}

	if s.contextualLogger != nil {
		s.contextualLogger.DebugContext(ctx, logMsgSQLExecuted+action, logAttrDurationMS, s.toMilliseconds(duration), logAttrQuery, sqlQuery)
	}
}

// logOperation logs operational information at info level if a logger is configured.
func (s *Store) logOperation(ctx context.Context, action string, args ...any) {
	if s.logger != nil {
		s.logger.Info(logMsgOperation+action, args...)
	}

	if s.contextualLogger != nil {
		s.contextualLogger.InfoContext(ctx, logMsgOperation+action, args...)
	}
}

// logWarn logs non-critical failures at warn level if a logger is configured.
func (s *Store) logWarn(ctx context.Context, message string, err error) {
	if s.logger != nil {
		s.logger.Warn(message, logAttrError, err.Error())
	}

	if s.contextualLogger != nil {
		s.contextualLogger.WarnContext(ctx, message, logAttrError, err.Error())
	}
}

// logError logs error information at the error level if a logger is configured.
func (s *Store) logError(
	ctx context.Context,
	message string,
	err error,
	args ...any,
) {

	allArgs := []any{logAttrError, err.Error()}
	allArgs = append(allArgs, args...)

	if s.logger != nil {
		s.logger.Error(message, allArgs...)
	}

	if s.contextualLogger != nil {
		s.contextualLogger.ErrorContext(ctx, message, allArgs...)
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func (s *Store) toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

// recordDurationMetrics records duration metrics with context if the collector supports it.
func (s *Store) recordDurationMetrics(ctx context.Context, duration time.Duration, operation, status string) {
	if s.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		spanAttrOperation: operation,
		labelStatus:       status,
	}

	if contextualCollector, ok := s.metricsCollector.(circulation.ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, metricOperationDuration, duration, labels)
		return
	}

	s.metricsCollector.RecordDuration(metricOperationDuration, duration, labels)
}

// recordValueMetrics records value metrics with context if the collector supports it.
func (s *Store) recordValueMetrics(ctx context.Context, metricName string, value float64, operation, status string) {
	if s.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		spanAttrOperation: operation,
		labelStatus:       status,
	}

	if contextualCollector, ok := s.metricsCollector.(circulation.ContextualMetricsCollector); ok {
		contextualCollector.RecordValueContext(ctx, metricName, value, labels)
		return
	}

	s.metricsCollector.RecordValue(metricName, value, labels)
}

// incrementCounterMetrics increments a counter with context if the collector supports it.
func (s *Store) incrementCounterMetrics(ctx context.Context, metricName string, labels map[string]string) {
	if s.metricsCollector == nil {
		return
	}

	if contextualCollector, ok := s.metricsCollector.(circulation.ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metricName, labels)
		return
	}

	s.metricsCollector.IncrementCounter(metricName, labels)
}

// startTraceSpan starts a tracing span if the tracing collector is configured.
func (s *Store) startTraceSpan(
	ctx context.Context,
	name string,
	attrs map[string]string,
) (context.Context, circulation.SpanContext) {

	if s.tracingCollector != nil {
		return s.tracingCollector.StartSpan(ctx, name, attrs)
	}

	return ctx, nil
}

// finishTraceSpan finishes a tracing span if the tracing collector is configured.
func (s *Store) finishTraceSpan(span circulation.SpanContext, status string, attrs map[string]string) {
	if s.tracingCollector != nil && span != nil {
		s.tracingCollector.FinishSpan(span, status, attrs)
	}
}

// === Operation Observer Pattern ===
// One observer per public store operation bundles its span, metrics and completion log.

type operationObserver struct {
	s         *Store
	ctx       context.Context
	span      circulation.SpanContext
	operation string
	start     time.Time
}

// startObserving starts the span for an operation and returns the context carrying it.
func (s *Store) startObserving(ctx context.Context, operation, recordID string) (*operationObserver, context.Context) {
	attrs := map[string]string{spanAttrOperation: operation}
	if recordID != "" {
		attrs[spanAttrRecordID] = recordID
	}

	ctx, span := s.startTraceSpan(ctx, spanNamePrefix+operation, attrs)

	return &operationObserver{
		s:         s,
		ctx:       ctx,
		span:      span,
		operation: operation,
		start:     time.Now(),
	}, ctx
}

// finishSuccess logs, measures and closes the span of a successful operation.
func (o *operationObserver) finishSuccess(rowCount int) {
	duration := time.Since(o.start)

	o.s.logOperation(
		o.ctx,
		o.operation+logMsgOperationCompleted,
		logAttrDurationMS, o.s.toMilliseconds(duration),
		logAttrRowCount, rowCount,
	)

	o.s.recordDurationMetrics(o.ctx, duration, o.operation, statusSuccess)
	o.s.recordValueMetrics(o.ctx, metricRowsTotal, float64(rowCount), o.operation, statusSuccess)

	if o.span != nil {
		o.span.SetStatus(statusSuccess)
		o.span.AddAttribute(spanAttrRowCount, fmt.Sprintf("%d", rowCount))
		o.span.AddAttribute(spanAttrDurationMS, fmt.Sprintf("%.2f", o.s.toMilliseconds(duration)))
	}

	o.s.finishTraceSpan(o.span, statusSuccess, map[string]string{spanAttrRowCount: fmt.Sprintf("%d", rowCount)})
}

// finishError measures and closes the span of a failed operation.
// Conflicts and missing records are expected outcomes and do not count as database errors.
func (o *operationObserver) finishError(err error) {
	duration := time.Since(o.start)
	errorType := classifyError(err)

	o.s.recordDurationMetrics(o.ctx, duration, o.operation, statusError)

	switch errorType {
	case errorTypeConcurrencyConflict:
		o.s.incrementCounterMetrics(o.ctx, metricConcurrencyConflicts, map[string]string{
			spanAttrOperation: o.operation,
			labelConflictType: conflictTypeOptimistic,
		})

	case errorTypeNotFound:

	default:
		o.s.incrementCounterMetrics(o.ctx, metricDatabaseErrors, map[string]string{
			spanAttrOperation: o.operation,
			labelStatus:       statusError,
			spanAttrErrorType: errorType,
		})
	}

	if o.span != nil {
		o.span.SetStatus(statusError)
		o.span.AddAttribute(spanAttrErrorType, errorType)
		o.span.AddAttribute(spanAttrDurationMS, fmt.Sprintf("%.2f", o.s.toMilliseconds(duration)))
	}

	o.s.finishTraceSpan(o.span, statusError, map[string]string{spanAttrErrorType: errorType})
}
