package shell

import "time"

// HandlerResult describes how a command handler execution went, independent of the business result.
type HandlerResult struct {
	// Idempotent is true if no state change was needed.
	Idempotent bool

	// RetryAttempts is the number of attempts made, 1 if the first one succeeded or failed permanently.
	RetryAttempts int

	// TotalRetryDelay is the time spent waiting between attempts.
	TotalRetryDelay time.Duration

	// LastErrorType is "none" or the category of the final error, see errorTypeOf.
	LastErrorType string

	// RetriesExhausted is true if all attempts failed with a retryable error.
	RetriesExhausted bool
}

func newHandlerResult(idempotent bool, retryMetrics RetryMetrics) HandlerResult {
	return HandlerResult{
		Idempotent:       idempotent,
		RetryAttempts:    retryMetrics.Attempts,
		TotalRetryDelay:  retryMetrics.TotalDelay,
		LastErrorType:    retryMetrics.LastErrorType,
		RetriesExhausted: retryMetrics.RetriesExhausted,
	}
}

// NewSuccessResult creates a HandlerResult for an operation which changed state.
func NewSuccessResult(retryMetrics RetryMetrics) HandlerResult {
	return newHandlerResult(false, retryMetrics)
}

// NewIdempotentResult creates a HandlerResult for an operation which found nothing to change.
func NewIdempotentResult(retryMetrics RetryMetrics) HandlerResult {
	return newHandlerResult(true, retryMetrics)
}

// NewErrorResult creates a HandlerResult for a failed operation, keeping the retry metadata.
func NewErrorResult(retryMetrics RetryMetrics) HandlerResult {
	return newHandlerResult(false, retryMetrics)
}
