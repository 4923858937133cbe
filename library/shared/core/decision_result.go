package core

// DecisionResult is the outcome of a Decide function: the change to apply, or the business rule
// that was violated, or nothing at all if the state already is as requested.
//
// Construct it only with IdempotentDecision, SuccessDecision or ErrorDecision.
type DecisionResult[T any] struct {
	Outcome string // "idempotent", "success", or "error"
	Change  T      // zero value unless the outcome is success
	Err     error
}

const (
	idempotentOutcome = "idempotent"
	successOutcome    = "success"
	errorOutcome      = "error"
)

// IdempotentDecision indicates that no state change is needed.
func IdempotentDecision[T any]() DecisionResult[T] {
	return DecisionResult[T]{Outcome: idempotentOutcome}
}

// SuccessDecision carries the change the shell has to persist.
func SuccessDecision[T any](change T) DecisionResult[T] {
	return DecisionResult[T]{Outcome: successOutcome, Change: change}
}

// ErrorDecision carries the violated business rule.
func ErrorDecision[T any](err error) DecisionResult[T] {
	return DecisionResult[T]{Outcome: errorOutcome, Err: err}
}

// HasChangeToApply returns true if there is a change to persist.
func (r DecisionResult[T]) HasChangeToApply() bool {
	return r.Outcome == successOutcome
}

// IsIdempotent returns true if nothing has to be done.
func (r DecisionResult[T]) IsIdempotent() bool {
	return r.Outcome == idempotentOutcome
}

// HasError returns the error if there is one, otherwise nil.
func (r DecisionResult[T]) HasError() error {
	if r.Outcome == errorOutcome {
		return r.Err
	}

	return nil
}
