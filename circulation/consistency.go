package circulation

import "context"

// ConsistencyLevel defines the read consistency requirements for store operations.
type ConsistencyLevel int

const (
	// StrongConsistency requires reads from the primary database.
	// Command handlers read-check-write and must see the latest inventory and borrowing state.
	StrongConsistency ConsistencyLevel = iota

	// EventualConsistency allows reads from a replica database.
	// Suitable for list and detail queries that can tolerate slightly stale rows.
	EventualConsistency
)

type contextKey string

// ConsistencyLevelKey is the context key used to store consistency level preferences.
const ConsistencyLevelKey contextKey = "circulation.consistency_level"

// WithStrongConsistency returns a context that signals store reads must hit the primary database.
//
// Example usage:
//
//	ctx = circulation.WithStrongConsistency(ctx)
//	book, err := store.BookByID(ctx, bookID)
func WithStrongConsistency(ctx context.Context) context.Context {
	return context.WithValue(ctx, ConsistencyLevelKey, StrongConsistency)
}

// WithEventualConsistency returns a context that signals store reads may use a replica.
//
// Example usage:
//
//	ctx = circulation.WithEventualConsistency(ctx)
//	borrowings, err := store.ListBorrowings(ctx, filter)
func WithEventualConsistency(ctx context.Context) context.Context {
	return context.WithValue(ctx, ConsistencyLevelKey, EventualConsistency)
}

// GetConsistencyLevel extracts the consistency level from the context.
// Without an explicit level it returns StrongConsistency.
func GetConsistencyLevel(ctx context.Context) ConsistencyLevel {
	if level, ok := ctx.Value(ConsistencyLevelKey).(ConsistencyLevel); ok {
		return level
	}

	return StrongConsistency
}

// String provides a string representation of ConsistencyLevel for logging and debugging.
func (c ConsistencyLevel) String() string {
	switch c {
	case StrongConsistency:
		return "strong"
	case EventualConsistency:
		return "eventual"
	default:
		return "unknown"
	}
}
