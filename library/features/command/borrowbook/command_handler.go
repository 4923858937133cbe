package borrowbook

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell"
)

// Store defines the interface needed by the CommandHandler for store operations.
type Store interface {
	BookByID(ctx context.Context, bookID string) (circulation.StorableBook, error)
	BorrowingByID(ctx context.Context, borrowingID string) (circulation.StorableBorrowing, error)
	OpenBorrowing(ctx context.Context, borrowing circulation.StorableBorrowing) (int, error)
}

// Result is the borrowing that was opened (or found, for a repeated command)
// and the number of copies left on the shelf afterward.
type Result struct {
	Borrowing core.Borrowing
	BooksLeft int
}

// CommandHandler orchestrates the complete command processing workflow with pure business logic and retry.
// It handles the core workflow: Read -> Decide -> Write -> Notify.
// External wrappers handle all observability concerns.
type CommandHandler struct {
	store        Store
	notifier     shell.Notifier
	retryOptions []shell.RetryOption
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithRetryOptions sets a custom retry configuration for the handler.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

// WithNotifier sets the Notifier which is told about every new borrowing after the commit.
func WithNotifier(notifier shell.Notifier) Option {
	return func(h *CommandHandler) {
		h.notifier = notifier
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(store Store, opts ...Option) CommandHandler {
	handler := CommandHandler{
		store: store,
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle executes the complete command processing workflow with retry logic.
// Returns HandlerResult containing business outcomes and execution metadata for observability.
//
// Resilience: Implements exponential backoff retry logic for concurrency conflicts.
func (h CommandHandler) Handle(ctx context.Context, command Command) (Result, shell.HandlerResult, error) {
	var (
		result       Result
		isIdempotent bool
	)

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		var execErr error
		result, isIdempotent, execErr = h.executeCommand(retryCtx, command)

		return execErr
	}, h.retryOptions...)

	if err != nil {
		return Result{}, shell.NewErrorResult(retryMetrics), err
	}

	if isIdempotent {
		return result, shell.NewIdempotentResult(retryMetrics), nil
	}

	shell.NotifyAfterCommit(ctx, h.notifier, shell.BorrowingCreatedMessage(result.Borrowing, result.BooksLeft))

	return result, shell.NewSuccessResult(retryMetrics), nil
}

// executeCommand contains the core command processing logic that can be retried.
func (h CommandHandler) executeCommand(ctx context.Context, command Command) (Result, bool, error) {
	ctx = circulation.WithStrongConsistency(ctx)

	// Read phase
	book, err := shell.ReadBook(ctx, h.store, command.BookID.String())
	if err != nil {
		return Result{}, false, err
	}

	existing, err := h.existingBorrowing(ctx, command)
	if err != nil {
		return Result{}, false, err
	}

	// Business logic phase - delegate to pure core function
	decision := Decide(book, existing, command)

	if decisionErr := decision.HasError(); decisionErr != nil {
		return Result{}, false, decisionErr
	}

	if decision.IsIdempotent() {
		return Result{Borrowing: *existing, BooksLeft: book.Inventory}, true, nil
	}

	// Write phase
	storableBorrowing, err := shell.StorableBorrowingFrom(decision.Change)
	if err != nil {
		return Result{}, false, err
	}

	booksLeft, err := h.store.OpenBorrowing(ctx, storableBorrowing)
	if err != nil {
		return Result{}, false, err
	}

	return Result{Borrowing: decision.Change, BooksLeft: booksLeft}, false, nil
}

func (h CommandHandler) existingBorrowing(ctx context.Context, command Command) (*core.Borrowing, error) {
	storable, err := h.store.BorrowingByID(ctx, command.BorrowingID.String())
	if errors.Is(err, circulation.ErrRecordNotFound) {
		return nil, nil //nolint:nilnil // no borrowing with this id yet
	}

	if err != nil {
		return nil, err
	}

	borrowing, err := shell.BorrowingFrom(storable)
	if err != nil {
		return nil, err
	}

	return &borrowing, nil
}
