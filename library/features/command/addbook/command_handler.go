package addbook

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
	AddBook(ctx context.Context, book circulation.StorableBook) error
}

// CommandHandler orchestrates the complete command processing workflow with pure business logic and retry.
// It handles the core workflow: Read -> Decide -> Write.
type CommandHandler struct {
	store        Store
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
// It returns the book as it is stored, also if it already existed.
func (h CommandHandler) Handle(ctx context.Context, command Command) (core.Book, shell.HandlerResult, error) {
	var (
		book         core.Book
		isIdempotent bool
	)

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		var execErr error
		book, isIdempotent, execErr = h.executeCommand(retryCtx, command)

		return execErr
	}, h.retryOptions...)

	if err != nil {
		return core.Book{}, shell.NewErrorResult(retryMetrics), err
	}

	if isIdempotent {
		return book, shell.NewIdempotentResult(retryMetrics), nil
	}

	return book, shell.NewSuccessResult(retryMetrics), nil
}

// executeCommand contains the core command processing logic that can be retried.
func (h CommandHandler) executeCommand(ctx context.Context, command Command) (core.Book, bool, error) {
	ctx = circulation.WithStrongConsistency(ctx)

	// Read phase
	var existing *core.Book

	found, err := shell.ReadBook(ctx, h.store, command.BookID.String())

	switch {
	case err == nil:
		existing = &found
	case !errors.Is(err, core.ErrBookNotFound):
		return core.Book{}, false, err
	}

	// Business logic phase - delegate to pure core function
	decision := Decide(existing, command)

	if decisionErr := decision.HasError(); decisionErr != nil {
		return core.Book{}, false, decisionErr
	}

	if decision.IsIdempotent() {
		return *existing, true, nil
	}

	// Write phase
	storableBook, err := shell.StorableBookFrom(decision.Change)
	if err != nil {
		return core.Book{}, false, err
	}

	if err = h.store.AddBook(ctx, storableBook); err != nil {
		return core.Book{}, false, err
	}

	return decision.Change, false, nil
}
