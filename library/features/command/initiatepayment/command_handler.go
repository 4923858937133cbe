package initiatepayment

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell"
)

// Store defines the interface needed by the CommandHandler for store operations.
type Store interface {
	BorrowingByID(ctx context.Context, borrowingID string) (circulation.StorableBorrowing, error)
	BookByID(ctx context.Context, bookID string) (circulation.StorableBook, error)
	AddPayment(ctx context.Context, payment circulation.StorablePayment) error
}

// Result is the created payment, or nil if nothing was owed.
type Result struct {
	Payment *core.Payment
}

// CommandHandler orchestrates the complete command processing workflow with pure business logic and retry.
// It handles the core workflow: Read -> Decide -> Checkout -> Write -> Notify.
type CommandHandler struct {
	store        Store
	checkout     shell.CheckoutProvider
	checkoutURLs shell.CheckoutURLs
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

// WithNotifier sets the Notifier which is told about every created payment.
func WithNotifier(notifier shell.Notifier) Option {
	return func(h *CommandHandler) {
		h.notifier = notifier
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(
	store Store,
	checkout shell.CheckoutProvider,
	checkoutURLs shell.CheckoutURLs,
	opts ...Option,
) CommandHandler {

	handler := CommandHandler{
		store:        store,
		checkout:     checkout,
		checkoutURLs: checkoutURLs,
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle executes the complete command processing workflow with retry logic.
// Returns HandlerResult containing business outcomes and execution metadata for observability.
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
		return Result{}, shell.NewIdempotentResult(retryMetrics), nil
	}

	shell.NotifyAfterCommit(ctx, h.notifier, shell.PaymentCreatedMessage(*result.Payment))

	return result, shell.NewSuccessResult(retryMetrics), nil
}

// executeCommand contains the core command processing logic that can be retried.
func (h CommandHandler) executeCommand(ctx context.Context, command Command) (Result, bool, error) {
	ctx = circulation.WithStrongConsistency(ctx)

	// Read phase
	borrowing, book, err := shell.ReadBorrowingAndBook(ctx, h.store, command.BorrowingID.String())
	if err != nil {
		return Result{}, false, err
	}

	// Business logic phase - delegate to pure core function
	decision := Decide(borrowing, book, command)

	if decisionErr := decision.HasError(); decisionErr != nil {
		return Result{}, false, decisionErr
	}

	if decision.IsIdempotent() {
		return Result{}, true, nil
	}

	// Checkout phase
	session, err := h.checkout.CreateSession(
		ctx,
		book.Title,
		core.ToMinorUnits(decision.Change.Amount),
		h.checkoutURLs.SuccessTemplate,
		h.checkoutURLs.Cancel,
	)

	if err != nil {
		return Result{}, false, errors.Join(core.ErrPaymentProviderError, err)
	}

	// Write phase
	payment := core.Payment{
		PaymentID:   command.PaymentID,
		BorrowingID: borrowing.BorrowingID,
		Status:      core.PaymentPending,
		Type:        decision.Change.PaymentType,
		SessionURL:  session.SessionURL,
		SessionID:   session.SessionID,
		MoneyToPay:  decision.Change.Amount,
		UserID:      borrowing.UserID,
	}

	storablePayment, err := shell.StorablePaymentFrom(payment)
	if err != nil {
		return Result{}, false, err
	}

	if err = h.store.AddPayment(ctx, storablePayment); err != nil {
		return Result{}, false, err
	}

	return Result{Payment: &payment}, false, nil
}
