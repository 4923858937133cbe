package returnborrowing

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
	CloseBorrowing(ctx context.Context, change circulation.ReturnChange) (int, error)
}

const logMsgAbandonedSession = "returnborrowing: checkout session created but not stored"

// Result is the returned borrowing, the payment created for it (nil if the return was free)
// and the number of copies on the shelf afterward.
type Result struct {
	Borrowing core.Borrowing
	Payment   *core.Payment
	BooksLeft int
}

// CommandHandler orchestrates the complete command processing workflow with pure business logic and retry.
// It handles the core workflow: Read -> Decide -> Checkout -> Write -> Notify.
type CommandHandler struct {
	store        Store
	checkout     shell.CheckoutProvider
	checkoutURLs shell.CheckoutURLs
	notifier     shell.Notifier
	logger       shell.Logger
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

// WithNotifier sets the Notifier which is told about every payment created by a return.
func WithNotifier(notifier shell.Notifier) Option {
	return func(h *CommandHandler) {
		h.notifier = notifier
	}
}

// WithLogger sets the Logger which records checkout sessions that were created but never stored,
// for example when a concurrent return won the race.
func WithLogger(logger shell.Logger) Option {
	return func(h *CommandHandler) {
		h.logger = logger
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
//
// The checkout session is created at most once per call, also if the write has to be retried.
func (h CommandHandler) Handle(ctx context.Context, command Command) (Result, shell.HandlerResult, error) {
	var (
		result  Result
		session *shell.CheckoutSession
	)

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		var execErr error
		result, execErr = h.executeCommand(retryCtx, command, &session)

		return execErr
	}, h.retryOptions...)

	if err != nil {
		h.logAbandonedSession(command, session, err)

		return Result{}, shell.NewErrorResult(retryMetrics), err
	}

	if result.Payment != nil {
		shell.NotifyAfterCommit(ctx, h.notifier, shell.PaymentCreatedMessage(*result.Payment))
	}

	return result, shell.NewSuccessResult(retryMetrics), nil
}

// executeCommand contains the core command processing logic that can be retried.
func (h CommandHandler) executeCommand(
	ctx context.Context,
	command Command,
	session **shell.CheckoutSession,
) (Result, error) {

	ctx = circulation.WithStrongConsistency(ctx)

	// Read phase
	borrowing, book, err := shell.ReadBorrowingAndBook(ctx, h.store, command.BorrowingID.String())
	if err != nil {
		return Result{}, err
	}

	// Business logic phase - delegate to pure core function
	decision := Decide(borrowing, book, command)

	if decisionErr := decision.HasError(); decisionErr != nil {
		return Result{}, decisionErr
	}

	change := circulation.ReturnChange{
		BorrowingID:      borrowing.BorrowingID.String(),
		BookID:           book.BookID.String(),
		ActualReturnDate: *decision.Change.Borrowing.ActualReturnDate,
	}

	var payment *core.Payment

	// Checkout phase - nothing is written if the provider fails
	if decision.Change.RequiresPayment() {
		if *session == nil {
			created, checkoutErr := h.checkout.CreateSession(
				ctx,
				book.Title,
				core.ToMinorUnits(decision.Change.AmountOwed),
				h.checkoutURLs.SuccessTemplate,
				h.checkoutURLs.Cancel,
			)

			if checkoutErr != nil {
				return Result{}, errors.Join(core.ErrPaymentProviderError, checkoutErr)
			}

			*session = &created
		}

		payment = &core.Payment{
			PaymentID:   command.PaymentID,
			BorrowingID: borrowing.BorrowingID,
			Status:      core.PaymentPending,
			Type:        decision.Change.PaymentType,
			SessionURL:  (*session).SessionURL,
			SessionID:   (*session).SessionID,
			MoneyToPay:  decision.Change.AmountOwed,
			UserID:      borrowing.UserID,
		}

		storablePayment, mappingErr := shell.StorablePaymentFrom(*payment)
		if mappingErr != nil {
			return Result{}, mappingErr
		}

		change.Payment = &storablePayment
	}

	// Write phase
	booksLeft, err := h.store.CloseBorrowing(ctx, change)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Borrowing: decision.Change.Borrowing,
		Payment:   payment,
		BooksLeft: booksLeft,
	}, nil
}

// logAbandonedSession reports a session that exists at the provider without a stored payment.
func (h CommandHandler) logAbandonedSession(command Command, session *shell.CheckoutSession, err error) {
	if session == nil || h.logger == nil {
		return
	}

	h.logger.Warn(
		logMsgAbandonedSession,
		"borrowing_id", command.BorrowingID.String(),
		"session_id", session.SessionID,
		shell.LogAttrError, err.Error(),
	)
}
