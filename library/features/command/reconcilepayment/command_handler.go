package reconcilepayment

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell"
)

// Store defines the interface needed by the CommandHandler for store operations.
type Store interface {
	PaymentBySessionID(ctx context.Context, sessionID string) (circulation.StorablePayment, error)
	TransitionPaymentStatus(ctx context.Context, paymentID, fromStatus, toStatus string) error
}

// CommandHandler orchestrates the complete command processing workflow with pure business logic and retry.
// It handles the core workflow: Read -> Ask Provider -> Decide -> Write.
type CommandHandler struct {
	store        Store
	checkout     shell.CheckoutProvider
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
func NewCommandHandler(store Store, checkout shell.CheckoutProvider, opts ...Option) CommandHandler {
	handler := CommandHandler{
		store:    store,
		checkout: checkout,
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle executes the complete command processing workflow with retry logic.
// Returns the outcome for the payer and HandlerResult with execution metadata for observability.
// A Failed outcome is not an error.
func (h CommandHandler) Handle(ctx context.Context, command Command) (core.PaymentOutcome, shell.HandlerResult, error) {
	var (
		outcome      core.PaymentOutcome
		isIdempotent bool
	)

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		var execErr error
		outcome, isIdempotent, execErr = h.executeCommand(retryCtx, command)

		return execErr
	}, h.retryOptions...)

	if err != nil {
		return "", shell.NewErrorResult(retryMetrics), err
	}

	if isIdempotent {
		return outcome, shell.NewIdempotentResult(retryMetrics), nil
	}

	return outcome, shell.NewSuccessResult(retryMetrics), nil
}

// executeCommand contains the core command processing logic that can be retried.
func (h CommandHandler) executeCommand(ctx context.Context, command Command) (core.PaymentOutcome, bool, error) {
	ctx = circulation.WithStrongConsistency(ctx)

	// Read phase
	storablePayment, err := h.store.PaymentBySessionID(ctx, command.SessionID)
	if errors.Is(err, circulation.ErrRecordNotFound) {
		return "", false, errors.Join(core.ErrPaymentNotFound, err)
	}

	if err != nil {
		return "", false, err
	}

	payment, err := shell.PaymentFrom(storablePayment)
	if err != nil {
		return "", false, err
	}

	// Provider phase - a paid payment needs no confirmation
	sessionPaid := false

	if !payment.IsPaid() {
		status, statusErr := h.checkout.SessionStatus(ctx, command.SessionID)
		if statusErr != nil {
			return "", false, errors.Join(core.ErrPaymentProviderError, statusErr)
		}

		sessionPaid = status == shell.SessionPaid
	}

	// Business logic phase - delegate to pure core function
	outcome, decision := Decide(payment, sessionPaid)

	if !decision.HasChangeToApply() {
		return outcome, true, nil
	}

	// Write phase
	err = h.store.TransitionPaymentStatus(
		ctx,
		storablePayment.PaymentID,
		string(payment.Status),
		string(decision.Change),
	)

	if err != nil {
		return "", false, err
	}

	return outcome, false, nil
}
