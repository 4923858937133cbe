package cancelpayment

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell"
)

// Message is shown to the payer after a cancelled checkout.
const Message = "Payment was cancelled. Please complete the payment within 24 hours."

// Result is the acknowledgment of a cancelled checkout.
type Result struct {
	Outcome core.PaymentOutcome
	Message string
}

// CommandHandler acknowledges cancelled checkouts. It has no dependencies and never fails.
type CommandHandler struct{}

// NewCommandHandler creates a new CommandHandler.
func NewCommandHandler() CommandHandler {
	return CommandHandler{}
}

// Handle returns core.PaymentCancelled. Nothing is written, so the result is always idempotent.
func (h CommandHandler) Handle(ctx context.Context, _ Command) (Result, shell.HandlerResult, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, shell.NewErrorResult(shell.SingleAttemptMetrics(err)), err
	}

	return Result{
		Outcome: core.PaymentCancelled,
		Message: Message,
	}, shell.NewIdempotentResult(shell.SingleAttemptMetrics(nil)), nil
}
