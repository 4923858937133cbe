package shell

import (
	"context"
)

// Command is implemented by all command types. CommandType names the command in logs, metrics and spans.
type Command interface {
	CommandType() string
}

// Query is implemented by all query types. QueryType names the query in logs, metrics and spans.
type Query interface {
	QueryType() string
}

// CoreCommandHandler processes a command without any observability concerns.
// Besides the business result R it reports execution metadata (idempotency, retries) in HandlerResult.
type CoreCommandHandler[C Command, R any] interface {
	Handle(ctx context.Context, command C) (R, HandlerResult, error)
}

// CoreQueryHandler processes a query without any observability concerns.
type CoreQueryHandler[Q Query, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}

// Notifier accepts a text for eventual delivery. It never fails the caller;
// delivery problems are the Notifier's own business.
type Notifier interface {
	Notify(ctx context.Context, text string)
}

// CheckoutSession is the handle of one payment attempt at the checkout provider.
type CheckoutSession struct {
	SessionID  string
	SessionURL string
}

// SessionStatus is the payment state of a checkout session as reported by the provider.
type SessionStatus string

const (
	SessionPaid   SessionStatus = "paid"
	SessionUnpaid SessionStatus = "unpaid"
)

// CheckoutProvider creates checkout sessions and reports their payment status.
// successURLTemplate may contain the {CHECKOUT_SESSION_ID} placeholder which the provider fills in.
type CheckoutProvider interface {
	CreateSession(
		ctx context.Context,
		productName string,
		amountMinorUnits int64,
		successURLTemplate string,
		cancelURL string,
	) (CheckoutSession, error)

	SessionStatus(ctx context.Context, sessionID string) (SessionStatus, error)
}

// CheckoutURLs are the pages the checkout provider redirects to after a payment attempt.
type CheckoutURLs struct {
	// SuccessTemplate contains {CHECKOUT_SESSION_ID}, replaced by the provider.
	SuccessTemplate string
	Cancel          string
}
