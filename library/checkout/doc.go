// Package checkout connects the payment use cases to a Stripe-compatible checkout API.
//
// Client implements shell.CheckoutProvider over HTTP. BreakerProvider wraps any provider
// in a circuit breaker, so a failing checkout API is not hammered by every return and
// every payment attempt. All failures surface as core.ErrPaymentProviderError to the use cases.
package checkout
