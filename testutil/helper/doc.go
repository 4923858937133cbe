// Package helper provides test doubles that capture logs, metrics and spans
// emitted by the circulation stores and the command and query handlers,
// plus fakes for the notifier and the checkout provider.
package helper
