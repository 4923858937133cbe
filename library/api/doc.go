// Package api exposes the circulation use cases over HTTP with chi.
//
// Handlers translate requests into commands and queries, run them through the (observable) handlers
// and render JSON. The acting identity comes from access.Authenticate, the use cases decide
// whether it may do what it asks for. Errors are mapped to status codes in one place, see writeError.
package api
