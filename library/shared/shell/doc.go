// Package shell is the imperative shell around the library circulation core.
//
// It converts between the storage records of the circulation package and the domain types of core,
// retries optimistic concurrency conflicts, formats notifications, and holds the contracts and
// observability helpers shared by all command and query handlers.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'infrastructure' layer.
package shell
