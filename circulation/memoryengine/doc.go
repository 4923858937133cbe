// Package memoryengine provides an in-process implementation of the circulation store.
//
// It offers the same operations and the same conflict semantics as postgresengine,
// guarded by one mutex instead of database transactions. It is meant for tests,
// property-based checks and running the service without a database.
package memoryengine
