// Package core contains the domain model of the library circulation:
// books with their inventory, borrowings and the payments for them.
//
// Everything in here is pure. There is no IO, no clock and no randomness;
// ids and dates are passed in by the shell. The feature slices call into this package
// from their Decide functions.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'domain' layer.
package core
