// Package borrowingdetail implements the Borrowing Detail query use case.
//
// A borrowing of another user is reported as not found to non-staff actors,
// the same way the list query hides it from them.
package borrowingdetail
