package borrowings

import (
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

// Borrowings represents the query result, oldest borrowing first.
type Borrowings struct {
	Borrowings []core.Borrowing
	Count      int
}
