package payments

import (
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

// Payments represents the query result in creation order.
type Payments struct {
	Payments []core.Payment
	Count    int
}
