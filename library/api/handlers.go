package api

import (
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/addbook"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/borrowbook"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/cancelpayment"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/initiatepayment"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/reconcilepayment"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/returnborrowing"
	"github.com/AntonStoeckl/library-circulation-go/library/features/query/bookdetail"
	"github.com/AntonStoeckl/library-circulation-go/library/features/query/borrowingdetail"
	"github.com/AntonStoeckl/library-circulation-go/library/features/query/borrowings"
	"github.com/AntonStoeckl/library-circulation-go/library/features/query/paymentdetail"
	"github.com/AntonStoeckl/library-circulation-go/library/features/query/payments"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell"
)

// Handlers are the use cases served by the router. Plain and observable handlers both fit.
type Handlers struct {
	AddBook          shell.CoreCommandHandler[addbook.Command, core.Book]
	BorrowBook       shell.CoreCommandHandler[borrowbook.Command, borrowbook.Result]
	ReturnBorrowing  shell.CoreCommandHandler[returnborrowing.Command, returnborrowing.Result]
	InitiatePayment  shell.CoreCommandHandler[initiatepayment.Command, initiatepayment.Result]
	ReconcilePayment shell.CoreCommandHandler[reconcilepayment.Command, core.PaymentOutcome]
	CancelPayment    shell.CoreCommandHandler[cancelpayment.Command, cancelpayment.Result]

	Borrowings      shell.CoreQueryHandler[borrowings.Query, borrowings.Borrowings]
	BorrowingDetail shell.CoreQueryHandler[borrowingdetail.Query, core.Borrowing]
	Payments        shell.CoreQueryHandler[payments.Query, payments.Payments]
	PaymentDetail   shell.CoreQueryHandler[paymentdetail.Query, core.Payment]
	BookDetail      shell.CoreQueryHandler[bookdetail.Query, core.Book]
}
