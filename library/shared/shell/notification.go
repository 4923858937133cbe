package shell

import (
	"context"
	"fmt"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

// BorrowingCreatedMessage is the notification text sent after a borrowing was committed.
func BorrowingCreatedMessage(borrowing core.Borrowing, booksLeft int) string {
	return fmt.Sprintf(
		":: New borrowing created ::\nid: %s\nbook: %s\nborrow date: %s\nborrow by: %s\nreturn date: %s\nbooks left: %d",
		borrowing.BorrowingID,
		borrowing.BookTitle,
		core.FormatDate(borrowing.BorrowDate),
		borrowing.UserID,
		core.FormatDate(borrowing.ExpectedReturnDate),
		booksLeft,
	)
}

// PaymentCreatedMessage is the notification text sent after a payment was committed.
func PaymentCreatedMessage(payment core.Payment) string {
	return fmt.Sprintf(
		"Payment created :\npayment id: %s\ntype: %s\nstatus: %s\nURL: %s\nmoney to pay: %s",
		payment.PaymentID,
		payment.Type,
		payment.Status,
		payment.SessionURL,
		payment.MoneyToPay.StringFixed(2),
	)
}

// NotifyAfterCommit hands text to the notifier if there is one. A nil Notifier disables notifications.
func NotifyAfterCommit(ctx context.Context, notifier Notifier, text string) {
	if notifier == nil {
		return
	}

	notifier.Notify(context.WithoutCancel(ctx), text)
}
