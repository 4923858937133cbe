package api

import (
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

type addBookRequest struct {
	ID        string `json:"id" validate:"omitempty,uuid"`
	Title     string `json:"title" validate:"required,max=255"`
	Author    string `json:"author" validate:"max=255"`
	Cover     string `json:"cover" validate:"required,oneof=Hard Soft"`
	Inventory *int   `json:"inventory" validate:"required,gte=0"`
	DailyFee  string `json:"daily_fee" validate:"required,numeric"`
}

type borrowBookRequest struct {
	ID                 string `json:"id" validate:"omitempty,uuid"`
	BookID             string `json:"book_id" validate:"required,uuid"`
	BorrowDate         string `json:"borrow_date" validate:"omitempty,datetime=2006-01-02"`
	ExpectedReturnDate string `json:"expected_return_date" validate:"required,datetime=2006-01-02"`
}

type returnBorrowingRequest struct {
	ActualReturnDate string `json:"actual_return_date" validate:"omitempty,datetime=2006-01-02"`
}

type bookResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Cover     string `json:"cover"`
	Inventory int    `json:"inventory"`
	DailyFee  string `json:"daily_fee"`
}

func toBookResponse(book core.Book) bookResponse {
	return bookResponse{
		ID:        book.BookID.String(),
		Title:     book.Title,
		Author:    book.Author,
		Cover:     string(book.Cover),
		Inventory: book.Inventory,
		DailyFee:  book.DailyFee.StringFixed(2),
	}
}

type borrowingResponse struct {
	ID                 string  `json:"id"`
	BookID             string  `json:"book_id"`
	BookTitle          string  `json:"book_title"`
	UserID             string  `json:"user_id"`
	BorrowDate         string  `json:"borrow_date"`
	ExpectedReturnDate string  `json:"expected_return_date"`
	ActualReturnDate   *string `json:"actual_return_date"`
}

func toBorrowingResponse(borrowing core.Borrowing) borrowingResponse {
	response := borrowingResponse{
		ID:                 borrowing.BorrowingID.String(),
		BookID:             borrowing.BookID.String(),
		BookTitle:          borrowing.BookTitle,
		UserID:             borrowing.UserID,
		BorrowDate:         core.FormatDate(borrowing.BorrowDate),
		ExpectedReturnDate: core.FormatDate(borrowing.ExpectedReturnDate),
	}

	if borrowing.ActualReturnDate != nil {
		returned := core.FormatDate(*borrowing.ActualReturnDate)
		response.ActualReturnDate = &returned
	}

	return response
}

type borrowingCreatedResponse struct {
	Borrowing borrowingResponse `json:"borrowing"`
	BooksLeft int               `json:"books_left"`
}

type borrowingListResponse struct {
	Count   int                 `json:"count"`
	Results []borrowingResponse `json:"results"`
}

type paymentListItem struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	SessionURL string `json:"session_url"`
	MoneyToPay string `json:"money_to_pay"`
}

type paymentResponse struct {
	ID          string `json:"id"`
	BorrowingID string `json:"borrowing_id"`
	Status      string `json:"status"`
	Type        string `json:"type"`
	SessionURL  string `json:"session_url"`
	SessionID   string `json:"session_id"`
	MoneyToPay  string `json:"money_to_pay"`
}

func toPaymentResponse(payment core.Payment) paymentResponse {
	return paymentResponse{
		ID:          payment.PaymentID.String(),
		BorrowingID: payment.BorrowingID.String(),
		Status:      string(payment.Status),
		Type:        string(payment.Type),
		SessionURL:  payment.SessionURL,
		SessionID:   payment.SessionID,
		MoneyToPay:  payment.MoneyToPay.StringFixed(2),
	}
}

func toPaymentResponsePtr(payment *core.Payment) *paymentResponse {
	if payment == nil {
		return nil
	}

	response := toPaymentResponse(*payment)

	return &response
}

type paymentListResponse struct {
	Count   int               `json:"count"`
	Results []paymentListItem `json:"results"`
}

type returnResponse struct {
	Borrowing borrowingResponse `json:"borrowing"`
	Payment   *paymentResponse  `json:"payment"`
	BooksLeft int               `json:"books_left"`
}

type initiatePaymentResponse struct {
	Payment *paymentResponse `json:"payment"`
}

type messageResponse struct {
	Outcome string `json:"outcome"`
	Message string `json:"message"`
}
