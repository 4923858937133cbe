package memoryengine

import (
	"context"
	"slices"
	"sync"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

const (
	operationOpenBorrowing     = "open_borrowing"
	operationCloseBorrowing    = "close_borrowing"
	operationTransitionPayment = "transition_payment_status"
	logMsgOperation            = "circulationstore operation: "
	logMsgConcurrencyConflict  = "concurrency conflict detected"
	logAttrOperation           = "operation"
	logAttrRecordID            = "record_id"
)

// Option defines a functional option for configuring the Store.
type Option func(*Store)

// WithLogger sets the logger for the Store, which reports concurrency conflicts at info level.
func WithLogger(logger circulation.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// Store keeps books, borrowings and payments in maps.
// The zero value is not usable, create it with NewStore.
type Store struct {
	mu              sync.RWMutex
	books           map[string]circulation.StorableBook
	borrowings      map[string]circulation.StorableBorrowing
	borrowingsOrder []string
	payments        map[string]circulation.StorablePayment
	paymentsOrder   []string
	logger          circulation.Logger
}

// NewStore creates an empty Store.
func NewStore(options ...Option) *Store {
	s := &Store{
		books:      make(map[string]circulation.StorableBook),
		borrowings: make(map[string]circulation.StorableBorrowing),
		payments:   make(map[string]circulation.StorablePayment),
	}

	for _, option := range options {
		option(s)
	}

	return s
}

// AddBook inserts a book. An existing id is rejected with circulation.ErrExecutingStatementFailed.
func (s *Store) AddBook(ctx context.Context, book circulation.StorableBook) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.books[book.BookID]; exists {
		return circulation.ErrExecutingStatementFailed
	}

	s.books[book.BookID] = book

	return nil
}

// BookByID reads one book. Returns circulation.ErrRecordNotFound if it does not exist.
func (s *Store) BookByID(ctx context.Context, bookID string) (circulation.StorableBook, error) {
	if err := ctx.Err(); err != nil {
		return circulation.StorableBook{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	book, ok := s.books[bookID]
	if !ok {
		return circulation.StorableBook{}, circulation.ErrRecordNotFound
	}

	return book, nil
}

// OpenBorrowing takes one copy out of the inventory and stores the open borrowing.
// Returns circulation.ErrConcurrencyConflict without writing anything if no copy is left.
func (s *Store) OpenBorrowing(ctx context.Context, borrowing circulation.StorableBorrowing) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	book, ok := s.books[borrowing.BookID]
	if !ok || book.Inventory <= 0 {
		s.logConflict(operationOpenBorrowing, borrowing.BookID)
		return 0, circulation.ErrConcurrencyConflict
	}

	if _, exists := s.borrowings[borrowing.BorrowingID]; exists {
		return 0, circulation.ErrExecutingStatementFailed
	}

	book.Inventory--
	s.books[book.BookID] = book

	borrowing.ActualReturnDate = nil
	borrowing.BookTitle = ""
	s.borrowings[borrowing.BorrowingID] = borrowing
	s.borrowingsOrder = append(s.borrowingsOrder, borrowing.BorrowingID)

	return book.Inventory, nil
}

// CloseBorrowing sets the actual return date, puts one copy back and stores the optional payment.
// Returns circulation.ErrConcurrencyConflict without writing anything if the borrowing is not open.
func (s *Store) CloseBorrowing(ctx context.Context, change circulation.ReturnChange) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	borrowing, ok := s.borrowings[change.BorrowingID]
	if !ok || !borrowing.IsOpen() {
		s.logConflict(operationCloseBorrowing, change.BorrowingID)
		return 0, circulation.ErrConcurrencyConflict
	}

	book, ok := s.books[change.BookID]
	if !ok {
		return 0, circulation.ErrRecordNotFound
	}

	if change.Payment != nil {
		if _, exists := s.payments[change.Payment.PaymentID]; exists {
			return 0, circulation.ErrExecutingStatementFailed
		}
	}

	returnedAt := change.ActualReturnDate
	borrowing.ActualReturnDate = &returnedAt
	s.borrowings[borrowing.BorrowingID] = borrowing

	book.Inventory++
	s.books[book.BookID] = book

	if change.Payment != nil {
		s.insertPayment(*change.Payment)
	}

	return book.Inventory, nil
}

// BorrowingByID reads one borrowing including the title of its book.
func (s *Store) BorrowingByID(ctx context.Context, borrowingID string) (circulation.StorableBorrowing, error) {
	if err := ctx.Err(); err != nil {
		return circulation.StorableBorrowing{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	borrowing, ok := s.borrowings[borrowingID]
	if !ok {
		return circulation.StorableBorrowing{}, circulation.ErrRecordNotFound
	}

	return s.withTitle(borrowing), nil
}

// ListBorrowings reads all borrowings matching the filter in insertion order.
func (s *Store) ListBorrowings(
	ctx context.Context,
	filter circulation.BorrowingFilter,
) (circulation.StorableBorrowings, error) {

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(circulation.StorableBorrowings, 0)

	for _, id := range s.borrowingsOrder {
		borrowing := s.borrowings[id]
		if filter.Matches(borrowing) {
			result = append(result, s.withTitle(borrowing))
		}
	}

	return result, nil
}

// AddPayment stores a payment of an existing borrowing.
func (s *Store) AddPayment(ctx context.Context, payment circulation.StorablePayment) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.borrowings[payment.BorrowingID]; !ok {
		return circulation.ErrExecutingStatementFailed
	}

	if _, exists := s.payments[payment.PaymentID]; exists {
		return circulation.ErrExecutingStatementFailed
	}

	s.insertPayment(payment)

	return nil
}

// PaymentByID reads one payment. Returns circulation.ErrRecordNotFound if it does not exist.
func (s *Store) PaymentByID(ctx context.Context, paymentID string) (circulation.StorablePayment, error) {
	if err := ctx.Err(); err != nil {
		return circulation.StorablePayment{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	payment, ok := s.payments[paymentID]
	if !ok {
		return circulation.StorablePayment{}, circulation.ErrRecordNotFound
	}

	return s.withOwner(payment), nil
}

// PaymentBySessionID reads the first payment created for the checkout session.
func (s *Store) PaymentBySessionID(ctx context.Context, sessionID string) (circulation.StorablePayment, error) {
	if err := ctx.Err(); err != nil {
		return circulation.StorablePayment{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := slices.IndexFunc(s.paymentsOrder, func(id string) bool {
		return s.payments[id].SessionID == sessionID
	})

	if sessionID == "" || idx < 0 {
		return circulation.StorablePayment{}, circulation.ErrRecordNotFound
	}

	return s.withOwner(s.payments[s.paymentsOrder[idx]]), nil
}

// TransitionPaymentStatus sets the status of a payment, but only if it currently has fromStatus.
func (s *Store) TransitionPaymentStatus(ctx context.Context, paymentID, fromStatus, toStatus string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	payment, ok := s.payments[paymentID]
	if !ok || payment.Status != fromStatus {
		s.logConflict(operationTransitionPayment, paymentID)
		return circulation.ErrConcurrencyConflict
	}

	payment.Status = toStatus
	s.payments[paymentID] = payment

	return nil
}

// ListPayments reads all payments matching the filter in insertion order.
func (s *Store) ListPayments(ctx context.Context, filter circulation.PaymentFilter) (circulation.StorablePayments, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(circulation.StorablePayments, 0)

	for _, id := range s.paymentsOrder {
		payment := s.withOwner(s.payments[id])
		if filter.Matches(payment) {
			result = append(result, payment)
		}
	}

	return result, nil
}

// insertPayment must be called with the write lock held.
func (s *Store) insertPayment(payment circulation.StorablePayment) {
	payment.UserID = ""
	s.payments[payment.PaymentID] = payment
	s.paymentsOrder = append(s.paymentsOrder, payment.PaymentID)
}

func (s *Store) withTitle(borrowing circulation.StorableBorrowing) circulation.StorableBorrowing {
	borrowing.BookTitle = s.books[borrowing.BookID].Title

	if borrowing.ActualReturnDate != nil {
		returnedAt := *borrowing.ActualReturnDate
		borrowing.ActualReturnDate = &returnedAt
	}

	return borrowing
}

func (s *Store) withOwner(payment circulation.StorablePayment) circulation.StorablePayment {
	payment.UserID = s.borrowings[payment.BorrowingID].UserID

	return payment
}

func (s *Store) logConflict(operation, recordID string) {
	if s.logger != nil {
		s.logger.Info(logMsgOperation+logMsgConcurrencyConflict, logAttrOperation, operation, logAttrRecordID, recordID)
	}
}
