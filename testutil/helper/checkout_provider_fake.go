package helper

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell"
)

// ErrCheckoutProviderFake is the error the CheckoutProviderFake fails with when told to.
var ErrCheckoutProviderFake = errors.New("checkout provider fake failure")

// CreatedSession is one captured CreateSession call.
type CreatedSession struct {
	ProductName        string
	AmountMinorUnits   int64
	SuccessURLTemplate string
	CancelURL          string
	Session            shell.CheckoutSession
}

// CheckoutProviderFake creates numbered sessions in memory. It implements shell.CheckoutProvider.
// Sessions are unpaid until MarkPaid is called.
type CheckoutProviderFake struct {
	mu             sync.Mutex
	created        []CreatedSession
	paid           map[string]bool
	statusRequests int
	failCreate     bool
	failStatus     bool
}

var _ shell.CheckoutProvider = (*CheckoutProviderFake)(nil)

// NewCheckoutProviderFake creates a CheckoutProviderFake without any sessions.
func NewCheckoutProviderFake() *CheckoutProviderFake {
	return &CheckoutProviderFake{paid: make(map[string]bool)}
}

// FailCreatingSessions makes all following CreateSession calls fail with ErrCheckoutProviderFake.
func (f *CheckoutProviderFake) FailCreatingSessions() *CheckoutProviderFake {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.failCreate = true

	return f
}

// FailStatusRequests makes all following SessionStatus calls fail with ErrCheckoutProviderFake.
func (f *CheckoutProviderFake) FailStatusRequests() *CheckoutProviderFake {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.failStatus = true

	return f
}

// MarkPaid lets SessionStatus report the session as paid.
func (f *CheckoutProviderFake) MarkPaid(sessionID string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.paid[sessionID] = true
}

// CreateSession records the call and returns the session "cs_test_<n>".
func (f *CheckoutProviderFake) CreateSession(
	_ context.Context,
	productName string,
	amountMinorUnits int64,
	successURLTemplate string,
	cancelURL string,
) (shell.CheckoutSession, error) {

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failCreate {
		return shell.CheckoutSession{}, ErrCheckoutProviderFake
	}

	sessionID := fmt.Sprintf("cs_test_%d", len(f.created)+1)
	session := shell.CheckoutSession{
		SessionID:  sessionID,
		SessionURL: "https://checkout.test/pay/" + sessionID,
	}

	f.created = append(f.created, CreatedSession{
		ProductName:        productName,
		AmountMinorUnits:   amountMinorUnits,
		SuccessURLTemplate: successURLTemplate,
		CancelURL:          cancelURL,
		Session:            session,
	})

	return session, nil
}

// SessionStatus reports paid for sessions passed to MarkPaid and unpaid for all others.
func (f *CheckoutProviderFake) SessionStatus(_ context.Context, sessionID string) (shell.SessionStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.statusRequests++

	if f.failStatus {
		return "", ErrCheckoutProviderFake
	}

	if f.paid[sessionID] {
		return shell.SessionPaid, nil
	}

	return shell.SessionUnpaid, nil
}

// CreatedSessions returns a copy of all captured CreateSession calls.
func (f *CheckoutProviderFake) CreatedSessions() []CreatedSession {
	f.mu.Lock()
	defer f.mu.Unlock()

	created := make([]CreatedSession, len(f.created))
	copy(created, f.created)

	return created
}

// StatusRequestCount returns how often SessionStatus was called.
func (f *CheckoutProviderFake) StatusRequestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.statusRequests
}
