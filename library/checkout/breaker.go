package checkout

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell"
)

const (
	breakerName                = "checkout"
	defaultConsecutiveFailures = 5
	defaultOpenTimeout         = 30 * time.Second
	logMsgBreakerStateChanged  = "checkout circuit breaker state changed"
	logAttrFrom                = "from"
	logAttrTo                  = "to"
)

// ErrCircuitOpen is returned while the breaker rejects calls without reaching the provider.
var ErrCircuitOpen = errors.New("checkout circuit breaker is open")

// BreakerOption defines a functional option for configuring the BreakerProvider.
type BreakerOption func(*gobreaker.Settings)

// WithConsecutiveFailures sets after how many consecutive failures the breaker opens.
func WithConsecutiveFailures(failures uint32) BreakerOption {
	return func(s *gobreaker.Settings) {
		s.ReadyToTrip = func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		}
	}
}

// WithOpenTimeout sets how long the breaker stays open before it lets a probe call through.
func WithOpenTimeout(timeout time.Duration) BreakerOption {
	return func(s *gobreaker.Settings) {
		s.Timeout = timeout
	}
}

// WithStateChangeLogger logs every state change of the breaker at warn level.
func WithStateChangeLogger(logger shell.Logger) BreakerOption {
	return func(s *gobreaker.Settings) {
		s.OnStateChange = func(_ string, from gobreaker.State, to gobreaker.State) {
			logger.Warn(logMsgBreakerStateChanged, logAttrFrom, from.String(), logAttrTo, to.String())
		}
	}
}

// BreakerProvider is a shell.CheckoutProvider which guards another provider with a circuit breaker.
// Errors of the wrapped provider and rejected calls are both wrapped in core.ErrPaymentProviderError.
type BreakerProvider struct {
	next    shell.CheckoutProvider
	breaker *gobreaker.CircuitBreaker
}

// NewBreakerProvider wraps next. By default the breaker opens after 5 consecutive failures for 30 seconds.
func NewBreakerProvider(next shell.CheckoutProvider, options ...BreakerOption) *BreakerProvider {
	settings := gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Timeout:     defaultOpenTimeout,
	}

	WithConsecutiveFailures(defaultConsecutiveFailures)(&settings)

	for _, option := range options {
		option(&settings)
	}

	return &BreakerProvider{
		next:    next,
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

// CreateSession delegates to the wrapped provider unless the breaker is open.
func (p *BreakerProvider) CreateSession(
	ctx context.Context,
	productName string,
	amountMinorUnits int64,
	successURLTemplate string,
	cancelURL string,
) (shell.CheckoutSession, error) {

	result, err := p.breaker.Execute(func() (interface{}, error) {
		return p.next.CreateSession(ctx, productName, amountMinorUnits, successURLTemplate, cancelURL)
	})

	if err != nil {
		return shell.CheckoutSession{}, p.wrap(err)
	}

	return result.(shell.CheckoutSession), nil //nolint:forcetypeassert
}

// SessionStatus delegates to the wrapped provider unless the breaker is open.
func (p *BreakerProvider) SessionStatus(ctx context.Context, sessionID string) (shell.SessionStatus, error) {
	result, err := p.breaker.Execute(func() (interface{}, error) {
		return p.next.SessionStatus(ctx, sessionID)
	})

	if err != nil {
		return "", p.wrap(err)
	}

	return result.(shell.SessionStatus), nil //nolint:forcetypeassert
}

// State reports the current breaker state, e.g. "closed" or "open".
func (p *BreakerProvider) State() string {
	return p.breaker.State().String()
}

func (p *BreakerProvider) wrap(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return errors.Join(core.ErrPaymentProviderError, ErrCircuitOpen, err)
	}

	if errors.Is(err, core.ErrPaymentProviderError) {
		return err
	}

	return errors.Join(core.ErrPaymentProviderError, err)
}
