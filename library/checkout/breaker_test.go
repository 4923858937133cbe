package checkout_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/library/checkout"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell"
	. "github.com/AntonStoeckl/library-circulation-go/testutil/helper" //nolint:revive
)

func Test_BreakerProvider_PassesThrough_WhileClosed(t *testing.T) {
	// arrange
	fake := NewCheckoutProviderFake()
	provider := checkout.NewBreakerProvider(fake)

	// act
	session, err := provider.CreateSession(t.Context(), "Dune", 115, successTemplate, cancelURL)
	require.NoError(t, err)
	fake.MarkPaid(session.SessionID)
	status, statusErr := provider.SessionStatus(t.Context(), session.SessionID)

	// assert
	require.NoError(t, statusErr)
	assert.Equal(t, shell.SessionPaid, status)
	assert.Equal(t, "closed", provider.State())
	assert.Len(t, fake.CreatedSessions(), 1)
}

func Test_BreakerProvider_WrapsProviderErrors(t *testing.T) {
	// arrange
	provider := checkout.NewBreakerProvider(NewCheckoutProviderFake().FailStatusRequests())

	// act
	_, err := provider.SessionStatus(t.Context(), "cs_1")

	// assert
	assert.ErrorIs(t, err, core.ErrPaymentProviderError)
	assert.ErrorIs(t, err, ErrCheckoutProviderFake)
	assert.NotErrorIs(t, err, checkout.ErrCircuitOpen)
}

func Test_BreakerProvider_Opens_AfterConsecutiveFailures_AndStopsCallingTheProvider(t *testing.T) {
	// arrange
	logHandler := NewLogHandlerSpy(false)
	fake := NewCheckoutProviderFake().FailStatusRequests()
	provider := checkout.NewBreakerProvider(
		fake,
		checkout.WithConsecutiveFailures(2),
		checkout.WithOpenTimeout(time.Hour),
		checkout.WithStateChangeLogger(slog.New(logHandler)),
	)

	for range 2 {
		_, err := provider.SessionStatus(t.Context(), "cs_1")
		require.ErrorIs(t, err, ErrCheckoutProviderFake, "error in arranging test data")
	}

	// act
	_, err := provider.SessionStatus(t.Context(), "cs_1")

	// assert
	assert.ErrorIs(t, err, core.ErrPaymentProviderError)
	assert.ErrorIs(t, err, checkout.ErrCircuitOpen)
	assert.Equal(t, "open", provider.State())
	assert.Equal(t, 2, fake.StatusRequestCount())
	assert.True(t, logHandler.HasWarnLogWithMessage("checkout circuit breaker state changed").
		WithAttribute("to", "open").Assert())
}
