package shell_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell"
	. "github.com/AntonStoeckl/library-circulation-go/testutil/helper" //nolint:revive
)

func Test_RetryWithExponentialBackoff_Success_NoRetries(t *testing.T) {
	// arrange
	callCount := 0
	fn := func(_ context.Context) error {
		callCount++
		return nil
	}

	// act
	meta, err := shell.RetryWithExponentialBackoff(t.Context(), fn)

	// assert
	assert.NoError(t, err)
	assert.Equal(t, 1, callCount)
	assert.Equal(t, 1, meta.Attempts)
	assert.Equal(t, time.Duration(0), meta.TotalDelay)
	assert.Equal(t, "none", meta.LastErrorType)
	assert.False(t, meta.RetriesExhausted)
}

func Test_RetryWithExponentialBackoff_RetryOnConcurrencyConflict(t *testing.T) {
	// arrange
	callCount := 0
	fn := func(_ context.Context) error {
		callCount++
		if callCount < 3 {
			return circulation.ErrConcurrencyConflict
		}

		return nil
	}

	// act
	meta, err := shell.RetryWithExponentialBackoff(t.Context(), fn, shell.WithBaseDelay(time.Millisecond))

	// assert
	assert.NoError(t, err)
	assert.Equal(t, 3, callCount)
	assert.Equal(t, 3, meta.Attempts)
	assert.Greater(t, meta.TotalDelay, time.Duration(0))
	assert.Equal(t, "none", meta.LastErrorType)
}

func Test_RetryWithExponentialBackoff_DoesNotRetryBusinessErrors(t *testing.T) {
	// arrange
	callCount := 0
	fn := func(_ context.Context) error {
		callCount++
		return core.ErrInventoryExhausted
	}

	// act
	meta, err := shell.RetryWithExponentialBackoff(t.Context(), fn)

	// assert
	assert.ErrorIs(t, err, core.ErrInventoryExhausted)
	assert.Equal(t, 1, callCount)
	assert.Equal(t, "other", meta.LastErrorType)
}

func Test_RetryWithExponentialBackoff_ExhaustsRetries_AndRecordsMetrics(t *testing.T) {
	// arrange
	metricsCollector := NewMetricsCollectorSpy(true)
	callCount := 0
	fn := func(_ context.Context) error {
		callCount++
		return errors.Join(circulation.ErrConcurrencyConflict, errors.New("row was taken"))
	}

	// act
	meta, err := shell.RetryWithExponentialBackoff(
		t.Context(),
		fn,
		shell.WithMaxAttempts(3),
		shell.WithBaseDelay(time.Millisecond),
		shell.WithJitterFactor(0),
		shell.WithMetrics(metricsCollector, "BorrowBook"),
	)

	// assert
	assert.ErrorIs(t, err, circulation.ErrConcurrencyConflict)
	assert.Equal(t, 3, callCount)
	assert.Equal(t, 3, meta.Attempts)
	assert.True(t, meta.RetriesExhausted)
	assert.Equal(t, "concurrency_conflict", meta.LastErrorType)
	assert.Equal(t, 3*time.Millisecond, meta.TotalDelay)

	assert.Equal(t, 2, metricsCollector.CountCounterRecordsForMetric(shell.CommandHandlerRetriesMetric))
	assert.True(t, metricsCollector.HasCounterRecordForMetric(shell.CommandHandlerRetriesMetric).
		WithCommandType("BorrowBook").
		WithLabel(shell.LabelAttemptNumber, "2").
		WithErrorType("concurrency_conflict").
		Assert())
	assert.Equal(t, 2, metricsCollector.CountDurationRecordsForMetric(shell.CommandHandlerRetryDelayMetric))
	assert.True(t, metricsCollector.HasCounterRecordForMetric(shell.CommandHandlerMaxRetriesReachedMetric).
		WithLabel(shell.LabelFinalErrorType, "concurrency_conflict").
		Assert())
}

func Test_RetryWithExponentialBackoff_StopsWhenContextIsCanceled(t *testing.T) {
	// arrange
	ctx, cancel := context.WithCancel(t.Context())
	callCount := 0
	fn := func(_ context.Context) error {
		callCount++
		cancel()

		return circulation.ErrConcurrencyConflict
	}

	// act
	meta, err := shell.RetryWithExponentialBackoff(ctx, fn, shell.WithBaseDelay(time.Second))

	// assert
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, callCount)
	assert.Equal(t, "context_canceled", meta.LastErrorType)
}

func Test_RetryWithExponentialBackoff_InvalidOptions(t *testing.T) {
	fn := func(_ context.Context) error { return nil }

	testCases := []struct {
		name        string
		option      shell.RetryOption
		expectedErr error
	}{
		{"max attempts zero", shell.WithMaxAttempts(0), shell.ErrInvalidMaxAttempts},
		{"negative base delay", shell.WithBaseDelay(-1 * time.Second), shell.ErrNegativeBaseDelay},
		{"jitter above one", shell.WithJitterFactor(1.5), shell.ErrInvalidJitterFactor},
		{"nil metrics collector", shell.WithMetrics(nil, "BorrowBook"), shell.ErrNilMetricsCollector},
		{"empty command type", shell.WithMetrics(NewMetricsCollectorSpy(false), ""), shell.ErrEmptyCommandType},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			_, err := shell.RetryWithExponentialBackoff(t.Context(), fn, tc.option)

			// assert
			assert.ErrorIs(t, err, tc.expectedErr)
		})
	}
}
