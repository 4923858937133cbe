package observable_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell/observable"
	. "github.com/AntonStoeckl/library-circulation-go/testutil/helper" //nolint:revive
)

type fakeCommand struct{}

func (c fakeCommand) CommandType() string { return "FakeCommand" }

type fakeCommandHandler struct {
	result        string
	handlerResult shell.HandlerResult
	err           error
	calls         int
}

func (h *fakeCommandHandler) Handle(_ context.Context, _ fakeCommand) (string, shell.HandlerResult, error) {
	h.calls++
	return h.result, h.handlerResult, h.err
}

func newWrapper(
	t *testing.T,
	handler *fakeCommandHandler,
	opts ...observable.CommandOption[fakeCommand, string],
) *observable.CommandWrapper[fakeCommand, string] {

	t.Helper()

	wrapper, err := observable.NewCommandWrapper[fakeCommand, string](handler, opts...)
	require.NoError(t, err, "error in arranging test data")

	return wrapper
}

func Test_CommandWrapper_Handle_Success_RecordsEverything(t *testing.T) {
	// arrange
	handler := &fakeCommandHandler{result: "done", handlerResult: shell.HandlerResult{RetryAttempts: 1, LastErrorType: "none"}}
	metricsCollector := NewMetricsCollectorSpy(true)
	tracingCollector := NewTracingCollectorSpy(true)
	contextualLogger := NewContextualLoggerSpy(true)

	wrapper := newWrapper(t, handler,
		observable.WithCommandMetrics[fakeCommand, string](metricsCollector),
		observable.WithCommandTracing[fakeCommand, string](tracingCollector),
		observable.WithCommandContextualLogging[fakeCommand, string](contextualLogger),
	)

	// act
	result, handlerResult, err := wrapper.Handle(t.Context(), fakeCommand{})

	// assert
	require.NoError(t, err)
	assert.Equal(t, "done", result)
	assert.Equal(t, handler.handlerResult, handlerResult)
	assert.Equal(t, 1, handler.calls)

	assert.True(t, metricsCollector.HasDurationRecordForMetric(shell.CommandHandlerDurationMetric).
		WithCommandType("FakeCommand").
		WithStatus(shell.StatusSuccess).
		Assert())
	assert.True(t, metricsCollector.HasCounterRecordForMetric(shell.CommandHandlerCallsMetric).
		WithStatus(shell.StatusSuccess).
		Assert())
	assert.Zero(t, metricsCollector.CountCounterRecordsForMetric(shell.CommandHandlerRetriesMetric))

	assert.True(t, tracingCollector.HasSpanRecordForName(shell.SpanNameCommandHandle).
		WithStartAttribute(shell.LogAttrCommandType, "FakeCommand").
		WithStatus(shell.StatusSuccess).
		WithEndAttributeKey(shell.LogAttrDurationMS).
		Assert())

	assert.True(t, contextualLogger.HasInfoLog(shell.LogMsgCommandStarted))
	assert.True(t, contextualLogger.HasLogWithArg(shell.LogMsgCommandCompleted, shell.LogAttrBusinessOutcome, shell.StatusSuccess))
}

func Test_CommandWrapper_Handle_Idempotent_RecordsIdempotentCounter(t *testing.T) {
	// arrange
	handler := &fakeCommandHandler{handlerResult: shell.HandlerResult{Idempotent: true, RetryAttempts: 1}}
	metricsCollector := NewMetricsCollectorSpy(true)
	wrapper := newWrapper(t, handler, observable.WithCommandMetrics[fakeCommand, string](metricsCollector))

	// act
	_, _, err := wrapper.Handle(t.Context(), fakeCommand{})

	// assert
	require.NoError(t, err)
	assert.True(t, metricsCollector.HasCounterRecordForMetric(shell.CommandHandlerIdempotentMetric).
		WithCommandType("FakeCommand").
		WithStatus(shell.StatusIdempotent).
		Assert())
}

func Test_CommandWrapper_Handle_WithRetries_RecordsRetryMetrics(t *testing.T) {
	// arrange
	handler := &fakeCommandHandler{handlerResult: shell.HandlerResult{
		RetryAttempts:   3,
		TotalRetryDelay: 15 * time.Millisecond,
		LastErrorType:   "none",
	}}
	metricsCollector := NewMetricsCollectorSpy(true)
	wrapper := newWrapper(t, handler, observable.WithCommandMetrics[fakeCommand, string](metricsCollector))

	// act
	_, _, err := wrapper.Handle(t.Context(), fakeCommand{})

	// assert
	require.NoError(t, err)
	assert.True(t, metricsCollector.HasCounterRecordForMetric(shell.CommandHandlerRetriesMetric).
		WithCommandType("FakeCommand").
		WithLabel(shell.LabelAttemptNumber, "2").
		Assert())
	assert.True(t, metricsCollector.HasDurationRecordForMetric(shell.CommandHandlerRetryDelayMetric).
		WithCommandType("FakeCommand").
		Assert())
	assert.Zero(t, metricsCollector.CountCounterRecordsForMetric(shell.CommandHandlerMaxRetriesReachedMetric))
}

func Test_CommandWrapper_Handle_ErrorOutcomes(t *testing.T) {
	testCases := []struct {
		name            string
		err             error
		expectedStatus  string
		outcomeMetric   string
		expectedMessage string
		errorLevel      bool
	}{
		{
			name:            "business rule violation",
			err:             core.ErrInventoryExhausted,
			expectedStatus:  shell.StatusRejected,
			outcomeMetric:   shell.CommandHandlerRejectedMetric,
			expectedMessage: shell.LogMsgCommandRejected,
		},
		{
			name:            "canceled",
			err:             context.Canceled,
			expectedStatus:  shell.StatusCanceled,
			outcomeMetric:   shell.CommandHandlerCanceledMetric,
			expectedMessage: shell.LogMsgCommandFailed,
			errorLevel:      true,
		},
		{
			name:            "timeout",
			err:             context.DeadlineExceeded,
			expectedStatus:  shell.StatusTimeout,
			outcomeMetric:   shell.CommandHandlerTimeoutMetric,
			expectedMessage: shell.LogMsgCommandFailed,
			errorLevel:      true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			handler := &fakeCommandHandler{handlerResult: shell.HandlerResult{RetryAttempts: 1}, err: tc.err}
			metricsCollector := NewMetricsCollectorSpy(true)
			tracingCollector := NewTracingCollectorSpy(true)
			contextualLogger := NewContextualLoggerSpy(true)

			wrapper := newWrapper(t, handler,
				observable.WithCommandMetrics[fakeCommand, string](metricsCollector),
				observable.WithCommandTracing[fakeCommand, string](tracingCollector),
				observable.WithCommandContextualLogging[fakeCommand, string](contextualLogger),
			)

			// act
			_, _, err := wrapper.Handle(t.Context(), fakeCommand{})

			// assert
			assert.ErrorIs(t, err, tc.err)
			assert.True(t, metricsCollector.HasCounterRecordForMetric(shell.CommandHandlerCallsMetric).
				WithStatus(tc.expectedStatus).
				Assert())
			assert.True(t, metricsCollector.HasCounterRecordForMetric(tc.outcomeMetric).Assert())
			assert.True(t, tracingCollector.HasSpanRecordForName(shell.SpanNameCommandHandle).
				WithStatus(tc.expectedStatus).
				WithEndAttribute(shell.LogAttrError, tc.err.Error()).
				Assert())

			if tc.errorLevel {
				assert.True(t, contextualLogger.HasErrorLog(tc.expectedMessage))
			} else {
				assert.True(t, contextualLogger.HasInfoLog(tc.expectedMessage))
			}
		})
	}
}

func Test_CommandWrapper_Handle_ExhaustedRetries(t *testing.T) {
	// arrange
	conflict := errors.New("still conflicting")
	handler := &fakeCommandHandler{
		handlerResult: shell.HandlerResult{RetryAttempts: 6, RetriesExhausted: true, LastErrorType: "concurrency_conflict"},
		err:           conflict,
	}
	metricsCollector := NewMetricsCollectorSpy(true)
	wrapper := newWrapper(t, handler, observable.WithCommandMetrics[fakeCommand, string](metricsCollector))

	// act
	_, handlerResult, err := wrapper.Handle(t.Context(), fakeCommand{})

	// assert
	assert.ErrorIs(t, err, conflict)
	assert.True(t, handlerResult.RetriesExhausted)
	assert.True(t, metricsCollector.HasCounterRecordForMetric(shell.CommandHandlerMaxRetriesReachedMetric).
		WithLabel(shell.LabelFinalErrorType, "concurrency_conflict").
		Assert())
	assert.True(t, metricsCollector.HasCounterRecordForMetric(shell.CommandHandlerCallsMetric).
		WithStatus(shell.StatusError).
		Assert())
}

func Test_CommandWrapper_Handle_WithBasicLogger(t *testing.T) {
	// arrange
	logHandler := NewLogHandlerSpy(false)
	handler := &fakeCommandHandler{handlerResult: shell.HandlerResult{RetryAttempts: 1}}
	wrapper := newWrapper(t, handler, observable.WithCommandLogging[fakeCommand, string](slog.New(logHandler)))

	// act
	_, _, err := wrapper.Handle(t.Context(), fakeCommand{})

	// assert
	require.NoError(t, err)
	assert.True(t, logHandler.HasInfoLogWithMessage(shell.LogMsgCommandStarted).Assert())
	assert.True(t, logHandler.HasInfoLogWithMessage(shell.LogMsgCommandCompleted).WithDurationMS().Assert())
}

func Test_CommandWrapper_Handle_WithoutObservability(t *testing.T) {
	// arrange
	handler := &fakeCommandHandler{result: "plain"}
	wrapper := newWrapper(t, handler)

	// act
	result, _, err := wrapper.Handle(t.Context(), fakeCommand{})

	// assert
	require.NoError(t, err)
	assert.Equal(t, "plain", result)
}
