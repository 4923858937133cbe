package observable_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell/observable"
	. "github.com/AntonStoeckl/library-circulation-go/testutil/helper" //nolint:revive
)

type fakeQuery struct{}

func (q fakeQuery) QueryType() string { return "FakeQuery" }

type fakeQueryHandler struct {
	result []string
	err    error
}

func (h fakeQueryHandler) Handle(_ context.Context, _ fakeQuery) ([]string, error) {
	return h.result, h.err
}

func Test_QueryWrapper_Handle_Success(t *testing.T) {
	// arrange
	metricsCollector := NewMetricsCollectorSpy(true)
	tracingCollector := NewTracingCollectorSpy(true)
	contextualLogger := NewContextualLoggerSpy(true)

	wrapper, err := observable.NewQueryWrapper[fakeQuery, []string](
		fakeQueryHandler{result: []string{"a", "b"}},
		observable.WithQueryMetrics[fakeQuery, []string](metricsCollector),
		observable.WithQueryTracing[fakeQuery, []string](tracingCollector),
		observable.WithQueryContextualLogging[fakeQuery, []string](contextualLogger),
	)
	require.NoError(t, err, "error in arranging test data")

	// act
	result, err := wrapper.Handle(t.Context(), fakeQuery{})

	// assert
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, result)
	assert.True(t, metricsCollector.HasDurationRecordForMetric(shell.QueryHandlerDurationMetric).
		WithQueryType("FakeQuery").
		WithStatus(shell.StatusSuccess).
		Assert())
	assert.True(t, tracingCollector.HasSpanRecordForName(shell.SpanNameQueryHandle).
		WithStartAttribute(shell.LogAttrQueryType, "FakeQuery").
		WithStatus(shell.StatusSuccess).
		Assert())
	assert.True(t, contextualLogger.HasInfoLog(shell.LogMsgQueryStarted))
	assert.True(t, contextualLogger.HasInfoLog(shell.LogMsgQueryCompleted))
}

func Test_QueryWrapper_Handle_Errors(t *testing.T) {
	testCases := []struct {
		name           string
		err            error
		expectedStatus string
		outcomeMetric  string
	}{
		{"plain error", errors.New("db down"), shell.StatusError, ""},
		{"canceled", context.Canceled, shell.StatusCanceled, shell.QueryHandlerCanceledMetric},
		{"timeout", context.DeadlineExceeded, shell.StatusTimeout, shell.QueryHandlerTimeoutMetric},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			metricsCollector := NewMetricsCollectorSpy(true)
			contextualLogger := NewContextualLoggerSpy(true)

			wrapper, err := observable.NewQueryWrapper[fakeQuery, []string](
				fakeQueryHandler{err: tc.err},
				observable.WithQueryMetrics[fakeQuery, []string](metricsCollector),
				observable.WithQueryContextualLogging[fakeQuery, []string](contextualLogger),
			)
			require.NoError(t, err, "error in arranging test data")

			// act
			_, err = wrapper.Handle(t.Context(), fakeQuery{})

			// assert
			assert.ErrorIs(t, err, tc.err)
			assert.True(t, metricsCollector.HasCounterRecordForMetric(shell.QueryHandlerCallsMetric).
				WithStatus(tc.expectedStatus).
				Assert())

			if tc.outcomeMetric != "" {
				assert.True(t, metricsCollector.HasCounterRecordForMetric(tc.outcomeMetric).Assert())
			}

			assert.True(t, contextualLogger.HasErrorLog(shell.LogMsgQueryFailed))
		})
	}
}
