package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation/postgresengine"
	"github.com/AntonStoeckl/library-circulation-go/library/access"
	"github.com/AntonStoeckl/library-circulation-go/library/api"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell/config"
	. "github.com/AntonStoeckl/library-circulation-go/testutil/helper" //nolint:revive
)

const testSecret = "wiring-test-secret"

func testConfig() config.AppConfig {
	return config.AppConfig{
		HTTPAddr:           ":0",
		DBAdapter:          config.AdapterSQLDB,
		JWTSecret:          testSecret,
		CheckoutAPIURL:     "http://checkout.invalid",
		CheckoutSuccessURL: "http://localhost/api/payments/payment-success/{CHECKOUT_SESSION_ID}/",
		CheckoutCancelURL:  "http://localhost/api/payments/payment-cancelled/",
		NotifierWorkers:    1,
		RateLimitRPS:       100,
		RateLimitBurst:     100,
		ShutdownTimeout:    time.Second,
	}
}

type wiredServer struct {
	server           *http.Server
	metrics          *MetricsCollectorSpy
	tracing          *TracingCollectorSpy
	contextualLogger *ContextualLoggerSpy
}

// setupWiredServer wires the production handlers and router around a store that is never queried.
func setupWiredServer(t *testing.T) wiredServer {
	t.Helper()

	cfg := testConfig()
	logger := slog.New(NewLogHandlerSpy(false))

	wired := wiredServer{
		metrics:          NewMetricsCollectorSpy(true),
		tracing:          NewTracingCollectorSpy(true),
		contextualLogger: NewContextualLoggerSpy(true),
	}

	obs := &observability{
		metrics:          wired.metrics,
		tracing:          wired.tracing,
		contextualLogger: wired.contextualLogger,
	}

	store, err := postgresengine.NewStoreFromSQLDB(&sql.DB{}, obs.storeOptions(logger)...)
	require.NoError(t, err, "error in arranging test data")

	dispatcher, closeQueue := startNotifier(cfg, logger, obs)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		_ = dispatcher.Shutdown(ctx)
		closeQueue()
	})

	handlers, err := buildHandlers(store, newCheckoutProvider(cfg, logger), dispatcher, cfg, logger, obs)
	require.NoError(t, err, "error in arranging test data")

	wired.server, err = newHTTPServer(cfg, handlers, logger)
	require.NoError(t, err, "error in arranging test data")

	return wired
}

func (w wiredServer) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	w.server.Handler.ServeHTTP(rec, req)

	return rec
}

func Test_NewHTTPServer_ServesTheWiredRouter(t *testing.T) {
	// arrange
	wired := setupWiredServer(t)

	verifier, err := access.NewVerifier(testSecret)
	require.NoError(t, err, "error in arranging test data")

	staffToken, err := verifier.Issue(core.Actor{UserID: "1", IsStaff: true}, time.Hour)
	require.NoError(t, err, "error in arranging test data")

	// act
	health := wired.do(t, http.MethodGet, "/healthz", "", "")
	anonymous := wired.do(t, http.MethodGet, "/api/borrowings", "", "")
	malformed := wired.do(t, http.MethodPost, "/api/books", staffToken, `{"title":`)
	cancelled := wired.do(t, http.MethodGet, "/api/payments/payment-cancelled/", "", "")

	// assert
	assert.Equal(t, ":0", wired.server.Addr)
	assert.Equal(t, readHeaderTimeout, wired.server.ReadHeaderTimeout)
	assert.Equal(t, http.StatusOK, health.Code)
	assert.Equal(t, http.StatusUnauthorized, anonymous.Code)
	assert.Equal(t, http.StatusBadRequest, malformed.Code, "the token signed with the configured secret is accepted")
	assert.Equal(t, http.StatusOK, cancelled.Code)
}

func Test_BuildHandlers_WrapsCommandsWithObservability(t *testing.T) {
	// arrange
	wired := setupWiredServer(t)

	// act
	rec := wired.do(t, http.MethodGet, "/api/payments/payment-cancelled", "", "")

	// assert
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, wired.metrics.HasCounterRecordForMetric(shell.CommandHandlerCallsMetric).
		WithCommandType("CancelPayment").
		Assert(), "should count the command call")
	assert.Equal(t, 1, wired.tracing.CountSpanRecordsForName(shell.SpanNameCommandHandle))
	assert.True(t, wired.contextualLogger.HasInfoLog(shell.LogMsgCommandStarted))
	assert.Positive(t, wired.contextualLogger.TotalRecordCount())
}

func Test_NewHTTPServer_ShouldFail_WithEmptySecret(t *testing.T) {
	// arrange
	cfg := testConfig()
	cfg.JWTSecret = ""

	// act
	_, err := newHTTPServer(cfg, api.Handlers{}, slog.New(NewLogHandlerSpy(false)))

	// assert
	assert.ErrorIs(t, err, access.ErrEmptySecret)
}

func Test_SetupObservability_WithoutEndpoint_OnlyLogs(t *testing.T) {
	// act
	obs, err := setupObservability(t.Context(), testConfig())

	// assert
	require.NoError(t, err)
	assert.Nil(t, obs.providers)
	assert.Nil(t, obs.metrics)
	assert.Nil(t, obs.tracing)
	assert.Len(t, obs.storeOptions(slog.New(NewLogHandlerSpy(false))), 1)

	obs.shutdown(slog.New(NewLogHandlerSpy(false)))
}
