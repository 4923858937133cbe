package checkout_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/library/checkout"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell"
)

const (
	secretKey       = "sk_test_123"
	successTemplate = "http://localhost:8000/api/payments/payment-success/{CHECKOUT_SESSION_ID}/"
	cancelURL       = "http://localhost:8000/api/payments/payment-cancelled/"
)

func Test_Client_CreateSession_PostsFormAndReturnsSession(t *testing.T) {
	// arrange
	var captured *http.Request

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		captured = r

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cs_123","url":"https://pay.test/cs_123","payment_status":"unpaid"}`))
	}))
	defer server.Close()

	client := checkout.NewClient(server.URL, secretKey)

	// act
	session, err := client.CreateSession(t.Context(), "Dune", 3335, successTemplate, cancelURL)

	// assert
	require.NoError(t, err)
	assert.Equal(t, shell.CheckoutSession{SessionID: "cs_123", SessionURL: "https://pay.test/cs_123"}, session)

	require.NotNil(t, captured)
	assert.Equal(t, http.MethodPost, captured.Method)
	assert.Equal(t, "/v1/checkout/sessions", captured.URL.Path)
	assert.Equal(t, "Bearer "+secretKey, captured.Header.Get("Authorization"))
	assert.Equal(t, "payment", captured.PostForm.Get("mode"))
	assert.Equal(t, "usd", captured.PostForm.Get("line_items[0][price_data][currency]"))
	assert.Equal(t, "Dune", captured.PostForm.Get("line_items[0][price_data][product_data][name]"))
	assert.Equal(t, "3335", captured.PostForm.Get("line_items[0][price_data][unit_amount]"))
	assert.Equal(t, successTemplate, captured.PostForm.Get("success_url"))
	assert.Equal(t, cancelURL, captured.PostForm.Get("cancel_url"))
}

func Test_Client_CreateSession_BuildsSessionURL_WhenResponseHasNone(t *testing.T) {
	// arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id":"cs_456"}`))
	}))
	defer server.Close()

	client := checkout.NewClient(server.URL, secretKey, checkout.WithPayURLBase("https://checkout.stripe.com/pay/"))

	// act
	session, err := client.CreateSession(t.Context(), "Dune", 115, successTemplate, cancelURL)

	// assert
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.stripe.com/pay/cs_456", session.SessionURL)
}

func Test_Client_CreateSession_Fails(t *testing.T) {
	testCases := []struct {
		name      string
		status    int
		body      string
		expectErr error
	}{
		{name: "error status", status: http.StatusBadRequest, body: `{"error":{"message":"bad"}}`, expectErr: checkout.ErrRequestFailed},
		{name: "broken json", status: http.StatusOK, body: `{"id":`, expectErr: checkout.ErrUnexpectedResponse},
		{name: "no session id", status: http.StatusOK, body: `{}`, expectErr: checkout.ErrUnexpectedResponse},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer server.Close()

			// act
			_, err := checkout.NewClient(server.URL, secretKey).CreateSession(t.Context(), "Dune", 115, successTemplate, cancelURL)

			// assert
			assert.ErrorIs(t, err, tc.expectErr)
		})
	}
}

func Test_Client_SessionStatus(t *testing.T) {
	testCases := []struct {
		name         string
		body         string
		expectStatus shell.SessionStatus
	}{
		{name: "paid", body: `{"id":"cs_1","payment_status":"paid"}`, expectStatus: shell.SessionPaid},
		{name: "unpaid", body: `{"id":"cs_1","payment_status":"unpaid"}`, expectStatus: shell.SessionUnpaid},
		{name: "no payment required", body: `{"id":"cs_1","payment_status":"no_payment_required"}`, expectStatus: shell.SessionUnpaid},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			var requestedPath string

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				requestedPath = r.URL.Path
				_, _ = w.Write([]byte(tc.body))
			}))
			defer server.Close()

			// act
			status, err := checkout.NewClient(server.URL, secretKey).SessionStatus(t.Context(), "cs_1")

			// assert
			require.NoError(t, err)
			assert.Equal(t, tc.expectStatus, status)
			assert.Equal(t, "/v1/checkout/sessions/cs_1", requestedPath)
		})
	}
}

func Test_Client_SessionStatus_Fails_WhenServerIsDown(t *testing.T) {
	// arrange
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	// act
	_, err := checkout.NewClient(url, secretKey).SessionStatus(t.Context(), "cs_1")

	// assert
	assert.ErrorIs(t, err, checkout.ErrRequestFailed)
}
