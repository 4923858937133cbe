package checkout

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell"
)

const (
	pathSessions       = "/v1/checkout/sessions"
	currencyUSD        = "usd"
	modePayment        = "payment"
	paymentStatusPaid  = "paid"
	defaultHTTPTimeout = 10 * time.Second
	maxErrorBodyBytes  = 512
)

var (
	// ErrRequestFailed is returned when the checkout API cannot be reached or answers with a non-2xx status.
	ErrRequestFailed = errors.New("checkout api request failed")

	// ErrUnexpectedResponse is returned when the checkout API answers with a body that cannot be used.
	ErrUnexpectedResponse = errors.New("unexpected checkout api response")
)

// ClientOption defines a functional option for configuring the Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the default HTTP client, which times out after 10 seconds.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithPayURLBase sets the base of the session URL which is used when the API response carries none.
func WithPayURLBase(payURLBase string) ClientOption {
	return func(c *Client) {
		c.payURLBase = strings.TrimRight(payURLBase, "/")
	}
}

// Client talks to a Stripe-compatible checkout sessions API.
type Client struct {
	baseURL    string
	secretKey  string
	payURLBase string
	httpClient *http.Client
}

// NewClient creates a Client for the API at baseURL, authenticating with the secret key.
func NewClient(baseURL, secretKey string, options ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		secretKey:  secretKey,
		payURLBase: "https://checkout.stripe.com/pay",
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}

	for _, option := range options {
		option(c)
	}

	return c
}

type sessionResponse struct {
	ID            string `json:"id"`
	URL           string `json:"url"`
	PaymentStatus string `json:"payment_status"`
}

// CreateSession creates a one-item card checkout session in USD.
func (c *Client) CreateSession(
	ctx context.Context,
	productName string,
	amountMinorUnits int64,
	successURLTemplate string,
	cancelURL string,
) (shell.CheckoutSession, error) {

	form := url.Values{}
	form.Set("mode", modePayment)
	form.Set("payment_method_types[0]", "card")
	form.Set("line_items[0][quantity]", "1")
	form.Set("line_items[0][price_data][currency]", currencyUSD)
	form.Set("line_items[0][price_data][product_data][name]", productName)
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(amountMinorUnits, 10))
	form.Set("success_url", successURLTemplate)
	form.Set("cancel_url", cancelURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+pathSessions, strings.NewReader(form.Encode()))
	if err != nil {
		return shell.CheckoutSession{}, errors.Join(ErrRequestFailed, err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	session, err := c.do(req)
	if err != nil {
		return shell.CheckoutSession{}, err
	}

	if session.ID == "" {
		return shell.CheckoutSession{}, fmt.Errorf("%w: session without id", ErrUnexpectedResponse)
	}

	sessionURL := session.URL
	if sessionURL == "" {
		sessionURL = c.payURLBase + "/" + session.ID
	}

	return shell.CheckoutSession{SessionID: session.ID, SessionURL: sessionURL}, nil
}

// SessionStatus reads the payment status of a checkout session.
func (c *Client) SessionStatus(ctx context.Context, sessionID string) (shell.SessionStatus, error) {
	endpoint := c.baseURL + pathSessions + "/" + url.PathEscape(sessionID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", errors.Join(ErrRequestFailed, err)
	}

	session, err := c.do(req)
	if err != nil {
		return "", err
	}

	if session.PaymentStatus == paymentStatusPaid {
		return shell.SessionPaid, nil
	}

	return shell.SessionUnpaid, nil
}

func (c *Client) do(req *http.Request) (sessionResponse, error) {
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return sessionResponse{}, errors.Join(ErrRequestFailed, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return sessionResponse{}, fmt.Errorf("%w: %s %s: %s", ErrRequestFailed, req.Method, resp.Status, strings.TrimSpace(string(body)))
	}

	var session sessionResponse
	if err = jsoniter.ConfigFastest.NewDecoder(resp.Body).Decode(&session); err != nil {
		return sessionResponse{}, errors.Join(ErrUnexpectedResponse, err)
	}

	return session, nil
}
