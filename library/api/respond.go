package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-circulation-go/library/access"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

const (
	logMsgRequestFailed     = "api: request failed"
	logMsgDataIntegrity     = "api: payment missing for checkout session"
	logAttrError            = "error"
	logAttrPath             = "path"
	logAttrRequestID        = "request_id"
	contentTypeJSON         = "application/json"
	headerContentType       = "Content-Type"
	msgInternalServerError  = "internal server error"
	msgMalformedRequestBody = "malformed request body"
)

var (
	// ErrMalformedRequest is returned for bodies or parameters that cannot be parsed.
	ErrMalformedRequest = errors.New("malformed request")

	// ErrInvalidRequest is returned for requests failing validation.
	ErrInvalidRequest = errors.New("invalid request")
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set(headerContentType, contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// statusFor maps an error to its HTTP status code.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrMalformedRequest),
		errors.Is(err, ErrInvalidRequest),
		errors.Is(err, core.ErrInvalidDateRange),
		errors.Is(err, core.ErrInventoryExhausted),
		errors.Is(err, core.ErrAlreadyReturned),
		errors.Is(err, core.ErrInvalidBook):
		return http.StatusBadRequest

	case errors.Is(err, core.ErrUnauthorized),
		errors.Is(err, access.ErrInvalidToken),
		errors.Is(err, access.ErrMissingToken):
		return http.StatusUnauthorized

	case errors.Is(err, core.ErrForbidden):
		return http.StatusForbidden

	case errors.Is(err, core.ErrBookNotFound),
		errors.Is(err, core.ErrBorrowingNotFound),
		errors.Is(err, core.ErrUnknownPayment):
		return http.StatusNotFound

	case errors.Is(err, core.ErrBorrowingIDTaken):
		return http.StatusConflict

	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests

	case errors.Is(err, core.ErrPaymentProviderError):
		return http.StatusBadGateway

	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err as {"error": "..."}. Server errors are logged and their details hidden.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)

	if status < http.StatusInternalServerError {
		writeJSON(w, status, errorResponse{Error: publicMessage(err)})
		return
	}

	message := logMsgRequestFailed
	if errors.Is(err, core.ErrPaymentNotFound) {
		message = logMsgDataIntegrity
	}

	if s.logger != nil {
		s.logger.Error(
			message,
			logAttrError, err.Error(),
			logAttrPath, r.URL.Path,
			logAttrRequestID, middleware.GetReqID(r.Context()),
		)
	}

	if status == http.StatusBadGateway {
		writeJSON(w, status, errorResponse{Error: core.ErrPaymentProviderError.Error()})
		return
	}

	writeJSON(w, status, errorResponse{Error: msgInternalServerError})
}

// publicMessage returns the first line of the error, which is the sentinel for joined errors.
func publicMessage(err error) string {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		if errs := joined.Unwrap(); len(errs) > 0 {
			return errs[0].Error()
		}
	}

	return err.Error()
}
