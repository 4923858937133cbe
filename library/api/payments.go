package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/library/access"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/cancelpayment"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/reconcilepayment"
	"github.com/AntonStoeckl/library-circulation-go/library/features/query/paymentdetail"
	"github.com/AntonStoeckl/library-circulation-go/library/features/query/payments"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

const (
	msgPaymentSuccessful = "Payment Successful!"
	msgPaymentFailed     = "Payment Failed."
)

func (s *Server) listPayments(w http.ResponseWriter, r *http.Request) {
	query := payments.BuildQuery(access.ActorFrom(r.Context()))

	if raw := r.URL.Query().Get("borrowing_id"); raw != "" {
		borrowingID, err := uuid.Parse(raw)
		if err != nil {
			s.writeError(w, r, errors.Join(ErrInvalidRequest, err))
			return
		}

		query = query.ForBorrowing(borrowingID)
	}

	result, err := s.handlers.Payments.Handle(r.Context(), query)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	response := paymentListResponse{
		Count:   result.Count,
		Results: make([]paymentListItem, 0, len(result.Payments)),
	}

	for _, payment := range result.Payments {
		response.Results = append(response.Results, paymentListItem{
			ID:         payment.PaymentID.String(),
			Status:     string(payment.Status),
			SessionURL: payment.SessionURL,
			MoneyToPay: payment.MoneyToPay.StringFixed(2),
		})
	}

	writeJSON(w, http.StatusOK, response)
}

func (s *Server) paymentDetail(w http.ResponseWriter, r *http.Request) {
	paymentID, err := uuidParam(r, "id", core.ErrUnknownPayment)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	payment, err := s.handlers.PaymentDetail.Handle(r.Context(), paymentdetail.BuildQuery(access.ActorFrom(r.Context()), paymentID))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toPaymentResponse(payment))
}

// paymentSuccess is the redirect target of the checkout provider, so it needs no token.
func (s *Server) paymentSuccess(w http.ResponseWriter, r *http.Request) {
	command := reconcilepayment.BuildCommand(chi.URLParam(r, "session_id"))

	outcome, _, err := s.handlers.ReconcilePayment.Handle(r.Context(), command)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	message := msgPaymentFailed
	if outcome == core.PaymentSuccessful {
		message = msgPaymentSuccessful
	}

	writeJSON(w, http.StatusOK, messageResponse{Outcome: string(outcome), Message: message})
}

func (s *Server) paymentCancelled(w http.ResponseWriter, r *http.Request) {
	result, _, err := s.handlers.CancelPayment.Handle(r.Context(), cancelpayment.BuildCommand())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Outcome: string(result.Outcome), Message: result.Message})
}
