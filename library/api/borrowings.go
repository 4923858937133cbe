package api

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/library/access"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/borrowbook"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/initiatepayment"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/returnborrowing"
	"github.com/AntonStoeckl/library-circulation-go/library/features/query/borrowingdetail"
	"github.com/AntonStoeckl/library-circulation-go/library/features/query/borrowings"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

func (s *Server) listBorrowings(w http.ResponseWriter, r *http.Request) {
	query := borrowings.BuildQuery(access.ActorFrom(r.Context()), isActiveParam(r), userIDsParam(r)...)

	result, err := s.handlers.Borrowings.Handle(r.Context(), query)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	response := borrowingListResponse{
		Count:   result.Count,
		Results: make([]borrowingResponse, 0, len(result.Borrowings)),
	}

	for _, borrowing := range result.Borrowings {
		response.Results = append(response.Results, toBorrowingResponse(borrowing))
	}

	writeJSON(w, http.StatusOK, response)
}

func (s *Server) borrowBook(w http.ResponseWriter, r *http.Request) {
	actor := access.ActorFrom(r.Context())
	if !actor.IsAuthenticated() {
		s.writeError(w, r, core.ErrUnauthorized)
		return
	}

	var request borrowBookRequest
	if err := s.decodeBody(r, &request); err != nil {
		s.writeError(w, r, err)
		return
	}

	borrowingID, err := s.optionalUUID(request.ID)
	if err != nil {
		s.writeError(w, r, errors.Join(ErrInvalidRequest, err))
		return
	}

	borrowDate, err := s.optionalDate(request.BorrowDate)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	expectedReturnDate, err := s.optionalDate(request.ExpectedReturnDate)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	command := borrowbook.BuildCommand(borrowingID, uuid.MustParse(request.BookID), actor, borrowDate, expectedReturnDate)

	result, handlerResult, err := s.handlers.BorrowBook.Handle(r.Context(), command)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	status := http.StatusCreated
	if handlerResult.Idempotent {
		status = http.StatusOK
	}

	writeJSON(w, status, borrowingCreatedResponse{
		Borrowing: toBorrowingResponse(result.Borrowing),
		BooksLeft: result.BooksLeft,
	})
}

func (s *Server) borrowingDetail(w http.ResponseWriter, r *http.Request) {
	borrowingID, err := uuidParam(r, "id", core.ErrBorrowingNotFound)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	query := borrowingdetail.BuildQuery(access.ActorFrom(r.Context()), borrowingID)

	borrowing, err := s.handlers.BorrowingDetail.Handle(r.Context(), query)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toBorrowingResponse(borrowing))
}

func (s *Server) returnBorrowing(w http.ResponseWriter, r *http.Request) {
	borrowingID, err := uuidParam(r, "id", core.ErrBorrowingNotFound)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var request returnBorrowingRequest
	if err = s.decodeBody(r, &request); err != nil {
		s.writeError(w, r, err)
		return
	}

	returnDate, err := s.optionalDate(request.ActualReturnDate)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	paymentID, err := s.newID()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	command := returnborrowing.BuildCommand(borrowingID, paymentID, access.ActorFrom(r.Context()), returnDate)

	result, _, err := s.handlers.ReturnBorrowing.Handle(r.Context(), command)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, returnResponse{
		Borrowing: toBorrowingResponse(result.Borrowing),
		Payment:   toPaymentResponsePtr(result.Payment),
		BooksLeft: result.BooksLeft,
	})
}

func (s *Server) initiatePayment(w http.ResponseWriter, r *http.Request) {
	borrowingID, err := uuidParam(r, "id", core.ErrBorrowingNotFound)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	paymentID, err := s.newID()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	command := initiatepayment.BuildCommand(borrowingID, paymentID, access.ActorFrom(r.Context()), s.today())

	result, handlerResult, err := s.handlers.InitiatePayment.Handle(r.Context(), command)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	status := http.StatusCreated
	if handlerResult.Idempotent {
		status = http.StatusOK
	}

	writeJSON(w, status, initiatePaymentResponse{Payment: toPaymentResponsePtr(result.Payment)})
}
