package api

import (
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-circulation-go/library/access"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/addbook"
	"github.com/AntonStoeckl/library-circulation-go/library/features/query/bookdetail"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

func (s *Server) addBook(w http.ResponseWriter, r *http.Request) {
	var request addBookRequest
	if err := s.decodeBody(r, &request); err != nil {
		s.writeError(w, r, err)
		return
	}

	bookID, err := s.optionalUUID(request.ID)
	if err != nil {
		s.writeError(w, r, errors.Join(ErrInvalidRequest, err))
		return
	}

	dailyFee, err := decimal.NewFromString(request.DailyFee)
	if err != nil {
		s.writeError(w, r, errors.Join(ErrInvalidRequest, err))
		return
	}

	command := addbook.BuildCommand(
		bookID,
		access.ActorFrom(r.Context()),
		request.Title,
		request.Author,
		request.Cover,
		*request.Inventory,
		dailyFee,
	)

	book, handlerResult, err := s.handlers.AddBook.Handle(r.Context(), command)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	status := http.StatusCreated
	if handlerResult.Idempotent {
		status = http.StatusOK
	}

	writeJSON(w, status, toBookResponse(book))
}

func (s *Server) bookDetail(w http.ResponseWriter, r *http.Request) {
	bookID, err := uuidParam(r, "id", core.ErrBookNotFound)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	book, err := s.handlers.BookDetail.Handle(r.Context(), bookdetail.BuildQuery(access.ActorFrom(r.Context()), bookID))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toBookResponse(book))
}
