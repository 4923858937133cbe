package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/library/access"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell"
)

// Option defines a functional option for configuring the Server.
type Option func(*Server)

// WithLogger sets the logger for server errors and data-integrity faults.
func WithLogger(logger shell.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithRateLimit limits every client to rps requests per second with the given burst.
func WithRateLimit(rps float64, burst int) Option {
	return func(s *Server) {
		s.limiter = newClientLimiter(rps, burst)
	}
}

// WithClock replaces time.Now as the source of "today".
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// WithIDGenerator replaces uuid.NewV7 as the source of record ids.
func WithIDGenerator(newID func() (uuid.UUID, error)) Option {
	return func(s *Server) {
		s.newID = newID
	}
}

// Server serves the circulation API.
type Server struct {
	handlers Handlers
	verifier *access.Verifier
	validate *validator.Validate
	limiter  *clientLimiter
	logger   shell.Logger
	now      func() time.Time
	newID    func() (uuid.UUID, error)
}

// NewServer creates a Server for the handlers. Tokens are checked with verifier.
func NewServer(handlers Handlers, verifier *access.Verifier, options ...Option) *Server {
	s := &Server{
		handlers: handlers,
		verifier: verifier,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
		newID:    uuid.NewV7,
	}

	for _, option := range options {
		option(s)
	}

	return s
}

// Router builds the chi router with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)

	r.Get("/healthz", s.healthz)

	r.Route("/api", func(r chi.Router) {
		if s.limiter != nil {
			r.Use(s.limiter.middleware(s.reject))
		}

		r.Use(access.Authenticate(s.verifier, s.reject))

		r.Route("/books", func(r chi.Router) {
			r.With(access.RequireStaff(s.reject)).Post("/", s.addBook)
			r.Get("/{id}", s.bookDetail)
		})

		r.Route("/borrowings", func(r chi.Router) {
			r.Get("/", s.listBorrowings)
			r.Post("/", s.borrowBook)
			r.Get("/{id}", s.borrowingDetail)
			r.With(access.RequireStaff(s.reject)).Post("/{id}/return", s.returnBorrowing)
			r.Post("/{id}/payments", s.initiatePayment)
		})

		r.Route("/payments", func(r chi.Router) {
			r.Get("/", s.listPayments)
			r.Get("/payment-success/{session_id}", s.paymentSuccess)
			r.Get("/payment-cancelled", s.paymentCancelled)
			r.Get("/{id}", s.paymentDetail)
		})
	})

	return r
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) reject(w http.ResponseWriter, r *http.Request, err error) {
	s.writeError(w, r, err)
}
