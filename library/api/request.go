package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

const maxBodyBytes = 1 << 20

// decodeBody reads a JSON body into dst and validates it. An empty body leaves dst untouched.
func (s *Server) decodeBody(r *http.Request, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return errors.Join(ErrMalformedRequest, err)
	}

	if len(strings.TrimSpace(string(body))) > 0 {
		if err = json.Unmarshal(body, dst); err != nil {
			return fmt.Errorf("%w: %s", ErrMalformedRequest, msgMalformedRequestBody)
		}
	}

	if err = s.validate.Struct(dst); err != nil {
		return validationError(err)
	}

	return nil
}

func validationError(err error) error {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return errors.Join(ErrInvalidRequest, err)
	}

	problems := make([]string, 0, len(fieldErrors))
	for _, fieldError := range fieldErrors {
		problems = append(problems, fmt.Sprintf("%s failed on %s", fieldError.Field(), fieldError.Tag()))
	}

	return fmt.Errorf("%w: %s", ErrInvalidRequest, strings.Join(problems, ", "))
}

// uuidParam parses the named URL parameter. Unparsable ids are reported as notFound.
func uuidParam(r *http.Request, name string, notFound error) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, notFound
	}

	return id, nil
}

// optionalUUID parses value, or generates a fresh id if it is empty.
func (s *Server) optionalUUID(value string) (uuid.UUID, error) {
	if value == "" {
		return s.newID()
	}

	return uuid.Parse(value)
}

// optionalDate parses a YYYY-MM-DD value, or returns today if it is empty.
func (s *Server) optionalDate(value string) (time.Time, error) {
	if value == "" {
		return s.today(), nil
	}

	date, err := core.ParseDate(value)
	if err != nil {
		return time.Time{}, errors.Join(ErrInvalidRequest, err)
	}

	return date, nil
}

func (s *Server) today() time.Time {
	return core.ToDate(s.now())
}

// isActiveParam follows the query string convention "is_active=true": any other non-empty value means false.
func isActiveParam(r *http.Request) *bool {
	raw := r.URL.Query().Get("is_active")
	if raw == "" {
		return nil
	}

	isActive := strings.EqualFold(raw, "true")

	return &isActive
}

// userIDsParam splits "user_id=1,2" into its ids.
func userIDsParam(r *http.Request) []core.UserIDString {
	raw := r.URL.Query().Get("user_id")
	if raw == "" {
		return nil
	}

	userIDs := make([]core.UserIDString, 0)

	for _, part := range strings.Split(raw, ",") {
		if id := strings.TrimSpace(part); id != "" {
			userIDs = append(userIDs, id)
		}
	}

	return userIDs
}
