package access

import (
	"net/http"
)

const headerAuthorization = "Authorization"

// RejectFunc writes the response for a request that failed authentication or authorization.
type RejectFunc func(w http.ResponseWriter, r *http.Request, err error)

// Authenticate verifies the bearer token of each request and puts the actor into the request context.
// Requests without an Authorization header continue as anonymous. Requests with a bad token are
// passed to reject and do not reach next.
func Authenticate(verifier *Verifier, reject RejectFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get(headerAuthorization)
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			actor, err := verifier.VerifyAuthorizationHeader(header)
			if err != nil {
				reject(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

// RequireStaff passes only requests of staff actors to next.
// Anonymous actors are rejected with core.ErrUnauthorized, others with core.ErrForbidden.
func RequireStaff(reject RejectFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := ActorFrom(r.Context()).AuthorizeStaff(); err != nil {
				reject(w, r, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
