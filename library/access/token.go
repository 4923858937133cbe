package access

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

var (
	// ErrMissingToken is returned when the Authorization header carries no bearer token.
	ErrMissingToken = errors.New("missing bearer token")

	// ErrInvalidToken is returned when a token is malformed, expired, or not signed with the secret.
	ErrInvalidToken = errors.New("invalid bearer token")

	// ErrEmptySecret is returned when a Verifier is created without a secret.
	ErrEmptySecret = errors.New("token secret must not be empty")
)

const bearerPrefix = "bearer "

// Claims are the claims of an access token.
type Claims struct {
	IsStaff bool `json:"is_staff"`
	jwt.RegisteredClaims
}

// Verifier signs and verifies HS256 access tokens with a shared secret.
type Verifier struct {
	secret []byte
	parser *jwt.Parser
}

// NewVerifier creates a Verifier for the given secret.
func NewVerifier(secret string) (*Verifier, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}

	return &Verifier{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
		),
	}, nil
}

// Issue creates a signed token for the actor, valid for ttl.
func (v *Verifier) Issue(actor core.Actor, ttl time.Duration) (string, error) {
	now := time.Now()

	claims := Claims{
		IsStaff: actor.IsStaff,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

// Verify parses and checks a token and returns the actor it was issued for.
func (v *Verifier) Verify(token string) (core.Actor, error) {
	claims := &Claims{}

	parsed, err := v.parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})

	if err != nil {
		return core.Actor{}, errors.Join(ErrInvalidToken, err)
	}

	if !parsed.Valid || claims.Subject == "" {
		return core.Actor{}, ErrInvalidToken
	}

	return core.Actor{UserID: claims.Subject, IsStaff: claims.IsStaff}, nil
}

// VerifyAuthorizationHeader extracts the bearer token from an Authorization header value and verifies it.
func (v *Verifier) VerifyAuthorizationHeader(header string) (core.Actor, error) {
	header = strings.TrimSpace(header)

	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return core.Actor{}, ErrMissingToken
	}

	token := strings.TrimSpace(header[len(bearerPrefix):])
	if token == "" {
		return core.Actor{}, ErrMissingToken
	}

	actor, err := v.Verify(token)
	if err != nil {
		return core.Actor{}, fmt.Errorf("authorization header: %w", err)
	}

	return actor, nil
}
