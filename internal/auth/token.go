package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
)

// DefaultTokenLifetime is used when no lifetime is configured.
const DefaultTokenLifetime = 120 * time.Minute

// ErrInvalidToken is returned for every token defect: malformed string,
// bad signature, wrong algorithm, expired, or missing subject claim.
// Callers must not learn which check failed.
var ErrInvalidToken = errors.New("invalid token")

// Tokens issues and verifies signed bearer tokens.
// The signing secret and default lifetime are fixed at construction
// and shared read-only across all requests.
type Tokens struct {
	secret   []byte
	lifetime time.Duration
}

// NewTokens creates a Tokens with the given signing secret and lifetime.
// A non-positive lifetime falls back to DefaultTokenLifetime.
func NewTokens(secret string, lifetime time.Duration) *Tokens {
	if lifetime <= 0 {
		lifetime = DefaultTokenLifetime
	}
	return &Tokens{
		secret:   []byte(secret),
		lifetime: lifetime,
	}
}

// Lifetime returns the configured token lifetime.
func (t *Tokens) Lifetime() time.Duration {
	return t.lifetime
}

// Issue signs a token asserting the given subject, valid for the
// configured lifetime. No state is recorded about issued tokens.
func (t *Tokens) Issue(subject string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(now.Add(t.lifetime)),
		IssuedAt:  jwt.NewNumericDate(now),
		ID:        ulid.Make().String(),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Verify validates a token's signature and expiry and returns its subject.
// Only HS256 is accepted; tokens signed under any other algorithm are
// rejected rather than negotiated. Expiry is exclusive: a token is invalid
// from the instant its exp claim is reached.
func (t *Tokens) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return t.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	if claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}
