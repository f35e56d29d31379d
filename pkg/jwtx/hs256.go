package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken covers malformed tokens, signature mismatches and
	// algorithm confusion. Store-level revocation is a separate condition
	// that callers check themselves; the verifier only judges the token.
	ErrInvalidToken = errors.New("jwtx: invalid token signature")

	// ErrExpired reports a well-signed token whose exp has passed.
	ErrExpired = errors.New("jwtx: token expired")
)

// Verifier validates a signed token and returns its claims.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// Signer issues and verifies HS256 tokens with a fixed secret, issuer and
// lifetime. One Signer instance serves one token class (access or refresh).
type Signer struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewSigner returns a Signer for the given secret. The secret must be
// non-empty; configuration validates that before we get here.
func NewSigner(secret, issuer string, ttl time.Duration) *Signer {
	return &Signer{secret: []byte(secret), issuer: issuer, ttl: ttl}
}

// TTL returns the configured token lifetime.
func (s *Signer) TTL() time.Duration { return s.ttl }

// Sign mints a token for the given user.
func (s *Signer) Sign(userID string, verified bool, role string) (string, error) {
	claims := NewClaims(userID, verified, role, s.issuer, s.ttl, time.Now().UTC())
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify parses and validates token, enforcing the HS256 method and this
// signer's secret. Expiry is reported as ErrExpired; every other failure
// collapses to ErrInvalidToken so callers can't leak parse details.
func (s *Signer) Verify(token string) (Claims, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(
		token,
		&claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrExpired
		}
		return Claims{}, ErrInvalidToken
	}
	if !parsed.Valid {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}
