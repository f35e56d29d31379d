// Package jwtx issues and verifies the HMAC-signed tokens used by the
// service. Access and refresh tokens share one claim shape and differ only
// in signing secret and lifetime, so a token signed for one class can never
// verify as the other.
package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carried by both access and refresh tokens.
type Claims struct {
	jwt.RegisteredClaims

	UserID     string `json:"userId"`
	IsVerified bool   `json:"isVerified"`
	Role       string `json:"role"`
}

// NewClaims builds the claim set for a token issued now with the given
// lifetime.
func NewClaims(userID string, verified bool, role, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		UserID:     userID,
		IsVerified: verified,
		Role:       role,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}
