package domain

import "time"

// TokenPair is what login and refresh return: a short-lived access token and
// a longer-lived refresh token, both HS256 JWTs signed with separate secrets.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// RefreshToken models the stored refresh token record in the DB. The token
// itself is never stored, only its fingerprint (base64url SHA-256).
type RefreshToken struct {
	TokenHash string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}
