package jwtx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSignVerifyRoundtrip(t *testing.T) {
	t.Parallel()

	s := NewSigner("test-secret", "cheapdeals", 15*time.Minute)

	token, err := s.Sign("user-1", true, "CUSTOMER")
	require.NoError(t, err)

	claims, err := s.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.UserID)
	require.True(t, claims.IsVerified)
	require.Equal(t, "CUSTOMER", claims.Role)
	require.Equal(t, "cheapdeals", claims.Issuer)
	require.NotEmpty(t, claims.ID, "jti should be set")
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	access := NewSigner("access-secret", "cheapdeals", 15*time.Minute)
	refresh := NewSigner("refresh-secret", "cheapdeals", 7*24*time.Hour)

	token, err := refresh.Sign("user-1", true, "CUSTOMER")
	require.NoError(t, err)

	// A refresh token must never verify as an access token.
	_, err = access.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpired(t *testing.T) {
	t.Parallel()

	s := NewSigner("test-secret", "cheapdeals", -time.Minute)
	token, err := s.Sign("user-1", false, "CUSTOMER")
	require.NoError(t, err)

	_, err = s.Verify(token)
	require.ErrorIs(t, err, ErrExpired)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	t.Parallel()

	s := NewSigner("test-secret", "cheapdeals", 15*time.Minute)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := s.Verify(token)
		require.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestVerifyRejectsTampered(t *testing.T) {
	t.Parallel()

	s := NewSigner("test-secret", "cheapdeals", 15*time.Minute)
	token, err := s.Sign("user-1", true, "CUSTOMER")
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = s.Verify(tampered)
	require.ErrorIs(t, err, ErrInvalidToken)
}
