package service

import (
	"context"
	"errors"
	"time"

	"github.com/cheapdeals/shop/internal/shop/domain"
	"github.com/cheapdeals/shop/internal/shop/store"
	"github.com/cheapdeals/shop/pkg/cryptox"
	"github.com/cheapdeals/shop/pkg/jwtx"
)

// TokenService issues and verifies the access/refresh token pair. Both are
// HS256 JWTs signed with separate secrets; issued refresh tokens are also
// recorded in the store by fingerprint so they can be rotated and revoked.
type TokenService struct {
	Access  *jwtx.Signer
	Refresh *jwtx.Signer
	Store   store.Store
}

// Issue signs a fresh pair for the user and persists the refresh record.
func (s *TokenService) Issue(ctx context.Context, u domain.User) (domain.TokenPair, error) {
	access, err := s.Access.Sign(u.ID, u.EmailConfirmed, string(u.Role))
	if err != nil {
		return domain.TokenPair{}, err
	}

	refresh, err := s.Refresh.Sign(u.ID, u.EmailConfirmed, string(u.Role))
	if err != nil {
		return domain.TokenPair{}, err
	}

	now := time.Now().UTC()
	err = s.Store.RefreshTokens().CreateRefreshToken(ctx, domain.RefreshToken{
		TokenHash: cryptox.FingerprintToken(refresh),
		UserID:    u.ID,
		ExpiresAt: now.Add(s.Refresh.TTL()),
		CreatedAt: now,
	})
	if err != nil {
		return domain.TokenPair{}, err
	}

	return domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

// VerifyRefresh checks the refresh token's signature and expiry. Store-side
// revocation is a separate concern handled by AuthService.
func (s *TokenService) VerifyRefresh(token string) (jwtx.Claims, error) {
	claims, err := s.Refresh.Verify(token)
	if err != nil {
		if errors.Is(err, jwtx.ErrExpired) {
			return jwtx.Claims{}, ErrRefreshExpired
		}
		return jwtx.Claims{}, ErrInvalidRefresh
	}
	return claims, nil
}
