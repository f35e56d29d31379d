package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cheapdeals/shop/internal/shop/domain"
	"github.com/cheapdeals/shop/internal/shop/mail"
	"github.com/cheapdeals/shop/internal/shop/store"
	"github.com/cheapdeals/shop/pkg/cryptox"
	"github.com/cheapdeals/shop/pkg/idx"
	"github.com/cheapdeals/shop/pkg/slogx"
	"github.com/google/uuid"
)

// confirmTokenTTL bounds both email verification and password reset codes.
const confirmTokenTTL = 15 * time.Minute

// AuthService orchestrates registration, email verification, login, the
// refresh token lifecycle, and password resets.
type AuthService struct {
	Store  store.Store
	Tokens *TokenService
	Mailer mail.Mailer
}

// Register creates an unconfirmed account with a pending verification code.
// The verification email itself goes out through SendVerification, so a
// failed delivery never loses the account.
func (s *AuthService) Register(ctx context.Context, email, name, password string) (domain.User, error) {
	email = normalizeEmail(email)

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, ErrHashing
	}

	now := time.Now().UTC()
	token := uuid.NewString()
	expiresAt := now.Add(confirmTokenTTL)

	u := domain.User{
		ID:               idx.New().String(),
		Email:            email,
		Name:             name,
		PasswordHash:     hash,
		Role:             domain.RoleCustomer,
		EmailConfirmed:   false,
		ConfirmToken:     &token,
		ConfirmExpiresAt: &expiresAt,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrEmailTaken
		}
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("user registered", "user_id", u.ID)
	return u, nil
}

// SendVerification dispatches the pending verification code to the user.
func (s *AuthService) SendVerification(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	u, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrEmailNotFound
		}
		return err
	}

	if u.EmailConfirmed {
		return ErrEmailAlreadyConfirmed
	}
	if u.ConfirmToken == nil {
		return ErrNoPendingConfirmation
	}

	if err := s.Mailer.Send(ctx, u.Email, u.Name, *u.ConfirmToken, mail.KindVerify); err != nil {
		slogx.FromContext(ctx).Error("verification email failed", "user_id", u.ID, "err", err)
		return ErrEmailSend
	}
	return nil
}

// VerifyEmail consumes a verification code. Codes are single use: success
// clears the token columns, and a lapsed code is cleared the moment expiry
// is detected.
func (s *AuthService) VerifyEmail(ctx context.Context, code string) error {
	u, err := s.Store.Users().GetUserByConfirmToken(ctx, code)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidCode
		}
		return err
	}

	if u.ConfirmExpiresAt == nil || time.Now().After(*u.ConfirmExpiresAt) {
		_ = s.Store.Users().ClearConfirmToken(ctx, u.ID)
		return ErrCodeExpired
	}

	return s.Store.Users().MarkEmailConfirmed(ctx, u.ID)
}

// Login checks credentials and issues a token pair. Unconfirmed accounts
// cannot log in.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.TokenPair, error) {
	email = normalizeEmail(email)
	l := slogx.FromContext(ctx)

	u, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TokenPair{}, ErrInvalidCredentials
		}
		return domain.TokenPair{}, err
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		l.Info("login failed", "user_id", u.ID)
		return domain.TokenPair{}, ErrInvalidCredentials
	}

	if !u.EmailConfirmed {
		return domain.TokenPair{}, ErrEmailNotConfirmed
	}

	return s.Tokens.Issue(ctx, u)
}

// Refresh rotates a refresh token: the presented token's record is deleted
// and a brand new pair is issued, so each refresh token works exactly once.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
	claims, err := s.Tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return domain.TokenPair{}, err
	}

	hash := cryptox.FingerprintToken(refreshToken)
	now := time.Now().UTC()

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		rec, err := tx.RefreshTokens().GetRefreshTokenByHash(ctx, hash)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				// Signature was valid but the record is gone: the token
				// was already rotated or revoked.
				return ErrRefreshRevoked
			}
			return err
		}

		if now.After(rec.ExpiresAt) {
			_ = tx.RefreshTokens().DeleteRefreshToken(ctx, hash)
			return ErrRefreshExpired
		}

		if err := tx.RefreshTokens().DeleteRefreshToken(ctx, hash); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrRefreshRevoked
			}
			return err
		}
		return nil
	})
	if err != nil {
		return domain.TokenPair{}, err
	}

	// Re-read the user so the new pair reflects current role and
	// confirmation status, not what was true at the previous issue.
	u, err := s.Store.Users().GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TokenPair{}, ErrInvalidRefresh
		}
		return domain.TokenPair{}, err
	}

	return s.Tokens.Issue(ctx, u)
}

// Logout revokes the presented refresh token. A token whose record is
// already gone reports ErrRefreshNotFound rather than succeeding silently.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if _, err := s.Tokens.VerifyRefresh(refreshToken); err != nil {
		return err
	}

	err := s.Store.RefreshTokens().DeleteRefreshToken(ctx, cryptox.FingerprintToken(refreshToken))
	if errors.Is(err, store.ErrNotFound) {
		return ErrRefreshNotFound
	}
	return err
}

// ForgotPassword stores a single-use reset code and emails it to the user.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	u, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrEmailNotFound
		}
		return err
	}

	token := uuid.NewString()
	expiresAt := time.Now().UTC().Add(confirmTokenTTL)

	if err := s.Store.Users().SetResetToken(ctx, u.ID, token, expiresAt); err != nil {
		return err
	}

	if err := s.Mailer.Send(ctx, u.Email, u.Name, token, mail.KindReset); err != nil {
		slogx.FromContext(ctx).Error("reset email failed", "user_id", u.ID, "err", err)
		return ErrEmailSend
	}
	return nil
}

// VerifyReset checks a reset code without consuming it, for the frontend to
// validate the link before showing the new-password form.
func (s *AuthService) VerifyReset(ctx context.Context, code string) error {
	u, err := s.Store.Users().GetUserByResetToken(ctx, code)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidCode
		}
		return err
	}

	if u.ResetExpiresAt == nil || time.Now().After(*u.ResetExpiresAt) {
		_ = s.Store.Users().ClearResetToken(ctx, u.ID)
		return ErrCodeExpired
	}
	return nil
}

// SetNewPassword consumes a reset code, replaces the password hash and
// revokes every refresh token the user holds.
func (s *AuthService) SetNewPassword(ctx context.Context, code, password string) error {
	u, err := s.Store.Users().GetUserByResetToken(ctx, code)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidCode
		}
		return err
	}

	if u.ResetExpiresAt == nil || time.Now().After(*u.ResetExpiresAt) {
		_ = s.Store.Users().ClearResetToken(ctx, u.ID)
		return ErrCodeExpired
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return ErrHashing
	}

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().UpdatePasswordHash(ctx, u.ID, hash); err != nil {
			return err
		}
		// A password reset implies the old sessions are suspect.
		_, err := tx.RefreshTokens().DeleteUserRefreshTokens(ctx, u.ID)
		return err
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
