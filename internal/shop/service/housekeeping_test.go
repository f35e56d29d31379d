package service

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/cheapdeals/shop/internal/shop/domain"
	"github.com/cheapdeals/shop/internal/shop/store"
	"github.com/cheapdeals/shop/pkg/cryptox"
	"github.com/cheapdeals/shop/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestHousekeepingRemovesOnlyExpiredTokens(t *testing.T) {
	svc, st, _ := newAuthService(t)
	u := registerAndConfirm(t, svc, "alice@example.com", "s3cret-pass")
	ctx := context.Background()

	// A live session issued through the normal path.
	pair, err := svc.Login(ctx, "alice@example.com", "s3cret-pass")
	require.NoError(t, err)
	liveHash := cryptox.FingerprintToken(pair.RefreshToken)

	// An expired record.
	expiredHash := cryptox.FingerprintToken(idx.New().String())
	require.NoError(t, st.RefreshTokens().CreateRefreshToken(ctx, domain.RefreshToken{
		TokenHash: expiredHash,
		UserID:    u.ID,
		ExpiresAt: time.Now().UTC().Add(-time.Hour),
		CreatedAt: time.Now().UTC().Add(-2 * time.Hour),
	}))

	hk := NewHousekeepingService(st, slog.Default(), time.Hour)
	hk.Start()
	hk.Stop() // Start runs one cleanup immediately; Stop waits for it.

	_, err = st.RefreshTokens().GetRefreshTokenByHash(ctx, expiredHash)
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = st.RefreshTokens().GetRefreshTokenByHash(ctx, liveHash)
	require.NoError(t, err)
}

func TestHousekeepingDefaultInterval(t *testing.T) {
	hk := NewHousekeepingService(newTestStore(t), slog.Default(), 0)
	require.Equal(t, time.Hour, hk.Interval)
}
