package store

import (
	"context"
	"errors"
	"time"

	"github.com/cheapdeals/shop/internal/shop/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers implement this.
// It exposes sub-repositories to keep concerns tidy and testable.
type Store interface {
	Users() Users
	RefreshTokens() RefreshTokens
	Phones() Phones
	Packages() Packages
	Bundles() Bundles

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// Use it for multi-step operations that must be atomic (e.g., refresh rotation).
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// This is the recommended way to handle transactions as it automatically
	// handles commit/rollback logic.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources (optional for sqlite).
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// CreateUser inserts a new user (id is provided by app via ULID).
	// Returns ErrAlreadyExists when the email is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during login and resend flows.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// GetUserByConfirmToken looks up the owner of a pending verification code.
	GetUserByConfirmToken(ctx context.Context, token string) (domain.User, error)

	// GetUserByResetToken looks up the owner of a pending password reset code.
	GetUserByResetToken(ctx context.Context, token string) (domain.User, error)

	// MarkEmailConfirmed flips email_confirmed and clears the confirm token
	// columns so the code cannot be replayed.
	MarkEmailConfirmed(ctx context.Context, userID string) error

	// ClearConfirmToken drops a lapsed verification code.
	ClearConfirmToken(ctx context.Context, userID string) error

	// SetConfirmToken stores a fresh verification code with its expiry.
	SetConfirmToken(ctx context.Context, userID, token string, expiresAt time.Time) error

	// SetResetToken stores a fresh password reset code with its expiry.
	SetResetToken(ctx context.Context, userID, token string, expiresAt time.Time) error

	// ClearResetToken drops a lapsed reset code.
	ClearResetToken(ctx context.Context, userID string) error

	// UpdatePasswordHash sets the password_hash (argon2), clears the reset
	// token columns and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID, newHash string) error
}

type RefreshTokens interface {
	// CreateRefreshToken stores a new refresh token record.
	CreateRefreshToken(ctx context.Context, t domain.RefreshToken) error

	// GetRefreshTokenByHash returns the record by the token's fingerprint.
	GetRefreshTokenByHash(ctx context.Context, hash string) (domain.RefreshToken, error)

	// DeleteRefreshToken removes a single record (rotation, logout).
	// Returns ErrNotFound when no row matched, so concurrent rotations of
	// the same token cannot both succeed.
	DeleteRefreshToken(ctx context.Context, hash string) error

	// DeleteUserRefreshTokens revokes every session a user holds.
	DeleteUserRefreshTokens(ctx context.Context, userID string) (int64, error)

	// DeleteExpiredRefreshTokens removes records past their expiry.
	DeleteExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error)
}

type Phones interface {
	CreatePhone(ctx context.Context, p domain.Phone) error
	GetPhoneByID(ctx context.Context, id string) (domain.Phone, error)
	ListPhones(ctx context.Context) ([]domain.Phone, error)
}

type Packages interface {
	CreatePackage(ctx context.Context, p domain.Package) error
	GetPackageByID(ctx context.Context, id string) (domain.Package, error)
	ListPackages(ctx context.Context) ([]domain.Package, error)
}

type Bundles interface {
	// CreateBundle inserts the bundle row only; items go through
	// CreateBundleItem inside the same transaction.
	CreateBundle(ctx context.Context, b domain.Bundle) error

	CreateBundleItem(ctx context.Context, item domain.BundleItem) error

	// GetBundleByID returns the bundle with its items, each expanded with
	// the referenced phone or package.
	GetBundleByID(ctx context.Context, id string) (domain.Bundle, error)

	// ListBundles returns bundle rows without item expansion.
	ListBundles(ctx context.Context) ([]domain.Bundle, error)
}
