package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/cheapdeals/shop/internal/shop/domain"
	"github.com/cheapdeals/shop/internal/shop/store"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, email, name, password_hash, role, email_confirmed,
	confirm_token, confirm_token_expires_at, reset_token, reset_token_expires_at,
	created_at, updated_at`

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.Name, u.PasswordHash, string(u.Role), u.EmailConfirmed,
		mapOptionalString(u.ConfirmToken), mapOptionalTime(u.ConfirmExpiresAt),
		mapOptionalString(u.ResetToken), mapOptionalTime(u.ResetExpiresAt),
		u.CreatedAt, u.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func (r *usersRepo) GetUserByConfirmToken(ctx context.Context, token string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+userColumns+` FROM users WHERE confirm_token = ?`, token)
	return scanUser(row)
}

func (r *usersRepo) GetUserByResetToken(ctx context.Context, token string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+userColumns+` FROM users WHERE reset_token = ?`, token)
	return scanUser(row)
}

func (r *usersRepo) MarkEmailConfirmed(ctx context.Context, userID string) error {
	return r.exec(ctx, `
		UPDATE users
		SET email_confirmed = 1,
		    confirm_token = NULL,
		    confirm_token_expires_at = NULL,
		    updated_at = ?
		WHERE id = ?`,
		time.Now().UTC(), userID)
}

func (r *usersRepo) ClearConfirmToken(ctx context.Context, userID string) error {
	return r.exec(ctx, `
		UPDATE users
		SET confirm_token = NULL,
		    confirm_token_expires_at = NULL,
		    updated_at = ?
		WHERE id = ?`,
		time.Now().UTC(), userID)
}

func (r *usersRepo) SetConfirmToken(ctx context.Context, userID, token string, expiresAt time.Time) error {
	return r.exec(ctx, `
		UPDATE users
		SET confirm_token = ?,
		    confirm_token_expires_at = ?,
		    updated_at = ?
		WHERE id = ?`,
		token, expiresAt, time.Now().UTC(), userID)
}

func (r *usersRepo) SetResetToken(ctx context.Context, userID, token string, expiresAt time.Time) error {
	return r.exec(ctx, `
		UPDATE users
		SET reset_token = ?,
		    reset_token_expires_at = ?,
		    updated_at = ?
		WHERE id = ?`,
		token, expiresAt, time.Now().UTC(), userID)
}

func (r *usersRepo) ClearResetToken(ctx context.Context, userID string) error {
	return r.exec(ctx, `
		UPDATE users
		SET reset_token = NULL,
		    reset_token_expires_at = NULL,
		    updated_at = ?
		WHERE id = ?`,
		time.Now().UTC(), userID)
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID, newHash string) error {
	return r.exec(ctx, `
		UPDATE users
		SET password_hash = ?,
		    reset_token = NULL,
		    reset_token_expires_at = NULL,
		    updated_at = ?
		WHERE id = ?`,
		newHash, time.Now().UTC(), userID)
}

// exec runs an update that must match exactly one user.
func (r *usersRepo) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func scanUser(row *sql.Row) (domain.User, error) {
	var (
		u                domain.User
		role             string
		confirmToken     sql.NullString
		confirmExpiresAt sql.NullTime
		resetToken       sql.NullString
		resetExpiresAt   sql.NullTime
	)
	err := row.Scan(
		&u.ID, &u.Email, &u.Name, &u.PasswordHash, &role, &u.EmailConfirmed,
		&confirmToken, &confirmExpiresAt, &resetToken, &resetExpiresAt,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.Role = domain.Role(role)
	u.ConfirmToken = mapNullStringPtr(confirmToken)
	u.ConfirmExpiresAt = mapNullTimePtr(confirmExpiresAt)
	u.ResetToken = mapNullStringPtr(resetToken)
	u.ResetExpiresAt = mapNullTimePtr(resetExpiresAt)
	return u, nil
}
