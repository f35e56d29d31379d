package domain

import "time"

// Role is the user's access level.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleAdmin    Role = "ADMIN"
)

type User struct {
	ID               string
	Email            string
	Name             string
	PasswordHash     string // argon2 encoded
	Role             Role
	EmailConfirmed   bool
	ConfirmToken     *string    // pending email verification code (nullable)
	ConfirmExpiresAt *time.Time // when the verification code lapses (nullable)
	ResetToken       *string    // pending password reset code (nullable)
	ResetExpiresAt   *time.Time // when the reset code lapses (nullable)
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
