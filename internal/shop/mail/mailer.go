// Package mail sends transactional email for account verification and
// password resets.
package mail

import "context"

// Kind selects which template and subject a message uses.
type Kind string

const (
	KindVerify Kind = "verify"
	KindReset  Kind = "reset"
)

// Mailer delivers a single-use code to a user. Implementations must be safe
// for concurrent use.
type Mailer interface {
	Send(ctx context.Context, to, name, code string, kind Kind) error
}
