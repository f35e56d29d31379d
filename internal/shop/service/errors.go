package service

import "errors"

// Service-level error taxonomy. HTTP maps these onto status codes; the
// services themselves only ever speak in these sentinels.
var (
	ErrEmailTaken         = errors.New("email_taken")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrEmailNotConfirmed  = errors.New("email_not_confirmed")

	ErrEmailAlreadyConfirmed  = errors.New("email_already_confirmed")
	ErrNoPendingConfirmation  = errors.New("no_pending_confirmation")
	ErrEmailNotFound          = errors.New("email_not_found")
	ErrInvalidCode            = errors.New("invalid_code")
	ErrCodeExpired            = errors.New("code_expired")

	ErrInvalidRefresh  = errors.New("invalid_refresh_token")
	ErrRefreshRevoked  = errors.New("refresh_token_revoked")
	ErrRefreshExpired  = errors.New("refresh_token_expired")
	ErrRefreshNotFound = errors.New("refresh_token_not_found")

	ErrEmailSend = errors.New("email_send_failed")
	ErrHashing   = errors.New("password_hash_failed")

	ErrInvalidProductType = errors.New("invalid_product_type")
	ErrInvalidBundleItem  = errors.New("invalid_bundle_item")
)
