package http

import (
	"errors"
	"net/http"

	"github.com/cheapdeals/shop/internal/shop/service"
	"github.com/cheapdeals/shop/internal/shop/store"
	"github.com/cheapdeals/shop/pkg/httpx"
	"github.com/cheapdeals/shop/pkg/slogx"
)

// successResponse is the plain acknowledgement body for operations that
// return no data.
type successResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse is the JSON error body every endpoint uses.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

var errDescriptions = map[error]string{
	service.ErrEmailTaken:            "An account with this email already exists",
	service.ErrInvalidCredentials:    "Invalid email or password",
	service.ErrEmailNotConfirmed:     "Email has not been confirmed",
	service.ErrEmailAlreadyConfirmed: "Email has already been confirmed, please login to continue",
	service.ErrNoPendingConfirmation: "Email confirmation token not found",
	service.ErrEmailNotFound:         "Email not found",
	service.ErrInvalidCode:           "Invalid or unknown code",
	service.ErrCodeExpired:           "The code has expired, please request a new one",
	service.ErrInvalidRefresh:        "Invalid refresh token",
	service.ErrRefreshRevoked:        "Refresh token has been revoked",
	service.ErrRefreshExpired:        "Refresh token has expired",
	service.ErrRefreshNotFound:       "Refresh token not found",
	service.ErrEmailSend:             "Failed to send email",
	service.ErrHashing:               "Failed to process password",
	service.ErrInvalidProductType:    "Unknown product type",
	service.ErrInvalidBundleItem:     "Each bundle item needs a phoneId or a packageId",
}

// writeServiceError maps a service-level error onto a status code and the
// standard error body.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var code int
	switch {
	case errors.Is(err, service.ErrEmailTaken):
		code = http.StatusConflict
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrEmailNotConfirmed),
		errors.Is(err, service.ErrEmailAlreadyConfirmed),
		errors.Is(err, service.ErrNoPendingConfirmation),
		errors.Is(err, service.ErrEmailNotFound),
		errors.Is(err, service.ErrInvalidCode),
		errors.Is(err, service.ErrCodeExpired),
		errors.Is(err, service.ErrInvalidRefresh),
		errors.Is(err, service.ErrRefreshRevoked),
		errors.Is(err, service.ErrRefreshExpired),
		errors.Is(err, service.ErrRefreshNotFound):
		code = http.StatusUnauthorized
	case errors.Is(err, service.ErrEmailSend),
		errors.Is(err, service.ErrHashing):
		code = http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrInvalidProductType),
		errors.Is(err, service.ErrInvalidBundleItem):
		code = http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound):
		httpx.WriteJSON(w, http.StatusNotFound, ErrorResponse{
			Error:            "not_found",
			ErrorDescription: "The requested resource does not exist",
		})
		return
	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error:            "server_error",
			ErrorDescription: "Something went wrong",
		})
		return
	}

	httpx.WriteJSON(w, code, ErrorResponse{
		Error:            err.Error(),
		ErrorDescription: errDescriptions[err],
	})
}

func writeBadRequest(w http.ResponseWriter, desc string) {
	httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
		Error:            "invalid_request",
		ErrorDescription: desc,
	})
}
