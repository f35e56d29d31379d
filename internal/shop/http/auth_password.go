package http

import (
	"encoding/json"
	"net/http"

	"github.com/cheapdeals/shop/internal/shop/service"
	"github.com/cheapdeals/shop/pkg/httpx"
)

type ForgotPasswordHandler struct {
	AuthService *service.AuthService
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// ServeHTTP godoc
//
//	@Summary		Request a password reset
//	@Description	Stores a single-use reset code (15 minute expiry) and emails it to the account.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		forgotPasswordRequest	true	"email"
//	@Success		200		{object}	successResponse
//	@Failure		401		{object}	ErrorResponse	"unknown email"
//	@Failure		422		{object}	ErrorResponse	"delivery failure"
//	@Router			/auth/forgot-password [post].
func (h *ForgotPasswordHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Request body must be valid JSON")
		return
	}
	if req.Email == "" {
		writeBadRequest(w, "email is required")
		return
	}

	if err := h.AuthService.ForgotPassword(r.Context(), req.Email); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, successResponse{
		Success: true,
		Message: "Password reset email sent",
	})
}

type VerifyResetHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Check a password reset code
//	@Description	Validates a reset code without consuming it, so the frontend can gate the new-password form.
//	@Tags			Auth
//	@Produce		json
//	@Param			code	query		string	true	"reset code"
//	@Success		200		{object}	successResponse
//	@Failure		401		{object}	ErrorResponse	"invalid or expired code"
//	@Router			/auth/verify-password [get].
func (h *VerifyResetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		writeBadRequest(w, "code is required")
		return
	}

	if err := h.AuthService.VerifyReset(r.Context(), code); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, successResponse{Success: true, Message: "Code is valid"})
}

type NewPasswordHandler struct {
	AuthService *service.AuthService
}

type newPasswordRequest struct {
	Code     string `json:"code"`
	Password string `json:"password"`
}

// ServeHTTP godoc
//
//	@Summary		Set a new password
//	@Description	Consumes the reset code, replaces the password and revokes all of the user's refresh tokens.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		newPasswordRequest	true	"code, password"
//	@Success		200		{object}	successResponse
//	@Failure		401		{object}	ErrorResponse	"invalid or expired code"
//	@Router			/auth/new-password [post].
func (h *NewPasswordHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req newPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Request body must be valid JSON")
		return
	}
	if req.Code == "" || req.Password == "" {
		writeBadRequest(w, "code and password are required")
		return
	}

	if err := h.AuthService.SetNewPassword(r.Context(), req.Code, req.Password); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, successResponse{
		Success: true,
		Message: "Password updated, please login again",
	})
}
