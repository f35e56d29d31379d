package http

import (
	"encoding/json"
	"net/http"

	"github.com/cheapdeals/shop/internal/shop/service"
	"github.com/cheapdeals/shop/pkg/httpx"
)

type SendEmailHandler struct {
	AuthService *service.AuthService
}

type sendEmailRequest struct {
	Email string `json:"email"`
}

type sendEmailResponse struct {
	To      string `json:"to"`
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ServeHTTP godoc
//
//	@Summary		Send the verification email
//	@Description	Dispatches the pending verification code to an unconfirmed account.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		sendEmailRequest	true	"email"
//	@Success		200		{object}	sendEmailResponse
//	@Failure		401		{object}	ErrorResponse	"unknown email, already confirmed, or no pending code"
//	@Failure		422		{object}	ErrorResponse	"delivery failure"
//	@Router			/auth/send-email [post].
func (h *SendEmailHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req sendEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Request body must be valid JSON")
		return
	}
	if req.Email == "" {
		writeBadRequest(w, "email is required")
		return
	}

	if err := h.AuthService.SendVerification(r.Context(), req.Email); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, sendEmailResponse{
		To:      req.Email,
		Success: true,
		Message: "Email sent successfully",
	})
}

type VerifyEmailHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Verify an email address
//	@Description	Consumes a single-use verification code from the emailed link.
//	@Tags			Auth
//	@Produce		json
//	@Param			code	query		string	true	"verification code"
//	@Success		200		{object}	successResponse
//	@Failure		401		{object}	ErrorResponse	"invalid or expired code"
//	@Router			/auth/verify-email [get].
func (h *VerifyEmailHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		writeBadRequest(w, "code is required")
		return
	}

	if err := h.AuthService.VerifyEmail(r.Context(), code); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, successResponse{
		Success: true,
		Message: "Email verified successfully",
	})
}
