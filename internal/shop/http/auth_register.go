package http

import (
	"encoding/json"
	"net/http"

	"github.com/cheapdeals/shop/internal/shop/service"
	"github.com/cheapdeals/shop/pkg/httpx"
)

type RegisterHandler struct {
	AuthService *service.AuthService
}

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// ServeHTTP godoc
//
//	@Summary		Register a new account
//	@Description	Creates an unconfirmed account and a pending email verification code. The verification email is sent separately via /auth/send-email.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		registerRequest	true	"email, name, password"
//	@Success		201		{object}	successResponse
//	@Failure		400		{object}	ErrorResponse	"malformed body or missing fields"
//	@Failure		409		{object}	ErrorResponse	"email already registered"
//	@Router			/auth/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Request body must be valid JSON")
		return
	}
	if req.Email == "" || req.Name == "" || req.Password == "" {
		writeBadRequest(w, "email, name and password are required")
		return
	}

	if _, err := h.AuthService.Register(r.Context(), req.Email, req.Name, req.Password); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, successResponse{
		Success: true,
		Message: "Registration successful, please verify your email",
	})
}
