package http

import (
	"encoding/json"
	"net/http"

	"github.com/cheapdeals/shop/internal/shop/domain"
	"github.com/cheapdeals/shop/internal/shop/service"
	"github.com/cheapdeals/shop/pkg/httpx"
)

type LoginHandler struct {
	AuthService   *service.AuthService
	SecureCookies bool
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Success bool             `json:"success"`
	Tokens  domain.TokenPair `json:"tokens"`
}

// ServeHTTP godoc
//
//	@Summary		Log in
//	@Description	Verifies credentials and issues an access/refresh token pair. The pair is returned in the body and also set as HttpOnly cookies.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		loginRequest	true	"email, password"
//	@Success		200		{object}	tokenResponse
//	@Failure		400		{object}	ErrorResponse	"malformed body"
//	@Failure		401		{object}	ErrorResponse	"bad credentials or unconfirmed email"
//	@Header			200		{string}	Cache-Control	"no-store"
//	@Router			/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Request body must be valid JSON")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeBadRequest(w, "email and password are required")
		return
	}

	pair, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	setAuthCookies(w, pair, h.SecureCookies)
	httpx.WriteJSON(w, http.StatusOK, tokenResponse{Success: true, Tokens: pair})
}
