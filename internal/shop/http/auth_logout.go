package http

import (
	"net/http"

	"github.com/cheapdeals/shop/internal/shop/service"
	"github.com/cheapdeals/shop/pkg/httpx"
)

type LogoutHandler struct {
	AuthService   *service.AuthService
	SecureCookies bool
}

// ServeHTTP godoc
//
//	@Summary		Log out
//	@Description	Revokes the presented refresh token and clears the auth cookies. The cookies are cleared even when revocation fails.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		refreshRequest	false	"refreshToken (cookie fallback)"
//	@Success		200		{object}	successResponse
//	@Failure		401		{object}	ErrorResponse	"invalid token or no session to revoke"
//	@Router			/auth/logout [post].
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// The cookies go regardless of whether the revocation succeeds: a
	// client asking to log out should never keep its credentials.
	clearAuthCookies(w, h.SecureCookies)

	token := refreshTokenFromRequest(r)
	if token == "" {
		writeBadRequest(w, "refreshToken is required")
		return
	}

	if err := h.AuthService.Logout(r.Context(), token); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, successResponse{Success: true, Message: "Logged out"})
}
