package http

import (
	"encoding/json"
	"net/http"

	"github.com/cheapdeals/shop/internal/shop/service"
	"github.com/cheapdeals/shop/pkg/httpx"
)

type RefreshHandler struct {
	AuthService   *service.AuthService
	SecureCookies bool
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// ServeHTTP godoc
//
//	@Summary		Rotate the refresh token
//	@Description	Exchanges a refresh token for a new pair. Each refresh token works exactly once; reuse is rejected. The token is read from the body, falling back to the refresh_token cookie.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		refreshRequest	false	"refreshToken (cookie fallback)"
//	@Success		200		{object}	tokenResponse
//	@Failure		401		{object}	ErrorResponse	"invalid, expired or already-used token"
//	@Header			200		{string}	Cache-Control	"no-store"
//	@Router			/auth/refresh-token [post].
func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	token := refreshTokenFromRequest(r)
	if token == "" {
		writeBadRequest(w, "refreshToken is required")
		return
	}

	pair, err := h.AuthService.Refresh(r.Context(), token)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	setAuthCookies(w, pair, h.SecureCookies)
	httpx.WriteJSON(w, http.StatusOK, tokenResponse{Success: true, Tokens: pair})
}

// refreshTokenFromRequest reads the refresh token from the JSON body, falling
// back to the cookie browser clients carry.
func refreshTokenFromRequest(r *http.Request) string {
	var req refreshRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	if req.RefreshToken != "" {
		return req.RefreshToken
	}
	if c, err := r.Cookie(cookieRefreshToken); err == nil {
		return c.Value
	}
	return ""
}
