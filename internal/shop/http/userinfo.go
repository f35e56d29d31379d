package http

import (
	"net/http"

	"github.com/cheapdeals/shop/internal/shop/service"
	"github.com/cheapdeals/shop/pkg/httpx"
	"github.com/cheapdeals/shop/pkg/slogx"
)

type UserInfoHandler struct {
	UserService *service.UserService
}

type userInfoResponse struct {
	UserID     string `json:"userId"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	IsVerified bool   `json:"isVerified"`
}

// ServeHTTP godoc
//
//	@Summary		Get the authenticated user's profile
//	@Tags			User
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	userInfoResponse
//	@Failure		401	{object}	ErrorResponse	"invalid or missing access token"
//	@Router			/user/me [get].
func (h *UserInfoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := ctx.Value(httpx.CtxKeyUserID).(string)
	if !ok || userID == "" {
		httpx.WriteJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:            "invalid_token",
			ErrorDescription: "Missing authenticated user",
		})
		return
	}

	user, err := h.UserService.GetByID(ctx, userID)
	if err != nil {
		log.Warn("failed to load user", "user_id", userID, "err", err)
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, userInfoResponse{
		UserID:     user.ID,
		Email:      user.Email,
		Name:       user.Name,
		Role:       string(user.Role),
		IsVerified: user.EmailConfirmed,
	})
}
