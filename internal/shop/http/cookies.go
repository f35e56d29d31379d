package http

import (
	"net/http"
	"time"

	"github.com/cheapdeals/shop/internal/shop/domain"
)

const (
	cookieAccessToken  = "access_token"
	cookieRefreshToken = "refresh_token"

	// Browser-side lifetime of the auth cookies. The tokens inside carry
	// their own signed expiry, which is what actually gates access.
	cookieMaxAge = 7 * 24 * time.Hour
)

func setAuthCookies(w http.ResponseWriter, pair domain.TokenPair, secure bool) {
	setTokenCookie(w, cookieAccessToken, pair.AccessToken, secure)
	setTokenCookie(w, cookieRefreshToken, pair.RefreshToken, secure)
}

func setTokenCookie(w http.ResponseWriter, name, value string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(cookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}

func clearAuthCookies(w http.ResponseWriter, secure bool) {
	for _, name := range []string{cookieAccessToken, cookieRefreshToken} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   secure,
			SameSite: http.SameSiteStrictMode,
		})
	}
}
