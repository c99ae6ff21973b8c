package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/videotube/backend/internal/core/ports"
)

const (
	accessTokenCookie  = "accessToken"
	refreshTokenCookie = "refreshToken"
)

// CookieConfig carries the lifetimes applied to the auth cookies, matching
// the token TTLs.
type CookieConfig struct {
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// setAuthCookies delivers both tokens as HttpOnly, Secure cookies.
func setAuthCookies(c echo.Context, pair *ports.TokenPair, cfg CookieConfig) {
	now := time.Now()
	c.SetCookie(authCookie(accessTokenCookie, pair.AccessToken, now.Add(cfg.AccessTTL)))
	c.SetCookie(authCookie(refreshTokenCookie, pair.RefreshToken, now.Add(cfg.RefreshTTL)))
}

// clearAuthCookies expires both cookies immediately.
func clearAuthCookies(c echo.Context) {
	expired := time.Unix(0, 0)
	for _, name := range []string{accessTokenCookie, refreshTokenCookie} {
		ck := authCookie(name, "", expired)
		ck.MaxAge = -1
		c.SetCookie(ck)
	}
}

func authCookie(name, value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	}
}
