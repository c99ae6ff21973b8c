package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/videotube/backend/internal/core/ports"
)

// AuthHandler exposes the session lifecycle endpoints.
type AuthHandler struct {
	auth    ports.AuthService
	cookies CookieConfig
}

func NewAuthHandler(auth ports.AuthService, cookies CookieConfig) *AuthHandler {
	return &AuthHandler{auth: auth, cookies: cookies}
}

// Register creates a new user account from a multipart form.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       multipart/form-data
// @Produce      json
// @Param        username   formData  string  true   "Username"
// @Param        email      formData  string  true   "Email"
// @Param        fullName   formData  string  true   "Full name"
// @Param        password   formData  string  true   "Password"
// @Param        avatar     formData  file    true   "Avatar image"
// @Param        coverImage formData  file    false  "Cover image"
// @Success      201  {object}  apiResponse
// @Failure      400  {object}  map[string]any
// @Failure      409  {object}  map[string]any
// @Router       /api/v1/users/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	avatar, avatarCloser, err := formMediaFile(c, "avatar")
	if err != nil {
		return err
	}
	if avatarCloser != nil {
		defer avatarCloser.Close()
	}

	cover, coverCloser, err := formMediaFile(c, "coverImage")
	if err != nil {
		return err
	}
	if coverCloser != nil {
		defer coverCloser.Close()
	}

	user, err := h.auth.Register(c.Request().Context(), ports.RegisterInput{
		Username:   c.FormValue("username"),
		Email:      c.FormValue("email"),
		FullName:   c.FormValue("fullName"),
		Password:   c.FormValue("password"),
		Avatar:     avatar,
		CoverImage: cover,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, user, "user registered successfully")
}

// Login authenticates a user, sets the auth cookies and returns the token pair.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  apiResponse
// @Failure      401   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /api/v1/users/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, pair, err := h.auth.Login(c.Request().Context(), ports.LoginInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	setAuthCookies(c, pair, h.cookies)

	return respond(c, http.StatusOK, loginData{
		User:         user,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, "user logged in successfully")
}

// Logout clears the stored refresh token and both auth cookies.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  apiResponse
// @Failure      401  {object}  map[string]any
// @Router       /api/v1/users/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.auth.Logout(c.Request().Context(), userID); err != nil {
		return err
	}

	clearAuthCookies(c)
	return respond(c, http.StatusOK, struct{}{}, "user logged out successfully")
}

// Refresh exchanges a refresh token (cookie or body) for a new pair, rotating
// the stored token.
//
// @Summary      Refresh the access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      refreshRequest  false  "Refresh token (when not sent as cookie)"
// @Success      200   {object}  apiResponse
// @Failure      401   {object}  map[string]any
// @Router       /api/v1/users/refresh-token [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	token := ""
	if ck, err := c.Cookie(refreshTokenCookie); err == nil {
		token = ck.Value
	}
	if token == "" {
		var req refreshRequest
		_ = c.Bind(&req)
		token = req.RefreshToken
	}

	pair, err := h.auth.Refresh(c.Request().Context(), token)
	if err != nil {
		return err
	}

	setAuthCookies(c, pair, h.cookies)
	return respond(c, http.StatusOK, pair, "access token refreshed")
}

// ChangePassword verifies the current password before storing the new one.
//
// @Summary      Change password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      changePasswordRequest  true  "Old and new passwords"
// @Success      200   {object}  apiResponse
// @Failure      401   {object}  map[string]any
// @Router       /api/v1/users/change-password [post]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.auth.ChangePassword(c.Request().Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		return err
	}

	return respond(c, http.StatusOK, struct{}{}, "password changed successfully")
}
