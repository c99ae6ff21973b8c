package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/videotube/backend/internal/core/domain"
	"github.com/videotube/backend/internal/core/ports"
)

// UserHandler exposes the authenticated profile endpoints.
type UserHandler struct {
	auth ports.AuthService
}

func NewUserHandler(auth ports.AuthService) *UserHandler {
	return &UserHandler{auth: auth}
}

// CurrentUser returns the authenticated user's projected record.
//
// @Summary      Get the current user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  apiResponse
// @Failure      401  {object}  map[string]any
// @Router       /api/v1/users/current-user [get]
func (h *UserHandler) CurrentUser(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	user, err := h.auth.CurrentUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, user, "current user fetched successfully")
}

// UpdateAccount updates the full name and email.
//
// @Summary      Update account details
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateAccountRequest  true  "New account details"
// @Success      200   {object}  apiResponse
// @Failure      400   {object}  map[string]any
// @Router       /api/v1/users/update-account [patch]
func (h *UserHandler) UpdateAccount(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req updateAccountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.auth.UpdateAccount(c.Request().Context(), userID, req.FullName, req.Email)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, user, "account details updated successfully")
}

// UpdateAvatar replaces the avatar image.
//
// @Summary      Update avatar
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        avatar  formData  file  true  "Avatar image"
// @Success      200     {object}  apiResponse
// @Failure      400     {object}  map[string]any
// @Router       /api/v1/users/avatar [patch]
func (h *UserHandler) UpdateAvatar(c echo.Context) error {
	return h.updateImage(c, "avatar", h.auth.UpdateAvatar, "avatar updated successfully")
}

// UpdateCoverImage replaces the cover image.
//
// @Summary      Update cover image
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        coverImage  formData  file  true  "Cover image"
// @Success      200         {object}  apiResponse
// @Failure      400         {object}  map[string]any
// @Router       /api/v1/users/cover-image [patch]
func (h *UserHandler) UpdateCoverImage(c echo.Context) error {
	return h.updateImage(c, "coverImage", h.auth.UpdateCoverImage, "cover image updated successfully")
}

func (h *UserHandler) updateImage(
	c echo.Context,
	field string,
	update func(ctx context.Context, userID string, file ports.MediaFile) (*domain.User, error),
	message string,
) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	file, closer, err := formMediaFile(c, field)
	if err != nil {
		return err
	}
	if file == nil {
		return echo.NewHTTPError(http.StatusBadRequest, field+" file is required")
	}
	defer closer.Close()

	user, err := update(c.Request().Context(), userID, *file)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, user, message)
}
