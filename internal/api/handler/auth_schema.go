package handler

import (
	"github.com/videotube/backend/internal/core/domain"
)

// Register is multipart/form-data (text fields plus avatar/coverImage files)
// and is parsed by hand in the handler; the JSON schemas below cover the rest
// of the session endpoints.

type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

type updateAccountRequest struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
}

// loginData is the login response payload: the projected user plus both
// tokens, mirroring what the cookies carry.
type loginData struct {
	User         *domain.User `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}
