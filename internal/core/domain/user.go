package domain

import (
	"errors"
	"time"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrUserExists         = errors.New("user with email or username already exists")
	ErrUserNotFound       = errors.New("user does not exist")
	ErrInvalidCredentials = errors.New("invalid user credentials")

	// ErrTokenGeneration hides the underlying storage or signing failure
	// from API clients.
	ErrTokenGeneration = errors.New("could not generate access and refresh tokens")

	ErrRefreshTokenInvalid = errors.New("invalid refresh token")
	// ErrRefreshTokenReused is returned when a structurally valid refresh
	// token no longer matches the one persisted for its subject. Rotation
	// overwrites the stored value, so a superseded token stays rejected even
	// before its expiry.
	ErrRefreshTokenReused = errors.New("refresh token expired or used")

	ErrMediaUpload = errors.New("media upload failed")
)

// User models an account holder. PasswordHash and RefreshToken are excluded
// from every JSON projection; RefreshToken, when set, is the single currently
// valid refresh token for this user.
type User struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	FullName      string    `json:"fullName"`
	AvatarURL     string    `json:"avatar"`
	CoverImageURL string    `json:"coverImage,omitempty"`
	PasswordHash  string    `json:"-"`
	RefreshToken  string    `json:"-"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
