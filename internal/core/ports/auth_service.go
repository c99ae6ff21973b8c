package ports

import (
	"context"

	"github.com/videotube/backend/internal/core/domain"
)

// RegisterInput carries the registration form fields and media files.
// Avatar is required; CoverImage may be nil.
type RegisterInput struct {
	Username   string
	Email      string
	FullName   string
	Password   string
	Avatar     *MediaFile
	CoverImage *MediaFile
}

// LoginInput identifies a user by username or email (at least one required).
type LoginInput struct {
	Username string
	Email    string
	Password string
}

// AuthService orchestrates the session lifecycle: registration, login,
// logout, refresh-token rotation, password change and profile updates.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, input LoginInput) (*domain.User, *TokenPair, error)
	Logout(ctx context.Context, userID string) error
	// Refresh verifies the presented refresh token and rotates it: the
	// returned pair supersedes the old token, which is rejected afterwards.
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	CurrentUser(ctx context.Context, userID string) (*domain.User, error)
	UpdateAccount(ctx context.Context, userID, fullName, email string) (*domain.User, error)
	UpdateAvatar(ctx context.Context, userID string, file MediaFile) (*domain.User, error)
	UpdateCoverImage(ctx context.Context, userID string, file MediaFile) (*domain.User, error)
}
