package ports

import (
	"context"

	"github.com/videotube/backend/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
//
// The Update* methods are partial updates: they touch only the named field
// (plus updated_at) and never re-validate the rest of the document. Uniqueness
// of username and email is ultimately enforced by the store's unique indexes;
// callers may pre-check with FindByUsernameOrEmail but must treat a
// duplicate-key rejection from Create as the authoritative signal.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByUsernameOrEmail matches either field; empty arguments are skipped.
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error)
	// UpdateRefreshToken sets the stored refresh token, or clears it when
	// token is empty.
	UpdateRefreshToken(ctx context.Context, id, token string) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	UpdateAccount(ctx context.Context, id, fullName, email string) (*domain.User, error)
	UpdateAvatar(ctx context.Context, id, url string) (*domain.User, error)
	UpdateCoverImage(ctx context.Context, id, url string) (*domain.User, error)
}
