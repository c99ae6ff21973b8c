package ports

import (
	"context"

	"github.com/videotube/backend/internal/core/domain"
)

// TokenPair carries a freshly issued access/refresh token pair.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// TokenService issues and verifies the two token kinds. Access tokens are
// short-lived and stateless; refresh tokens are long-lived and persisted on
// the user record so rotation can invalidate them.
type TokenService interface {
	// IssuePair mints both tokens for the user and persists the new refresh
	// token, superseding any previous one.
	IssuePair(ctx context.Context, userID string) (*TokenPair, error)
	// VerifyRefreshToken checks signature, expiry, subject existence and
	// exact equality with the stored refresh token, returning the subject.
	VerifyRefreshToken(ctx context.Context, token string) (*domain.User, error)
}
