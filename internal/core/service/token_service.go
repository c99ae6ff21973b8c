package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/videotube/backend/internal/core/domain"
	"github.com/videotube/backend/internal/core/ports"
)

const (
	defaultAccessTTL  = 15 * time.Minute
	defaultRefreshTTL = 10 * 24 * time.Hour
)

// TokenConfig holds the signing secrets and lifetimes for both token kinds.
// Access and refresh tokens use distinct secrets so one cannot stand in for
// the other.
type TokenConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// TokenService implements issuance and verification of HS256-signed tokens.
// The persisted refresh token on the user record is the single source of
// truth for refresh validity.
type TokenService struct {
	users ports.UserRepository
	cfg   TokenConfig
	log   zerolog.Logger
}

func NewTokenService(users ports.UserRepository, cfg TokenConfig, log zerolog.Logger) *TokenService {
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = defaultAccessTTL
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = defaultRefreshTTL
	}
	return &TokenService{users: users, cfg: cfg, log: log}
}

// IssuePair mints an access/refresh pair and persists the refresh token on
// the user record, superseding any previous one. Failures are logged with
// their real cause but surfaced as a generic ErrTokenGeneration.
func (s *TokenService) IssuePair(ctx context.Context, userID string) (*ports.TokenPair, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("issue pair: load user")
		return nil, domain.ErrTokenGeneration
	}

	now := time.Now()

	access, err := s.signAccessToken(user, now)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("issue pair: sign access token")
		return nil, domain.ErrTokenGeneration
	}

	refresh, err := s.signRefreshToken(user.ID, now)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("issue pair: sign refresh token")
		return nil, domain.ErrTokenGeneration
	}

	if err := s.users.UpdateRefreshToken(ctx, user.ID, refresh); err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("issue pair: persist refresh token")
		return nil, domain.ErrTokenGeneration
	}

	return &ports.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// VerifyRefreshToken validates a presented refresh token. Beyond signature
// and expiry, the token must byte-for-byte equal the one stored for its
// subject: once a new pair is issued the previous token is rejected with
// ErrRefreshTokenReused even if not yet expired.
func (s *TokenService) VerifyRefreshToken(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: token is missing", domain.ErrRefreshTokenInvalid)
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.cfg.RefreshSecret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrRefreshTokenInvalid
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, domain.ErrRefreshTokenInvalid
	}

	user, err := s.users.FindByID(ctx, sub)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown subject", domain.ErrRefreshTokenInvalid)
	}

	if user.RefreshToken != token {
		return nil, domain.ErrRefreshTokenReused
	}

	return user, nil
}

// Access tokens carry the identity claims needed to serve requests without a
// storage lookup.
func (s *TokenService) signAccessToken(user *domain.User, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":       user.ID,
		"username":  user.Username,
		"email":     user.Email,
		"full_name": user.FullName,
		"iat":       now.Unix(),
		"exp":       now.Add(s.cfg.AccessTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.cfg.AccessSecret))
}

// Refresh tokens carry only the subject id to limit their replay value.
func (s *TokenService) signRefreshToken(userID string, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(s.cfg.RefreshTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.cfg.RefreshSecret))
}
