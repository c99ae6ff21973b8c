package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/videotube/backend/internal/api/metrics"
	"github.com/videotube/backend/internal/core/domain"
	"github.com/videotube/backend/internal/core/ports"
)

// AuthService implements the session lifecycle over the user store, the
// token service and the media host.
type AuthService struct {
	users  ports.UserRepository
	tokens ports.TokenService
	media  ports.MediaStorage
	log    zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenService, media ports.MediaStorage, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, media: media, log: log}
}

// Register validates the form, uploads the profile media and creates the
// user. Media uploads happen before any persistence write: an upload failure
// aborts registration without leaving a partial record. The duplicate
// pre-check is a fast path only; the store's unique indexes on username and
// email are the authoritative enforcement and surface as ErrUserExists from
// Create.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	username := strings.ToLower(strings.TrimSpace(input.Username))
	email := strings.TrimSpace(input.Email)
	fullName := strings.TrimSpace(input.FullName)

	if username == "" || email == "" || fullName == "" || strings.TrimSpace(input.Password) == "" {
		return nil, fmt.Errorf("%w: all fields are required", domain.ErrValidation)
	}
	if input.Avatar == nil {
		return nil, fmt.Errorf("%w: avatar file is required", domain.ErrValidation)
	}

	if existing, _ := s.users.FindByUsernameOrEmail(ctx, username, email); existing != nil {
		return nil, domain.ErrUserExists
	}

	avatarURL, err := uploadMedia(ctx, s.media, "avatars", *input.Avatar)
	if err != nil {
		return nil, err
	}

	var coverURL string
	if input.CoverImage != nil {
		coverURL, err = uploadMedia(ctx, s.media, "covers", *input.CoverImage)
		if err != nil {
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		Username:      username,
		Email:         email,
		FullName:      fullName,
		AvatarURL:     avatarURL,
		CoverImageURL: coverURL,
		PasswordHash:  string(hash),
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		return nil, err
	}

	metrics.RegistrationsTotal.Inc()
	s.log.Info().Str("user_id", created.ID).Str("username", created.Username).Msg("user registered")

	return created, nil
}

// Login verifies the credentials and issues a fresh token pair, overwriting
// any previously stored refresh token (last login wins).
func (s *AuthService) Login(ctx context.Context, input ports.LoginInput) (*domain.User, *ports.TokenPair, error) {
	username := strings.ToLower(strings.TrimSpace(input.Username))
	email := strings.TrimSpace(input.Email)

	if username == "" && email == "" {
		return nil, nil, fmt.Errorf("%w: username or email is required", domain.ErrValidation)
	}
	if input.Password == "" {
		return nil, nil, fmt.Errorf("%w: password is required", domain.ErrValidation)
	}

	user, err := s.users.FindByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, nil, err
	}

	// bcrypt compares in constant time; the plaintext is never compared
	// directly against anything stored.
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, nil, domain.ErrInvalidCredentials
	}

	pair, err := s.tokens.IssuePair(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("user logged in")

	return user, pair, nil
}

// Logout clears the stored refresh token so the current session's refresh
// token can no longer be exchanged.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	if err := s.users.UpdateRefreshToken(ctx, userID, ""); err != nil {
		return err
	}
	s.log.Info().Str("user_id", userID).Msg("user logged out")
	return nil
}

// Refresh exchanges a valid refresh token for a brand-new pair. Issuing the
// new pair overwrites the stored token, so the presented token is single-use.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*ports.TokenPair, error) {
	user, err := s.tokens.VerifyRefreshToken(ctx, refreshToken)
	if err != nil {
		metrics.TokenRefreshesTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}

	pair, err := s.tokens.IssuePair(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	metrics.TokenRefreshesTotal.WithLabelValues("rotated").Inc()
	return pair, nil
}

// ChangePassword requires the current password to verify before storing the
// new hash. Outstanding refresh tokens are left untouched.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if strings.TrimSpace(newPassword) == "" {
		return fmt.Errorf("%w: new password is required", domain.ErrValidation)
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return s.users.UpdatePassword(ctx, userID, string(hash))
}

func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *AuthService) UpdateAccount(ctx context.Context, userID, fullName, email string) (*domain.User, error) {
	fullName = strings.TrimSpace(fullName)
	email = strings.TrimSpace(email)
	if fullName == "" || email == "" {
		return nil, fmt.Errorf("%w: full name and email are required", domain.ErrValidation)
	}
	return s.users.UpdateAccount(ctx, userID, fullName, email)
}

func (s *AuthService) UpdateAvatar(ctx context.Context, userID string, file ports.MediaFile) (*domain.User, error) {
	url, err := uploadMedia(ctx, s.media, "avatars", file)
	if err != nil {
		return nil, err
	}
	return s.users.UpdateAvatar(ctx, userID, url)
}

func (s *AuthService) UpdateCoverImage(ctx context.Context, userID string, file ports.MediaFile) (*domain.User, error) {
	url, err := uploadMedia(ctx, s.media, "covers", file)
	if err != nil {
		return nil, err
	}
	return s.users.UpdateCoverImage(ctx, userID, url)
}
