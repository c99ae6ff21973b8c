package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/videotube/backend/internal/core/domain"
	"github.com/videotube/backend/internal/core/ports"
)

type fakeMedia struct {
	fail     bool
	emptyURL bool
	saved    []string
}

func (s *fakeMedia) Save(_ context.Context, name string, _ io.Reader) (string, error) {
	if s.fail {
		return "", errors.New("media host unreachable")
	}
	if s.emptyURL {
		return "", nil
	}
	s.saved = append(s.saved, name)
	return "https://cdn.test/" + name, nil
}

func newAuthService(repo *stubUserRepo, media ports.MediaStorage) *AuthService {
	tokens := NewTokenService(repo, testTokenConfig(), zerolog.Nop())
	return NewAuthService(repo, tokens, media, zerolog.Nop())
}

func mediaFile(name string) *ports.MediaFile {
	return &ports.MediaFile{Name: name, Content: strings.NewReader("media-bytes")}
}

func registerInput() ports.RegisterInput {
	return ports.RegisterInput{
		Username: "Alice",
		Email:    "alice@example.com",
		FullName: "Alice Anderson",
		Password: "s3cret-pass",
		Avatar:   mediaFile("avatar.png"),
	}
}

func TestAuthService_Register(t *testing.T) {
	repo := newStubUserRepo()
	media := &fakeMedia{}
	svc := newAuthService(repo, media)

	input := registerInput()
	input.CoverImage = mediaFile("cover.jpg")

	user, err := svc.Register(context.Background(), input)
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected created user to have an id")
	}
	if user.Username != "alice" {
		t.Fatalf("expected lowercased username, got %q", user.Username)
	}
	if user.PasswordHash == input.Password {
		t.Fatalf("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		t.Fatalf("stored hash does not verify against the password: %v", err)
	}
	if !strings.HasPrefix(user.AvatarURL, "https://cdn.test/avatars/") {
		t.Fatalf("unexpected avatar url %q", user.AvatarURL)
	}
	if !strings.HasPrefix(user.CoverImageURL, "https://cdn.test/covers/") {
		t.Fatalf("unexpected cover url %q", user.CoverImageURL)
	}
	if len(media.saved) != 2 {
		t.Fatalf("expected two uploads, got %d", len(media.saved))
	}
}

func TestAuthService_Register_NeverExposesSecrets(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, &fakeMedia{})

	user, err := svc.Register(context.Background(), registerInput())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	body, err := json.Marshal(user)
	if err != nil {
		t.Fatalf("marshal user: %v", err)
	}
	payload := string(body)
	if strings.Contains(payload, "passwordHash") || strings.Contains(payload, user.PasswordHash) {
		t.Fatalf("serialized user leaks the password hash: %s", payload)
	}
	if strings.Contains(payload, "refreshToken") {
		t.Fatalf("serialized user leaks the refresh token field: %s", payload)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), &fakeMedia{})

	cases := []struct {
		name   string
		mutate func(*ports.RegisterInput)
	}{
		{"missing username", func(in *ports.RegisterInput) { in.Username = "  " }},
		{"missing email", func(in *ports.RegisterInput) { in.Email = "" }},
		{"missing full name", func(in *ports.RegisterInput) { in.FullName = "" }},
		{"missing password", func(in *ports.RegisterInput) { in.Password = " " }},
		{"missing avatar", func(in *ports.RegisterInput) { in.Avatar = nil }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := registerInput()
			tc.mutate(&input)
			if _, err := svc.Register(context.Background(), input); !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, &fakeMedia{})

	if _, err := svc.Register(context.Background(), registerInput()); err != nil {
		t.Fatalf("first Register: %v", err)
	}

	input := registerInput()
	input.Avatar = mediaFile("avatar2.png")
	if _, err := svc.Register(context.Background(), input); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("duplicate registration must not create a record, have %d", len(repo.users))
	}
}

func TestAuthService_Register_UploadFailure(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, &fakeMedia{fail: true})

	if _, err := svc.Register(context.Background(), registerInput()); !errors.Is(err, domain.ErrMediaUpload) {
		t.Fatalf("expected ErrMediaUpload, got %v", err)
	}
	if len(repo.users) != 0 {
		t.Fatalf("upload failure must abort before persistence")
	}
}

func TestAuthService_Register_EmptyMediaURL(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, &fakeMedia{emptyURL: true})

	if _, err := svc.Register(context.Background(), registerInput()); !errors.Is(err, domain.ErrMediaUpload) {
		t.Fatalf("expected ErrMediaUpload for empty url, got %v", err)
	}
	if len(repo.users) != 0 {
		t.Fatalf("empty media url must abort before persistence")
	}
}

func registerAndLogin(t *testing.T, svc *AuthService) (*domain.User, *ports.TokenPair) {
	t.Helper()
	if _, err := svc.Register(context.Background(), registerInput()); err != nil {
		t.Fatalf("Register: %v", err)
	}
	user, pair, err := svc.Login(context.Background(), ports.LoginInput{
		Username: "alice",
		Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	return user, pair
}

func TestAuthService_Login(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, &fakeMedia{})

	user, pair := registerAndLogin(t, svc)
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("expected a full token pair, got %+v", pair)
	}

	stored, _ := repo.FindByID(context.Background(), user.ID)
	if stored.RefreshToken != pair.RefreshToken {
		t.Fatalf("login must persist the issued refresh token")
	}
}

func TestAuthService_Login_ByEmail(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), &fakeMedia{})
	if _, err := svc.Register(context.Background(), registerInput()); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), ports.LoginInput{
		Email:    "alice@example.com",
		Password: "s3cret-pass",
	}); err != nil {
		t.Fatalf("login by email failed: %v", err)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), &fakeMedia{})
	if _, err := svc.Register(context.Background(), registerInput()); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), ports.LoginInput{
		Username: "alice",
		Password: "not-the-password",
	}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), &fakeMedia{})

	if _, _, err := svc.Login(context.Background(), ports.LoginInput{
		Username: "nobody",
		Password: "whatever",
	}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_Refresh_RotatesToken(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, &fakeMedia{})
	user, pair := registerAndLogin(t, svc)

	rotated, err := svc.Refresh(context.Background(), pair.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}

	stored, _ := repo.FindByID(context.Background(), user.ID)
	if stored.RefreshToken != rotated.RefreshToken {
		t.Fatalf("rotation must persist the new refresh token")
	}
}

func TestAuthService_Refresh_RejectsReplayedToken(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, &fakeMedia{})
	user, pair := registerAndLogin(t, svc)

	// Force a different stored token so the presented one is stale.
	if err := repo.UpdateRefreshToken(context.Background(), user.ID, "other-token"); err != nil {
		t.Fatalf("UpdateRefreshToken: %v", err)
	}

	if _, err := svc.Refresh(context.Background(), pair.RefreshToken); !errors.Is(err, domain.ErrRefreshTokenReused) {
		t.Fatalf("expected ErrRefreshTokenReused, got %v", err)
	}
}

func TestAuthService_Refresh_Garbage(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), &fakeMedia{})

	if _, err := svc.Refresh(context.Background(), "not-a-jwt"); !errors.Is(err, domain.ErrRefreshTokenInvalid) {
		t.Fatalf("expected ErrRefreshTokenInvalid, got %v", err)
	}
}

func TestAuthService_Logout_InvalidatesRefreshToken(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, &fakeMedia{})
	user, pair := registerAndLogin(t, svc)

	if err := svc.Logout(context.Background(), user.ID); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	stored, _ := repo.FindByID(context.Background(), user.ID)
	if stored.RefreshToken != "" {
		t.Fatalf("logout must clear the stored refresh token")
	}

	if _, err := svc.Refresh(context.Background(), pair.RefreshToken); !errors.Is(err, domain.ErrRefreshTokenReused) {
		t.Fatalf("expected logged-out token to be rejected, got %v", err)
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, &fakeMedia{})
	user, _ := registerAndLogin(t, svc)

	if err := svc.ChangePassword(context.Background(), user.ID, "s3cret-pass", "new-pass-123"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), ports.LoginInput{Username: "alice", Password: "new-pass-123"}); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
	if _, _, err := svc.Login(context.Background(), ports.LoginInput{Username: "alice", Password: "s3cret-pass"}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("old password must no longer verify, got %v", err)
	}
}

func TestAuthService_ChangePassword_WrongCurrent(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, &fakeMedia{})
	user, _ := registerAndLogin(t, svc)

	if err := svc.ChangePassword(context.Background(), user.ID, "wrong", "new-pass-123"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_UpdateAccount(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, &fakeMedia{})
	user, _ := registerAndLogin(t, svc)

	updated, err := svc.UpdateAccount(context.Background(), user.ID, "Alice B", "aliceb@example.com")
	if err != nil {
		t.Fatalf("UpdateAccount: %v", err)
	}
	if updated.FullName != "Alice B" || updated.Email != "aliceb@example.com" {
		t.Fatalf("unexpected updated user: %+v", updated)
	}

	if _, err := svc.UpdateAccount(context.Background(), user.ID, " ", ""); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestAuthService_UpdateAvatar(t *testing.T) {
	repo := newStubUserRepo()
	media := &fakeMedia{}
	svc := newAuthService(repo, media)
	user, _ := registerAndLogin(t, svc)

	updated, err := svc.UpdateAvatar(context.Background(), user.ID, *mediaFile("new-avatar.webp"))
	if err != nil {
		t.Fatalf("UpdateAvatar: %v", err)
	}
	if !strings.HasSuffix(updated.AvatarURL, ".webp") {
		t.Fatalf("expected url to keep the file extension, got %q", updated.AvatarURL)
	}
	if updated.AvatarURL == user.AvatarURL {
		t.Fatalf("expected a new avatar url")
	}
}

func TestAuthService_UpdateCoverImage_UploadFailure(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, &fakeMedia{})
	user, _ := registerAndLogin(t, svc)

	failing := newAuthService(repo, &fakeMedia{fail: true})
	if _, err := failing.UpdateCoverImage(context.Background(), user.ID, *mediaFile("cover.png")); !errors.Is(err, domain.ErrMediaUpload) {
		t.Fatalf("expected ErrMediaUpload, got %v", err)
	}
}
