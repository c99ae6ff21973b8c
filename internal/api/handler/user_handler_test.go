package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestUserHandler_CurrentUser(t *testing.T) {
	svc := &stubAuthService{user: testUser()}
	h := NewUserHandler(svc)

	c, rec := newContext(t, httptest.NewRequest(http.MethodGet, "/api/v1/users/current-user", nil))
	c.Set("user_id", "user-1")

	if err := h.CurrentUser(c); err != nil {
		t.Fatalf("CurrentUser returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	payload := rec.Body.String()
	if !strings.Contains(payload, `"username":"alice"`) {
		t.Fatalf("expected user payload, got %s", payload)
	}
	if strings.Contains(payload, "bcrypt-hash-never-shown") || strings.Contains(payload, "stored-refresh-token") {
		t.Fatalf("response leaks credentials: %s", payload)
	}
}

func TestUserHandler_CurrentUser_NoIdentity(t *testing.T) {
	h := NewUserHandler(&stubAuthService{})

	c, _ := newContext(t, httptest.NewRequest(http.MethodGet, "/api/v1/users/current-user", nil))

	err := h.CurrentUser(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %v", err)
	}
}

func TestUserHandler_UpdateAccount(t *testing.T) {
	svc := &stubAuthService{user: testUser()}
	h := NewUserHandler(svc)

	c, rec := newContext(t, jsonRequest(http.MethodPatch, "/api/v1/users/update-account",
		`{"fullName":"Alice B","email":"aliceb@example.com"}`))
	c.Set("user_id", "user-1")

	if err := h.UpdateAccount(c); err != nil {
		t.Fatalf("UpdateAccount returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.accountFullName != "Alice B" || svc.accountEmail != "aliceb@example.com" {
		t.Fatalf("unexpected update-account call: %s %s", svc.accountFullName, svc.accountEmail)
	}
}

func TestUserHandler_UpdateAccount_BadEmail(t *testing.T) {
	h := NewUserHandler(&stubAuthService{})

	c, _ := newContext(t, jsonRequest(http.MethodPatch, "/api/v1/users/update-account",
		`{"fullName":"Alice B","email":"not-an-email"}`))
	c.Set("user_id", "user-1")

	err := h.UpdateAccount(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid email, got %v", err)
	}
}

func TestUserHandler_UpdateAvatar(t *testing.T) {
	svc := &stubAuthService{user: testUser()}
	h := NewUserHandler(svc)

	req := multipartRequest(t, "/api/v1/users/avatar", nil, map[string]string{
		"avatar": "new-avatar.png",
	})
	c, rec := newContext(t, req)
	c.Set("user_id", "user-1")

	if err := h.UpdateAvatar(c); err != nil {
		t.Fatalf("UpdateAvatar returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.imageField != "avatar:new-avatar.png" {
		t.Fatalf("expected avatar file forwarded, got %q", svc.imageField)
	}
}

func TestUserHandler_UpdateAvatar_MissingFile(t *testing.T) {
	h := NewUserHandler(&stubAuthService{})

	req := multipartRequest(t, "/api/v1/users/avatar", map[string]string{"noop": "1"}, nil)
	c, _ := newContext(t, req)
	c.Set("user_id", "user-1")

	err := h.UpdateAvatar(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing file, got %v", err)
	}
}

func TestUserHandler_UpdateCoverImage(t *testing.T) {
	svc := &stubAuthService{user: testUser()}
	h := NewUserHandler(svc)

	req := multipartRequest(t, "/api/v1/users/cover-image", nil, map[string]string{
		"coverImage": "new-cover.jpg",
	})
	c, _ := newContext(t, req)
	c.Set("user_id", "user-1")

	if err := h.UpdateCoverImage(c); err != nil {
		t.Fatalf("UpdateCoverImage returned error: %v", err)
	}
	if svc.imageField != "cover:new-cover.jpg" {
		t.Fatalf("expected cover file forwarded, got %q", svc.imageField)
	}
}
