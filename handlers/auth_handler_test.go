package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cybertour/tournament-api/models"
	"github.com/cybertour/tournament-api/services"
)

type stubAuthService struct {
	users map[string]string // username -> password
}

func (s *stubAuthService) Register(_ context.Context, input services.RegisterInput) (*models.User, error) {
	if _, ok := s.users[input.Username]; ok {
		return nil, services.ErrUsernameTaken
	}
	s.users[input.Username] = input.Password
	return &models.User{ID: len(s.users), Username: input.Username, Email: input.Email, IsActive: true}, nil
}

func (s *stubAuthService) Authenticate(_ context.Context, username, password string) (*models.User, error) {
	stored, ok := s.users[username]
	if !ok || stored != password {
		return nil, services.ErrInvalidCredentials
	}
	return &models.User{ID: 1, Username: username, IsActive: true}, nil
}

func newAuthHandlerForTest() *AuthHandler {
	return NewAuthHandler(
		&stubAuthService{users: map[string]string{"alice": "secret1"}},
		services.NewTokenService("test-secret", 30*time.Minute),
	)
}

func TestRegisterEndpoint(t *testing.T) {
	handler := newAuthHandlerForTest()

	body := `{"username": "bob", "email": "bob@example.com", "password": "secret2"}`
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Register(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var user models.User
	if err := json.Unmarshal(rec.Body.Bytes(), &user); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if user.Username != "bob" {
		t.Fatalf("expected username bob, got %q", user.Username)
	}
}

func TestRegisterEndpointConflict(t *testing.T) {
	handler := newAuthHandlerForTest()

	body := `{"username": "alice", "email": "alice@example.com", "password": "secret1"}`
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Register(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestTokenEndpointJSON(t *testing.T) {
	handler := newAuthHandlerForTest()

	body := `{"username": "alice", "password": "secret1"}`
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Token(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var response struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.AccessToken == "" {
		t.Fatal("expected an access token")
	}
	if response.TokenType != "bearer" {
		t.Fatalf("expected token_type bearer, got %q", response.TokenType)
	}
}

func TestTokenEndpointForm(t *testing.T) {
	handler := newAuthHandlerForTest()

	form := "username=alice&password=secret1"
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	handler.Token(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestTokenEndpointBadCredentials(t *testing.T) {
	handler := newAuthHandlerForTest()

	body := `{"username": "alice", "password": "wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Token(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if rec.Header().Get("WWW-Authenticate") != "Bearer" {
		t.Fatal("expected WWW-Authenticate header")
	}
}
