package services

import (
	"context"
	"errors"
	"testing"
)

func strPtr(s string) *string { return &s }

func TestRegisterThenAuthenticate(t *testing.T) {
	svc := NewAuthService(newMockUserRepo())
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret1",
		FullName: strPtr("Alice A."),
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("expected assigned user id")
	}
	if user.Username != "alice" || user.Email != "alice@example.com" {
		t.Fatalf("unexpected user fields: %+v", user)
	}
	if !user.IsActive || user.IsAdmin {
		t.Fatalf("expected active non-admin user, got active=%v admin=%v", user.IsActive, user.IsAdmin)
	}
	if user.PasswordHash == "" || user.PasswordHash == "secret1" {
		t.Fatal("expected password to be hashed")
	}

	got, err := svc.Authenticate(ctx, "alice", "secret1")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("expected user %d, got %d", user.ID, got.ID)
	}
}

func TestAuthenticateFailsUniformly(t *testing.T) {
	svc := NewAuthService(newMockUserRepo())
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret1",
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	// Wrong password and unknown username must be indistinguishable.
	_, wrongPass := svc.Authenticate(ctx, "alice", "wrong")
	_, unknownUser := svc.Authenticate(ctx, "nobody", "secret1")

	if !errors.Is(wrongPass, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", wrongPass)
	}
	if !errors.Is(unknownUser, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", unknownUser)
	}
}

func TestRegisterDuplicates(t *testing.T) {
	svc := NewAuthService(newMockUserRepo())
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret1",
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, err := svc.Register(ctx, RegisterInput{
		Username: "alice",
		Email:    "other@example.com",
		Password: "secret1",
	})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}

	_, err = svc.Register(ctx, RegisterInput{
		Username: "alice2",
		Email:    "alice@example.com",
		Password: "secret1",
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := NewAuthService(newMockUserRepo())
	ctx := context.Background()

	cases := []struct {
		name  string
		input RegisterInput
		want  error
	}{
		{"empty username", RegisterInput{Username: " ", Email: "a@example.com", Password: "secret1"}, ErrUsernameRequired},
		{"bad email", RegisterInput{Username: "bob", Email: "not-an-email", Password: "secret1"}, ErrEmailInvalid},
		{"short password", RegisterInput{Username: "bob", Email: "bob@example.com", Password: "12345"}, ErrPasswordTooShort},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.input)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}
