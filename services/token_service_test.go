package services

import (
	"errors"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret", 30*time.Minute)

	token, err := svc.Issue("alice")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	subject, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if subject != "alice" {
		t.Fatalf("expected subject alice, got %q", subject)
	}
}

func TestTokenExpired(t *testing.T) {
	svc := NewTokenService("test-secret", -time.Minute)

	token, err := svc.Issue("alice")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	_, err = svc.Validate(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenInvalid(t *testing.T) {
	svc := NewTokenService("test-secret", 30*time.Minute)

	cases := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"empty", ""},
		{"tampered", mustIssue(t, svc, "alice") + "x"},
		{"foreign key", mustIssue(t, NewTokenService("other-secret", 30*time.Minute), "alice")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Validate(tc.token)
			if !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestTokenRejectsMissingSubject(t *testing.T) {
	svc := NewTokenService("test-secret", 30*time.Minute)

	token, err := svc.Issue("")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	_, err = svc.Validate(token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for empty subject, got %v", err)
	}
}

func mustIssue(t *testing.T, svc *TokenService, subject string) string {
	t.Helper()
	token, err := svc.Issue(subject)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	return token
}
