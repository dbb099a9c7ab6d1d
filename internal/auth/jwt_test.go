package auth

import (
	"errors"
	"testing"
	"time"
)

func TestGenerateAndValidateToken(t *testing.T) {
	service := NewService("test-secret")

	token, err := service.GenerateToken("owner")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	claims, err := service.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.Subject != "owner" {
		t.Errorf("expected subject owner, got %s", claims.Subject)
	}
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		t.Fatal("expected issued-at and expiry claims")
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != DefaultTokenExpiry {
		t.Errorf("expected expiry %v after issue, got %v", DefaultTokenExpiry, got)
	}
}

func TestGenerateToken_EmptySubject(t *testing.T) {
	service := NewService("test-secret")
	if _, err := service.GenerateToken(""); !errors.Is(err, ErrEmptySubject) {
		t.Fatalf("expected ErrEmptySubject, got %v", err)
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := NewService("secret-a").GenerateToken("owner")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := NewService("secret-b").ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestValidateToken_Garbage(t *testing.T) {
	service := NewService("test-secret")
	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := service.ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken for %q, got %v", token, err)
		}
	}
}

func TestValidateToken_Expired(t *testing.T) {
	// Expiry beyond the validation leeway in the past.
	service := NewServiceWithExpiry("test-secret", -2*DefaultLeeway)

	token, err := service.GenerateToken("owner")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := service.ValidateToken(token); !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestValidateToken_WithinLeeway(t *testing.T) {
	// A token that expired a moment ago still validates inside the leeway.
	service := NewServiceWithExpiry("test-secret", -1*time.Second)

	token, err := service.GenerateToken("owner")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := service.ValidateToken(token); err != nil {
		t.Fatalf("expected token inside leeway to validate, got %v", err)
	}
}
