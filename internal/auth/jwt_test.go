package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestJWTManager_GenerateAndParse(t *testing.T) {
	manager := NewJWTManager("secret", time.Hour)
	token, err := manager.GenerateToken("user-1", "admin@example.com", RoleAdmin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := manager.ParseToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.Subject != "user-1" || claims.Email != "admin@example.com" || claims.Role != RoleAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.Issuer != Issuer {
		t.Fatalf("expected issuer %s, got %s", Issuer, claims.Issuer)
	}

	if _, err := manager.ParseToken(token + "tampered"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for tampered token, got %v", err)
	}
}

func TestJWTManager_Expired(t *testing.T) {
	manager := NewJWTManager("secret", time.Minute)
	issued := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	manager.now = func() time.Time { return issued }

	token, err := manager.GenerateToken("user-1", "admin@example.com", RoleAdmin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	manager.now = func() time.Time { return issued.Add(2 * time.Minute) }
	if _, err := manager.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected expired token to be rejected, got %v", err)
	}
}

func TestJWTManager_ForeignIssuer(t *testing.T) {
	manager := NewJWTManager("secret", time.Hour)
	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Role: RoleAdmin,
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := manager.ParseToken(foreign); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected foreign issuer to be rejected, got %v", err)
	}
}

func TestJWTManager_EmptySecret(t *testing.T) {
	manager := NewJWTManager("", time.Hour)
	if _, err := manager.GenerateToken("user", "user@example.com", RoleAdmin); !errors.Is(err, ErrEmptySecret) {
		t.Fatalf("expected ErrEmptySecret, got %v", err)
	}
}
