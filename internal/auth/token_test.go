package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestSignVerifyRoundtrip(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)
	tok, err := svc.Sign("uid-1", "user@example.com")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	claims, err := svc.Verify(tok)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Subject != "uid-1" || claims.Email != "user@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	secret := "test-secret"
	// Build a token that expired a minute ago.
	now := time.Now()
	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "uid-1",
		"email": "user@example.com",
		"iat":   now.Add(-2 * time.Hour).Unix(),
		"exp":   now.Add(-time.Minute).Unix(),
	})
	tok, err := raw.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	_, err = NewTokenService(secret, time.Hour).Verify(tok)
	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("got %v, want ErrSessionExpired", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	tok, err := NewTokenService("secret-a", time.Hour).Sign("uid-1", "a@example.com")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	_, err = NewTokenService("secret-b", time.Hour).Verify(tok)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("got %v, want ErrInvalidToken", err)
	}
}

func TestVerifyGarbage(t *testing.T) {
	_, err := NewTokenService("secret", time.Hour).Verify("not.a.token")
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("got %v, want ErrInvalidToken", err)
	}
}

func TestVerifyMissingSubject(t *testing.T) {
	secret := "test-secret"
	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "ghost@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	tok, err := raw.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	_, err = NewTokenService(secret, time.Hour).Verify(tok)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("got %v, want ErrInvalidToken", err)
	}
}

func TestPasswordHashRoundtrip(t *testing.T) {
	hash, err := HashPassword("hunter2secret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "hunter2secret" {
		t.Fatalf("password stored in the clear")
	}
	if err := CheckPassword(hash, "hunter2secret"); err != nil {
		t.Fatalf("correct password rejected: %v", err)
	}
	if err := CheckPassword(hash, "wrong"); err == nil {
		t.Fatalf("wrong password accepted")
	}
}
