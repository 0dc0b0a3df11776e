package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func TestNewAccessTokenClaims(t *testing.T) {
	secret := "test-secret"
	at, err := NewAccessToken(secret, 42, "admin", 15)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if at.Token == "" {
		t.Fatal("empty token")
	}

	parsed, err := jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		t.Fatal("token did not validate")
	}
	if sub, _ := claims["sub"].(float64); uint64(sub) != 42 {
		t.Errorf("sub = %v, want 42", claims["sub"])
	}
	if role, _ := claims["role"].(string); role != "admin" {
		t.Errorf("role = %v, want admin", claims["role"])
	}
}

func TestNewAccessTokenWrongSecret(t *testing.T) {
	at, err := NewAccessToken("right", 1, "user", 15)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	_, err = jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte("wrong"), nil
	})
	if err == nil {
		t.Fatal("token verified under the wrong secret")
	}
}

func TestResetTokenHashing(t *testing.T) {
	rt, err := NewResetToken(30)
	if err != nil {
		t.Fatalf("NewResetToken: %v", err)
	}
	if len(rt.Raw) != 64 {
		t.Fatalf("raw token length = %d, want 64", len(rt.Raw))
	}
	h1 := HashResetRaw(rt.Raw)
	h2 := HashResetRaw(rt.Raw)
	if h1 != h2 {
		t.Fatal("hashing is not deterministic")
	}
	if h1 == rt.Raw {
		t.Fatal("hash equals the raw token")
	}

	other, err := NewResetToken(30)
	if err != nil {
		t.Fatalf("NewResetToken: %v", err)
	}
	if other.Raw == rt.Raw {
		t.Fatal("two reset tokens collided")
	}
}

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pass", 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !VerifyPassword(hash, "s3cret-pass") {
		t.Error("correct password rejected")
	}
	if VerifyPassword(hash, "wrong") {
		t.Error("wrong password accepted")
	}
}
