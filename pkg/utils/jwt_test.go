package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", time.Minute)
	id := uuid.New()

	token, err := tm.CreateToken(id, "carrier")
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}
	claims, err := tm.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != id.String() || claims.Role != "carrier" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestTokenRejectsOtherSecret(t *testing.T) {
	token, err := NewTokenManager("a", time.Minute).CreateToken(uuid.New(), "admin")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewTokenManager("b", time.Minute).ValidateToken(token); err == nil {
		t.Fatal("expected signature mismatch to be rejected")
	}
}

func TestTokenExpired(t *testing.T) {
	tm := &TokenManager{secret: []byte("s"), ttl: -time.Minute}
	token, err := tm.CreateToken(uuid.New(), "manager")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tm.ValidateToken(token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}
