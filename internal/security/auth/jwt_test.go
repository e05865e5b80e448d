package auth

import (
	"testing"
	"time"
)

func TestGenerateAndValidate(t *testing.T) {
	tm := NewTokenManager("test-secret", "rentledger")

	token, err := tm.GenerateToken("alice", "user", time.Hour)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := tm.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if claims.Username != "alice" || claims.Role != "user" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestValidate_WrongSecret(t *testing.T) {
	tm := NewTokenManager("test-secret", "rentledger")
	other := NewTokenManager("other-secret", "rentledger")

	token, err := tm.GenerateToken("alice", "user", time.Hour)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := other.ValidateToken(token); err == nil {
		t.Fatalf("expected validation to fail with wrong secret")
	}
}

func TestValidate_Expired(t *testing.T) {
	tm := NewTokenManager("test-secret", "rentledger")

	token, err := tm.GenerateToken("alice", "user", -time.Minute)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := tm.ValidateToken(token); err == nil {
		t.Fatalf("expected expired token to fail validation")
	}
}

func TestExtractToken(t *testing.T) {
	token, err := ExtractToken("Bearer abc.def.ghi")
	if err != nil || token != "abc.def.ghi" {
		t.Fatalf("expected extracted token, got %q err %v", token, err)
	}

	if _, err := ExtractToken("abc.def.ghi"); err == nil {
		t.Fatalf("expected error without Bearer prefix")
	}
	if _, err := ExtractToken(""); err == nil {
		t.Fatalf("expected error for empty header")
	}
}
