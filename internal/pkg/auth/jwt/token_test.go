package jwt

import (
	"testing"
	"time"
)

const testSecret = "test-secret"

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken(&Payload{UserID: "64f1c0ffee64f1c0ffee64f1"}, testSecret, SessionExpiration)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	payload, err := ParseToken(token, testSecret)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}

	if payload.UserID != "64f1c0ffee64f1c0ffee64f1" {
		t.Errorf("UserID = %q, want the original id", payload.UserID)
	}
	if payload.Issuer != TokenIssuer {
		t.Errorf("Issuer = %q, want %q", payload.Issuer, TokenIssuer)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken(&Payload{UserID: "64f1c0ffee64f1c0ffee64f1"}, testSecret, SessionExpiration)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := ParseToken(token, "other-secret"); err == nil {
		t.Error("expected parse with wrong secret to fail")
	}
}

func TestParseTokenExpired(t *testing.T) {
	token, err := GenerateToken(&Payload{UserID: "64f1c0ffee64f1c0ffee64f1"}, testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := ParseToken(token, testSecret); err == nil {
		t.Error("expected expired token to fail")
	}
}

func TestParseTokenGarbage(t *testing.T) {
	if _, err := ParseToken("not.a.token", testSecret); err == nil {
		t.Error("expected malformed token to fail")
	}
}
