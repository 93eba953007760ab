package utils

import (
	"testing"
	"time"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	signer := NewTokenSigner("secret", time.Minute)
	token, err := signer.GenerateAccessToken("p1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	claims, err := signer.ParseAccessToken(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != "p1" {
		t.Fatalf("expected p1, got %s", claims.UserID)
	}
}

func TestAccessTokenWrongSecret(t *testing.T) {
	token, err := NewTokenSigner("one", time.Minute).GenerateAccessToken("p1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := NewTokenSigner("two", time.Minute).ParseAccessToken(token); err == nil {
		t.Fatal("expected signature error")
	}
}

func TestAccessTokenExpired(t *testing.T) {
	signer := NewTokenSigner("secret", time.Minute)
	signer.ttl = -time.Minute
	token, err := signer.GenerateAccessToken("p1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := signer.ParseAccessToken(token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}
