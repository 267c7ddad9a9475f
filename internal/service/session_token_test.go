package service

import (
	"errors"
	"testing"
	"time"
)

func TestSessionTokenService_RoundTrip(t *testing.T) {
	svc := NewSessionTokenService("secret", 15*time.Minute)

	token, err := svc.Issue("s1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims, err := svc.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.SessionID != "s1" || claims.Subject != "s1" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.Issuer != "havenchat" {
		t.Fatalf("unexpected issuer %q", claims.Issuer)
	}
}

func TestSessionTokenService_RejectsTampering(t *testing.T) {
	svc := NewSessionTokenService("secret", 15*time.Minute)
	other := NewSessionTokenService("otro-secreto", 15*time.Minute)

	token, err := svc.Issue("s1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := other.Parse(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid with wrong secret, got %v", err)
	}
}

func TestSessionTokenService_Expired(t *testing.T) {
	svc := &SessionTokenService{secret: []byte("secret"), ttl: -time.Minute, issuer: "havenchat"}

	token, err := svc.Issue("s1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := svc.Parse(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestSessionTokenService_Validation(t *testing.T) {
	svc := NewSessionTokenService("secret", time.Minute)

	if _, err := svc.Issue(""); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for empty session id, got %v", err)
	}
	if _, err := svc.Parse("  "); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for empty token, got %v", err)
	}

	empty := NewSessionTokenService("", time.Minute)
	if _, err := empty.Issue("s1"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid without secret, got %v", err)
	}
}
