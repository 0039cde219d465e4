package auth

import (
	"context"
	"testing"
	"time"

	"github.com/secondbowl/storefront-gateway/pkg/config"
)

func testIdentityConfig() config.IdentityConfig {
	return config.IdentityConfig{
		JWTSecret: "test-secret",
		Issuer:    "identity.secondbowl.test",
	}
}

func TestMintAndParseIdentityToken(t *testing.T) {
	cfg := testIdentityConfig()
	now := time.Now()

	signed, err := MintIdentityToken(cfg, now, "principal-xyz", time.Hour)
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	claims, err := ParseIdentityToken(cfg, signed)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.Subject != "principal-xyz" {
		t.Fatalf("unexpected subject %q", claims.Subject)
	}
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	cfg := testIdentityConfig()
	signed, err := MintIdentityToken(cfg, time.Now(), "principal-xyz", time.Hour)
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	other := cfg
	other.Issuer = "someone-else"
	if _, err := ParseIdentityToken(other, signed); err == nil {
		t.Fatal("expected issuer mismatch to fail")
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	cfg := testIdentityConfig()
	signed, err := MintIdentityToken(cfg, time.Now().Add(-2*time.Hour), "principal-xyz", time.Hour)
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	if _, err := ParseIdentityToken(cfg, signed); err == nil {
		t.Fatal("expected expired token to fail")
	}
}

func TestIdentityContextRoundTrip(t *testing.T) {
	ctx := context.Background()
	if _, ok := FromContext(ctx); ok {
		t.Fatal("empty context should carry no identity")
	}

	ctx = WithIdentity(ctx, Identity{Principal: "p1", Token: "tok"})
	id, ok := FromContext(ctx)
	if !ok {
		t.Fatal("expected identity in context")
	}
	if id.Principal != "p1" || id.Token != "tok" {
		t.Fatalf("unexpected identity %+v", id)
	}
}
