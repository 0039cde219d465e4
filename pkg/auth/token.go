package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/secondbowl/storefront-gateway/pkg/config"
)

var jwtSigningMethod = jwt.SigningMethodHS256

// IdentityClaims is the subset of the provider token the gateway relies on.
// The principal travels in the registered subject claim.
type IdentityClaims struct {
	jwt.RegisteredClaims
}

// ParseIdentityToken validates a provider-issued JWT and returns its claims.
func ParseIdentityToken(cfg config.IdentityConfig, tokenString string) (*IdentityClaims, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("identity jwt secret is required")
	}

	claims := &IdentityClaims{}
	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if token.Method != jwtSigningMethod {
				return nil, fmt.Errorf("unexpected signing method %s", token.Header["alg"])
			}
			return []byte(cfg.JWTSecret), nil
		},
		jwt.WithValidMethods([]string{jwtSigningMethod.Alg()}),
		jwt.WithIssuer(cfg.Issuer),
	)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(claims.Subject) == "" {
		return nil, fmt.Errorf("token carries no subject")
	}

	return claims, nil
}

// MintIdentityToken issues a signed JWT the way the provider would. Test and
// local-development helper; production tokens come from the provider.
func MintIdentityToken(cfg config.IdentityConfig, now time.Time, principal string, ttl time.Duration) (string, error) {
	if cfg.JWTSecret == "" {
		return "", fmt.Errorf("identity jwt secret is required")
	}
	if cfg.Issuer == "" {
		return "", fmt.Errorf("identity issuer is required")
	}
	if strings.TrimSpace(principal) == "" {
		return "", fmt.Errorf("principal is required")
	}

	claims := IdentityClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Subject:   principal,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwtSigningMethod, claims)
	signed, err := token.SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("signing jwt: %w", err)
	}
	return signed, nil
}
