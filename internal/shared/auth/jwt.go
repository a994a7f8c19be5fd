package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims represents the identity contained in a JWT.
type Claims struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

var (
	errMissingSecret = errors.New("jwt secret not configured")
	ErrInvalidToken  = errors.New("invalid token")
)

const devSecret = "dev-secret"

// tokenTTL applies when the caller leaves ExpiresAt unset.
const tokenTTL = 24 * time.Hour

// ResolveSecret returns the signing key for env. Production requires an
// explicit secret; other environments fall back to a fixed dev key.
func ResolveSecret(secret, env string) ([]byte, error) {
	secret = strings.TrimSpace(secret)
	if secret != "" {
		return []byte(secret), nil
	}
	if env == "production" {
		return nil, fmt.Errorf("%w: JWT_SECRET required in production", errMissingSecret)
	}
	return []byte(devSecret), nil
}

// SignJWT signs the given claims with HS256.
func SignJWT(claims Claims, secret []byte) (string, error) {
	if len(secret) == 0 {
		return "", errMissingSecret
	}
	if claims.Subject == "" {
		return "", errors.New("sub is required")
	}

	now := time.Now().UTC()
	if claims.IssuedAt == nil {
		claims.IssuedAt = jwt.NewNumericDate(now)
	}
	if claims.ExpiresAt == nil {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(tokenTTL))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// VerifyJWT verifies a token and returns its claims.
func VerifyJWT(token string, secret []byte) (Claims, error) {
	if len(secret) == 0 {
		return Claims{}, errMissingSecret
	}

	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return Claims{}, ErrInvalidToken
	}
	if claims.Subject == "" {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}
