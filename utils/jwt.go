package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

// TokenClaims holds the claims the client cares about from its bearer token.
// The token is issued and signed by the backend; the client holds no signing
// secret, so claims are read without signature verification and the backend
// remains the authority on validity.
type TokenClaims struct {
	Subject   string
	ExpiresAt time.Time
}

// InspectToken parses a bearer token string and extracts its subject and
// expiry. Tokens without an exp claim report a zero ExpiresAt.
func InspectToken(tokenString string) (*TokenClaims, error) {
	parser := &jwt.Parser{}
	token, _, err := parser.ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return nil, errors.New("malformed bearer token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("bearer token has no claims")
	}

	out := &TokenClaims{}
	if sub, ok := claims["sub"].(string); ok {
		out.Subject = sub
	}
	if exp, ok := claims["exp"].(float64); ok {
		out.ExpiresAt = time.Unix(int64(exp), 0)
	}
	return out, nil
}

// TokenExpired reports whether the token's exp claim is in the past. Tokens
// that cannot be parsed are treated as expired; tokens without an exp claim
// are treated as live.
func TokenExpired(tokenString string, now time.Time) bool {
	claims, err := InspectToken(tokenString)
	if err != nil {
		return true
	}
	if claims.ExpiresAt.IsZero() {
		return false
	}
	return claims.ExpiresAt.Before(now)
}
