package auth

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// jwtVerifier verifies HMAC-signed JWTs using a shared secret.
type jwtVerifier struct {
	secret []byte
}

// NewJWTVerifier returns a TokenVerifier backed by golang-jwt.
func NewJWTVerifier(secret string) TokenVerifier {
	return &jwtVerifier{secret: []byte(secret)}
}

func (v *jwtVerifier) Verify(_ context.Context, token string) (*Claims, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if !parsed.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}

	c := &Claims{}
	c.Role, _ = mapClaims["role"].(string)
	c.Email, _ = mapClaims["email"].(string)
	c.UUID, _ = mapClaims["uuid"].(string)
	return c, nil
}
