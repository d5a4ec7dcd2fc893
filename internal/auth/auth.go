// Package auth validates bearer credentials and derives the caller identity
// that gates every request.
package auth

import (
	"context"
	"strings"

	"mediaapi/internal/apierr"
	"mediaapi/internal/model"
)

const (
	expectedScheme  = "Bearer"
	adminRoleMarker = "admin"

	// RoleAdmin and RoleUser are the only roles a Principal can carry.
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Authenticator turns a raw Authorization header into a Principal.
type Authenticator interface {
	Authenticate(ctx context.Context, header string) (*model.Principal, error)
}

type authenticator struct {
	verifier TokenVerifier
}

// NewAuthenticator constructs an Authenticator on top of a verification capability.
func NewAuthenticator(verifier TokenVerifier) Authenticator {
	return &authenticator{verifier: verifier}
}

// Authenticate validates the header shape, verifies the token and derives the
// caller's role. Credential failures are terminal for the request; there are
// no retries at this layer.
func (a *authenticator) Authenticate(ctx context.Context, header string) (*model.Principal, error) {
	if header == "" {
		return nil, apierr.Unauthorized("NO_TOKEN", "No token provided")
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != expectedScheme || strings.TrimSpace(parts[1]) == "" {
		return nil, apierr.Unauthorized("INVALID_TOKEN_FORMAT", "Invalid token format")
	}

	claims, err := a.verifier.Verify(ctx, strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, apierr.Unauthorized("INVALID_TOKEN", "Invalid or expired token")
	}

	if claims.Email == "" {
		return nil, apierr.Unauthorized("UNAUTHORIZED", "Unauthorized", "Not registered user")
	}

	// Role derivation is a binary classifier, not a pass-through of the raw claim.
	role := RoleUser
	if claims.Role == adminRoleMarker {
		role = RoleAdmin
	}

	return &model.Principal{
		Role:  role,
		Email: claims.Email,
		ID:    claims.UUID,
	}, nil
}
