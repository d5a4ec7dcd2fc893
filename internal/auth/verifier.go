package auth

import "context"

// Claims is the payload extracted from a verified credential.
type Claims struct {
	Role  string
	Email string
	UUID  string
}

// TokenVerifier is the external credential-verification capability.
// Implementations must return an error for any token that fails verification;
// claim completeness is checked by the Service, not the verifier.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*Claims, error)
}
