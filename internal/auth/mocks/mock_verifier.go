package mocks

import (
	"context"

	"mediaapi/internal/auth"

	"github.com/stretchr/testify/mock"
)

type MockTokenVerifier struct {
	mock.Mock
}

func (m *MockTokenVerifier) Verify(ctx context.Context, token string) (*auth.Claims, error) {
	args := m.Called(ctx, token)
	if c, ok := args.Get(0).(*auth.Claims); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}
