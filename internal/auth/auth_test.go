package auth_test

import (
	"context"
	"errors"
	"testing"

	"mediaapi/internal/apierr"
	"mediaapi/internal/auth"
	"mediaapi/internal/auth/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		header      string
		setupMocks  func(m *mocks.MockTokenVerifier)
		wantCode    string
		wantMessage string
		wantDetails []string
		wantRole    string
	}{
		{
			name:        "missing header",
			header:      "",
			wantCode:    "NO_TOKEN",
			wantMessage: "No token provided",
		},
		{
			name:        "wrong scheme",
			header:      "InvalidFormat token123",
			wantCode:    "INVALID_TOKEN_FORMAT",
			wantMessage: "Invalid token format",
		},
		{
			name:        "empty token after scheme",
			header:      "Bearer ",
			wantCode:    "INVALID_TOKEN_FORMAT",
			wantMessage: "Invalid token format",
		},
		{
			name:   "verification failure",
			header: "Bearer badToken",
			setupMocks: func(m *mocks.MockTokenVerifier) {
				m.On("Verify", ctx, "badToken").Return(nil, errors.New("signature invalid"))
			},
			wantCode:    "INVALID_TOKEN",
			wantMessage: "Invalid or expired token",
		},
		{
			name:   "missing email claim",
			header: "Bearer validToken",
			setupMocks: func(m *mocks.MockTokenVerifier) {
				m.On("Verify", ctx, "validToken").
					Return(&auth.Claims{Role: "user", UUID: "123456789101"}, nil)
			},
			wantCode:    "UNAUTHORIZED",
			wantMessage: "Unauthorized",
			wantDetails: []string{"Not registered user"},
		},
		{
			name:   "admin role derived",
			header: "Bearer validToken",
			setupMocks: func(m *mocks.MockTokenVerifier) {
				m.On("Verify", ctx, "validToken").
					Return(&auth.Claims{Role: "admin", Email: "example@ucr.ac.cr", UUID: "123456789101"}, nil)
			},
			wantRole: auth.RoleAdmin,
		},
		{
			name:   "non-admin claim derives user role",
			header: "Bearer validToken",
			setupMocks: func(m *mocks.MockTokenVerifier) {
				m.On("Verify", ctx, "validToken").
					Return(&auth.Claims{Role: "moderator", Email: "example@ucr.ac.cr", UUID: "123456789101"}, nil)
			},
			wantRole: auth.RoleUser,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mVerifier := new(mocks.MockTokenVerifier)
			if tt.setupMocks != nil {
				tt.setupMocks(mVerifier)
			}
			svc := auth.NewAuthenticator(mVerifier)

			principal, err := svc.Authenticate(ctx, tt.header)

			if tt.wantCode != "" {
				require.Error(t, err)
				apiErr := apierr.From(err)
				require.NotNil(t, apiErr)
				assert.Equal(t, tt.wantCode, apiErr.Code)
				assert.Equal(t, tt.wantMessage, apiErr.Message)
				if tt.wantDetails != nil {
					assert.Equal(t, tt.wantDetails, apiErr.Details)
				}
			} else {
				require.NoError(t, err)
				require.NotNil(t, principal)
				assert.Equal(t, tt.wantRole, principal.Role)
				assert.Equal(t, "example@ucr.ac.cr", principal.Email)
				assert.Equal(t, "123456789101", principal.ID)
			}
			mVerifier.AssertExpectations(t)
		})
	}
}

func TestAuthenticate_SchemeMustMatchExactly(t *testing.T) {
	mVerifier := new(mocks.MockTokenVerifier)
	svc := auth.NewAuthenticator(mVerifier)

	_, err := svc.Authenticate(context.Background(), "bearer sometoken")

	apiErr := apierr.From(err)
	require.NotNil(t, apiErr)
	assert.Equal(t, "INVALID_TOKEN_FORMAT", apiErr.Code)
	mVerifier.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything)
}
