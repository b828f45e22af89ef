package auth

import "context"

type AuthService interface {
	// Login verifies NIK + password against the employee master and issues
	// a token pair.
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)

	// Refresh exchanges a refresh token for a new access token.
	Refresh(ctx context.Context, refreshToken string) (LoginResponse, error)
}
