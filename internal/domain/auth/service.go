package auth

import (
	"context"
	"time"
)

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (TokenResponse, error)
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	// Logout revokes the presented access token until it expires.
	Logout(ctx context.Context, token string, expiresAt time.Time) error
}
