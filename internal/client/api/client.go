package api

import (
	"context"

	"github.com/aymenbt/sportera/internal/client/models"
)

// Client is the transport-agnostic contract for the Sportera backend.
// Implementations return raw transport conditions (*StatusError, net
// errors, decode errors); user-facing classification happens above.
type Client interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	VerifyEmail(ctx context.Context, req models.VerifyRequest) (*models.AuthResponse, error)
	ResendVerification(ctx context.Context, req models.EmailRequest) (*models.AuthResponse, error)
	ForgotPassword(ctx context.Context, req models.EmailRequest) (*models.AuthResponse, error)
	VerifyForgotPasswordCode(ctx context.Context, req models.VerifyRequest) (*models.AuthResponse, error)
	ResetPassword(ctx context.Context, req models.ResetPasswordRequest) (*models.AuthResponse, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}
