// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"backoffice/internal/domain/entity"
)

// --- Input DTOs ---

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// RegisterInput defines the data required to register a new user. Role and
// permissions are optional; absent values fall back to the regular user
// defaults.
type RegisterInput struct {
	Email       string
	Username    string
	Password    string
	Role        entity.Role
	Permissions entity.Permissions
	FirstName   string
	LastName    string
	Phone       string
}

// RefreshInput carries the refresh token presented for rotation.
type RefreshInput struct {
	RefreshToken string
}

// LogoutInput carries the bearer token to revoke.
type LogoutInput struct {
	Token string
}

// ChangePasswordInput defines the data required to change a user's own password.
type ChangePasswordInput struct {
	UserID          string
	CurrentPassword string
	NewPassword     string
}

// --- Output DTOs ---

// TokenPairOutput returns the generated tokens after a successful login or refresh.
type TokenPairOutput struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	ExpiresIn    int64
}

// LoginOutput returns the token pair together with the authenticated user.
type LoginOutput struct {
	TokenPairOutput
	User *entity.User
}

// AuthUsecase defines the interface for authentication-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
	Register(ctx context.Context, input *RegisterInput) (*entity.User, error)
	Refresh(ctx context.Context, input *RefreshInput) (*TokenPairOutput, error)
	Logout(ctx context.Context, input *LogoutInput) error
	ChangePassword(ctx context.Context, input *ChangePasswordInput) error
}
