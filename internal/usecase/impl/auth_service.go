// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
	"go.uber.org/fx"

	"backoffice/config"
	deliverycontext "backoffice/internal/delivery/context"
	"backoffice/internal/domain/entity"
	domainerrors "backoffice/internal/domain/errors"
	"backoffice/internal/domain/repository"
	"backoffice/internal/domain/service"
	"backoffice/internal/usecase"
)

// authService implements the AuthUsecase interface.
type authService struct {
	userRepo          repository.UserRepository
	hasher            service.PasswordHasher
	tokenService      service.TokenService
	revoker           service.TokenRevoker
	userUsecase       usecase.UserUsecase
	maxFailedAttempts int
	logger            *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Revoker      service.TokenRevoker
	UserUsecase  usecase.UserUsecase
	Config       *config.Config
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	maxFailedAttempts := 5
	if params.Config != nil && params.Config.Auth != nil && params.Config.Auth.MaxFailedAttempts > 0 {
		maxFailedAttempts = params.Config.Auth.MaxFailedAttempts
	}

	return &authService{
		userRepo:          params.UserRepo,
		hasher:            params.Hasher,
		tokenService:      params.TokenService,
		revoker:           params.Revoker,
		userUsecase:       params.UserUsecase,
		maxFailedAttempts: maxFailedAttempts,
		logger:            params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Login verifies the credentials and issues a token pair. Failed attempts are
// counted per account; reaching the limit locks the account, and the locked
// state is reported before the password is ever checked.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	srv.log(ctx).Debug("Starting login", slog.String("email", input.Email))

	user, err := srv.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		srv.log(ctx).Error("Failed to load user for login", slog.String("email", input.Email), slog.Any("error", err))

		return nil, domainerrors.NewStorageError(err, "load user for login")
	}
	if user == nil {
		srv.log(ctx).Warn("Login failed, unknown email", slog.String("email", input.Email))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	if user.IsLocked {
		srv.log(ctx).Warn("Login attempt on locked account", slog.String("userID", user.ID.Hex()))

		return nil, errors.Wrap(domainerrors.ErrAccountLocked, "login failed")
	}

	if !srv.hasher.Check(input.Password, user.HashedPassword) {
		return nil, srv.recordFailedAttempt(ctx, user)
	}

	if user.FailedAttempts > 0 {
		if _, err := srv.userRepo.ResetFailedAttempts(ctx, user.ID.Hex()); err != nil {
			srv.log(ctx).Error("Failed to reset failed attempts", slog.String("userID", user.ID.Hex()), slog.Any("error", err))
		}
	}
	if _, err := srv.userRepo.UpdateLastLogin(ctx, user.ID.Hex()); err != nil {
		srv.log(ctx).Error("Failed to stamp last login", slog.String("userID", user.ID.Hex()), slog.Any("error", err))
	}

	pair, err := srv.issueTokenPair(user.ID.Hex())
	if err != nil {
		srv.log(ctx).Error("Failed to generate tokens", slog.String("userID", user.ID.Hex()), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	srv.log(ctx).Debug("User logged in successfully", slog.String("userID", user.ID.Hex()))

	return &usecase.LoginOutput{
		TokenPairOutput: *pair,
		User:            user.Sanitized(),
	}, nil
}

// recordFailedAttempt increments the per-account counter and locks the account
// when the counter reaches the limit. The triggering attempt itself still
// reports invalid credentials; only the next attempt sees the locked state.
func (srv *authService) recordFailedAttempt(ctx context.Context, user *entity.User) error {
	id := user.ID.Hex()

	if _, err := srv.userRepo.IncrementFailedAttempts(ctx, id); err != nil {
		srv.log(ctx).Error("Failed to increment failed attempts", slog.String("userID", id), slog.Any("error", err))

		return domainerrors.NewStorageError(err, "increment failed attempts")
	}

	if user.FailedAttempts+1 >= srv.maxFailedAttempts {
		if _, err := srv.userRepo.LockUser(ctx, id); err != nil {
			srv.log(ctx).Error("Failed to lock account", slog.String("userID", id), slog.Any("error", err))

			return domainerrors.NewStorageError(err, "lock account")
		}
		srv.log(ctx).Warn("Account locked after repeated failures", slog.String("userID", id))
	}

	srv.log(ctx).Warn("Login failed, password mismatch", slog.String("userID", id))

	return errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
}

func (srv *authService) issueTokenPair(subjectID string) (*usecase.TokenPairOutput, error) {
	accessToken, refreshToken, err := srv.tokenService.GenerateTokenPair(subjectID)
	if err != nil {
		return nil, err
	}

	return &usecase.TokenPairOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    int64(srv.tokenService.AccessTokenTTL().Seconds()),
	}, nil
}

// Register creates a new account through the user service, which performs the
// uniqueness pre-checks, password hashing, and the role and permission
// defaulting for requests that omit them.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*entity.User, error) {
	srv.log(ctx).Info("Registering new account", slog.String("email", input.Email))

	return srv.userUsecase.Create(ctx, &usecase.CreateUserInput{
		Email:       input.Email,
		Username:    input.Username,
		Password:    input.Password,
		Role:        input.Role,
		Permissions: input.Permissions,
		Profile: entity.UserProfile{
			FirstName: input.FirstName,
			LastName:  input.LastName,
			Phone:     input.Phone,
		},
	})
}

// Refresh exchanges a valid refresh token for a fresh token pair. The
// presented token must be of the refresh kind; the old token is not revoked.
func (srv *authService) Refresh(ctx context.Context, input *usecase.RefreshInput) (*usecase.TokenPairOutput, error) {
	srv.log(ctx).Debug("Attempting token refresh")

	if srv.revoker.IsRevoked(input.RefreshToken) {
		return nil, errors.Wrap(domainerrors.ErrInvalidToken, "refresh failed")
	}

	claims, err := srv.tokenService.Decode(input.RefreshToken)
	if err != nil {
		return nil, errors.Wrap(err, "refresh failed")
	}
	if claims.Kind != service.TokenKindRefresh {
		return nil, errors.Wrap(domainerrors.ErrInvalidToken, "refresh requires a refresh token")
	}

	user, err := srv.userRepo.GetByID(ctx, claims.SubjectID)
	if err != nil {
		return nil, domainerrors.NewStorageError(err, "load user for refresh")
	}
	if user == nil || !user.IsActive {
		return nil, errors.Wrap(domainerrors.ErrInvalidToken, "refresh subject no longer valid")
	}

	pair, err := srv.issueTokenPair(claims.SubjectID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	srv.log(ctx).Debug("Token refreshed", slog.String("userID", claims.SubjectID))

	return pair, nil
}

// Logout revokes the presented token unconditionally. Revoking an already
// invalid or unknown token is a no-op success.
func (srv *authService) Logout(ctx context.Context, input *usecase.LogoutInput) error {
	srv.revoker.Revoke(input.Token)
	srv.log(ctx).Info("Token revoked on logout")

	return nil
}

// ChangePassword verifies the current password before storing a new hash.
func (srv *authService) ChangePassword(ctx context.Context, input *usecase.ChangePasswordInput) error {
	user, err := srv.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return domainerrors.NewStorageError(err, "load user for password change")
	}
	if user == nil {
		return errors.Wrap(domainerrors.ErrNotFound, "user not found")
	}

	if !srv.hasher.Check(input.CurrentPassword, user.HashedPassword) {
		srv.log(ctx).Warn("Password change rejected, current password mismatch", slog.String("userID", input.UserID))

		return errors.Wrap(domainerrors.ErrInvalidCredentials, "current password mismatch")
	}

	newHash, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash new password")
	}

	if _, err := srv.userRepo.Update(ctx, input.UserID, repository.Fields{"hashed_password": newHash}); err != nil {
		return domainerrors.NewStorageError(err, "store new password hash")
	}

	srv.log(ctx).Info("Password changed", slog.String("userID", input.UserID))

	return nil
}
