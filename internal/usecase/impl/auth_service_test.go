package impl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/config"
	"backoffice/internal/domain/entity"
	domainerrors "backoffice/internal/domain/errors"
	"backoffice/internal/domain/service"
	"backoffice/internal/infra/auth"
	"backoffice/internal/usecase"
)

type authFixture struct {
	users   *fakeUserRepo
	tokens  service.TokenService
	revoker service.TokenRevoker
	auth    usecase.AuthUsecase
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	cfg := &config.Config{
		JWT: &config.JWTConfig{
			Secret:           "test_secret_key_very_long_for_testing",
			Algorithm:        "HS256",
			AccessTTLMinutes: 30,
			RefreshTTLDays:   7,
		},
		Auth: &config.AuthConfig{MaxFailedAttempts: 5},
	}

	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)
	revoker := auth.NewRevocationRegistry()
	users := newFakeUserRepo()
	logger := testLogger()

	userUsecase := NewUserService(UserServiceParams{
		UserRepo: users,
		Hasher:   fakeHasher{},
		Logger:   logger,
	})

	return &authFixture{
		users:   users,
		tokens:  tokens,
		revoker: revoker,
		auth: NewAuthService(AuthServiceParams{
			UserRepo:     users,
			Hasher:       fakeHasher{},
			TokenService: tokens,
			Revoker:      revoker,
			UserUsecase:  userUsecase,
			Config:       cfg,
			Logger:       logger,
		}),
	}
}

func (f *authFixture) addUser(email, password string) *entity.User {
	return f.users.add(&entity.User{
		Email:          email,
		Username:       email,
		HashedPassword: "hashed:" + password,
		Role:           entity.RoleUser,
		Permissions:    entity.Permissions{entity.PermissionRead},
	})
}

func TestAuthService_LoginSuccess(t *testing.T) {
	fixture := newAuthFixture(t)
	user := fixture.addUser("ana@example.com", "secret123")
	user.FailedAttempts = 2

	out, err := fixture.auth.Login(context.Background(), &usecase.LoginInput{
		Email:    "ana@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.NotEmpty(t, out.AccessToken)
	assert.NotEmpty(t, out.RefreshToken)
	assert.Equal(t, "bearer", out.TokenType)
	assert.Equal(t, int64(1800), out.ExpiresIn)

	// The returned user is sanitized, the stored one keeps its hash.
	assert.Empty(t, out.User.HashedPassword)
	assert.Equal(t, "ana@example.com", out.User.Email)

	// A successful login clears the failure counter and stamps last login.
	assert.Equal(t, 0, user.FailedAttempts)
	assert.NotNil(t, user.LastLogin)
}

func TestAuthService_LoginUnknownEmail(t *testing.T) {
	fixture := newAuthFixture(t)

	out, err := fixture.auth.Login(context.Background(), &usecase.LoginInput{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.Nil(t, out)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_LockoutAfterRepeatedFailures(t *testing.T) {
	fixture := newAuthFixture(t)
	user := fixture.addUser("ana@example.com", "secret123")

	// The first four failures only count; the fifth reaches the limit and
	// locks the account, but still reports invalid credentials.
	for attempt := 1; attempt <= 5; attempt++ {
		out, err := fixture.auth.Login(context.Background(), &usecase.LoginInput{
			Email:    "ana@example.com",
			Password: "wrong",
		})
		assert.Nil(t, out)
		assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
		assert.Equal(t, attempt, user.FailedAttempts)
	}
	assert.True(t, user.IsLocked)

	// Once locked, even the correct password is refused before it is checked.
	out, err := fixture.auth.Login(context.Background(), &usecase.LoginInput{
		Email:    "ana@example.com",
		Password: "secret123",
	})
	assert.Nil(t, out)
	assert.ErrorIs(t, err, domainerrors.ErrAccountLocked)
}

func TestAuthService_LoginStorageFailure(t *testing.T) {
	fixture := newAuthFixture(t)
	fixture.users.err = assert.AnError

	out, err := fixture.auth.Login(context.Background(), &usecase.LoginInput{
		Email:    "ana@example.com",
		Password: "secret123",
	})
	assert.Nil(t, out)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "STORAGE_UNAVAILABLE", appErr.ErrorCode())
}

func TestAuthService_RefreshRoundTrip(t *testing.T) {
	fixture := newAuthFixture(t)
	fixture.addUser("ana@example.com", "secret123")

	login, err := fixture.auth.Login(context.Background(), &usecase.LoginInput{
		Email:    "ana@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	pair, err := fixture.auth.Refresh(context.Background(), &usecase.RefreshInput{
		RefreshToken: login.RefreshToken,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
}

func TestAuthService_RefreshRejectsAccessToken(t *testing.T) {
	fixture := newAuthFixture(t)
	fixture.addUser("ana@example.com", "secret123")

	login, err := fixture.auth.Login(context.Background(), &usecase.LoginInput{
		Email:    "ana@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	pair, err := fixture.auth.Refresh(context.Background(), &usecase.RefreshInput{
		RefreshToken: login.AccessToken,
	})
	assert.Nil(t, pair)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)
}

func TestAuthService_RefreshRejectsRevokedToken(t *testing.T) {
	fixture := newAuthFixture(t)
	fixture.addUser("ana@example.com", "secret123")

	login, err := fixture.auth.Login(context.Background(), &usecase.LoginInput{
		Email:    "ana@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	require.NoError(t, fixture.auth.Logout(context.Background(), &usecase.LogoutInput{
		Token: login.RefreshToken,
	}))

	pair, err := fixture.auth.Refresh(context.Background(), &usecase.RefreshInput{
		RefreshToken: login.RefreshToken,
	})
	assert.Nil(t, pair)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)
}

func TestAuthService_RefreshRejectsDeactivatedSubject(t *testing.T) {
	fixture := newAuthFixture(t)
	user := fixture.addUser("ana@example.com", "secret123")

	login, err := fixture.auth.Login(context.Background(), &usecase.LoginInput{
		Email:    "ana@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	user.IsActive = false

	pair, err := fixture.auth.Refresh(context.Background(), &usecase.RefreshInput{
		RefreshToken: login.RefreshToken,
	})
	assert.Nil(t, pair)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)
}

func TestAuthService_LogoutRevokesToken(t *testing.T) {
	fixture := newAuthFixture(t)
	fixture.addUser("ana@example.com", "secret123")

	login, err := fixture.auth.Login(context.Background(), &usecase.LoginInput{
		Email:    "ana@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	require.NoError(t, fixture.auth.Logout(context.Background(), &usecase.LogoutInput{
		Token: login.AccessToken,
	}))
	assert.True(t, fixture.revoker.IsRevoked(login.AccessToken))
}

func TestAuthService_ChangePassword(t *testing.T) {
	fixture := newAuthFixture(t)
	user := fixture.addUser("ana@example.com", "secret123")

	// Wrong current password is rejected.
	err := fixture.auth.ChangePassword(context.Background(), &usecase.ChangePasswordInput{
		UserID:          user.ID.Hex(),
		CurrentPassword: "wrong",
		NewPassword:     "newsecret",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	// Correct current password stores the new hash.
	err = fixture.auth.ChangePassword(context.Background(), &usecase.ChangePasswordInput{
		UserID:          user.ID.Hex(),
		CurrentPassword: "secret123",
		NewPassword:     "newsecret",
	})
	require.NoError(t, err)
	assert.Equal(t, "hashed:newsecret", user.HashedPassword)
}

func TestAuthService_ChangePasswordUnknownUser(t *testing.T) {
	fixture := newAuthFixture(t)

	err := fixture.auth.ChangePassword(context.Background(), &usecase.ChangePasswordInput{
		UserID:          "missing",
		CurrentPassword: "secret123",
		NewPassword:     "newsecret",
	})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestAuthService_RegisterDefaultsToUserRole(t *testing.T) {
	fixture := newAuthFixture(t)

	user, err := fixture.auth.Register(context.Background(), &usecase.RegisterInput{
		Email:     "new@example.com",
		Username:  "newbie",
		Password:  "secret123",
		FirstName: "New",
		LastName:  "Person",
	})
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.Equal(t, entity.RoleUser, user.Role)
	assert.Equal(t, entity.Permissions{entity.PermissionRead}, user.Permissions)
	assert.Empty(t, user.HashedPassword)

	// The new account can log in right away.
	out, err := fixture.auth.Login(context.Background(), &usecase.LoginInput{
		Email:    "new@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.AccessToken)
}

func TestAuthService_RegisterHonorsRoleAndPermissions(t *testing.T) {
	fixture := newAuthFixture(t)

	user, err := fixture.auth.Register(context.Background(), &usecase.RegisterInput{
		Email:       "manager@example.com",
		Username:    "manager",
		Password:    "secret123",
		Role:        entity.RoleManager,
		Permissions: entity.Permissions{entity.PermissionRead, entity.PermissionWrite},
		FirstName:   "Maria",
		LastName:    "Lopez",
	})
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.Equal(t, entity.RoleManager, user.Role)
	assert.Equal(t, entity.Permissions{entity.PermissionRead, entity.PermissionWrite}, user.Permissions)
}

func TestAuthService_RegisterRejectsUnknownRoleToDefault(t *testing.T) {
	fixture := newAuthFixture(t)

	user, err := fixture.auth.Register(context.Background(), &usecase.RegisterInput{
		Email:     "odd@example.com",
		Username:  "oddball",
		Password:  "secret123",
		Role:      entity.Role("superuser"),
		FirstName: "Odd",
		LastName:  "Ball",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RoleUser, user.Role)
	assert.Equal(t, entity.Permissions{entity.PermissionRead}, user.Permissions)
}
