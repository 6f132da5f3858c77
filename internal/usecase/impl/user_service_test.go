package impl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/domain/entity"
	domainerrors "backoffice/internal/domain/errors"
	"backoffice/internal/usecase"
)

func newUserFixture(t *testing.T) (*fakeUserRepo, usecase.UserUsecase) {
	t.Helper()

	repo := newFakeUserRepo()
	service := NewUserService(UserServiceParams{
		UserRepo: repo,
		Hasher:   fakeHasher{},
		Logger:   testLogger(),
	})

	return repo, service
}

func TestUserService_Create(t *testing.T) {
	repo, service := newUserFixture(t)

	user, err := service.Create(context.Background(), &usecase.CreateUserInput{
		Email:    "ana@example.com",
		Username: "ana",
		Password: "secret123",
		Role:     entity.RoleManager,
		Permissions: entity.Permissions{
			entity.PermissionRead, entity.PermissionWrite,
		},
		Profile: entity.UserProfile{FirstName: "Ana", LastName: "Torres"},
	})
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.Equal(t, entity.RoleManager, user.Role)
	assert.Empty(t, user.HashedPassword)

	// The stored document keeps the hash.
	stored := repo.users[user.ID.Hex()]
	require.NotNil(t, stored)
	assert.Equal(t, "hashed:secret123", stored.HashedPassword)
}

func TestUserService_CreateDefaultsRoleAndPermissions(t *testing.T) {
	_, service := newUserFixture(t)

	user, err := service.Create(context.Background(), &usecase.CreateUserInput{
		Email:    "ana@example.com",
		Username: "ana",
		Password: "secret123",
		Role:     entity.Role("superuser"),
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RoleUser, user.Role)
	assert.Equal(t, entity.Permissions{entity.PermissionRead}, user.Permissions)
}

func TestUserService_CreateDuplicateEmail(t *testing.T) {
	repo, service := newUserFixture(t)
	repo.add(&entity.User{Email: "ana@example.com", Username: "ana"})

	_, err := service.Create(context.Background(), &usecase.CreateUserInput{
		Email:    "ana@example.com",
		Username: "ana2",
		Password: "secret123",
	})
	assertDuplicateField(t, err, "email already registered")
}

func TestUserService_CreateDuplicateUsername(t *testing.T) {
	repo, service := newUserFixture(t)
	repo.add(&entity.User{Email: "ana@example.com", Username: "ana"})

	_, err := service.Create(context.Background(), &usecase.CreateUserInput{
		Email:    "other@example.com",
		Username: "ana",
		Password: "secret123",
	})
	assertDuplicateField(t, err, "username already taken")
}

func TestUserService_GetByIDSanitizes(t *testing.T) {
	repo, service := newUserFixture(t)
	stored := repo.add(&entity.User{
		Email:          "ana@example.com",
		Username:       "ana",
		HashedPassword: "hashed:secret123",
	})

	user, err := service.GetByID(context.Background(), stored.ID.Hex())
	require.NoError(t, err)
	assert.Empty(t, user.HashedPassword)
	assert.Equal(t, "hashed:secret123", stored.HashedPassword)
}

func TestUserService_GetByIDNotFound(t *testing.T) {
	_, service := newUserFixture(t)

	user, err := service.GetByID(context.Background(), "missing")
	assert.Nil(t, user)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestUserService_UpdateRejectsTakenEmail(t *testing.T) {
	repo, service := newUserFixture(t)
	repo.add(&entity.User{Email: "ana@example.com", Username: "ana"})
	other := repo.add(&entity.User{Email: "luis@example.com", Username: "luis"})

	taken := "ana@example.com"
	_, err := service.Update(context.Background(), other.ID.Hex(), &usecase.UpdateUserInput{
		Email: &taken,
	})
	assertDuplicateField(t, err, "email already registered")
}

func TestUserService_UpdateKeepsOwnUsername(t *testing.T) {
	repo, service := newUserFixture(t)
	user := repo.add(&entity.User{Email: "ana@example.com", Username: "ana"})

	sameUsername := "ana"
	verified := true
	updated, err := service.Update(context.Background(), user.ID.Hex(), &usecase.UpdateUserInput{
		Username:   &sameUsername,
		IsVerified: &verified,
	})
	require.NoError(t, err)
	assert.True(t, updated.IsVerified)
}

func TestUserService_UpdateRejectsUnknownRole(t *testing.T) {
	repo, service := newUserFixture(t)
	user := repo.add(&entity.User{Email: "ana@example.com", Username: "ana"})

	bogus := entity.Role("superuser")
	_, err := service.Update(context.Background(), user.ID.Hex(), &usecase.UpdateUserInput{
		Role: &bogus,
	})
	assertValidationFailed(t, err, "unknown role")
}

func TestUserService_UpdateProfileTargetsNestedFields(t *testing.T) {
	repo, service := newUserFixture(t)
	user := repo.add(&entity.User{Email: "ana@example.com", Username: "ana"})

	firstName := "Ana"
	bio := "Store manager"
	_, err := service.UpdateProfile(context.Background(), user.ID.Hex(), &usecase.UpdateProfileInput{
		FirstName: &firstName,
		Bio:       &bio,
	})
	require.NoError(t, err)

	// The update addresses the embedded profile document field by field.
	require.Len(t, repo.updates, 1)
	assert.Equal(t, "Ana", repo.updates[0]["profile.first_name"])
	assert.Equal(t, "Store manager", repo.updates[0]["profile.bio"])
}

func TestUserService_DeactivateUnknownUser(t *testing.T) {
	_, service := newUserFixture(t)

	err := service.Deactivate(context.Background(), "missing")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestUserService_Unlock(t *testing.T) {
	repo, service := newUserFixture(t)
	user := repo.add(&entity.User{
		Email:          "ana@example.com",
		Username:       "ana",
		IsLocked:       true,
		FailedAttempts: 5,
	})

	require.NoError(t, service.Unlock(context.Background(), user.ID.Hex()))
	assert.False(t, user.IsLocked)
	assert.Equal(t, 0, user.FailedAttempts)
}
