package mongodb

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"backoffice/internal/domain/entity"
	"backoffice/internal/domain/repository"
)

// userRepository is the MongoDB implementation of repository.UserRepository.
type userRepository struct {
	*baseRepository[entity.User, *entity.User]
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository(db *Database) repository.UserRepository {
	return &userRepository{
		baseRepository: newBaseRepository[entity.User](db.Collection(usersCollection)),
	}
}

func (r *userRepository) findOneActive(ctx context.Context, filter bson.M) (*entity.User, error) {
	filter["is_active"] = true

	var user entity.User
	if err := r.coll.FindOne(ctx, filter).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	return &user, nil
}

// GetByEmail returns the active user with the given email, or (nil, nil).
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOneActive(ctx, bson.M{"email": email})
}

// GetByUsername returns the active user with the given username, or (nil, nil).
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.findOneActive(ctx, bson.M{"username": username})
}

// existsExcluding reports whether an active document matches the filter,
// optionally excluding one document id so updates can keep their own value.
func existsExcluding(ctx context.Context, coll *mongo.Collection, filter bson.M, excludeID string) (bool, error) {
	filter["is_active"] = true
	if excludeID != "" {
		if oid, err := primitive.ObjectIDFromHex(excludeID); err == nil {
			filter["_id"] = bson.M{"$ne": oid}
		}
	}

	count, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return false, errors.Wrap(err, "failed to check existence")
	}

	return count > 0, nil
}

// EmailExists reports whether another active user already holds the email.
func (r *userRepository) EmailExists(ctx context.Context, email, excludeID string) (bool, error) {
	return existsExcluding(ctx, r.coll, bson.M{"email": email}, excludeID)
}

// UsernameExists reports whether another active user already holds the username.
func (r *userRepository) UsernameExists(ctx context.Context, username, excludeID string) (bool, error) {
	return existsExcluding(ctx, r.coll, bson.M{"username": username}, excludeID)
}

// UpdateLastLogin stamps the last successful login time.
func (r *userRepository) UpdateLastLogin(ctx context.Context, id string) (bool, error) {
	return r.Update(ctx, id, repository.Fields{"last_login": time.Now().UTC()})
}

// IncrementFailedAttempts adds one to the failed login counter.
func (r *userRepository) IncrementFailedAttempts(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	result, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{
			"$inc": bson.M{"failed_login_attempts": 1},
			"$set": bson.M{"updated_at": time.Now().UTC()},
		})
	if err != nil {
		return false, errors.Wrap(err, "failed to increment failed attempts")
	}

	return result.ModifiedCount > 0, nil
}

// ResetFailedAttempts clears the failed login counter.
func (r *userRepository) ResetFailedAttempts(ctx context.Context, id string) (bool, error) {
	return r.Update(ctx, id, repository.Fields{"failed_login_attempts": 0})
}

// LockUser marks the account locked.
func (r *userRepository) LockUser(ctx context.Context, id string) (bool, error) {
	return r.Update(ctx, id, repository.Fields{"is_locked": true})
}

// UnlockUser unlocks the account and clears the failed login counter.
func (r *userRepository) UnlockUser(ctx context.Context, id string) (bool, error) {
	return r.Update(ctx, id, repository.Fields{
		"is_locked":             false,
		"failed_login_attempts": 0,
	})
}
