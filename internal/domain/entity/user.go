package entity

import "time"

// User is an identity usable for authentication: login credentials plus the
// role and permission set consulted by the access guard.
type User struct {
	Base           `bson:",inline"`
	Email          string      `bson:"email" json:"email"`
	Username       string      `bson:"username" json:"username"`
	HashedPassword string      `bson:"hashed_password" json:"-"`
	Role           Role        `bson:"role" json:"role"`
	Permissions    Permissions `bson:"permissions" json:"permissions"`
	Profile        UserProfile `bson:"profile" json:"profile"`
	IsVerified     bool        `bson:"is_verified" json:"is_verified"`
	LastLogin      *time.Time  `bson:"last_login,omitempty" json:"last_login,omitempty"`
	FailedAttempts int         `bson:"failed_login_attempts" json:"-"`
	IsLocked       bool        `bson:"is_locked" json:"-"`
}

// UserProfile holds the displayable part of an identity.
type UserProfile struct {
	FirstName string `bson:"first_name" json:"first_name"`
	LastName  string `bson:"last_name" json:"last_name"`
	Phone     string `bson:"phone,omitempty" json:"phone,omitempty"`
	Address   string `bson:"address,omitempty" json:"address,omitempty"`
	AvatarURL string `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`
	Bio       string `bson:"bio,omitempty" json:"bio,omitempty"`
}

// Sanitized returns a copy safe to hand to callers: the password hash never
// leaves the service layer.
func (u User) Sanitized() *User {
	u.HashedPassword = ""

	return &u
}
