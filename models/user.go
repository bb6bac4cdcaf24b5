package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRole represents the role of a user
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleAnalyst UserRole = "analyst"
	RoleUser    UserRole = "user"
)

// DefaultRole is assigned to every account created through registration.
const DefaultRole = RoleUser

// User represents an account in the system
type User struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email string             `bson:"email" json:"email"`
	Name  string             `bson:"name" json:"name"`
	Role  UserRole           `bson:"role" json:"role"`

	// Profile fields edited on the profile page
	Department string `bson:"department,omitempty" json:"department,omitempty"`
	AvatarURL  string `bson:"avatar_url,omitempty" json:"avatarUrl,omitempty"`

	// Authentication
	Password string `bson:"password" json:"-"`

	// Metadata
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// PublicUser is the wire shape returned by the auth endpoints. The password
// hash never leaves the service.
type PublicUser struct {
	ID    string   `json:"id"`
	Email string   `json:"email"`
	Name  string   `json:"name"`
	Role  UserRole `json:"role,omitempty"`
}

// Public returns the client-visible view of the user.
func (u *User) Public() PublicUser {
	role := u.Role
	if role == "" {
		role = DefaultRole
	}
	return PublicUser{
		ID:    u.ID.Hex(),
		Email: u.Email,
		Name:  u.Name,
		Role:  role,
	}
}

// IsValidRole checks if a role is valid
func IsValidRole(role string) bool {
	switch UserRole(role) {
	case RoleAdmin, RoleAnalyst, RoleUser:
		return true
	}
	return false
}
