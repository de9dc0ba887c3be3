package user

import (
	"time"

	"github.com/StudioSpot/service-booking/internal/domain"
	"github.com/google/uuid"
)

// Role is the access level of an account.
type Role string

const (
	// RoleMusician books rooms.
	RoleMusician Role = "musician"
	// RoleOwner lists studios and rooms.
	RoleOwner Role = "owner"
	// RoleAdmin sees every booking.
	RoleAdmin Role = "admin"
)

// IsValid returns true if the role is recognized.
func (r Role) IsValid() bool {
	switch r {
	case RoleMusician, RoleOwner, RoleAdmin:
		return true
	}
	return false
}

// User is the aggregate root for an account.
type User struct {
	id           uuid.UUID
	email        string
	passwordHash string
	name         string
	role         Role
	createdAt    time.Time
	updatedAt    time.Time
}

// NewUser creates a new account with validated fields. The password must
// already be hashed by the caller.
func NewUser(email, passwordHash, name string, role Role) (*User, error) {
	if email == "" {
		return nil, domain.NewValidationError("email is required")
	}
	if passwordHash == "" {
		return nil, domain.NewValidationError("password is required")
	}
	if name == "" {
		return nil, domain.NewValidationError("name is required")
	}
	if !role.IsValid() {
		return nil, domain.NewValidationError("invalid role: " + string(role))
	}

	now := time.Now().UTC()
	return &User{
		id:           uuid.New(),
		email:        email,
		passwordHash: passwordHash,
		name:         name,
		role:         role,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructUser rebuilds a User from persistence data (no validation).
func ReconstructUser(id uuid.UUID, email, passwordHash, name string, role Role, createdAt, updatedAt time.Time) *User {
	return &User{
		id:           id,
		email:        email,
		passwordHash: passwordHash,
		name:         name,
		role:         role,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// ID returns the user's unique identifier.
func (u *User) ID() uuid.UUID { return u.id }

// Email returns the login email.
func (u *User) Email() string { return u.email }

// PasswordHash returns the bcrypt hash of the password.
func (u *User) PasswordHash() string { return u.passwordHash }

// Name returns the display name.
func (u *User) Name() string { return u.name }

// Role returns the account role.
func (u *User) Role() Role { return u.role }

// CreatedAt returns the creation timestamp.
func (u *User) CreatedAt() time.Time { return u.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (u *User) UpdatedAt() time.Time { return u.updatedAt }
