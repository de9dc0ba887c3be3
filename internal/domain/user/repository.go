package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for accounts.
type Repository interface {
	// FindByID retrieves an account by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail retrieves an account by login email.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// Save persists a new account.
	Save(ctx context.Context, user *User) error
}
