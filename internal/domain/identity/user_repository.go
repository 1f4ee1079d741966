package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository persists staff accounts. Lookups return a shared.ErrNotFound
// domain error when nothing matches.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	// Update writes the password hash, role, active flag and last login.
	Update(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	// FindAll lists every account ordered by username.
	FindAll(ctx context.Context) ([]*User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}
