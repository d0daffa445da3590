package user

import "context"

// Repository defines the interface for user data operations.
// Lookups return nil, nil when no row matches.
type Repository interface {
	Create(ctx context.Context, user *User) error

	GetByID(ctx context.Context, id string) (*User, error)

	// GetByIDs loads several users at once; unknown ids are skipped
	GetByIDs(ctx context.Context, ids []string) ([]*User, error)

	// GetByEmail expects an already normalised address
	GetByEmail(ctx context.Context, email string) (*User, error)

	ExistsByEmail(ctx context.Context, email string) (bool, error)

	Update(ctx context.Context, user *User) error
}
