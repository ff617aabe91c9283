package ports

import (
	"context"

	"github.com/estateops/property-registry/internal/core/domain"
)

// ListUsersFilter carries query parameters for listing users.
type ListUsersFilter struct {
	Role  string // optional: filter by role
	Page  int    // 1-based
	Limit int
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByIDs returns the users for the given ids, keyed by id. Missing
	// ids are simply absent from the result.
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.User, error)
	List(ctx context.Context, f ListUsersFilter) ([]*domain.User, int64, error)
	Update(ctx context.Context, u *domain.User) error
	// DeleteCascade removes the user together with owned houses, their
	// occupants and assignments, and the user's own assignment, in a
	// single transaction.
	DeleteCascade(ctx context.Context, id string) error
}
