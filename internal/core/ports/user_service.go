package ports

import (
	"context"

	"github.com/estateops/property-registry/internal/core/domain"
)

// CreateUserInput carries the data for an admin-created account.
type CreateUserInput struct {
	Email     string
	Username  string
	Password  string
	FirstName string
	LastName  string
	Role      string
}

// UpdateUserInput carries a partial user update. Nil fields are unchanged.
// Role changes are admin-only; the service rejects them for other actors.
type UpdateUserInput struct {
	Email     *string
	Username  *string
	Password  *string
	FirstName *string
	LastName  *string
	Role      *string
}

// ListUsersInput carries parameters for the user list endpoint.
type ListUsersInput struct {
	Role  string
	Page  int
	Limit int
}

// UserList is one page of users.
type UserList struct {
	Items []*domain.User
	Page  Page
}

// UserService defines use-case operations for user records.
type UserService interface {
	Create(ctx context.Context, actor domain.Actor, in CreateUserInput) (*domain.User, error)
	// Get returns the detail view: the user plus owned houses and chief
	// tenant assignment. Non-admin actors may only fetch themselves.
	Get(ctx context.Context, actor domain.Actor, id string) (*UserDetail, error)
	List(ctx context.Context, actor domain.Actor, in ListUsersInput) (*UserList, error)
	Update(ctx context.Context, actor domain.Actor, id string, in UpdateUserInput) (*domain.User, error)
	// Delete removes the user and cascades to owned houses and dependents.
	Delete(ctx context.Context, actor domain.Actor, id string) error
	// Properties lists houses owned by the given user. Fails with
	// domain.ErrValidation when the target is not an owner.
	Properties(ctx context.Context, actor domain.Actor, userID string) ([]HouseSummary, error)
}
