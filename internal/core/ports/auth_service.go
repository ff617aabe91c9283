package ports

import (
	"context"
	"time"

	"github.com/estateops/property-registry/internal/core/domain"
)

// RegisterInput carries the data for a new account.
type RegisterInput struct {
	Email     string
	Username  string
	Password  string
	FirstName string
	LastName  string
	Role      string // defaults to tenant when empty
}

// AuthService implements registration, login, and logout. Registration
// creates the account and issues the session credential in one step.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Logout(ctx context.Context, tokenID string) error
}

// SessionStore records issued session credentials so they can be revoked
// before their JWT expiry.
type SessionStore interface {
	Save(ctx context.Context, tokenID, userID string, ttl time.Duration) error
	Revoke(ctx context.Context, tokenID string) error
	Active(ctx context.Context, tokenID string) (bool, error)
}
