package ports

import (
	"context"

	"github.com/estateops/property-registry/internal/core/domain"
)

// ListAssignmentsFilter carries query parameters for listing assignments.
type ListAssignmentsFilter struct {
	Scope      domain.Scope
	HouseID    string // optional: restrict to one house
	ActiveOnly bool
	Page       int // 1-based
	Limit      int
}

// AssignmentRepository defines persistence operations for chief tenant
// assignments.
type AssignmentRepository interface {
	FindByID(ctx context.Context, id string, scope domain.Scope) (*domain.ChiefTenantAssignment, error)
	// FindActiveByHouse returns the single active assignment for a house
	// visible under scope, or domain.ErrAssignmentNotFound.
	FindActiveByHouse(ctx context.Context, houseID string, scope domain.Scope) (*domain.ChiefTenantAssignment, error)
	// FindActiveByUser returns the user's active assignment, excluding
	// excludingID when non-empty. Used by the per-user uniqueness check.
	FindActiveByUser(ctx context.Context, userID, excludingID string) (*domain.ChiefTenantAssignment, error)
	List(ctx context.Context, f ListAssignmentsFilter) ([]*domain.ChiefTenantAssignment, int64, error)

	// Save inserts or replaces the assignment without touching siblings.
	// Only valid for inactive writes; active writes go through SaveExclusive.
	Save(ctx context.Context, a *domain.ChiefTenantAssignment) (*domain.ChiefTenantAssignment, error)

	// SaveExclusive persists an active assignment and flips every other
	// active assignment for the same house to inactive, atomically in one
	// transaction (the sweep). The sweep never fails the write; losing
	// siblings are deactivated silently. A concurrent active assignment
	// for the same user surfaces as domain.ErrDuplicateActiveAssignment
	// via the store's unique-constraint backstop.
	SaveExclusive(ctx context.Context, a *domain.ChiefTenantAssignment) (*domain.ChiefTenantAssignment, error)

	Delete(ctx context.Context, id string) error
}
