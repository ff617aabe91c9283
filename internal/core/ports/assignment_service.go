package ports

import (
	"context"

	"github.com/estateops/property-registry/internal/core/domain"
)

// CreateAssignmentInput designates a tenant as chief tenant of a house.
// IsActive defaults to true when nil.
type CreateAssignmentInput struct {
	UserID   string
	HouseID  string
	IsActive *bool
}

// UpdateAssignmentInput carries a partial assignment update. The assignment
// date is set once at creation and never changes.
type UpdateAssignmentInput struct {
	HouseID  *string
	IsActive *bool
}

// ListAssignmentsInput carries parameters for the assignment list endpoint.
type ListAssignmentsInput struct {
	ActiveOnly bool
	Page       int
	Limit      int
}

// AssignmentList is one page of assignment summaries.
type AssignmentList struct {
	Items []AssignmentSummary
	Page  Page
}

// AssignmentService defines use-case operations for chief tenant
// assignments.
type AssignmentService interface {
	Create(ctx context.Context, actor domain.Actor, in CreateAssignmentInput) (*domain.ChiefTenantAssignment, error)
	Get(ctx context.Context, actor domain.Actor, id string) (*AssignmentSummary, error)
	List(ctx context.Context, actor domain.Actor, in ListAssignmentsInput) (*AssignmentList, error)
	Update(ctx context.Context, actor domain.Actor, id string, in UpdateAssignmentInput) (*domain.ChiefTenantAssignment, error)
	Delete(ctx context.Context, actor domain.Actor, id string) error
	// Activate and Deactivate are idempotent: repeating either on an
	// assignment already in the requested state succeeds unchanged.
	Activate(ctx context.Context, actor domain.Actor, id string) (*domain.ChiefTenantAssignment, error)
	Deactivate(ctx context.Context, actor domain.Actor, id string) (*domain.ChiefTenantAssignment, error)
}
