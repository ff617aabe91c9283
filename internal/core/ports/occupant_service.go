package ports

import (
	"context"

	"github.com/estateops/property-registry/internal/core/domain"
)

// CreateOccupantInput carries the data for registering an occupant under a
// house. The move-in date is set by the store at creation and never changes.
type CreateOccupantInput struct {
	HouseID         string
	FullName        string
	ApartmentNumber string
	IsChiefTenant   bool
}

// UpdateOccupantInput carries a partial occupant update.
type UpdateOccupantInput struct {
	FullName        *string
	ApartmentNumber *string
	IsChiefTenant   *bool
}

// ListOccupantsInput carries parameters for the occupant list endpoint.
type ListOccupantsInput struct {
	HouseID    string // optional
	ChiefsOnly bool
	Page       int
	Limit      int
}

// OccupantList is one page of occupant summaries.
type OccupantList struct {
	Items []OccupantSummary
	Page  Page
}

// OccupantService defines use-case operations for occupants.
type OccupantService interface {
	Create(ctx context.Context, actor domain.Actor, in CreateOccupantInput) (*domain.Occupant, error)
	Get(ctx context.Context, actor domain.Actor, id string) (*OccupantSummary, error)
	List(ctx context.Context, actor domain.Actor, in ListOccupantsInput) (*OccupantList, error)
	Update(ctx context.Context, actor domain.Actor, id string, in UpdateOccupantInput) (*domain.Occupant, error)
	Delete(ctx context.Context, actor domain.Actor, id string) error
}
