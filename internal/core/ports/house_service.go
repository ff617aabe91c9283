package ports

import (
	"context"

	"github.com/estateops/property-registry/internal/core/domain"
)

// CreateHouseInput carries the data for registering a house. OwnerID may be
// set only by admins; owner actors always register for themselves.
type CreateHouseInput struct {
	OwnerID       string
	HouseType     domain.HouseType
	HouseNumber   string
	NumApartments int
}

// UpdateHouseInput carries a partial house update. The owner is fixed at
// creation and cannot be reassigned.
type UpdateHouseInput struct {
	HouseType     *domain.HouseType
	HouseNumber   *string
	NumApartments *int
}

// ListHousesInput carries parameters for the house list endpoint.
type ListHousesInput struct {
	HouseType domain.HouseType // optional
	Page      int
	Limit     int
}

// HouseList is one page of house summaries.
type HouseList struct {
	Items []HouseSummary
	Page  Page
}

// HouseService defines use-case operations for houses.
type HouseService interface {
	Create(ctx context.Context, actor domain.Actor, in CreateHouseInput) (*domain.House, error)
	Get(ctx context.Context, actor domain.Actor, id string) (*HouseDetail, error)
	List(ctx context.Context, actor domain.Actor, in ListHousesInput) (*HouseList, error)
	Update(ctx context.Context, actor domain.Actor, id string, in UpdateHouseInput) (*domain.House, error)
	Delete(ctx context.Context, actor domain.Actor, id string) error
	// Occupants lists the occupants of one house visible to the actor.
	Occupants(ctx context.Context, actor domain.Actor, houseID string) ([]OccupantSummary, error)
	// ActiveChiefTenant returns the house's single active assignment, or
	// domain.ErrAssignmentNotFound when none is active.
	ActiveChiefTenant(ctx context.Context, actor domain.Actor, houseID string) (*AssignmentSummary, error)
}
