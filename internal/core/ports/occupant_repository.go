package ports

import (
	"context"

	"github.com/estateops/property-registry/internal/core/domain"
)

// ListOccupantsFilter carries query parameters for listing occupants.
type ListOccupantsFilter struct {
	Scope      domain.Scope
	HouseID    string // optional: restrict to one house
	ChiefsOnly bool   // only occupants flagged as chief tenant
	Page       int    // 1-based
	Limit      int
}

// OccupantRepository defines persistence operations for occupants.
type OccupantRepository interface {
	Create(ctx context.Context, o *domain.Occupant) (*domain.Occupant, error)
	FindByID(ctx context.Context, id string, scope domain.Scope) (*domain.Occupant, error)
	// FindByApartment looks up the (house, apartment_number) pair,
	// excluding excludingID when non-empty.
	FindByApartment(ctx context.Context, houseID, apartmentNumber, excludingID string) (*domain.Occupant, error)
	List(ctx context.Context, f ListOccupantsFilter) ([]*domain.Occupant, int64, error)
	Update(ctx context.Context, o *domain.Occupant) error
	Delete(ctx context.Context, id string) error
}
