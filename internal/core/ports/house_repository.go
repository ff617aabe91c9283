package ports

import (
	"context"

	"github.com/estateops/property-registry/internal/core/domain"
)

// ListHousesFilter carries query parameters for listing houses. Scope is
// always enforced by the repository before any other filter.
type ListHousesFilter struct {
	Scope     domain.Scope
	OwnerID   string           // optional: restrict to one owner (admin views)
	HouseType domain.HouseType // optional: filter by type
	Page      int              // 1-based
	Limit     int
}

// HouseRepository defines persistence operations for houses.
type HouseRepository interface {
	Create(ctx context.Context, h *domain.House) (*domain.House, error)
	// FindByID retrieves a house visible under scope. An out-of-scope id
	// yields domain.ErrHouseNotFound.
	FindByID(ctx context.Context, id string, scope domain.Scope) (*domain.House, error)
	// FindByOwnerAndNumber looks up the (owner, house_number) pair,
	// excluding excludingID when non-empty (update-in-place support).
	FindByOwnerAndNumber(ctx context.Context, ownerID, houseNumber, excludingID string) (*domain.House, error)
	List(ctx context.Context, f ListHousesFilter) ([]*domain.House, int64, error)
	Update(ctx context.Context, h *domain.House) error
	// DeleteCascade removes the house with its occupants and assignments in
	// a single transaction.
	DeleteCascade(ctx context.Context, id string) error
	// CountOccupants returns the occupant count per house id.
	CountOccupants(ctx context.Context, houseIDs []string) (map[string]int, error)
}
