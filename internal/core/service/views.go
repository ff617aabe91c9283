package service

import (
	"context"
	"errors"

	"github.com/estateops/property-registry/internal/core/domain"
	"github.com/estateops/property-registry/internal/core/ports"
)

// View assembly helpers shared by the services. Summaries denormalize a few
// read-only fields (owner contact, house address, occupant count) so list
// consumers need no follow-up requests.

func buildHouseSummaries(ctx context.Context, users ports.UserRepository, houses ports.HouseRepository, items []*domain.House) ([]ports.HouseSummary, error) {
	ids := make([]string, 0, len(items))
	ownerIDs := make([]string, 0, len(items))
	for _, h := range items {
		ids = append(ids, h.ID)
		ownerIDs = append(ownerIDs, h.OwnerID)
	}

	owners, err := users.FindByIDs(ctx, ownerIDs)
	if err != nil {
		return nil, err
	}
	counts, err := houses.CountOccupants(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]ports.HouseSummary, len(items))
	for i, h := range items {
		s := ports.HouseSummary{House: *h, TotalOccupants: counts[h.ID]}
		if owner, ok := owners[h.OwnerID]; ok {
			s.OwnerEmail = owner.Email
			s.OwnerName = owner.FullName()
		}
		out[i] = s
	}
	return out, nil
}

// houseLookup memoizes house fetches while assembling one response, since a
// page of occupants or assignments usually spans few distinct houses.
type houseLookup struct {
	houses ports.HouseRepository
	memo   map[string]*domain.House
}

func newHouseLookup(houses ports.HouseRepository) *houseLookup {
	return &houseLookup{houses: houses, memo: make(map[string]*domain.House)}
}

// get fetches a house without scope restriction: callers only resolve
// houses referenced by rows the actor is already allowed to see.
func (l *houseLookup) get(ctx context.Context, id string) (*domain.House, error) {
	if h, ok := l.memo[id]; ok {
		return h, nil
	}
	h, err := l.houses.FindByID(ctx, id, domain.Scope{})
	if err != nil {
		if errors.Is(err, domain.ErrHouseNotFound) {
			// Row references a house deleted mid-request; render without
			// address fields rather than failing the whole page.
			l.memo[id] = nil
			return nil, nil
		}
		return nil, err
	}
	l.memo[id] = h
	return h, nil
}

func buildOccupantSummaries(ctx context.Context, houses ports.HouseRepository, items []*domain.Occupant) ([]ports.OccupantSummary, error) {
	lookup := newHouseLookup(houses)
	out := make([]ports.OccupantSummary, len(items))
	for i, o := range items {
		s := ports.OccupantSummary{Occupant: *o}
		h, err := lookup.get(ctx, o.HouseID)
		if err != nil {
			return nil, err
		}
		if h != nil {
			s.HouseNumber = h.HouseNumber
			s.HouseType = h.HouseType
		}
		out[i] = s
	}
	return out, nil
}

func buildAssignmentSummaries(ctx context.Context, users ports.UserRepository, houses ports.HouseRepository, items []*domain.ChiefTenantAssignment) ([]ports.AssignmentSummary, error) {
	userIDs := make([]string, 0, len(items))
	for _, a := range items {
		userIDs = append(userIDs, a.UserID)
	}
	holders, err := users.FindByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	lookup := newHouseLookup(houses)
	out := make([]ports.AssignmentSummary, len(items))
	for i, a := range items {
		s := ports.AssignmentSummary{ChiefTenantAssignment: *a}
		if u, ok := holders[a.UserID]; ok {
			s.UserEmail = u.Email
			s.UserName = u.FullName()
		}
		h, err := lookup.get(ctx, a.HouseID)
		if err != nil {
			return nil, err
		}
		if h != nil {
			s.HouseNumber = h.HouseNumber
		}
		out[i] = s
	}
	return out, nil
}

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// normalizePage clamps pagination inputs the same way for every list
// endpoint.
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}
