package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/estateops/property-registry/internal/core/domain"
	"github.com/estateops/property-registry/internal/core/ports"
)

const minFullNameLen = 2

// OccupantService implements occupant use cases.
type OccupantService struct {
	occupants ports.OccupantRepository
	houses    ports.HouseRepository
	rules     *Invariants
	logger    zerolog.Logger
}

func NewOccupantService(occupants ports.OccupantRepository, houses ports.HouseRepository, rules *Invariants, logger zerolog.Logger) *OccupantService {
	return &OccupantService{occupants: occupants, houses: houses, rules: rules, logger: logger}
}

// Create registers an occupant under a house the actor can see. The house's
// owner id is denormalized onto the occupant so owner-scoped reads need no
// join; the move-in date is fixed here and never updated.
func (s *OccupantService) Create(ctx context.Context, actor domain.Actor, in ports.CreateOccupantInput) (*domain.Occupant, error) {
	if actor.Role == domain.RoleTenant {
		return nil, domain.ErrForbidden
	}
	if len(in.FullName) < minFullNameLen {
		return nil, fmt.Errorf("full_name must be at least %d characters: %w", minFullNameLen, domain.ErrValidation)
	}
	if in.ApartmentNumber == "" {
		return nil, fmt.Errorf("apartment_number is required: %w", domain.ErrValidation)
	}

	house, err := s.houses.FindByID(ctx, in.HouseID, actor.HouseScope())
	if err != nil {
		return nil, err
	}
	if err := s.rules.CheckApartmentFree(ctx, house.ID, in.ApartmentNumber, ""); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	occupant := &domain.Occupant{
		HouseID:         house.ID,
		OwnerID:         house.OwnerID,
		FullName:        in.FullName,
		ApartmentNumber: in.ApartmentNumber,
		IsChiefTenant:   in.IsChiefTenant,
		MoveInDate:      now,
		CreatedAt:       now,
	}

	created, err := s.occupants.Create(ctx, occupant)
	if err != nil {
		s.logger.Error().Err(err).Str("house_id", house.ID).Msg("failed to create occupant")
		return nil, err
	}

	s.logger.Info().Str("occupant_id", created.ID).Str("house_id", house.ID).Str("apartment", created.ApartmentNumber).Msg("occupant registered")
	return created, nil
}

func (s *OccupantService) Get(ctx context.Context, actor domain.Actor, id string) (*ports.OccupantSummary, error) {
	occupant, err := s.occupants.FindByID(ctx, id, actor.OccupantScope())
	if err != nil {
		return nil, err
	}
	summaries, err := buildOccupantSummaries(ctx, s.houses, []*domain.Occupant{occupant})
	if err != nil {
		return nil, err
	}
	return &summaries[0], nil
}

func (s *OccupantService) List(ctx context.Context, actor domain.Actor, in ports.ListOccupantsInput) (*ports.OccupantList, error) {
	page, limit := normalizePage(in.Page, in.Limit)

	items, total, err := s.occupants.List(ctx, ports.ListOccupantsFilter{
		Scope:      actor.OccupantScope(),
		HouseID:    in.HouseID,
		ChiefsOnly: in.ChiefsOnly,
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		return nil, err
	}

	summaries, err := buildOccupantSummaries(ctx, s.houses, items)
	if err != nil {
		return nil, err
	}
	return &ports.OccupantList{Items: summaries, Page: ports.NewPage(total, page, limit)}, nil
}

func (s *OccupantService) Update(ctx context.Context, actor domain.Actor, id string, in ports.UpdateOccupantInput) (*domain.Occupant, error) {
	if actor.Role == domain.RoleTenant {
		return nil, domain.ErrForbidden
	}
	occupant, err := s.occupants.FindByID(ctx, id, actor.OccupantScope())
	if err != nil {
		return nil, err
	}

	if in.FullName != nil {
		if len(*in.FullName) < minFullNameLen {
			return nil, fmt.Errorf("full_name must be at least %d characters: %w", minFullNameLen, domain.ErrValidation)
		}
		occupant.FullName = *in.FullName
	}
	if in.ApartmentNumber != nil && *in.ApartmentNumber != occupant.ApartmentNumber {
		if *in.ApartmentNumber == "" {
			return nil, fmt.Errorf("apartment_number is required: %w", domain.ErrValidation)
		}
		if err := s.rules.CheckApartmentFree(ctx, occupant.HouseID, *in.ApartmentNumber, occupant.ID); err != nil {
			return nil, err
		}
		occupant.ApartmentNumber = *in.ApartmentNumber
	}
	if in.IsChiefTenant != nil {
		occupant.IsChiefTenant = *in.IsChiefTenant
	}

	if err := s.occupants.Update(ctx, occupant); err != nil {
		return nil, err
	}
	return occupant, nil
}

func (s *OccupantService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	if actor.Role == domain.RoleTenant {
		return domain.ErrForbidden
	}
	occupant, err := s.occupants.FindByID(ctx, id, actor.OccupantScope())
	if err != nil {
		return err
	}
	return s.occupants.Delete(ctx, occupant.ID)
}
