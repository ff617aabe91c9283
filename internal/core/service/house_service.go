package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/estateops/property-registry/internal/api/metrics"
	"github.com/estateops/property-registry/internal/core/domain"
	"github.com/estateops/property-registry/internal/core/ports"
)

// HouseService implements house use cases. All reads are scoped by the
// actor's role before anything else; all writes pass the invariant engine
// before reaching the store.
type HouseService struct {
	houses      ports.HouseRepository
	occupants   ports.OccupantRepository
	assignments ports.AssignmentRepository
	users       ports.UserRepository
	rules       *Invariants
	logger      zerolog.Logger
}

func NewHouseService(
	houses ports.HouseRepository,
	occupants ports.OccupantRepository,
	assignments ports.AssignmentRepository,
	users ports.UserRepository,
	rules *Invariants,
	logger zerolog.Logger,
) *HouseService {
	return &HouseService{
		houses:      houses,
		occupants:   occupants,
		assignments: assignments,
		users:       users,
		rules:       rules,
		logger:      logger,
	}
}

// Create registers a house. Owner actors always register for themselves;
// admins must name the owner. The owner is fixed for the house's lifetime.
func (s *HouseService) Create(ctx context.Context, actor domain.Actor, in ports.CreateHouseInput) (*domain.House, error) {
	ownerID := in.OwnerID
	if actor.Role == domain.RoleOwner {
		ownerID = actor.ID
	}
	if ownerID == "" {
		return nil, fmt.Errorf("owner_id is required: %w", domain.ErrValidation)
	}
	if !domain.ValidHouseType(in.HouseType) {
		return nil, fmt.Errorf("unknown house_type %q: %w", in.HouseType, domain.ErrValidation)
	}

	if _, err := s.rules.CheckHouseOwner(ctx, ownerID); err != nil {
		return nil, err
	}
	if err := s.rules.CheckHouseNumberUnique(ctx, ownerID, in.HouseNumber, ""); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	numApartments := in.NumApartments
	if numApartments < 1 {
		numApartments = 1
	}
	house := &domain.House{
		OwnerID:       ownerID,
		HouseType:     in.HouseType,
		HouseNumber:   in.HouseNumber,
		NumApartments: numApartments,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.houses.Create(ctx, house)
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", ownerID).Msg("failed to create house")
		return nil, err
	}

	metrics.HousesCreatedTotal.WithLabelValues(string(created.HouseType)).Inc()
	s.logger.Info().Str("house_id", created.ID).Str("owner_id", ownerID).Msg("house registered")
	return created, nil
}

// Get returns the detail view with occupants and assignments embedded.
func (s *HouseService) Get(ctx context.Context, actor domain.Actor, id string) (*ports.HouseDetail, error) {
	house, err := s.houses.FindByID(ctx, id, actor.HouseScope())
	if err != nil {
		return nil, err
	}

	summaries, err := buildHouseSummaries(ctx, s.users, s.houses, []*domain.House{house})
	if err != nil {
		return nil, err
	}
	detail := &ports.HouseDetail{HouseSummary: summaries[0]}

	occupants, _, err := s.occupants.List(ctx, ports.ListOccupantsFilter{HouseID: house.ID, Limit: maxPageLimit, Page: 1})
	if err != nil {
		return nil, err
	}
	detail.Occupants, err = buildOccupantSummaries(ctx, s.houses, occupants)
	if err != nil {
		return nil, err
	}

	assignments, _, err := s.assignments.List(ctx, ports.ListAssignmentsFilter{HouseID: house.ID, Limit: maxPageLimit, Page: 1})
	if err != nil {
		return nil, err
	}
	detail.Assignments, err = buildAssignmentSummaries(ctx, s.users, s.houses, assignments)
	if err != nil {
		return nil, err
	}

	return detail, nil
}

func (s *HouseService) List(ctx context.Context, actor domain.Actor, in ports.ListHousesInput) (*ports.HouseList, error) {
	if in.HouseType != "" && !domain.ValidHouseType(in.HouseType) {
		return nil, fmt.Errorf("unknown house_type %q: %w", in.HouseType, domain.ErrValidation)
	}
	page, limit := normalizePage(in.Page, in.Limit)

	items, total, err := s.houses.List(ctx, ports.ListHousesFilter{
		Scope:     actor.HouseScope(),
		HouseType: in.HouseType,
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		return nil, err
	}

	summaries, err := buildHouseSummaries(ctx, s.users, s.houses, items)
	if err != nil {
		return nil, err
	}
	return &ports.HouseList{Items: summaries, Page: ports.NewPage(total, page, limit)}, nil
}

func (s *HouseService) Update(ctx context.Context, actor domain.Actor, id string, in ports.UpdateHouseInput) (*domain.House, error) {
	if actor.Role == domain.RoleTenant {
		return nil, domain.ErrForbidden
	}
	house, err := s.houses.FindByID(ctx, id, actor.HouseScope())
	if err != nil {
		return nil, err
	}

	if in.HouseType != nil {
		if !domain.ValidHouseType(*in.HouseType) {
			return nil, fmt.Errorf("unknown house_type %q: %w", *in.HouseType, domain.ErrValidation)
		}
		house.HouseType = *in.HouseType
	}
	if in.HouseNumber != nil && *in.HouseNumber != house.HouseNumber {
		if err := s.rules.CheckHouseNumberUnique(ctx, house.OwnerID, *in.HouseNumber, house.ID); err != nil {
			return nil, err
		}
		house.HouseNumber = *in.HouseNumber
	}
	if in.NumApartments != nil {
		if *in.NumApartments < 1 {
			return nil, fmt.Errorf("num_apartments must be positive: %w", domain.ErrValidation)
		}
		house.NumApartments = *in.NumApartments
	}
	house.UpdatedAt = time.Now().UTC()

	if err := s.houses.Update(ctx, house); err != nil {
		return nil, err
	}
	return house, nil
}

// Delete removes the house and cascades to its occupants and assignments.
func (s *HouseService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	if actor.Role == domain.RoleTenant {
		return domain.ErrForbidden
	}
	house, err := s.houses.FindByID(ctx, id, actor.HouseScope())
	if err != nil {
		return err
	}
	if err := s.houses.DeleteCascade(ctx, house.ID); err != nil {
		return err
	}
	s.logger.Info().Str("house_id", house.ID).Msg("house deleted with dependents")
	return nil
}

// Occupants lists the occupants of one house visible to the actor.
func (s *HouseService) Occupants(ctx context.Context, actor domain.Actor, houseID string) ([]ports.OccupantSummary, error) {
	house, err := s.houses.FindByID(ctx, houseID, actor.HouseScope())
	if err != nil {
		return nil, err
	}
	occupants, _, err := s.occupants.List(ctx, ports.ListOccupantsFilter{HouseID: house.ID, Limit: maxPageLimit, Page: 1})
	if err != nil {
		return nil, err
	}
	return buildOccupantSummaries(ctx, s.houses, occupants)
}

// ActiveChiefTenant returns the single active assignment for a house, or
// domain.ErrAssignmentNotFound when the house has none.
func (s *HouseService) ActiveChiefTenant(ctx context.Context, actor domain.Actor, houseID string) (*ports.AssignmentSummary, error) {
	house, err := s.houses.FindByID(ctx, houseID, actor.HouseScope())
	if err != nil {
		return nil, err
	}
	assignment, err := s.assignments.FindActiveByHouse(ctx, house.ID, domain.Scope{})
	if err != nil {
		return nil, err
	}
	summaries, err := buildAssignmentSummaries(ctx, s.users, s.houses, []*domain.ChiefTenantAssignment{assignment})
	if err != nil {
		return nil, err
	}
	return &summaries[0], nil
}
