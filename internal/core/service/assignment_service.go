package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/estateops/property-registry/internal/api/metrics"
	"github.com/estateops/property-registry/internal/core/domain"
	"github.com/estateops/property-registry/internal/core/ports"
)

// AssignmentService implements chief tenant assignment use cases.
//
// Active writes follow a strict order: the tenant-role check, then the
// per-user single-active check, then SaveExclusive, whose transaction both
// persists the assignment and sweeps sibling active assignments for the
// house to inactive. The per-user check must precede the sweep so a user
// cannot end up active on two houses by racing two writes; the per-house
// exclusivity itself is last-writer-wins and never rejects the caller.
type AssignmentService struct {
	assignments ports.AssignmentRepository
	houses      ports.HouseRepository
	users       ports.UserRepository
	rules       *Invariants
	logger      zerolog.Logger
}

func NewAssignmentService(
	assignments ports.AssignmentRepository,
	houses ports.HouseRepository,
	users ports.UserRepository,
	rules *Invariants,
	logger zerolog.Logger,
) *AssignmentService {
	return &AssignmentService{assignments: assignments, houses: houses, users: users, rules: rules, logger: logger}
}

func (s *AssignmentService) Create(ctx context.Context, actor domain.Actor, in ports.CreateAssignmentInput) (*domain.ChiefTenantAssignment, error) {
	if actor.Role == domain.RoleTenant {
		return nil, domain.ErrForbidden
	}

	if _, err := s.rules.CheckAssignmentUser(ctx, in.UserID); err != nil {
		return nil, err
	}
	house, err := s.houses.FindByID(ctx, in.HouseID, actor.HouseScope())
	if err != nil {
		return nil, err
	}

	isActive := true
	if in.IsActive != nil {
		isActive = *in.IsActive
	}
	if err := s.rules.CheckSingleActiveAssignment(ctx, in.UserID, isActive, ""); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	assignment := &domain.ChiefTenantAssignment{
		UserID:         in.UserID,
		HouseID:        house.ID,
		OwnerID:        house.OwnerID,
		AssignmentDate: now,
		IsActive:       isActive,
		CreatedAt:      now,
	}

	created, err := s.save(ctx, assignment)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", in.UserID).Str("house_id", house.ID).Msg("failed to create assignment")
		return nil, err
	}

	s.logger.Info().
		Str("assignment_id", created.ID).
		Str("user_id", created.UserID).
		Str("house_id", created.HouseID).
		Bool("active", created.IsActive).
		Msg("chief tenant assigned")
	return created, nil
}

func (s *AssignmentService) Get(ctx context.Context, actor domain.Actor, id string) (*ports.AssignmentSummary, error) {
	assignment, err := s.assignments.FindByID(ctx, id, actor.AssignmentScope())
	if err != nil {
		return nil, err
	}
	summaries, err := buildAssignmentSummaries(ctx, s.users, s.houses, []*domain.ChiefTenantAssignment{assignment})
	if err != nil {
		return nil, err
	}
	return &summaries[0], nil
}

func (s *AssignmentService) List(ctx context.Context, actor domain.Actor, in ports.ListAssignmentsInput) (*ports.AssignmentList, error) {
	page, limit := normalizePage(in.Page, in.Limit)

	items, total, err := s.assignments.List(ctx, ports.ListAssignmentsFilter{
		Scope:      actor.AssignmentScope(),
		ActiveOnly: in.ActiveOnly,
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		return nil, err
	}

	summaries, err := buildAssignmentSummaries(ctx, s.users, s.houses, items)
	if err != nil {
		return nil, err
	}
	return &ports.AssignmentList{Items: summaries, Page: ports.NewPage(total, page, limit)}, nil
}

func (s *AssignmentService) Update(ctx context.Context, actor domain.Actor, id string, in ports.UpdateAssignmentInput) (*domain.ChiefTenantAssignment, error) {
	if actor.Role == domain.RoleTenant {
		return nil, domain.ErrForbidden
	}
	assignment, err := s.assignments.FindByID(ctx, id, actor.AssignmentScope())
	if err != nil {
		return nil, err
	}

	if in.HouseID != nil && *in.HouseID != assignment.HouseID {
		house, err := s.houses.FindByID(ctx, *in.HouseID, actor.HouseScope())
		if err != nil {
			return nil, err
		}
		assignment.HouseID = house.ID
		assignment.OwnerID = house.OwnerID
	}
	if in.IsActive != nil {
		assignment.IsActive = *in.IsActive
	}

	if err := s.rules.CheckSingleActiveAssignment(ctx, assignment.UserID, assignment.IsActive, assignment.ID); err != nil {
		return nil, err
	}
	return s.save(ctx, assignment)
}

// Activate turns an assignment active. Idempotent: an already-active
// assignment is returned unchanged.
func (s *AssignmentService) Activate(ctx context.Context, actor domain.Actor, id string) (*domain.ChiefTenantAssignment, error) {
	if actor.Role == domain.RoleTenant {
		return nil, domain.ErrForbidden
	}
	assignment, err := s.assignments.FindByID(ctx, id, actor.AssignmentScope())
	if err != nil {
		return nil, err
	}
	if assignment.IsActive {
		return assignment, nil
	}

	if err := s.rules.CheckSingleActiveAssignment(ctx, assignment.UserID, true, assignment.ID); err != nil {
		return nil, err
	}
	assignment.IsActive = true
	updated, err := s.save(ctx, assignment)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("assignment_id", updated.ID).Str("house_id", updated.HouseID).Msg("assignment activated")
	return updated, nil
}

// Deactivate turns an assignment inactive. Idempotent: an already-inactive
// assignment is returned unchanged.
func (s *AssignmentService) Deactivate(ctx context.Context, actor domain.Actor, id string) (*domain.ChiefTenantAssignment, error) {
	if actor.Role == domain.RoleTenant {
		return nil, domain.ErrForbidden
	}
	assignment, err := s.assignments.FindByID(ctx, id, actor.AssignmentScope())
	if err != nil {
		return nil, err
	}
	if !assignment.IsActive {
		return assignment, nil
	}

	assignment.IsActive = false
	updated, err := s.assignments.Save(ctx, assignment)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("assignment_id", updated.ID).Str("house_id", updated.HouseID).Msg("assignment deactivated")
	return updated, nil
}

func (s *AssignmentService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	if actor.Role == domain.RoleTenant {
		return domain.ErrForbidden
	}
	assignment, err := s.assignments.FindByID(ctx, id, actor.AssignmentScope())
	if err != nil {
		return err
	}
	return s.assignments.Delete(ctx, assignment.ID)
}

// save routes the write: active assignments go through the exclusive save
// so sibling active assignments for the house are swept in the same
// transaction; inactive writes need no sweep.
func (s *AssignmentService) save(ctx context.Context, a *domain.ChiefTenantAssignment) (*domain.ChiefTenantAssignment, error) {
	if !a.IsActive {
		return s.assignments.Save(ctx, a)
	}
	saved, err := s.assignments.SaveExclusive(ctx, a)
	if err != nil {
		return nil, err
	}
	metrics.SweepsTotal.Inc()
	return saved, nil
}
