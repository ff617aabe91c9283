package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/estateops/property-registry/internal/api/metrics"
	"github.com/estateops/property-registry/internal/core/domain"
	"github.com/estateops/property-registry/internal/core/ports"
)

// Invariants evaluates cross-record business rules before a write reaches
// the store. Every check is a synchronous, semantic rejection; the store's
// unique indexes act as the backstop against races that slip past them.
//
// The sweep (deactivating sibling active assignments for a house) is not a
// check: it lives in AssignmentRepository.SaveExclusive so its transaction
// boundary is explicit. Write paths must run CheckSingleActiveAssignment
// before SaveExclusive so a user cannot activate two assignments by racing
// two houses.
type Invariants struct {
	users       ports.UserRepository
	houses      ports.HouseRepository
	occupants   ports.OccupantRepository
	assignments ports.AssignmentRepository
}

func NewInvariants(
	users ports.UserRepository,
	houses ports.HouseRepository,
	occupants ports.OccupantRepository,
	assignments ports.AssignmentRepository,
) *Invariants {
	return &Invariants{users: users, houses: houses, occupants: occupants, assignments: assignments}
}

// CheckHouseOwner verifies the candidate owner exists and holds the owner
// role.
func (v *Invariants) CheckHouseOwner(ctx context.Context, ownerID string) (*domain.User, error) {
	owner, err := v.users.FindByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if owner.Role != domain.RoleOwner {
		metrics.RuleRejectionsTotal.WithLabelValues("house_owner_role").Inc()
		return nil, fmt.Errorf("owner %s has role %s: %w", ownerID, owner.Role, domain.ErrRoleViolation)
	}
	return owner, nil
}

// CheckHouseNumberUnique verifies no other house of the same owner carries
// this house number. excludingID skips the record being updated.
func (v *Invariants) CheckHouseNumberUnique(ctx context.Context, ownerID, houseNumber, excludingID string) error {
	existing, err := v.houses.FindByOwnerAndNumber(ctx, ownerID, houseNumber, excludingID)
	if err != nil {
		if errors.Is(err, domain.ErrHouseNotFound) {
			return nil
		}
		return err
	}
	if existing != nil {
		metrics.RuleRejectionsTotal.WithLabelValues("house_number_unique").Inc()
		return fmt.Errorf("house_number %q: %w", houseNumber, domain.ErrHouseExists)
	}
	return nil
}

// CheckApartmentFree verifies no other occupant of the house holds this
// apartment number. excludingID skips the record being updated.
func (v *Invariants) CheckApartmentFree(ctx context.Context, houseID, apartmentNumber, excludingID string) error {
	existing, err := v.occupants.FindByApartment(ctx, houseID, apartmentNumber, excludingID)
	if err != nil {
		if errors.Is(err, domain.ErrOccupantNotFound) {
			return nil
		}
		return err
	}
	if existing != nil {
		metrics.RuleRejectionsTotal.WithLabelValues("apartment_unique").Inc()
		return fmt.Errorf("apartment_number %q: %w", apartmentNumber, domain.ErrDuplicateUnit)
	}
	return nil
}

// CheckAssignmentUser verifies the candidate exists and holds the tenant
// role.
func (v *Invariants) CheckAssignmentUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := v.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role != domain.RoleTenant {
		metrics.RuleRejectionsTotal.WithLabelValues("assignment_user_role").Inc()
		return nil, fmt.Errorf("user %s has role %s: %w", userID, user.Role, domain.ErrRoleViolation)
	}
	return user, nil
}

// CheckSingleActiveAssignment rejects a write that would leave the user
// with two active assignments. A no-op when the write is inactive.
func (v *Invariants) CheckSingleActiveAssignment(ctx context.Context, userID string, isActive bool, excludingID string) error {
	if !isActive {
		return nil
	}
	existing, err := v.assignments.FindActiveByUser(ctx, userID, excludingID)
	if err != nil {
		if errors.Is(err, domain.ErrAssignmentNotFound) {
			return nil
		}
		return err
	}
	if existing != nil {
		metrics.RuleRejectionsTotal.WithLabelValues("single_active_assignment").Inc()
		return fmt.Errorf("user %s: %w", userID, domain.ErrDuplicateActiveAssignment)
	}
	return nil
}
