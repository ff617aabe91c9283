package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/estateops/property-registry/internal/api/metrics"
	"github.com/estateops/property-registry/internal/core/domain"
	"github.com/estateops/property-registry/internal/core/ports"
)

// UserService implements user record use cases. Detail reads embed the
// user's owned houses and chief tenant assignment.
type UserService struct {
	users       ports.UserRepository
	houses      ports.HouseRepository
	assignments ports.AssignmentRepository
	logger      zerolog.Logger
}

func NewUserService(users ports.UserRepository, houses ports.HouseRepository, assignments ports.AssignmentRepository, logger zerolog.Logger) *UserService {
	return &UserService{users: users, houses: houses, assignments: assignments, logger: logger}
}

// Create adds an account on behalf of an administrator.
func (s *UserService) Create(ctx context.Context, actor domain.Actor, in ports.CreateUserInput) (*domain.User, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, fmt.Errorf("email and password are required: %w", domain.ErrValidation)
	}
	role := in.Role
	if role == "" {
		role = domain.RoleTenant
	}
	if !domain.ValidRole(role) {
		return nil, fmt.Errorf("unknown role %q: %w", role, domain.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        email,
		Username:     in.Username,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	metrics.UsersRegisteredTotal.WithLabelValues(created.Role).Inc()
	s.logger.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user created by admin")
	return created, nil
}

// Get returns the detail view. Non-admin actors may only fetch themselves.
func (s *UserService) Get(ctx context.Context, actor domain.Actor, id string) (*ports.UserDetail, error) {
	if !actor.IsAdmin() && actor.ID != id {
		return nil, domain.ErrForbidden
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &ports.UserDetail{User: *user}

	if user.Role == domain.RoleOwner {
		houses, _, err := s.houses.List(ctx, ports.ListHousesFilter{Scope: domain.Scope{OwnerID: user.ID}, Limit: maxPageLimit, Page: 1})
		if err != nil {
			return nil, err
		}
		detail.OwnedHouses, err = buildHouseSummaries(ctx, s.users, s.houses, houses)
		if err != nil {
			return nil, err
		}
	}

	// A user holds at most one assignment (active or not).
	assignments, _, err := s.assignments.List(ctx, ports.ListAssignmentsFilter{Scope: domain.Scope{UserID: user.ID}, Limit: 1, Page: 1})
	if err != nil {
		return nil, err
	}
	if len(assignments) > 0 {
		summaries, err := buildAssignmentSummaries(ctx, s.users, s.houses, assignments)
		if err != nil {
			return nil, err
		}
		detail.Assignment = &summaries[0]
	}

	return detail, nil
}

// List returns a page of users. Admins may list anyone; owners may list
// tenants (to pick chief tenant candidates); everything else is forbidden.
func (s *UserService) List(ctx context.Context, actor domain.Actor, in ports.ListUsersInput) (*ports.UserList, error) {
	if in.Role != "" && !domain.ValidRole(in.Role) {
		return nil, fmt.Errorf("unknown role %q: %w", in.Role, domain.ErrValidation)
	}
	if !actor.IsAdmin() && !(actor.Role == domain.RoleOwner && in.Role == domain.RoleTenant) {
		return nil, domain.ErrForbidden
	}

	page, limit := normalizePage(in.Page, in.Limit)
	items, total, err := s.users.List(ctx, ports.ListUsersFilter{Role: in.Role, Page: page, Limit: limit})
	if err != nil {
		return nil, err
	}
	return &ports.UserList{Items: items, Page: ports.NewPage(total, page, limit)}, nil
}

// Update modifies a user. Self-service for profile fields; role changes are
// admin-only because role is a fixed business classification.
func (s *UserService) Update(ctx context.Context, actor domain.Actor, id string, in ports.UpdateUserInput) (*domain.User, error) {
	if !actor.IsAdmin() && actor.ID != id {
		return nil, domain.ErrForbidden
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if email == "" {
			return nil, fmt.Errorf("email is required: %w", domain.ErrValidation)
		}
		user.Email = email
	}
	if in.Username != nil {
		user.Username = *in.Username
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.Role != nil && *in.Role != user.Role {
		if !actor.IsAdmin() {
			return nil, domain.ErrForbidden
		}
		if !domain.ValidRole(*in.Role) {
			return nil, fmt.Errorf("unknown role %q: %w", *in.Role, domain.ErrValidation)
		}
		user.Role = *in.Role
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes a user and cascades to owned houses, their dependents, and
// the user's own assignment.
func (s *UserService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}
	if _, err := s.users.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.users.DeleteCascade(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", id).Msg("user deleted with dependents")
	return nil
}

// Properties lists the houses owned by the given user, scoped to what the
// actor may see. A non-owner target is a client error, not an empty list.
func (s *UserService) Properties(ctx context.Context, actor domain.Actor, userID string) ([]ports.HouseSummary, error) {
	target, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if target.Role != domain.RoleOwner {
		return nil, fmt.Errorf("user is not a property owner: %w", domain.ErrValidation)
	}

	scope := actor.HouseScope()
	houses, _, err := s.houses.List(ctx, ports.ListHousesFilter{Scope: scope, OwnerID: target.ID, Limit: maxPageLimit, Page: 1})
	if err != nil && !errors.Is(err, domain.ErrHouseNotFound) {
		return nil, err
	}
	return buildHouseSummaries(ctx, s.users, s.houses, houses)
}
