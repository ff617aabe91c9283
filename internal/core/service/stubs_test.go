package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/estateops/property-registry/internal/core/domain"
	"github.com/estateops/property-registry/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories shared by the service tests. They enforce the
// same filters the real Mongo repositories would, scope included, so the
// services are exercised against realistic store behaviour.
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) add(u domain.User) *domain.User {
	if u.ID == "" {
		r.nextID++
		u.ID = fmt.Sprintf("user_%d", r.nextID)
	}
	clone := u
	r.users[u.ID] = &clone
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return nil, domain.ErrUserExists
		}
	}
	created := r.add(*u)
	clone := *created
	return &clone, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []string) (map[string]*domain.User, error) {
	out := make(map[string]*domain.User)
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			clone := *u
			out[id] = &clone
		}
	}
	return out, nil
}

func (r *stubUserRepo) List(_ context.Context, f ports.ListUsersFilter) ([]*domain.User, int64, error) {
	var out []*domain.User
	for _, u := range r.users {
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		clone := *u
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (r *stubUserRepo) Update(_ context.Context, u *domain.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	clone := *u
	r.users[u.ID] = &clone
	return nil
}

func (r *stubUserRepo) DeleteCascade(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type stubHouseRepo struct {
	houses    map[string]*domain.House
	occupants *stubOccupantRepo // for CountOccupants; may be nil
	nextID    int
}

func newStubHouseRepo() *stubHouseRepo {
	return &stubHouseRepo{houses: make(map[string]*domain.House)}
}

func (r *stubHouseRepo) add(h domain.House) *domain.House {
	if h.ID == "" {
		r.nextID++
		h.ID = fmt.Sprintf("house_%d", r.nextID)
	}
	clone := h
	r.houses[h.ID] = &clone
	return &clone
}

func (r *stubHouseRepo) Create(_ context.Context, h *domain.House) (*domain.House, error) {
	created := r.add(*h)
	clone := *created
	return &clone, nil
}

func (r *stubHouseRepo) FindByID(_ context.Context, id string, scope domain.Scope) (*domain.House, error) {
	h, ok := r.houses[id]
	if !ok {
		return nil, domain.ErrHouseNotFound
	}
	if scope.OwnerID != "" && h.OwnerID != scope.OwnerID {
		return nil, domain.ErrHouseNotFound
	}
	clone := *h
	return &clone, nil
}

func (r *stubHouseRepo) FindByOwnerAndNumber(_ context.Context, ownerID, houseNumber, excludingID string) (*domain.House, error) {
	for _, h := range r.houses {
		if h.OwnerID == ownerID && h.HouseNumber == houseNumber && h.ID != excludingID {
			clone := *h
			return &clone, nil
		}
	}
	return nil, domain.ErrHouseNotFound
}

func (r *stubHouseRepo) List(_ context.Context, f ports.ListHousesFilter) ([]*domain.House, int64, error) {
	var out []*domain.House
	for _, h := range r.houses {
		if f.Scope.OwnerID != "" && h.OwnerID != f.Scope.OwnerID {
			continue
		}
		if f.OwnerID != "" && h.OwnerID != f.OwnerID {
			continue
		}
		if f.HouseType != "" && h.HouseType != f.HouseType {
			continue
		}
		clone := *h
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (r *stubHouseRepo) Update(_ context.Context, h *domain.House) error {
	if _, ok := r.houses[h.ID]; !ok {
		return domain.ErrHouseNotFound
	}
	clone := *h
	r.houses[h.ID] = &clone
	return nil
}

func (r *stubHouseRepo) DeleteCascade(_ context.Context, id string) error {
	if _, ok := r.houses[id]; !ok {
		return domain.ErrHouseNotFound
	}
	delete(r.houses, id)
	if r.occupants != nil {
		for oid, o := range r.occupants.occupants {
			if o.HouseID == id {
				delete(r.occupants.occupants, oid)
			}
		}
	}
	return nil
}

func (r *stubHouseRepo) CountOccupants(_ context.Context, houseIDs []string) (map[string]int, error) {
	counts := make(map[string]int)
	if r.occupants == nil {
		return counts, nil
	}
	for _, id := range houseIDs {
		for _, o := range r.occupants.occupants {
			if o.HouseID == id {
				counts[id]++
			}
		}
	}
	return counts, nil
}

type stubOccupantRepo struct {
	occupants map[string]*domain.Occupant
	nextID    int
}

func newStubOccupantRepo() *stubOccupantRepo {
	return &stubOccupantRepo{occupants: make(map[string]*domain.Occupant)}
}

func (r *stubOccupantRepo) Create(_ context.Context, o *domain.Occupant) (*domain.Occupant, error) {
	r.nextID++
	clone := *o
	clone.ID = fmt.Sprintf("occupant_%d", r.nextID)
	r.occupants[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubOccupantRepo) FindByID(_ context.Context, id string, scope domain.Scope) (*domain.Occupant, error) {
	o, ok := r.occupants[id]
	if !ok {
		return nil, domain.ErrOccupantNotFound
	}
	if scope.OwnerID != "" && o.OwnerID != scope.OwnerID {
		return nil, domain.ErrOccupantNotFound
	}
	clone := *o
	return &clone, nil
}

func (r *stubOccupantRepo) FindByApartment(_ context.Context, houseID, apartmentNumber, excludingID string) (*domain.Occupant, error) {
	for _, o := range r.occupants {
		if o.HouseID == houseID && o.ApartmentNumber == apartmentNumber && o.ID != excludingID {
			clone := *o
			return &clone, nil
		}
	}
	return nil, domain.ErrOccupantNotFound
}

func (r *stubOccupantRepo) List(_ context.Context, f ports.ListOccupantsFilter) ([]*domain.Occupant, int64, error) {
	var out []*domain.Occupant
	for _, o := range r.occupants {
		if f.Scope.OwnerID != "" && o.OwnerID != f.Scope.OwnerID {
			continue
		}
		if f.HouseID != "" && o.HouseID != f.HouseID {
			continue
		}
		if f.ChiefsOnly && !o.IsChiefTenant {
			continue
		}
		clone := *o
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (r *stubOccupantRepo) Update(_ context.Context, o *domain.Occupant) error {
	if _, ok := r.occupants[o.ID]; !ok {
		return domain.ErrOccupantNotFound
	}
	clone := *o
	r.occupants[o.ID] = &clone
	return nil
}

func (r *stubOccupantRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.occupants[id]; !ok {
		return domain.ErrOccupantNotFound
	}
	delete(r.occupants, id)
	return nil
}

type stubAssignmentRepo struct {
	assignments map[string]*domain.ChiefTenantAssignment
	nextID      int
	sweeps      int // SaveExclusive invocations
}

func newStubAssignmentRepo() *stubAssignmentRepo {
	return &stubAssignmentRepo{assignments: make(map[string]*domain.ChiefTenantAssignment)}
}

func (r *stubAssignmentRepo) FindByID(_ context.Context, id string, scope domain.Scope) (*domain.ChiefTenantAssignment, error) {
	a, ok := r.assignments[id]
	if !ok {
		return nil, domain.ErrAssignmentNotFound
	}
	if scope.OwnerID != "" && a.OwnerID != scope.OwnerID {
		return nil, domain.ErrAssignmentNotFound
	}
	if scope.UserID != "" && a.UserID != scope.UserID {
		return nil, domain.ErrAssignmentNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *stubAssignmentRepo) FindActiveByHouse(_ context.Context, houseID string, scope domain.Scope) (*domain.ChiefTenantAssignment, error) {
	for _, a := range r.assignments {
		if a.HouseID != houseID || !a.IsActive {
			continue
		}
		if scope.OwnerID != "" && a.OwnerID != scope.OwnerID {
			continue
		}
		clone := *a
		return &clone, nil
	}
	return nil, domain.ErrAssignmentNotFound
}

func (r *stubAssignmentRepo) FindActiveByUser(_ context.Context, userID, excludingID string) (*domain.ChiefTenantAssignment, error) {
	for _, a := range r.assignments {
		if a.UserID == userID && a.IsActive && a.ID != excludingID {
			clone := *a
			return &clone, nil
		}
	}
	return nil, domain.ErrAssignmentNotFound
}

func (r *stubAssignmentRepo) List(_ context.Context, f ports.ListAssignmentsFilter) ([]*domain.ChiefTenantAssignment, int64, error) {
	var out []*domain.ChiefTenantAssignment
	for _, a := range r.assignments {
		if f.Scope.OwnerID != "" && a.OwnerID != f.Scope.OwnerID {
			continue
		}
		if f.Scope.UserID != "" && a.UserID != f.Scope.UserID {
			continue
		}
		if f.HouseID != "" && a.HouseID != f.HouseID {
			continue
		}
		if f.ActiveOnly && !a.IsActive {
			continue
		}
		clone := *a
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (r *stubAssignmentRepo) Save(_ context.Context, a *domain.ChiefTenantAssignment) (*domain.ChiefTenantAssignment, error) {
	clone := *a
	if clone.ID == "" {
		r.nextID++
		clone.ID = fmt.Sprintf("assignment_%d", r.nextID)
	}
	r.assignments[clone.ID] = &clone
	out := clone
	return &out, nil
}

// SaveExclusive mirrors the Mongo implementation: deactivate siblings for
// the house, then upsert, all treated as one atomic step.
func (r *stubAssignmentRepo) SaveExclusive(ctx context.Context, a *domain.ChiefTenantAssignment) (*domain.ChiefTenantAssignment, error) {
	r.sweeps++
	for _, existing := range r.assignments {
		if existing.HouseID == a.HouseID && existing.ID != a.ID && existing.IsActive {
			existing.IsActive = false
		}
	}
	return r.Save(ctx, a)
}

func (r *stubAssignmentRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.assignments[id]; !ok {
		return domain.ErrAssignmentNotFound
	}
	delete(r.assignments, id)
	return nil
}

type stubSessionStore struct {
	sessions map[string]string // jti -> userID
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]string)}
}

func (s *stubSessionStore) Save(_ context.Context, tokenID, userID string, _ time.Duration) error {
	s.sessions[tokenID] = userID
	return nil
}

func (s *stubSessionStore) Revoke(_ context.Context, tokenID string) error {
	delete(s.sessions, tokenID)
	return nil
}

func (s *stubSessionStore) Active(_ context.Context, tokenID string) (bool, error) {
	_, ok := s.sessions[tokenID]
	return ok, nil
}

// testRepos bundles the stub repositories with a wired invariant engine.
type testRepos struct {
	users       *stubUserRepo
	houses      *stubHouseRepo
	occupants   *stubOccupantRepo
	assignments *stubAssignmentRepo
	rules       *Invariants
}

func newTestRepos() *testRepos {
	users := newStubUserRepo()
	houses := newStubHouseRepo()
	occupants := newStubOccupantRepo()
	assignments := newStubAssignmentRepo()
	houses.occupants = occupants
	return &testRepos{
		users:       users,
		houses:      houses,
		occupants:   occupants,
		assignments: assignments,
		rules:       NewInvariants(users, houses, occupants, assignments),
	}
}
