package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/estateops/property-registry/internal/core/domain"
	"github.com/estateops/property-registry/internal/core/ports"
)

func newOccupantService(r *testRepos) *OccupantService {
	return NewOccupantService(r.occupants, r.houses, r.rules, zerolog.Nop())
}

func TestOccupantService_Create(t *testing.T) {
	r := newTestRepos()
	owner := r.users.add(domain.User{ID: "owner_1", Role: domain.RoleOwner})
	house := r.houses.add(domain.House{OwnerID: owner.ID, HouseNumber: "1"})
	svc := newOccupantService(r)
	actor := domain.Actor{ID: owner.ID, Role: domain.RoleOwner}

	created, err := svc.Create(context.Background(), actor, ports.CreateOccupantInput{
		HouseID:         house.ID,
		FullName:        "Jana Dvorak",
		ApartmentNumber: "2C",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.OwnerID != owner.ID {
		t.Fatalf("expected owner_id denormalized from house, got %q", created.OwnerID)
	}
	if created.MoveInDate.IsZero() {
		t.Fatalf("expected move-in date set at creation")
	}
}

func TestOccupantService_Create_Validation(t *testing.T) {
	r := newTestRepos()
	owner := r.users.add(domain.User{ID: "owner_1", Role: domain.RoleOwner})
	house := r.houses.add(domain.House{OwnerID: owner.ID, HouseNumber: "1"})
	svc := newOccupantService(r)
	actor := domain.Actor{ID: owner.ID, Role: domain.RoleOwner}

	if _, err := svc.Create(context.Background(), actor, ports.CreateOccupantInput{HouseID: house.ID, FullName: "X", ApartmentNumber: "1A"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for short name, got %v", err)
	}
	if _, err := svc.Create(context.Background(), actor, ports.CreateOccupantInput{HouseID: house.ID, FullName: "Jana Dvorak"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for missing apartment, got %v", err)
	}
	if _, err := svc.Create(context.Background(), domain.Actor{ID: "t", Role: domain.RoleTenant}, ports.CreateOccupantInput{HouseID: house.ID, FullName: "Jana Dvorak", ApartmentNumber: "1A"}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for tenant, got %v", err)
	}
}

func TestOccupantService_Create_RejectsForeignHouse(t *testing.T) {
	r := newTestRepos()
	r.users.add(domain.User{ID: "owner_1", Role: domain.RoleOwner})
	r.users.add(domain.User{ID: "owner_2", Role: domain.RoleOwner})
	foreign := r.houses.add(domain.House{OwnerID: "owner_2", HouseNumber: "9"})
	svc := newOccupantService(r)

	// An owner cannot register occupants into another owner's house; the
	// scoped fetch reports the house as missing.
	_, err := svc.Create(context.Background(), domain.Actor{ID: "owner_1", Role: domain.RoleOwner}, ports.CreateOccupantInput{
		HouseID:         foreign.ID,
		FullName:        "Jana Dvorak",
		ApartmentNumber: "1A",
	})
	if !errors.Is(err, domain.ErrHouseNotFound) {
		t.Fatalf("expected ErrHouseNotFound, got %v", err)
	}
}

func TestOccupantService_Create_RejectsOccupiedApartment(t *testing.T) {
	r := newTestRepos()
	owner := r.users.add(domain.User{ID: "owner_1", Role: domain.RoleOwner})
	house := r.houses.add(domain.House{OwnerID: owner.ID, HouseNumber: "1"})
	svc := newOccupantService(r)
	actor := domain.Actor{ID: owner.ID, Role: domain.RoleOwner}

	if _, err := svc.Create(context.Background(), actor, ports.CreateOccupantInput{HouseID: house.ID, FullName: "Jana Dvorak", ApartmentNumber: "3B"}); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), actor, ports.CreateOccupantInput{HouseID: house.ID, FullName: "Petr Novak", ApartmentNumber: "3B"}); !errors.Is(err, domain.ErrDuplicateUnit) {
		t.Fatalf("expected ErrDuplicateUnit, got %v", err)
	}
}

func TestOccupantService_Update_ApartmentChange(t *testing.T) {
	r := newTestRepos()
	owner := r.users.add(domain.User{ID: "owner_1", Role: domain.RoleOwner})
	house := r.houses.add(domain.House{OwnerID: owner.ID, HouseNumber: "1"})
	svc := newOccupantService(r)
	actor := domain.Actor{ID: owner.ID, Role: domain.RoleOwner}

	first, err := svc.Create(context.Background(), actor, ports.CreateOccupantInput{HouseID: house.ID, FullName: "Jana Dvorak", ApartmentNumber: "1A"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), actor, ports.CreateOccupantInput{HouseID: house.ID, FullName: "Petr Novak", ApartmentNumber: "2A"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Moving into an occupied unit is rejected.
	taken := "2A"
	if _, err := svc.Update(context.Background(), actor, first.ID, ports.UpdateOccupantInput{ApartmentNumber: &taken}); !errors.Is(err, domain.ErrDuplicateUnit) {
		t.Fatalf("expected ErrDuplicateUnit, got %v", err)
	}

	// Re-saving the occupant's own unit is fine, and chief flag toggles.
	own := "1A"
	chief := true
	updated, err := svc.Update(context.Background(), actor, first.ID, ports.UpdateOccupantInput{ApartmentNumber: &own, IsChiefTenant: &chief})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if !updated.IsChiefTenant {
		t.Fatalf("expected chief tenant flag set")
	}
}

func TestOccupantService_List_Filters(t *testing.T) {
	r := newTestRepos()
	owner := r.users.add(domain.User{ID: "owner_1", Role: domain.RoleOwner})
	house := r.houses.add(domain.House{OwnerID: owner.ID, HouseNumber: "1", HouseType: domain.TypeApartment})
	other := r.houses.add(domain.House{OwnerID: owner.ID, HouseNumber: "2", HouseType: domain.TypeApartment})
	r.occupants.Create(context.Background(), &domain.Occupant{HouseID: house.ID, OwnerID: owner.ID, FullName: "A B", ApartmentNumber: "1", IsChiefTenant: true})
	r.occupants.Create(context.Background(), &domain.Occupant{HouseID: house.ID, OwnerID: owner.ID, FullName: "C D", ApartmentNumber: "2"})
	r.occupants.Create(context.Background(), &domain.Occupant{HouseID: other.ID, OwnerID: owner.ID, FullName: "E F", ApartmentNumber: "1"})
	svc := newOccupantService(r)
	actor := domain.Actor{ID: owner.ID, Role: domain.RoleOwner}

	list, err := svc.List(context.Background(), actor, ports.ListOccupantsInput{HouseID: house.ID})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(list.Items) != 2 {
		t.Fatalf("expected 2 occupants for house, got %d", len(list.Items))
	}
	if list.Items[0].HouseNumber != "1" {
		t.Fatalf("expected house address denormalized, got %q", list.Items[0].HouseNumber)
	}

	chiefs, err := svc.List(context.Background(), actor, ports.ListOccupantsInput{ChiefsOnly: true})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(chiefs.Items) != 1 || !chiefs.Items[0].IsChiefTenant {
		t.Fatalf("expected only chief tenants, got %+v", chiefs.Items)
	}
}

func TestOccupantService_Delete_Scoped(t *testing.T) {
	r := newTestRepos()
	r.users.add(domain.User{ID: "owner_1", Role: domain.RoleOwner})
	r.users.add(domain.User{ID: "owner_2", Role: domain.RoleOwner})
	foreign, _ := r.occupants.Create(context.Background(), &domain.Occupant{HouseID: "h", OwnerID: "owner_2", FullName: "A B", ApartmentNumber: "1"})
	svc := newOccupantService(r)

	if err := svc.Delete(context.Background(), domain.Actor{ID: "owner_1", Role: domain.RoleOwner}, foreign.ID); !errors.Is(err, domain.ErrOccupantNotFound) {
		t.Fatalf("expected ErrOccupantNotFound for foreign occupant, got %v", err)
	}
}
