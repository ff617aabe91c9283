package domain

import "testing"

func TestActorScopes(t *testing.T) {
	tests := []struct {
		name        string
		actor       Actor
		houses      Scope
		occupants   Scope
		assignments Scope
	}{
		{
			name:        "owner sees own rows everywhere",
			actor:       Actor{ID: "o1", Role: RoleOwner},
			houses:      Scope{OwnerID: "o1"},
			occupants:   Scope{OwnerID: "o1"},
			assignments: Scope{OwnerID: "o1"},
		},
		{
			name:        "admin is unrestricted",
			actor:       Actor{ID: "a1", Role: RoleAdmin},
			houses:      Scope{},
			occupants:   Scope{},
			assignments: Scope{},
		},
		{
			name:        "tenant browses catalogue but only own assignments",
			actor:       Actor{ID: "t1", Role: RoleTenant},
			houses:      Scope{},
			occupants:   Scope{},
			assignments: Scope{UserID: "t1"},
		},
		{
			name:        "unknown role gets the most restrictive scopes",
			actor:       Actor{ID: "x1", Role: "intruder"},
			houses:      Scope{OwnerID: "x1"},
			occupants:   Scope{OwnerID: "x1"},
			assignments: Scope{UserID: "x1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.actor.HouseScope(); got != tt.houses {
				t.Fatalf("HouseScope = %+v, want %+v", got, tt.houses)
			}
			if got := tt.actor.OccupantScope(); got != tt.occupants {
				t.Fatalf("OccupantScope = %+v, want %+v", got, tt.occupants)
			}
			if got := tt.actor.AssignmentScope(); got != tt.assignments {
				t.Fatalf("AssignmentScope = %+v, want %+v", got, tt.assignments)
			}
		})
	}
}

func TestScopeUnrestricted(t *testing.T) {
	if !(Scope{}).Unrestricted() {
		t.Fatalf("empty scope must be unrestricted")
	}
	if (Scope{OwnerID: "o"}).Unrestricted() {
		t.Fatalf("owner scope must not be unrestricted")
	}
	if (Scope{UserID: "u"}).Unrestricted() {
		t.Fatalf("user scope must not be unrestricted")
	}
}

func TestActorIsAdmin(t *testing.T) {
	if !(Actor{Role: RoleAdmin}).IsAdmin() {
		t.Fatalf("admin role must report IsAdmin")
	}
	if (Actor{Role: RoleOwner}).IsAdmin() {
		t.Fatalf("owner role must not report IsAdmin")
	}
}
